package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/programme-lv/reporter/internal/aescbc"
	"github.com/programme-lv/reporter/internal/environment"
	"github.com/urfave/cli/v3"
)

func makeKeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "makekey",
		Usage: "generate a random comm key file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "write the key to `PATH`",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "size",
				Value: aescbc.KeySize,
				Usage: "number of key characters",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("out")
			if err := environment.WriteCommKey(path, int(cmd.Int("size"))); err != nil {
				return err
			}
			color.New(color.FgHiGreen).Fprintf(os.Stderr, "wrote %s\n", path)
			return nil
		},
	}
}

func decryptCommand() *cli.Command {
	return &cli.Command{
		Name:      "decrypt",
		Usage:     "decrypt a captured report body",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "key-file",
				Aliases:  []string{"k"},
				Usage:    "comm key `PATH`",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			key, err := environment.LoadCommKey(cmd.String("key-file"))
			if err != nil {
				return err
			}

			var in io.Reader = os.Stdin
			if name := cmd.Args().First(); name != "" && name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return fmt.Errorf("failed to open payload: %w", err)
				}
				defer f.Close()
				in = f
			}
			sealed, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read payload: %w", err)
			}

			plain, err := aescbc.Decrypt(key, sealed)
			if err != nil {
				return fmt.Errorf("failed to decrypt payload: %w", err)
			}
			_, err = fmt.Fprintf(os.Stdout, "%s\n", plain)
			return err
		},
	}
}
