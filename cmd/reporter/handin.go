package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func startCommand() *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "tell the website that grading of the handin has begun",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables from `FILE`",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return startHandin(ctx, cmd.String("env-file"))
		},
	}
}

func procLogCommand() *cli.Command {
	return &cli.Command{
		Name:  "proclog",
		Usage: "upload the exit code and output of the grading process",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables from `FILE`",
			},
			&cli.IntFlag{
				Name:     "exit-code",
				Usage:    "exit code of the grading process",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "stdout",
				Usage: "captured standard output `FILE`",
			},
			&cli.StringFlag{
				Name:  "stderr",
				Usage: "captured standard error `FILE`",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return sendProcLog(ctx, cmd.String("env-file"), int(cmd.Int("exit-code")),
				cmd.String("stdout"), cmd.String("stderr"))
		},
	}
}

func startHandin(ctx context.Context, envFile string) error {
	cfg, key, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	c, err := newClient(cfg, key)
	if err != nil {
		return err
	}
	if err := c.Start(ctx, cfg.HandinId); err != nil {
		return err
	}
	slog.Info("handin marked as running", "handin", cfg.HandinId)
	return nil
}

func sendProcLog(ctx context.Context, envFile string, exitCode int, stdoutPath, stderrPath string) error {
	cfg, key, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	stdout, err := readOptional(stdoutPath)
	if err != nil {
		return err
	}
	stderr, err := readOptional(stderrPath)
	if err != nil {
		return err
	}
	c, err := newClient(cfg, key)
	if err != nil {
		return err
	}
	if err := c.ProcLog(ctx, cfg.HandinId, exitCode, stdout, stderr); err != nil {
		return err
	}
	slog.Info("process log uploaded", "handin", cfg.HandinId, "exitcode", exitCode)
	return nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read process output: %w", err)
	}
	return b, nil
}
