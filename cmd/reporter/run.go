package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/programme-lv/reporter/internal/aescbc"
	"github.com/programme-lv/reporter/internal/apiclient"
	"github.com/programme-lv/reporter/internal/environment"
	"github.com/programme-lv/reporter/internal/evalfile"
	"github.com/programme-lv/reporter/internal/gatherer"
	"github.com/programme-lv/reporter/internal/gatherer/natsgath"
	"github.com/programme-lv/reporter/internal/gatherer/sqsgath"
	"github.com/programme-lv/reporter/internal/gatherer/termgath"
	"github.com/programme-lv/reporter/internal/host"
	"github.com/urfave/cli/v3"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "report the recorded evaluator results of a handin",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "results",
				Aliases:  []string{"r"},
				Usage:    "evaluator results `FILE` (.toml or .toml.zst)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables from `FILE`",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print the report body instead of posting it",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runReport(ctx, cmd.String("results"), cmd.String("env-file"), cmd.Bool("dry-run"))
		},
	}
}

func runReport(ctx context.Context, resultsPath, envFile string, dryRun bool) error {
	log := slog.Default()

	cfg, key, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	results, err := evalfile.Open(resultsPath)
	if err != nil {
		return err
	}
	if dups := results.DuplicateTypes(); len(dups) > 0 {
		log.Warn("evaluator types occur more than once", "types", dups)
	}

	var reporter host.Reporter
	if dryRun {
		reporter = &printReporter{key: key, out: os.Stdout}
	} else {
		reporter, err = newClient(cfg, key)
		if err != nil {
			return err
		}
	}

	gaths := []gatherer.Gatherer{termgath.NewWriter(os.Stderr)}
	if cfg.NatsUrl != "" && !dryRun {
		nc, err := nats.Connect(cfg.NatsUrl, nats.Name("reporter"))
		if err != nil {
			log.Warn("progress notifications over nats disabled", "url", cfg.NatsUrl, "error", err)
		} else {
			defer nc.Drain()
			gaths = append(gaths, natsgath.New(nc, cfg.HandinId, cfg.NatsSubject, log))
		}
	}
	if cfg.SqsUrl != "" && !dryRun {
		g, err := sqsgath.New(ctx, cfg.AwsRegion, cfg.HandinId, cfg.SqsUrl, log)
		if err != nil {
			log.Warn("progress notifications over sqs disabled", "queue", cfg.SqsUrl, "error", err)
		} else {
			gaths = append(gaths, g)
		}
	}

	h, err := host.New(host.Context{
		BaseURL:    cfg.ApiBaseUrl,
		Key:        key,
		HandinID:   cfg.HandinId,
		HomeworkID: cfg.HomeworkId,
	}, host.WithReporter(reporter), host.WithGatherer(gatherer.Multi(gaths...)), host.WithLogger(log))
	if err != nil {
		return err
	}
	return h.Run(ctx, results.Evaluators())
}

func loadConfig(envFile string) (*environment.EnvConfig, []byte, error) {
	cfg, err := environment.ReadEnvConfig(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}
	key, err := environment.LoadCommKey(environment.CommKeyPath(cfg.RailgunRoot))
	if err != nil {
		return nil, nil, err
	}
	return cfg, key, nil
}

func newClient(cfg *environment.EnvConfig, key []byte) (*apiclient.Client, error) {
	return apiclient.New(cfg.ApiBaseUrl, key,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithLogger(slog.Default()))
}

// printReporter writes the decrypted report body instead of posting it.
type printReporter struct {
	key []byte
	out io.Writer
}

func (p *printReporter) SendReport(_ context.Context, _ string, sealed []byte) error {
	plain, err := aescbc.Decrypt(p.key, sealed)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.out, "%s\n", plain)
	return err
}
