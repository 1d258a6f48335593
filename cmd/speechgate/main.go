// speechgate serves the wedding speech generation gateway.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/matiasleandrokruk/speechgate/internal/api"
	"github.com/matiasleandrokruk/speechgate/internal/domain/speech"
	"github.com/matiasleandrokruk/speechgate/internal/infra/config"
	"github.com/matiasleandrokruk/speechgate/internal/infra/inference"
	"github.com/matiasleandrokruk/speechgate/internal/infra/store"
	"github.com/matiasleandrokruk/speechgate/internal/logging"
	"github.com/matiasleandrokruk/speechgate/internal/server"
	"github.com/matiasleandrokruk/speechgate/internal/version"
)

const (
	flagConfig   = "config"
	flagAddr     = "addr"
	flagLogLevel = "log-level"
	flagEnvFile  = "env-file"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args, os.Stdout))
}

func run(ctx context.Context, args []string, out io.Writer) int {
	if err := newRootCommand(out).Run(ctx, args); err != nil {
		fmt.Fprintln(out, err) //nolint:errcheck
		return 1
	}
	return 0
}

func newRootCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      version.Name,
		Usage:     "Wedding speech generation gateway",
		Version:   version.Version,
		Writer:    out,
		ErrWriter: out,
		// Errors are reported by run; never let the library call os.Exit.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Usage:   "Path to an optional YAML config file",
				Sources: cli.EnvVars(config.EnvKeyConfigFile),
			},
			&cli.StringFlag{
				Name:    flagAddr,
				Usage:   "HTTP listen address",
				Sources: cli.EnvVars(config.EnvKeyAddr),
				Value:   config.DefaultAddr,
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(config.EnvKeyLogLevel),
				Value:   config.DefaultLogLevel,
			},
			&cli.StringFlag{
				Name:  flagEnvFile,
				Usage: "Path to a .env file loaded before reading the environment",
				Value: ".env",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server (default)",
				Action: serve,
			},
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(cmd.Root().Writer, version.String())
					return err
				},
			},
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	if err := config.LoadDotEnv(cmd.String(flagEnvFile)); err != nil {
		return err
	}
	cfg, err := config.Load(cmd.String(flagConfig))
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(cmd.String(flagAddr)); cmd.IsSet(flagAddr) && v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(cmd.String(flagLogLevel)); cmd.IsSet(flagLogLevel) && v != "" {
		cfg.LogLevel = v
	}

	logger := logging.SetDefaultStructuredLogger(version.Name, version.Version, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	connector, err := store.NewConnector(cfg.Database())
	if err != nil {
		return err
	}
	client, err := inference.NewDeepInfraClient(cfg.Inference())
	if err != nil {
		_ = connector.Close()
		return err
	}

	svc := speech.NewService(client, store.NewSpeechRepository(connector))
	router := api.NewRouter(api.Dependencies{Speeches: svc, Logger: logger})

	srvCfg := server.DefaultConfig()
	srvCfg.Addr = cfg.Addr
	logger.Info("server config",
		slog.String("addr", srvCfg.Addr),
		slog.Duration("inferenceTimeout", cfg.InferenceTimeout),
		slog.Duration("writeTimeout", srvCfg.WriteTimeout),
		slog.String("logLevel", cfg.LogLevel),
	)

	if err := server.NewServer(router, connector, srvCfg).Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}
