package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hyp/bioform/internal/config"
	"github.com/hyp/bioform/internal/fetch"
	"github.com/hyp/bioform/internal/pipeline"
	"github.com/hyp/bioform/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reports over HTTP",
		Long: `Serve starts an HTTP server that computes a report on every request.

Routes:
  GET /seniors       senior biographies (bioforms.csv)
  GET /groups        student-group blurbs (groups.csv)
  GET /profs         professor directory (profs.csv)
  GET /prof_counts   professor surname counts (prof_counts.csv)
  GET /healthz       liveness check

Each request logs in to the form service and downloads a fresh export, so
the reports always reflect the latest submissions.

Examples:
  # Serve on the default address
  bioform serve

  # Serve on a specific address
  bioform serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", "",
		"Listen address (default from config file, or "+config.DefaultAddr+")")
	cmd.Flags().DurationP("timeout", "t", 0,
		"Timeout of one request to the form service (default from config file, or "+config.DefaultTimeout.String()+")")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	creds, err := config.LoadCredentials(os.Getenv)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(os.Stderr, cfg.Verbose, getRootBool(cmd, "log-json"), slog.LevelInfo)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, creds, logger)
}

// buildServeConfig loads the configuration and applies the serve flags.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return nil, err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config, creds config.Credentials, logger *slog.Logger) error {
	client, err := fetch.NewClientFromConfig(cfg, creds, fetch.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("starting report server",
		"addr", cfg.Addr,
		"baseURL", cfg.BaseURL,
		"openDate", cfg.OpenDate,
		"config", cfg.ConfigFilePath,
	)

	runner := pipeline.NewRunner(client, cfg, logger)
	srv := server.New(runner, server.WithLogger(logger))
	return srv.ListenAndServe(ctx, cfg.Addr)
}
