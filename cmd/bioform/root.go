package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyp/bioform/internal/config"
	"github.com/hyp/bioform/internal/log"
)

// NewRootCmd creates the root command for bioform.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bioform",
		Short: "Build yearbook CSV reports from bioform submissions",
		Long: `bioform downloads the senior and student-group bioform exports,
cleans and deduplicates the submissions, and produces the CSV files used to
typeset the yearbook: senior biographies, group blurbs, and the professor
directory with its by-surname counts.

Credentials for the form service are read from the TYPEFORM_USERNAME and
TYPEFORM_PASSWORD environment variables.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .bioform.yaml in current directory or XDG config directory)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getRootBool(cmd, "verbose")
}

// getRootBool retrieves a boolean persistent flag from the command or the root.
func getRootBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// loadConfig builds the configuration from the config file named by
// --config (or found in the default locations).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// setupLogger creates a redacting text or JSON logger. Without verbose,
// messages below quiet are dropped.
func setupLogger(w io.Writer, verbose, asJSON bool, quiet slog.Level) *slog.Logger {
	if verbose || quiet <= slog.LevelInfo {
		if asJSON {
			return log.NewSecureJSONLogger(w, verbose)
		}
		return log.NewSecureLogger(w, verbose)
	}

	opts := &slog.HandlerOptions{Level: quiet}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(log.NewSecureHandler(handler))
}
