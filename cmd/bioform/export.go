package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyp/bioform/internal/config"
	"github.com/hyp/bioform/internal/fetch"
	"github.com/hyp/bioform/internal/model"
	"github.com/hyp/bioform/internal/pipeline"
	"github.com/hyp/bioform/internal/report"
)

// errNoReports is returned when export is called without reports.
var errNoReports = errors.New("no reports selected (name one or more reports, or use --all)")

// errReportsFailed is returned when at least one report could not be produced.
var errReportsFailed = errors.New("some reports failed")

// exportOptions holds the parsed export flags.
type exportOptions struct {
	kinds      []model.ReportKind
	outputDir  string
	summary    string
	jsonOutput bool
}

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [report...]",
		Short: "Write reports to CSV files",
		Long: `Export computes the named reports and writes each one to a CSV file in the
output directory.

Reports:
  seniors       bioforms.csv
  groups        groups.csv
  profs         profs.csv
  prof_counts   prof_counts.csv

Rows that cannot be used (for example a malformed date of birth) are left
out of the file and listed on stderr.

Examples:
  # Export the senior biographies to the current directory
  bioform export seniors

  # Export every report to out/ and write a Markdown summary
  bioform export --all -o out --summary out/summary.md

  # Write a JSON summary instead
  bioform export --all --summary summary.json`,
		Args: cobra.ArbitraryArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().BoolP("all", "A", false, "Export every report")
	cmd.Flags().StringP("output", "o", ".", "Directory the CSV files are written to")
	cmd.Flags().StringP("summary", "s", "",
		"Write a run summary to this file (.md for Markdown, .json for JSON)")
	cmd.Flags().IntP("batch", "b", 0,
		"Number of reports computed concurrently (default from config file, or 2)")
	cmd.Flags().DurationP("timeout", "t", 0,
		"Timeout of one request to the form service (default from config file, or "+config.DefaultTimeout.String()+")")

	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	opts, err := parseExportOptions(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := buildExportConfig(cmd)
	if err != nil {
		return err
	}

	creds, err := config.LoadCredentials(os.Getenv)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(os.Stderr, cfg.Verbose, getRootBool(cmd, "log-json"), slog.LevelWarn)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := fetch.NewClientFromConfig(cfg, creds, fetch.WithLogger(logger))
	if err != nil {
		return err
	}

	return exportReports(ctx, client, cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// parseExportOptions resolves the report names and output flags.
func parseExportOptions(cmd *cobra.Command, args []string) (*exportOptions, error) {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return nil, err
	}

	opts := &exportOptions{}
	if opts.outputDir, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if opts.summary, err = cmd.Flags().GetString("summary"); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(opts.summary)) {
	case "", ".md", ".markdown":
	case ".json":
		opts.jsonOutput = true
	default:
		return nil, fmt.Errorf("unsupported summary format %q (use .md or .json)", filepath.Ext(opts.summary))
	}

	if all {
		if len(args) > 0 {
			return nil, errors.New("--all cannot be combined with report names")
		}
		opts.kinds = append(opts.kinds, model.AllReports...)
		return opts, nil
	}

	if len(args) == 0 {
		return nil, errNoReports
	}
	seen := make(map[model.ReportKind]bool, len(args))
	for _, arg := range args {
		kind, err := model.ParseReportKind(arg)
		if err != nil {
			return nil, err
		}
		if !seen[kind] {
			seen[kind] = true
			opts.kinds = append(opts.kinds, kind)
		}
	}
	return opts, nil
}

// buildExportConfig loads the configuration and applies the export flags.
func buildExportConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	batch, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}
	if batch != 0 {
		cfg.BatchSize = batch
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

// exportReports computes the reports concurrently and writes each finished
// table as soon as it is ready. Progress goes to stdout, skipped rows and
// failures to stderr.
func exportReports(
	ctx context.Context,
	source fetch.Source,
	cfg *config.Config,
	opts *exportOptions,
	stdout, stderr io.Writer,
	logger *slog.Logger,
) error {
	if err := os.MkdirAll(opts.outputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	runner := pipeline.NewRunner(source, cfg, logger)
	bp := pipeline.NewBatchProcessor(runner,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	fmt.Fprintf(stdout, "Exporting %d report(s) (concurrency: %d)...\n", len(opts.kinds), cfg.BatchSize)
	start := time.Now()

	runs := make([]*model.Run, len(opts.kinds))
	var mu sync.Mutex
	batchErr := bp.ProcessReportsWithCallback(ctx, opts.kinds, func(run *model.Run, index int) {
		mu.Lock()
		defer mu.Unlock()

		runs[index] = run
		if !run.Succeeded() {
			fmt.Fprintf(stderr, "[%d/%d] %s failed: %v\n", index+1, len(opts.kinds), run.Kind, run.Err)
			return
		}

		path := filepath.Join(opts.outputDir, run.Kind.FileName())
		if err := writeTable(path, run.Table); err != nil {
			run.Err = err
			fmt.Fprintf(stderr, "[%d/%d] %s failed: %v\n", index+1, len(opts.kinds), run.Kind, err)
			return
		}
		fmt.Fprintf(stdout, "[%d/%d] %s: %d rows -> %s\n", index+1, len(opts.kinds), run.Kind, run.Table.Len(), path)
	})

	finished := make([]*model.Run, 0, len(runs))
	for _, run := range runs {
		if run != nil {
			finished = append(finished, run)
		}
	}

	summary := report.NewSummary(finished, getVersion(), time.Now())
	writers := []report.Writer{report.NewSimpleWriter(stderr, report.WithVerbose(cfg.Verbose))}
	if opts.summary != "" {
		f, w, err := openSummary(opts.summary, opts.jsonOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		writers = append(writers, w)
	}
	if _, err := report.NewMultiWriter(writers...).WriteSummary(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if opts.summary != "" {
		fmt.Fprintf(stdout, "Summary written to %s\n", opts.summary)
	}

	fmt.Fprintf(stdout, "Export completed in %s\n", time.Since(start).Round(time.Millisecond))

	if batchErr != nil {
		return batchErr
	}
	if summary.FailedReports() > 0 {
		return fmt.Errorf("%w: %d of %d", errReportsFailed, summary.FailedReports(), len(opts.kinds))
	}
	return nil
}

// writeTable writes the table's CSV to path, replacing any existing file.
func writeTable(path string, t *model.Table) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewCSVWriter(f).Write(t); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// openSummary creates the summary file and the writer for its format.
func openSummary(path string, asJSON bool) (*os.File, report.Writer, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create summary directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create summary file: %w", err)
	}

	if asJSON {
		return f, report.NewJSONWriter(f, report.WithPrettyPrint()), nil
	}
	return f, report.NewMarkdownWriter(f), nil
}
