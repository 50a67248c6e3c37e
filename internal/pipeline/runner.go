package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hyp/bioform/internal/config"
	"github.com/hyp/bioform/internal/fetch"
	"github.com/hyp/bioform/internal/model"
)

// DefaultPipeline assembles the steps that compute the given report:
// fetch, normalize, dedupe and the report's table step.
func DefaultPipeline(kind model.ReportKind, source fetch.Source, cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cutoff, err := cfg.Cutoff()
	if err != nil {
		return nil, err
	}

	formID := cfg.SeniorFormID
	if kind.Form() == model.FormGroup {
		formID = cfg.GroupFormID
	}

	p := New(WithLogger(logger))
	p.AddSteps(
		NewFetchStep(source, formID),
		NewNormalizeStep(cutoff, logger),
		DedupeStep{},
	)

	switch kind {
	case model.ReportSeniors:
		p.AddStep(NewSeniorStep(logger))
	case model.ReportGroups:
		p.AddStep(GroupStep{})
	case model.ReportProfessors:
		p.AddStep(NewProfessorStep(false))
	case model.ReportProfessorCounts:
		p.AddStep(NewProfessorStep(true))
	default:
		return nil, fmt.Errorf("%w: %d", model.ErrUnknownReport, int(kind))
	}

	return p, nil
}

// Runner computes reports against a source, building a fresh pipeline for
// every computation.
type Runner struct {
	source fetch.Source
	cfg    *config.Config
	logger *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(source fetch.Source, cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{source: source, cfg: cfg, logger: logger}
}

// Pipeline returns a new pipeline for the report.
func (r *Runner) Pipeline(kind model.ReportKind) (*Pipeline, error) {
	return DefaultPipeline(kind, r.source, r.cfg, r.logger)
}

// Run computes one report. The returned run always describes the outcome;
// run.Err is set when no table could be produced.
func (r *Runner) Run(ctx context.Context, kind model.ReportKind) *model.Run {
	run := model.NewRun(kind)

	p, err := r.Pipeline(kind)
	if err != nil {
		run.Err = err
		return run
	}
	r.logger.Debug("computing report", "report", kind.String(), "steps", p.StepNames())

	_ = p.Execute(ctx, run) //nolint:errcheck // the error is stored in run.Err
	return run
}
