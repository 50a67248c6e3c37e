package pipeline

import (
	"context"
	"log/slog"

	"github.com/hyp/bioform/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the run state
// left by the previous steps.
type Step interface {
	// Do executes the step. It returns an error when the report cannot be
	// produced; rows that cannot be processed are recorded in the run with
	// Run.AddFailure and do not stop the step.
	Do(ctx context.Context, run *model.Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence and stops at the first error, which is
// also stored in run.Err. Cancellation is checked before each step.
func (p *Pipeline) Execute(ctx context.Context, run *model.Run) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"report", run.Kind.String(),
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			run.Err = ctx.Err()
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"report", run.Kind.String(),
			"step", step.Name(),
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"report", run.Kind.String(),
				"step", step.Name(),
				"error", err,
			)
			run.Err = err
			return err
		}

		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	p.logger.Info("report computed",
		"report", run.Kind.String(),
		"fetched", run.Fetched,
		"after_cutoff", run.AfterCutoff,
		"after_dedup", run.AfterDedup,
		"records", run.Table.Len(),
		"skipped_rows", len(run.Failures),
	)
	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
