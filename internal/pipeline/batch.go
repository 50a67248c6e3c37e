package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hyp/bioform/internal/model"
)

// defaultConcurrency is the number of reports computed at once.
const defaultConcurrency = 2

// Computer computes one report. *Runner is the production implementation.
type Computer interface {
	Run(ctx context.Context, kind model.ReportKind) *model.Run
}

// BatchProcessor computes several reports concurrently.
// Each report gets its own pipeline and its own login session.
type BatchProcessor struct {
	computer    Computer
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent computations.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(computer Computer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		computer:    computer,
		concurrency: defaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessReports computes the given reports and returns their runs in the
// order of kinds. A failed report does not stop the others; its error is in
// the run. The returned error is non-nil only when ctx was cancelled, in
// which case reports that never started have a nil entry.
func (bp *BatchProcessor) ProcessReports(ctx context.Context, kinds []model.ReportKind) ([]*model.Run, error) {
	runs := make([]*model.Run, len(kinds))
	err := bp.ProcessReportsWithCallback(ctx, kinds, func(run *model.Run, i int) {
		runs[i] = run
	})
	return runs, err
}

// ProcessReportsWithCallback computes the given reports and calls callback
// with each finished run and its index in kinds. The callback is called from
// the goroutine that computed the run.
func (bp *BatchProcessor) ProcessReportsWithCallback(
	ctx context.Context,
	kinds []model.ReportKind,
	callback func(run *model.Run, index int),
) error {
	bp.logger.Info("starting batch",
		"reports", len(kinds),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, kind := range kinds {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			run := bp.computer.Run(ctx, kind)
			if run.Err != nil {
				bp.logger.Warn("report failed",
					"report", kind.String(),
					"error", run.Err,
				)
			}

			callback(run, i)
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Info("batch complete",
		"reports", len(kinds),
		"elapsed", time.Since(start),
	)
	return err
}
