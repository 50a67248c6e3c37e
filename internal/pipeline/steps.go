package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hyp/bioform/internal/bio"
	"github.com/hyp/bioform/internal/fetch"
	"github.com/hyp/bioform/internal/model"
	"github.com/hyp/bioform/internal/normalize"
	"github.com/hyp/bioform/internal/professor"
	"github.com/hyp/bioform/internal/schema"
)

// ErrNoExport is returned by a step that needs the export when no fetch step
// ran before it.
var ErrNoExport = errors.New("no export fetched")

// FetchStep downloads the form export of the run's report.
type FetchStep struct {
	source fetch.Source
	formID string
}

// NewFetchStep creates a step that downloads formID from source.
func NewFetchStep(source fetch.Source, formID string) *FetchStep {
	return &FetchStep{source: source, formID: formID}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, run *model.Run) error {
	exp, err := s.source.Export(ctx, s.formID)
	if err != nil {
		return err
	}
	run.Export = exp
	run.Fetched = len(exp.Rows)
	return nil
}

// NormalizeStep cleans the exported rows and applies the cutoff.
type NormalizeStep struct {
	cutoff time.Time
	logger *slog.Logger
}

// NewNormalizeStep creates a normalize step. The zero cutoff keeps every row.
func NewNormalizeStep(cutoff time.Time, logger *slog.Logger) *NormalizeStep {
	return &NormalizeStep{cutoff: cutoff, logger: logger}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do executes the normalize step.
func (s *NormalizeStep) Do(_ context.Context, run *model.Run) error {
	form, err := exportForm(run)
	if err != nil {
		return err
	}

	res := normalize.NewNormalizer(form, normalize.WithCutoff(s.cutoff)).Normalize(run.Export.Rows)
	for _, f := range res.Failures {
		s.logger.Warn("skipping row", "report", run.Kind.String(), "step", s.Name(), "error", f)
		run.AddFailure(s.Name(), -1, "", f)
	}

	run.Rows = res.Rows
	run.AfterCutoff = len(res.Rows)
	return nil
}

// DedupeStep keeps the latest submission per identity key.
type DedupeStep struct{}

// Name returns the step name.
func (DedupeStep) Name() string {
	return "dedupe"
}

// Do executes the dedupe step.
func (DedupeStep) Do(_ context.Context, run *model.Run) error {
	form, err := exportForm(run)
	if err != nil {
		return err
	}
	run.Rows = normalize.Deduplicate(run.Rows, form.KeyColumn)
	run.AfterDedup = len(run.Rows)
	return nil
}

// SeniorStep builds the seniors table.
type SeniorStep struct {
	logger *slog.Logger
}

// NewSeniorStep creates a seniors step.
func NewSeniorStep(logger *slog.Logger) *SeniorStep {
	return &SeniorStep{logger: logger}
}

// Name returns the step name.
func (s *SeniorStep) Name() string {
	return "seniors"
}

// Do executes the seniors step. Rows whose bio cannot be composed are
// recorded as failures and left out of the table.
func (s *SeniorStep) Do(_ context.Context, run *model.Run) error {
	if run.Export == nil {
		return ErrNoExport
	}
	cols, err := schema.Seniors(run.Export.Header)
	if err != nil {
		return err
	}

	composer := bio.NewComposer(cols)
	records := make([]model.SeniorRecord, 0, len(run.Rows))
	for _, row := range run.Rows {
		rec, err := composer.Compose(row)
		if err != nil {
			s.logger.Warn("skipping row", "report", run.Kind.String(), "step", s.Name(), "error", err)
			run.AddFailure(s.Name(), row.Index, row.Get(cols.Email), err)
			continue
		}
		records = append(records, rec)
	}

	run.Table = model.NewTable(model.SeniorHeader, records, true)
	return nil
}

// GroupStep builds the groups table.
type GroupStep struct{}

// Name returns the step name.
func (GroupStep) Name() string {
	return "groups"
}

// Do executes the groups step.
func (GroupStep) Do(_ context.Context, run *model.Run) error {
	if run.Export == nil {
		return ErrNoExport
	}
	cols, err := schema.Groups(run.Export.Header)
	if err != nil {
		return err
	}

	composer := bio.NewGroupComposer(cols)
	records := make([]model.GroupRecord, 0, len(run.Rows))
	for _, row := range run.Rows {
		records = append(records, composer.Compose(row))
	}

	run.Table = model.NewTable(model.GroupHeader, records, true)
	return nil
}

// ProfessorStep builds the professor directory, or the per-surname counts
// when counts is set.
type ProfessorStep struct {
	counts bool
}

// NewProfessorStep creates a professor step.
func NewProfessorStep(counts bool) *ProfessorStep {
	return &ProfessorStep{counts: counts}
}

// Name returns the step name.
func (s *ProfessorStep) Name() string {
	if s.counts {
		return "prof_counts"
	}
	return "profs"
}

// Do executes the professor step.
func (s *ProfessorStep) Do(_ context.Context, run *model.Run) error {
	if run.Export == nil {
		return ErrNoExport
	}
	cols, err := schema.Professors(run.Export.Header)
	if err != nil {
		return err
	}

	records := professor.Aggregate(run.Rows, cols)
	if s.counts {
		run.Table = model.NewTable(model.ProfessorCountHeader, professor.Counts(records), false)
		return nil
	}
	run.Table = model.NewTable(model.ProfessorHeader, records, false)
	return nil
}

// exportForm resolves the common columns of the run's export.
func exportForm(run *model.Run) (*schema.Form, error) {
	if run.Export == nil {
		return nil, ErrNoExport
	}
	form, err := schema.NewForm(run.Kind.Form(), run.Export.Header)
	if err != nil {
		return nil, fmt.Errorf("%s export: %w", run.Kind, err)
	}
	return form, nil
}
