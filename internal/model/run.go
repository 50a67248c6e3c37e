package model

import (
	"errors"
	"time"
)

// RowFailure records a row skipped during a report computation.
type RowFailure struct {
	// Row is the 0-based index of the row in the remote export.
	Row int `json:"row"`

	// Key is the row's identity key, if known.
	Key string `json:"key,omitempty"`

	// Step is the pipeline step that rejected the row.
	Step string `json:"step"`

	// Reason is the error message.
	Reason string `json:"reason"`
}

// Run accumulates the state of one report computation as it moves through
// the pipeline steps. It is owned by a single computation and never shared.
type Run struct {
	// Kind is the report being computed.
	Kind ReportKind

	// StartedAt is when the computation began.
	StartedAt time.Time

	// Export is the raw remote export, set by the fetch step.
	Export *Export

	// Rows holds the normalized submissions; later steps replace it with
	// the filtered and deduplicated set.
	Rows []Submission

	// Fetched is the number of rows in the remote export.
	Fetched int

	// AfterCutoff is the number of rows that survived normalization.
	AfterCutoff int

	// AfterDedup is the number of rows left after deduplication.
	AfterDedup int

	// Table is the rendered result, set by the final step.
	Table *Table

	// Failures lists the rows skipped along the way.
	Failures []RowFailure

	// PerformedSteps lists the names of the steps that ran.
	PerformedSteps []string

	// Err is the error that stopped the computation, if any.
	Err error
}

// NewRun creates a Run for the given report.
func NewRun(kind ReportKind) *Run {
	return &Run{
		Kind:      kind,
		StartedAt: time.Now(),
	}
}

// AddFailure records a skipped row.
// MalformedValueError details are copied into the entry.
func (r *Run) AddFailure(step string, row int, key string, err error) {
	var mv *MalformedValueError
	if errors.As(err, &mv) {
		row = mv.Row
		if key == "" {
			key = mv.Key
		}
	}
	r.Failures = append(r.Failures, RowFailure{
		Row:    row,
		Key:    key,
		Step:   step,
		Reason: err.Error(),
	})
}

// Succeeded reports whether the run produced a table.
func (r *Run) Succeeded() bool {
	return r.Err == nil && r.Table != nil
}
