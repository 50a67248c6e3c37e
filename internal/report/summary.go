package report

import (
	"time"

	"github.com/hyp/bioform/internal/model"
)

// Summary describes a batch of report runs.
type Summary struct {
	// Version is the bioform version that produced the runs.
	Version string `json:"version"`

	// GeneratedAt is when the summary was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Reports holds one entry per run, in the order the runs were requested.
	Reports []ReportSummary `json:"reports"`
}

// ReportSummary describes one report run.
type ReportSummary struct {
	Report      string             `json:"report"`
	File        string             `json:"file"`
	Fetched     int                `json:"fetched"`
	AfterCutoff int                `json:"after_cutoff"`
	AfterDedup  int                `json:"after_dedup"`
	Records     int                `json:"records"`
	Duration    time.Duration      `json:"duration_ns"`
	Steps       []string           `json:"steps,omitempty"`
	Failures    []model.RowFailure `json:"failures,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// NewSummary builds a Summary from finished runs.
func NewSummary(runs []*model.Run, version string, now time.Time) *Summary {
	s := &Summary{
		Version:     version,
		GeneratedAt: now,
		Reports:     make([]ReportSummary, 0, len(runs)),
	}

	for _, r := range runs {
		rs := ReportSummary{
			Report:      r.Kind.String(),
			File:        r.Kind.FileName(),
			Fetched:     r.Fetched,
			AfterCutoff: r.AfterCutoff,
			AfterDedup:  r.AfterDedup,
			Records:     r.Table.Len(),
			Duration:    now.Sub(r.StartedAt),
			Steps:       r.PerformedSteps,
			Failures:    r.Failures,
		}
		if r.Err != nil {
			rs.Error = r.Err.Error()
		}
		s.Reports = append(s.Reports, rs)
	}

	return s
}

// FailedRows returns the number of skipped rows across all reports.
func (s *Summary) FailedRows() int {
	n := 0
	for _, r := range s.Reports {
		n += len(r.Failures)
	}
	return n
}

// FailedReports returns the number of reports that could not be produced.
func (s *Summary) FailedReports() int {
	n := 0
	for _, r := range s.Reports {
		if r.Error != "" {
			n++
		}
	}
	return n
}
