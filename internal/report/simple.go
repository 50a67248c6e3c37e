package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// reportColumnWidth aligns the report names.
	reportColumnWidth = 12

	// maxReasonWidth keeps a skipped-row line on one terminal line.
	maxReasonWidth = 100
)

// SimpleWriter outputs run summaries as plain text for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose also lists reports that had no skipped rows.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteSummary outputs one block per report.
func (w *SimpleWriter) WriteSummary(s *Summary) (int, error) {
	var sb strings.Builder

	for _, r := range s.Reports {
		switch {
		case r.Error != "":
			fmt.Fprintf(&sb, "%s FAILED  %s\n", runewidth.FillRight(r.Report, reportColumnWidth), r.Error)
		case len(r.Failures) > 0 || w.verbose:
			fmt.Fprintf(&sb, "%s %d records written to %s (fetched %d, after cutoff %d, after dedup %d)\n",
				runewidth.FillRight(r.Report, reportColumnWidth), r.Records, r.File, r.Fetched, r.AfterCutoff, r.AfterDedup)
		}

		for _, f := range r.Failures {
			key := f.Key
			if key == "" {
				key = "-"
			}
			reason := runewidth.Truncate(f.Reason, maxReasonWidth, "...")
			fmt.Fprintf(&sb, "  skipped row %d (%s) at %s: %s\n", f.Row, key, f.Step, reason)
		}
	}

	if sb.Len() == 0 {
		return 0, nil
	}
	return io.WriteString(w.output, sb.String())
}
