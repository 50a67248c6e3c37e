package report

import (
	"io"
)

// Writer outputs a run summary.
type Writer interface {
	// WriteSummary writes the summary and returns the number of bytes written.
	WriteSummary(s *Summary) (int, error)
}

// MultiWriter writes a summary to several Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteSummary writes to every Writer and stops on the first error.
func (m *MultiWriter) WriteSummary(s *Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(s)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
