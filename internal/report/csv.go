package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/hyp/bioform/internal/model"
)

// CSVWriter serializes report tables.
//
// Indexed tables get a leading model.IndexColumn holding each row's 0-based
// position; the professor tables are written without it.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write serializes the table.
func (w *CSVWriter) Write(t *model.Table) (int, error) {
	data, err := Render(t)
	if err != nil {
		return 0, err
	}
	return w.output.Write(data)
}

// Render returns the CSV text of the table.
func Render(t *model.Table) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	header := t.Header
	if t.Indexed {
		header = append([]string{model.IndexColumn}, t.Header...)
	}
	if err := cw.Write(header); err != nil {
		return nil, err
	}

	for i, row := range t.Rows {
		if t.Indexed {
			row = append([]string{strconv.Itoa(i)}, row...)
		}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
