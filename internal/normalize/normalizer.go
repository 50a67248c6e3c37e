package normalize

import (
	"errors"
	"strings"
	"time"

	"github.com/hyp/bioform/internal/config"
	"github.com/hyp/bioform/internal/model"
	"github.com/hyp/bioform/internal/schema"
)

var errZeroTimestamp = errors.New("timestamp is the zero time")

// Normalizer cleans the rows of one export.
type Normalizer struct {
	form   *schema.Form
	cutoff time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithCutoff keeps only rows started strictly after t.
// The zero time disables the cutoff.
func WithCutoff(t time.Time) Option {
	return func(n *Normalizer) {
		n.cutoff = t
	}
}

// NewNormalizer creates a Normalizer for the given form layout.
func NewNormalizer(form *schema.Form, opts ...Option) *Normalizer {
	n := &Normalizer{form: form}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Result is the outcome of normalizing an export.
type Result struct {
	// Rows holds the kept submissions in export order.
	Rows []model.Submission

	// Filtered counts rows dropped by the cutoff.
	Filtered int

	// Failures holds one *model.MalformedValueError per rejected row.
	Failures []error
}

// Normalize cleans every row. A row whose cutoff timestamp cannot be parsed
// while a cutoff is active is rejected and reported in Result.Failures; the
// remaining rows are still returned.
func (n *Normalizer) Normalize(rows []map[string]string) Result {
	res := Result{Rows: make([]model.Submission, 0, len(rows))}

	for i, raw := range rows {
		sub := n.clean(i, raw)

		if !n.cutoff.IsZero() {
			col := n.form.StartColumn
			ts := sub.StartedAt
			if col == "" {
				col = n.form.SubmitColumn
				ts = sub.SubmittedAt
			}
			if ts.IsZero() {
				res.Failures = append(res.Failures, &model.MalformedValueError{
					Row:   i,
					Key:   sub.Get(n.form.KeyColumn),
					Field: col,
					Value: sub.Get(col),
					Err:   parseError(sub.Get(col)),
				})
				continue
			}
			if !ts.After(n.cutoff) {
				res.Filtered++
				continue
			}
		}

		res.Rows = append(res.Rows, sub)
	}

	return res
}

// clean builds the Submission for one raw row.
func (n *Normalizer) clean(i int, raw map[string]string) model.Submission {
	fields := make(map[string]string, len(n.form.Header))
	for _, col := range n.form.Header {
		if n.form.Excluded[col] {
			continue
		}
		fields[col] = n.trim(raw[col])
	}

	sub := model.Submission{Index: i, Fields: fields}
	sub.SubmittedAt, _ = ParseTimestamp(fields[n.form.SubmitColumn])
	if n.form.StartColumn != "" {
		sub.StartedAt, _ = ParseTimestamp(fields[n.form.StartColumn])
	}
	return sub
}

func (n *Normalizer) trim(v string) string {
	v = strings.TrimSpace(v)
	if n.form.TrimDots {
		v = strings.TrimSpace(strings.TrimRight(v, ". "))
	}
	return v
}

// ParseTimestamp parses an export timestamp as UTC.
func ParseTimestamp(v string) (time.Time, error) {
	return time.ParseInLocation(config.TimestampLayout, v, time.UTC)
}

func parseError(v string) error {
	if _, err := ParseTimestamp(v); err != nil {
		return err
	}
	return errZeroTimestamp
}
