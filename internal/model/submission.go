package model

import (
	"strconv"
	"time"
)

// Submission is one row of a form export after normalization.
// Every value is a string; a missing answer is the empty string.
type Submission struct {
	// Index is the 0-based position of the row in the remote export.
	// It identifies the row in error summaries.
	Index int

	// Fields maps column name to the answer text.
	Fields map[string]string

	// SubmittedAt is the parsed submission timestamp.
	// It is the zero time when the export value could not be parsed.
	SubmittedAt time.Time

	// StartedAt is the parsed start timestamp, zero when absent or unparsable.
	StartedAt time.Time
}

// Get returns the value of the named field, or "" when the field is absent.
func (s Submission) Get(field string) string {
	return s.Fields[field]
}

// Export is the raw result of one remote form export.
type Export struct {
	// FormID is the numeric identifier of the remote form.
	FormID string

	// Header is the column list with duplicate names disambiguated
	// ("Activity", "Activity.1", "Activity.2", ...).
	Header []string

	// Rows holds one field map per exported row, keyed by Header.
	Rows []map[string]string
}

// UniqueHeader disambiguates repeated column names by appending ".N" to the
// second and later occurrences, so "Activity, Activity, Activity" becomes
// "Activity, Activity.1, Activity.2". A generated name that collides with an
// existing column keeps counting upward.
func UniqueHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))

	for _, name := range header {
		seen[name] = true
	}

	used := make(map[string]bool, len(header))
	for i, name := range header {
		if !used[name] {
			out[i] = name
			used[name] = true
			continue
		}
		n := counts[name]
		for {
			n++
			candidate := name + "." + strconv.Itoa(n)
			if !used[candidate] && !seen[candidate] {
				out[i] = candidate
				used[candidate] = true
				break
			}
		}
		counts[name] = n
	}

	return out
}
