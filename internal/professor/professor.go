package professor

import (
	"cmp"
	"slices"

	"github.com/hyp/bioform/internal/model"
	"github.com/hyp/bioform/internal/schema"
)

// placeholders are the answers given by seniors who skipped the question.
// Matching is exact and case-sensitive.
var placeholders = map[string]bool{
	"": true, "n/a": true, "omit": true, " ": true, "  ": true, ".": true,
	"-": true, "x": true, "na": true, "a": true, "asdf": true, "X": true,
	"first": true, "First": true, "no": true, "No": true,
}

// IsPlaceholder reports whether v is a skipped-question answer.
func IsPlaceholder(v string) bool {
	return placeholders[v]
}

// Aggregate extracts the professor named in each senior submission, drops
// entries where any field is a placeholder, and sorts the rest by last name
// then first name.
func Aggregate(rows []model.Submission, cols *schema.ProfessorColumns) []model.ProfessorRecord {
	out := make([]model.ProfessorRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.ProfessorRecord{
			FirstName: row.Get(cols.FirstName),
			LastName:  row.Get(cols.LastName),
			Email:     row.Get(cols.Email),
			Dept:      row.Get(cols.Dept),
		}
		if IsPlaceholder(rec.FirstName) || IsPlaceholder(rec.LastName) ||
			IsPlaceholder(rec.Email) || IsPlaceholder(rec.Dept) {
			continue
		}
		out = append(out, rec)
	}

	slices.SortStableFunc(out, func(a, b model.ProfessorRecord) int {
		return cmp.Or(
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.FirstName, b.FirstName),
		)
	})
	return out
}

// Counts tallies records by last name, most mentioned first. Names with the
// same count keep the order in which they first appear in records.
func Counts(records []model.ProfessorRecord) []model.ProfessorCount {
	index := make(map[string]int, len(records))
	var out []model.ProfessorCount

	for _, r := range records {
		i, ok := index[r.LastName]
		if !ok {
			i = len(out)
			index[r.LastName] = i
			out = append(out, model.ProfessorCount{LastName: r.LastName})
		}
		out[i].Count++
	}

	slices.SortStableFunc(out, func(a, b model.ProfessorCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}
