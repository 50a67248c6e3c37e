package normalize

import "github.com/hyp/bioform/internal/model"

// Deduplicate collapses rows sharing the value of keyColumn.
// For each key it keeps the row with the latest SubmittedAt; on equal
// timestamps the row seen last wins. The output lists one row per key in the
// order each key first appeared.
func Deduplicate(rows []model.Submission, keyColumn string) []model.Submission {
	order := make([]string, 0, len(rows))
	best := make(map[string]model.Submission, len(rows))

	for _, row := range rows {
		key := row.Get(keyColumn)
		cur, ok := best[key]
		if !ok {
			order = append(order, key)
			best[key] = row
			continue
		}
		if !row.SubmittedAt.Before(cur.SubmittedAt) {
			best[key] = row
		}
	}

	out := make([]model.Submission, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}
