package bio

import (
	"strings"

	"github.com/hyp/bioform/internal/model"
	"github.com/hyp/bioform/internal/schema"
)

// GroupComposer builds student group records for one export layout.
type GroupComposer struct {
	cols *schema.GroupColumns
}

// NewGroupComposer returns a GroupComposer reading the given columns.
func NewGroupComposer(cols *schema.GroupColumns) *GroupComposer {
	return &GroupComposer{cols: cols}
}

// Compose builds the display record of a group submission.
func (g *GroupComposer) Compose(sub model.Submission) model.GroupRecord {
	officers := make([]model.OfficerEntry, 0, len(g.cols.Officers))
	for _, p := range g.cols.Officers {
		e := model.OfficerEntry{Position: sub.Get(p.Label)}
		if p.Qualifier != "" {
			e.Name = sub.Get(p.Qualifier)
		}
		officers = append(officers, e)
	}

	return model.GroupRecord{
		Name:        RemoveBrackets(sub.Get(g.cols.Name)),
		Blurb:       Truncate(sub.Get(g.cols.Description), model.MaxBlurbLength),
		Officers:    Officers(officers),
		SubmittedAt: sub.Get(g.cols.SubmitDate),
	}
}

// Officers renders "Position: Name; Position: Name". Entries missing either
// half are skipped.
func Officers(entries []model.OfficerEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Position == "" || e.Name == "" {
			continue
		}
		parts = append(parts, TitleCase(e.Position)+": "+TitleCase(e.Name))
	}
	return strings.Join(parts, "; ")
}
