package bio

import (
	"regexp"
	"strings"

	"github.com/hyp/bioform/internal/model"
)

const (
	pbhaMarker = "[PBHA]"
	pbhaName   = "Phillips Brooks House Association"
	crimson    = "Harvard Crimson"
)

// bracketTag matches a space followed by a bracketed tag such as " [HYP]".
var bracketTag = regexp.MustCompile(`[ ][\[].*?[\]]`)

// pbhaStrip removes the organization prefix, closing parentheses and marker
// from an entry before it joins the merged PBHA entry.
var pbhaStrip = []RewriteRule{
	{Old: "PBHA (", New: ""},
	{Old: pbhaName + " (", New: ""},
	{Old: ")", New: ""},
	{Old: " " + pbhaMarker, New: ""},
	{Old: " (", New: ": "},
}

// crimsonStrip drops the Associate Editor title from Crimson entries.
var crimsonStrip = []RewriteRule{
	{Old: " (Associate Editor)", New: ""},
	{Old: ", Associate Editor", New: ""},
	{Old: "Associate Editor, ", New: ""},
}

// Houses are the undergraduate residential houses.
var Houses = []string{
	"Adams", "Cabot", "Currier", "Dudley", "Dunster", "Eliot", "Kirkland",
	"Leverett", "Lowell", "Mather", "Pforzheimer", "Quincy", "Winthrop",
}

// Label returns the display form of an activity: "Label (Qualifier)" with the
// qualifier title-cased, just the label without a qualifier, and "" when the
// label is empty.
func Label(e model.ExtracurricularEntry) string {
	switch {
	case e.Label == "":
		return ""
	case e.Qualifier == "":
		return e.Label
	default:
		return e.Label + " (" + TitleCase(e.Qualifier) + ")"
	}
}

// Extracurriculars renders the activity list of a bio. Each activity ends
// with ". ". Activities tagged [PBHA] are merged into a single Phillips
// Brooks House Association entry placed where the first tagged activity was.
// Bracketed tags are removed from the result.
func Extracurriculars(entries []model.ExtracurricularEntry) string {
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		if l := Label(e); l != "" {
			labels = append(labels, l)
		}
	}
	if len(labels) == 0 {
		return ""
	}

	pbha := mergePBHA(labels)

	var b strings.Builder
	for _, l := range labels {
		if strings.Contains(l, pbhaMarker) {
			b.WriteString(pbha)
			pbha = ""
			continue
		}
		b.WriteString(touchUp(l))
		b.WriteString(". ")
	}

	return RemoveBrackets(strings.ReplaceAll(b.String(), "  ", " "))
}

// mergePBHA builds the combined entry for every PBHA-tagged label.
func mergePBHA(labels []string) string {
	var parts []string
	for _, l := range labels {
		if strings.Contains(l, pbhaMarker) {
			parts = append(parts, Rewrite(l, pbhaStrip))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return pbhaName + " (" + strings.Join(parts, "; ") + "). "
}

// touchUp applies the publication and intramural spelling fixes.
func touchUp(l string) string {
	if strings.HasPrefix(l, crimson) {
		l = strings.ReplaceAll(l, crimson, "The "+crimson)
	}
	if strings.Contains(l, crimson) {
		l = Rewrite(l, crimsonStrip)
	}
	l = strings.ReplaceAll(l, "Harvard Yearbook Publications, Inc.", "Harvard Yearbook Publications")
	if strings.HasPrefix(l, "Intramurals") {
		l = strings.ReplaceAll(l, "House ", "")
		for _, h := range Houses {
			l = strings.ReplaceAll(l, h+" ", "")
		}
	}
	return l
}

// RemoveBrackets removes every " [...]" tag from s.
func RemoveBrackets(s string) string {
	return bracketTag.ReplaceAllString(s, "")
}
