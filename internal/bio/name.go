package bio

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FullName prints a senior's name as "First M. Last, Jr.".
//
// The first name is title-cased word by word. A one-letter middle name is
// printed as an initial; longer middle names are printed as given. Any suffix
// containing a "J" is printed as ", Jr."; every other suffix is appended after
// a space.
func FullName(first, middle, last, suffix string) string {
	var b strings.Builder

	// A Caser keeps state between calls and is not safe to share.
	b.WriteString(cases.Title(language.Und).String(first))
	b.WriteByte(' ')

	switch n := utf8.RuneCountInString(middle); {
	case n == 1:
		b.WriteString(middle)
		b.WriteString(". ")
	case n > 1:
		b.WriteString(middle)
		b.WriteByte(' ')
	}

	b.WriteString(last)

	if suffix != "" {
		if strings.Contains(strings.ToUpper(suffix), "J") {
			b.WriteString(", Jr.")
		} else {
			b.WriteByte(' ')
			b.WriteString(suffix)
		}
	}

	return b.String()
}
