package bio

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// connectives stay lowercase when they are neither the first nor the last word.
var connectives = map[string]bool{
	"And": true, "The": true, "In": true, "Of": true, "On": true, "At": true,
	"By": true, "To": true, "Off": true, "For": true, "Between": true,
	"With": true, "Through": true, "Out": true, "A": true, "An": true,
}

// TitleCase capitalizes the first letter of every whitespace-separated word,
// leaves the rest of each word untouched, and lowercases the connective words
// between the first and the last word. Runs of whitespace collapse to a
// single space.
func TitleCase(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	last := len(words) - 1
	for i, w := range words {
		w = upperFirst(w)
		if i > 0 && i < last && connectives[w] {
			w = strings.ToLower(w[:1]) + w[1:]
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
