package bio

import "unicode/utf8"

// Truncate cuts s to at most n bytes. The cut may fall mid-word; it backs up
// only as far as needed to keep the last rune whole.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
