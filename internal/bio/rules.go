package bio

import "strings"

// RewriteRule replaces every occurrence of Old with New.
// When Prefix is set, only a leading Old is replaced; when Suffix is set,
// only a trailing one.
type RewriteRule struct {
	Old    string
	New    string
	Prefix bool
	Suffix bool
}

// Apply rewrites s.
func (r RewriteRule) Apply(s string) string {
	switch {
	case r.Prefix:
		if strings.HasPrefix(s, r.Old) {
			return r.New + s[len(r.Old):]
		}
		return s
	case r.Suffix:
		if strings.HasSuffix(s, r.Old) {
			return s[:len(s)-len(r.Old)] + r.New
		}
		return s
	}
	return strings.ReplaceAll(s, r.Old, r.New)
}

// Rewrite applies rules to s in order. A later rule sees the output of the
// earlier ones.
func Rewrite(s string, rules []RewriteRule) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}

// SchoolRules spell out or shorten the common parts of secondary school names.
var SchoolRules = []RewriteRule{
	{Old: "The ", New: "", Prefix: true},
	{Old: "the ", New: "", Prefix: true},
	{Old: " Junior High School", New: " High School"},
	{Old: " Senior High School", New: " High School"},
	{Old: "Saint ", New: "St. "},
	{Old: "Mount ", New: "Mt. "},
	{Old: " HS", New: " High School"},
	{Old: " H.S.", New: " High School"},
	{Old: " H. S.", New: " High School"},
	// Senior answers lose their trailing dots during normalization.
	{Old: " H.S", New: " High School", Suffix: true},
	{Old: " H. S", New: " High School", Suffix: true},
	{Old: " & ", New: " and "},
}

// schoolOverride maps a school to its house-style name.
type schoolOverride struct {
	// match reports whether the rewritten school name refers to the school.
	match func(string) bool
	name  string
}

// schoolOverrides are tried in order after SchoolRules; the first match wins.
var schoolOverrides = []schoolOverride{
	{match: contains("Andover"), name: "Phillips Academy"},
	{match: contains("Exeter"), name: "Phillips Exeter Academy"},
	{match: equals("Collegiate"), name: "Collegiate School"},
}

// schoolShortNames runs last and shortens long official names.
var schoolShortNames = []RewriteRule{
	{Old: "Thomas Jefferson High School for Science and Technology", New: "Thomas Jefferson High School"},
}

// SchoolName returns the display name of a secondary school.
func SchoolName(s string) string {
	s = Rewrite(s, SchoolRules)
	for _, o := range schoolOverrides {
		if o.match(s) {
			s = o.name
			break
		}
	}
	s = Rewrite(s, schoolShortNames)
	return TitleCase(s)
}

var cityAliases = map[string]string{
	"new york city": "New York",
	"ny":            "New York",
	"nyc":           "New York",
}

var countryAliases = map[string]string{
	"u.k.":             "United Kingdom",
	"u.k":              "United Kingdom",
	"uk":               "United Kingdom",
	"northern ireland": "United Kingdom",
	"scotland":         "United Kingdom",
	"wales":            "United Kingdom",
	"england":          "United Kingdom",
}

// CityName returns the display name of a hometown.
func CityName(s string) string {
	return TitleCase(alias(cityAliases, s))
}

// CountryName returns the display name of a country.
func CountryName(s string) string {
	return TitleCase(alias(countryAliases, s))
}

func alias(aliases map[string]string, s string) string {
	if v, ok := aliases[strings.ToLower(s)]; ok {
		return v
	}
	return s
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func equals(want string) func(string) bool {
	return func(s string) bool { return s == want }
}
