package bio

import (
	"strings"
	"testing"

	"github.com/hyp/bioform/internal/model"
)

func TestExtracurriculars(t *testing.T) {
	t.Parallel()

	t.Run("merges PBHA entries at the first tagged position", func(t *testing.T) {
		t.Parallel()

		got := Extracurriculars([]model.ExtracurricularEntry{
			{Label: "Debate Team"},
			{Label: "Harvard Yearbook Publications, Inc. [PBHA]", Qualifier: "photo editor"},
			{Label: "Chess Club [PBHA]"},
		})

		want := "Debate Team. Phillips Brooks House Association (Harvard Yearbook Publications, Inc.: Photo Editor; Chess Club). "
		if got != want {
			t.Errorf("Extracurriculars() =\n%q\nwant\n%q", got, want)
		}
		if n := strings.Count(got, pbhaName+" ("); n != 1 {
			t.Errorf("expected one merged entry, found %d", n)
		}
		if strings.Contains(got, "[PBHA]") {
			t.Error("output still contains the [PBHA] tag")
		}
	})

	t.Run("merged entry replaces the first tagged activity", func(t *testing.T) {
		t.Parallel()

		got := Extracurriculars([]model.ExtracurricularEntry{
			{Label: "PBHA (Keylatch Summer Program) [PBHA]", Qualifier: "director"},
			{Label: "Rowing"},
			{Label: "Phillips Brooks House Association (CityStep) [PBHA]"},
		})

		want := "Phillips Brooks House Association (Keylatch Summer Program: Director; CityStep). Rowing. "
		if got != want {
			t.Errorf("Extracurriculars() =\n%q\nwant\n%q", got, want)
		}
	})

	t.Run("formats labels and skips empty ones", func(t *testing.T) {
		t.Parallel()

		got := Extracurriculars([]model.ExtracurricularEntry{
			{Label: "Varsity Soccer", Qualifier: "captain of the team"},
			{Label: "", Qualifier: "orphan"},
			{Label: "Glee Club"},
		})

		want := "Varsity Soccer (Captain of the Team). Glee Club. "
		if got != want {
			t.Errorf("Extracurriculars() = %q, want %q", got, want)
		}
	})

	t.Run("no activities", func(t *testing.T) {
		t.Parallel()
		if got := Extracurriculars(nil); got != "" {
			t.Errorf("Extracurriculars(nil) = %q, want empty", got)
		}
	})

	t.Run("publication touch-ups", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			label string
			want  string
		}{
			{label: "Harvard Crimson (Associate Editor)", want: "The Harvard Crimson. "},
			{label: "Harvard Crimson, Associate Editor, Sports", want: "The Harvard Crimson, Sports. "},
			{label: "Sports Desk, Harvard Crimson", want: "Sports Desk, Harvard Crimson. "},
			{label: "Harvard Yearbook Publications, Inc.", want: "Harvard Yearbook Publications. "},
			{label: "Harvard Yearbook Publications [HYP]", want: "Harvard Yearbook Publications. "},
		}
		for _, tt := range tests {
			got := Extracurriculars([]model.ExtracurricularEntry{{Label: tt.label}})
			if got != tt.want {
				t.Errorf("Extracurriculars(%q) = %q, want %q", tt.label, got, tt.want)
			}
		}
	})

	t.Run("intramurals drop house names", func(t *testing.T) {
		t.Parallel()

		got := Extracurriculars([]model.ExtracurricularEntry{
			{Label: "Intramurals Kirkland House Soccer"},
			{Label: "Kirkland House Committee"},
		})

		want := "Intramurals Soccer. Kirkland House Committee. "
		if got != want {
			t.Errorf("Extracurriculars() = %q, want %q", got, want)
		}
	})
}

func TestRemoveBrackets(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Chess Club [HYP]":             "Chess Club",
		"A [x] and B [y]":              "A and B",
		"No tags":                      "No tags",
		"[Leading] tag stays in place": "[Leading] tag stays in place",
	}
	for in, want := range tests {
		if got := RemoveBrackets(in); got != want {
			t.Errorf("RemoveBrackets(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("Truncate() = %q", got)
	}
	// "é" is two bytes; cutting inside it backs up to the rune start.
	if got := Truncate("aé", 2); got != "a" {
		t.Errorf("Truncate() = %q, want %q", got, "a")
	}
}
