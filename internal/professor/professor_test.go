package professor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hyp/bioform/internal/model"
	"github.com/hyp/bioform/internal/schema"
)

var cols = &schema.ProfessorColumns{
	FirstName: schema.ColProfFirstName,
	LastName:  schema.ColProfLastName,
	Email:     schema.ColProfEmail,
	Dept:      schema.ColProfDept,
}

func prof(first, last, email, dept string) model.Submission {
	return model.Submission{Fields: map[string]string{
		schema.ColProfFirstName: first,
		schema.ColProfLastName:  last,
		schema.ColProfEmail:     email,
		schema.ColProfDept:      dept,
	}}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	rows := []model.Submission{
		prof("Lisa", "Randall", "randall@physics.edu", "Physics"),
		prof("x", "Mankiw", "mankiw@econ.edu", "Economics"),
		prof("Greg", "Mankiw", "mankiw@econ.edu", "Economics"),
		prof("Amy", "Randall", "amy@history.edu", "History"),
		prof("Jill", "Lepore", "n/a", "History"),
		prof("Steven", "Pinker", "pinker@psych.edu", ""),
		prof("N/A", "Sandel", "sandel@gov.edu", "Government"),
	}

	got := Aggregate(rows, cols)
	want := []model.ProfessorRecord{
		{FirstName: "Greg", LastName: "Mankiw", Email: "mankiw@econ.edu", Dept: "Economics"},
		{FirstName: "Amy", LastName: "Randall", Email: "amy@history.edu", Dept: "History"},
		{FirstName: "Lisa", LastName: "Randall", Email: "randall@physics.edu", Dept: "Physics"},
		{FirstName: "N/A", LastName: "Sandel", Email: "sandel@gov.edu", Dept: "Government"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestCounts(t *testing.T) {
	t.Parallel()

	t.Run("a placeholder first name drops the row from both reports", func(t *testing.T) {
		t.Parallel()
		records := Aggregate([]model.Submission{
			prof("x", "Mankiw", "mankiw@econ.edu", "Economics"),
			prof("Lisa", "Randall", "randall@physics.edu", "Physics"),
		}, cols)

		for _, r := range records {
			if r.LastName == "Mankiw" {
				t.Error("placeholder row reached the directory")
			}
		}
		want := []model.ProfessorCount{{LastName: "Randall", Count: 1}}
		if diff := cmp.Diff(want, Counts(records)); diff != "" {
			t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("most mentioned first with ties in directory order", func(t *testing.T) {
		t.Parallel()
		records := []model.ProfessorRecord{
			{LastName: "Banaji"},
			{LastName: "Lepore"},
			{LastName: "Lepore"},
			{LastName: "Mankiw"},
			{LastName: "Randall"},
			{LastName: "Randall"},
		}
		want := []model.ProfessorCount{
			{LastName: "Lepore", Count: 2},
			{LastName: "Randall", Count: 2},
			{LastName: "Banaji", Count: 1},
			{LastName: "Mankiw", Count: 1},
		}
		if diff := cmp.Diff(want, Counts(records)); diff != "" {
			t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no records", func(t *testing.T) {
		t.Parallel()
		if got := Counts(nil); len(got) != 0 {
			t.Errorf("Counts(nil) = %v", got)
		}
	})
}

func TestIsPlaceholder(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"", "n/a", "x", "X", "omit", "first", "First", "no", "No", "-"} {
		if !IsPlaceholder(v) {
			t.Errorf("IsPlaceholder(%q) = false", v)
		}
	}
	for _, v := range []string{"N/A", "NO", "Xu", "Nobel"} {
		if IsPlaceholder(v) {
			t.Errorf("IsPlaceholder(%q) = true", v)
		}
	}
}
