package bio

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hyp/bioform/internal/model"
	"github.com/hyp/bioform/internal/schema"
)

const jointSecondColumn = "Joint Concentration in {{answer_44252884}} and"

var seniorHeader = []string{
	"First Name", "Middle Name", "Last Name", "Suffix", "Email", "House",
	"Date of Birth", "Secondary School Name", "Town/City", "State/Territory", "Country",
	"Concentration Type", "Concentration", "Joint Concentration in", jointSecondColumn,
	"Concentration.1", "Secondary Field",
	"Detur Prize", "Junior Phi Beta Kappa", "Phi Beta Kappa", "John Harvard Scholar", "Harvard College Scholar",
	"Activity", "Activity.1", "Activity.2", "Activity.3",
	"Varsity Sport", "Varsity Sport.1",
	"Submit Date (UTC)",
}

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	cols, err := schema.Seniors(seniorHeader)
	if err != nil {
		t.Fatalf("Seniors: %v", err)
	}
	return NewComposer(cols)
}

func submission(fields map[string]string) model.Submission {
	full := make(map[string]string, len(seniorHeader))
	for _, col := range seniorHeader {
		full[col] = ""
	}
	for k, v := range fields {
		full[k] = v
	}
	return model.Submission{Index: 4, Fields: full}
}

func TestComposer_EndToEnd(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	rec, err := c.Compose(submission(map[string]string{
		"First Name":            "Jo",
		"Middle Name":           "A",
		"Last Name":             "Lin",
		"Email":                 "jo@college.harvard.edu",
		"House":                 "Adams House",
		"Date of Birth":         "1999-12-25",
		"Secondary School Name": "Andover High School",
		"Town/City":             "NYC",
		"State/Territory":       "MA",
		"Concentration Type":    "Regular",
		"Concentration":         "Physics",
		"Submit Date (UTC)":     "2018-04-02 10:00:00",
	}))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	want := model.SeniorRecord{
		FullName:    "Jo A. Lin",
		Bio:         "Born on: December 25, 1999. Secondary School: Phillips Academy. Hometown: New York, MA. Field of Concentration: Physics. ",
		House:       "Adams",
		FirstName:   "Jo",
		LastName:    "Lin",
		Email:       "jo@college.harvard.edu",
		SubmittedAt: "2018-04-02 10:00:00",
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestComposer_Bio(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)

	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{
			name: "joint concentration",
			fields: map[string]string{
				"Concentration Type":     "Joint",
				"Joint Concentration in": "Economics",
				jointSecondColumn:        "Statistics",
			},
			want: "Field of Concentration: Economics & Statistics. ",
		},
		{
			name: "custom concentration",
			fields: map[string]string{
				"Concentration Type": "Special",
				"Concentration.1":    "Mind, Brain, and Behavior",
			},
			want: "Field of Concentration: Mind, Brain, and Behavior. ",
		},
		{
			name: "secondary field",
			fields: map[string]string{
				"Concentration Type": "Regular",
				"Concentration":      "History",
				"Secondary Field":    "Music",
			},
			want: "Field of Concentration: History. Secondary Field: Music. ",
		},
		{
			name: "only awarded honors are listed",
			fields: map[string]string{
				"Detur Prize":          "Detur Prize",
				"John Harvard Scholar": "Yes",
			},
			want: "Detur Prize. John Harvard Scholar. ",
		},
		{
			name: "hometown with country and no separator after state",
			fields: map[string]string{
				"Town/City": "london",
				"Country":   "england",
			},
			want: "Hometown: London, United Kingdom. ",
		},
		{
			name: "birth year before 1900 is clamped",
			fields: map[string]string{
				"Date of Birth": "0999-07-04",
			},
			want: "Born on: July 4, 1900. ",
		},
		{
			name: "extracurriculars follow the fixed sections",
			fields: map[string]string{
				"Concentration Type": "Regular",
				"Concentration":      "Physics",
				"Activity":           "Debate Team",
				"Activity.2":         "Chess Club [PBHA]",
				"Varsity Sport":      "Fencing",
				"Varsity Sport.1":    "co-captain",
			},
			want: "Field of Concentration: Physics. Debate Team. Phillips Brooks House Association (Chess Club). Fencing (Co-captain). ",
		},
		{
			name:   "empty submission",
			fields: map[string]string{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := c.Bio(submission(tt.fields))
			if err != nil {
				t.Fatalf("Bio: %v", err)
			}
			if got != tt.want {
				t.Errorf("Bio() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestComposer_BioLength(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	long := strings.Repeat("Quiz Bowl Team ", 20)
	got, err := c.Bio(submission(map[string]string{
		"Date of Birth":         "2000-01-01",
		"Secondary School Name": long,
		"Activity":              long,
		"Activity.1":            long,
		"Activity.2":            long,
	}))
	if err != nil {
		t.Fatalf("Bio: %v", err)
	}
	if len(got) != model.MaxBioLength {
		t.Errorf("len(bio) = %d, want %d", len(got), model.MaxBioLength)
	}
	if !strings.HasPrefix(got, "Born on: January 1, 2000. ") {
		t.Errorf("unexpected prefix: %q", got[:40])
	}
}

func TestComposer_MalformedBirthDate(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)

	for _, dob := range []string{"12/25/1999", "1896-02-29", "1999-13-01"} {
		_, err := c.Compose(submission(map[string]string{
			"Email":         "jo@college.harvard.edu",
			"Date of Birth": dob,
		}))

		var mv *model.MalformedValueError
		if !errors.As(err, &mv) {
			t.Fatalf("Compose with %q: expected MalformedValueError, got %v", dob, err)
		}
		if !errors.Is(err, model.ErrMalformedValue) {
			t.Error("expected error to wrap ErrMalformedValue")
		}
		if mv.Row != 4 || mv.Key != "jo@college.harvard.edu" || mv.Field != "Date of Birth" || mv.Value != dob {
			t.Errorf("unexpected error details: %+v", mv)
		}
	}
}

func TestGroupComposer(t *testing.T) {
	t.Parallel()

	header := []string{
		"Group Name", "Organization Description",
		"Officer Position", "Officer's Full Name",
		"Officer Position.1", "Officer's Full Name.1",
		"Officer Position.2", "Officer's Full Name.2",
		"Submit Date (UTC)",
	}
	cols, err := schema.Groups(header)
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	g := NewGroupComposer(cols)

	rec := g.Compose(model.Submission{Fields: map[string]string{
		"Group Name":               "Chess Club [CC]",
		"Organization Description": strings.Repeat("x", 800),
		"Officer Position":         "president",
		"Officer's Full Name":      "ada lovelace",
		"Officer Position.1":       "head of outreach",
		"Officer's Full Name.1":    "",
		"Officer Position.2":       "treasurer",
		"Officer's Full Name.2":    "alan turing",
		"Submit Date (UTC)":        "2018-04-03 09:00:00",
	}})

	if rec.Name != "Chess Club" {
		t.Errorf("Name = %q", rec.Name)
	}
	if len(rec.Blurb) != model.MaxBlurbLength {
		t.Errorf("len(Blurb) = %d, want %d", len(rec.Blurb), model.MaxBlurbLength)
	}
	if want := "President: Ada Lovelace; Treasurer: Alan Turing"; rec.Officers != want {
		t.Errorf("Officers = %q, want %q", rec.Officers, want)
	}
	if rec.SubmittedAt != "2018-04-03 09:00:00" {
		t.Errorf("SubmittedAt = %q", rec.SubmittedAt)
	}
}

func TestOfficers(t *testing.T) {
	t.Parallel()

	if got := Officers(nil); got != "" {
		t.Errorf("Officers(nil) = %q", got)
	}
	got := Officers([]model.OfficerEntry{{Position: "captain of the team", Name: "sam park"}})
	if got != "Captain of the Team: Sam Park" {
		t.Errorf("Officers() = %q", got)
	}
}
