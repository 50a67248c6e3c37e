package bio

import (
	"errors"
	"strings"
	"time"

	"github.com/hyp/bioform/internal/model"
	"github.com/hyp/bioform/internal/schema"
)

const (
	birthLayout     = "2006-1-2"
	birthDisplay    = "January 2, 2006"
	minBirthYear    = 1900
	houseSuffix     = " House"
	concRegular     = "Regular"
	concJoint       = "Joint"
	jointSeparator  = " & "
	entryTerminator = ". "
)

var errBirthDateClamp = errors.New("date does not exist in the clamped year")

// Composer builds senior records for one export layout.
type Composer struct {
	cols *schema.SeniorColumns
}

// NewComposer returns a Composer reading the given columns.
func NewComposer(cols *schema.SeniorColumns) *Composer {
	return &Composer{cols: cols}
}

// Compose builds the display record of a senior submission.
// It returns a *model.MalformedValueError when the date of birth cannot be
// read; the caller skips the row.
func (c *Composer) Compose(sub model.Submission) (model.SeniorRecord, error) {
	bio, err := c.Bio(sub)
	if err != nil {
		return model.SeniorRecord{}, err
	}

	return model.SeniorRecord{
		FullName: FullName(
			sub.Get(c.cols.FirstName),
			sub.Get(c.cols.MiddleName),
			sub.Get(c.cols.LastName),
			sub.Get(c.cols.Suffix),
		),
		Bio:         bio,
		House:       strings.TrimSuffix(sub.Get(c.cols.House), houseSuffix),
		FirstName:   sub.Get(c.cols.FirstName),
		LastName:    sub.Get(c.cols.LastName),
		Email:       sub.Get(c.cols.Email),
		SubmittedAt: sub.Get(c.cols.SubmitDate),
	}, nil
}

// Bio assembles the biography of a senior submission, capped at
// model.MaxBioLength bytes. Sections appear in a fixed order: birth date,
// secondary school, hometown, concentration, secondary field, honors and
// extracurriculars. Empty answers contribute nothing.
func (c *Composer) Bio(sub model.Submission) (string, error) {
	var b strings.Builder

	if dob := sub.Get(c.cols.DateOfBirth); dob != "" {
		born, err := BirthDate(dob)
		if err != nil {
			return "", &model.MalformedValueError{
				Row:   sub.Index,
				Key:   sub.Get(c.cols.Email),
				Field: c.cols.DateOfBirth,
				Value: dob,
				Err:   err,
			}
		}
		section(&b, "Born on: ", born)
	}

	if school := sub.Get(c.cols.SecondarySchool); school != "" {
		section(&b, "Secondary School: ", SchoolName(school))
	}

	if city := sub.Get(c.cols.City); city != "" {
		section(&b, "Hometown: ", CityName(city)+", "+sub.Get(c.cols.State)+CountryName(sub.Get(c.cols.Country)))
	}

	if conc := c.concentration(sub); conc != "" {
		section(&b, "Field of Concentration: ", conc)
	}

	if field := sub.Get(c.cols.SecondaryField); field != "" {
		section(&b, "Secondary Field: ", field)
	}

	for _, honor := range c.cols.Honors {
		if sub.Get(honor) != "" {
			section(&b, "", honor)
		}
	}

	b.WriteString(Extracurriculars(c.activities(sub)))

	return Truncate(b.String(), model.MaxBioLength), nil
}

// concentration resolves the concentration answer for the declared type.
func (c *Composer) concentration(sub model.Submission) string {
	switch sub.Get(c.cols.ConcentrationType) {
	case concRegular:
		return sub.Get(c.cols.Concentration)
	case concJoint:
		first, second := sub.Get(c.cols.JointFirst), sub.Get(c.cols.JointSecond)
		if first == "" && second == "" {
			return ""
		}
		return first + jointSeparator + second
	default:
		return sub.Get(c.cols.CustomConc)
	}
}

func (c *Composer) activities(sub model.Submission) []model.ExtracurricularEntry {
	entries := make([]model.ExtracurricularEntry, 0, len(c.cols.Activities))
	for _, p := range c.cols.Activities {
		e := model.ExtracurricularEntry{Label: sub.Get(p.Label)}
		if p.Qualifier != "" {
			e.Qualifier = sub.Get(p.Qualifier)
		}
		entries = append(entries, e)
	}
	return entries
}

// BirthDate renders a YYYY-MM-DD date of birth as "December 25, 1999".
// Years before 1900 are moved to 1900.
func BirthDate(v string) (string, error) {
	t, err := time.Parse(birthLayout, v)
	if err != nil {
		return "", err
	}
	if t.Year() < minBirthYear {
		clamped := time.Date(minBirthYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if clamped.Month() != t.Month() {
			return "", errBirthDateClamp
		}
		t = clamped
	}
	return t.Format(birthDisplay), nil
}

func section(b *strings.Builder, prefix, value string) {
	b.WriteString(prefix)
	b.WriteString(value)
	b.WriteString(entryTerminator)
}
