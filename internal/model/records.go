package model

import "strconv"

// CSV header contracts for each report.
var (
	// SeniorHeader is the column list of the seniors report, without the index column.
	SeniorHeader = []string{"fullname", "bio", "house", "first_name", "last_name", "email", "time_submitted"}

	// GroupHeader is the column list of the groups report, without the index column.
	GroupHeader = []string{"name", "blurb", "officers", "time_submit"}

	// ProfessorHeader is the column list of the profs report.
	ProfessorHeader = []string{"first_name", "last_name", "email", "dept"}

	// ProfessorCountHeader is the column list of the prof_counts report.
	ProfessorCountHeader = []string{"last_name", "count"}
)

// IndexColumn is the label of the synthetic 0-based row index column.
const IndexColumn = "id"

const (
	// MaxBioLength caps the composed biography.
	MaxBioLength = 525

	// MaxBlurbLength caps a group description.
	MaxBlurbLength = 750
)

// SeniorRecord is the display record for one senior.
type SeniorRecord struct {
	FullName    string
	Bio         string
	House       string
	FirstName   string
	LastName    string
	Email       string
	SubmittedAt string
}

// Row returns the record's values in SeniorHeader order.
func (r SeniorRecord) Row() []string {
	return []string{r.FullName, r.Bio, r.House, r.FirstName, r.LastName, r.Email, r.SubmittedAt}
}

// GroupRecord is the display record for one student group.
type GroupRecord struct {
	Name        string
	Blurb       string
	Officers    string
	SubmittedAt string
}

// Row returns the record's values in GroupHeader order.
func (r GroupRecord) Row() []string {
	return []string{r.Name, r.Blurb, r.Officers, r.SubmittedAt}
}

// ProfessorRecord is a professor named by a senior.
type ProfessorRecord struct {
	FirstName string
	LastName  string
	Email     string
	Dept      string
}

// Row returns the record's values in ProfessorHeader order.
func (r ProfessorRecord) Row() []string {
	return []string{r.FirstName, r.LastName, r.Email, r.Dept}
}

// ProfessorCount is one entry of the by-surname frequency table.
type ProfessorCount struct {
	LastName string
	Count    int
}

// Row returns the entry's values in ProfessorCountHeader order.
func (c ProfessorCount) Row() []string {
	return []string{c.LastName, strconv.Itoa(c.Count)}
}

// ExtracurricularEntry is an activity label with an optional qualifier
// such as a role or team position.
type ExtracurricularEntry struct {
	Label     string
	Qualifier string
}

// OfficerEntry is a position title held by a named person.
type OfficerEntry struct {
	Position string
	Name     string
}
