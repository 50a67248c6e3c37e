package schema

import (
	"strings"

	"github.com/hyp/bioform/internal/model"
)

// Form describes the columns every row-level stage needs, regardless of report.
type Form struct {
	// Kind is the form the header belongs to.
	Kind model.FormKind

	// Header is the disambiguated column list.
	Header []string

	// KeyColumn holds the identity key used for deduplication.
	KeyColumn string

	// SubmitColumn holds the submission timestamp.
	SubmitColumn string

	// StartColumn holds the start timestamp; empty when the export has none.
	StartColumn string

	// Excluded lists the gate columns dropped during normalization.
	Excluded map[string]bool

	// TrimDots strips trailing ". " runs from values in addition to whitespace.
	TrimDots bool
}

// NewForm resolves the common columns of an export header.
func NewForm(kind model.FormKind, header []string) (*Form, error) {
	f := &Form{
		Kind:         kind,
		Header:       header,
		SubmitColumn: ColSubmitDate,
		Excluded:     make(map[string]bool),
	}

	switch kind {
	case model.FormGroup:
		f.KeyColumn = ColGroupName
	default:
		f.KeyColumn = ColEmail
		f.TrimDots = true
		for _, col := range header {
			if strings.HasPrefix(col, GatePrefix) {
				f.Excluded[col] = true
			}
		}
	}

	idx := index(header)
	if err := require(kind, idx, f.KeyColumn, f.SubmitColumn); err != nil {
		return nil, err
	}
	if idx[ColStartDate] {
		f.StartColumn = ColStartDate
	}

	return f, nil
}

// Pair is a label column followed by its qualifier column.
// Qualifier is empty when the header ends on an unpaired label.
type Pair struct {
	Label     string
	Qualifier string
}

// SeniorColumns resolves the columns used to compose a senior record.
type SeniorColumns struct {
	FirstName, MiddleName, LastName, Suffix string
	Email, House, SubmitDate                string

	DateOfBirth     string
	SecondarySchool string
	City            string
	State           string
	Country         string

	ConcentrationType string
	Concentration     string
	JointFirst        string
	JointSecond       string
	CustomConc        string
	SecondaryField    string

	// Honors lists the honor columns in display order.
	Honors []string

	// Activities lists the extracurricular column pairs in header order.
	Activities []Pair
}

// Seniors resolves the senior bio columns of an export header.
func Seniors(header []string) (*SeniorColumns, error) {
	idx := index(header)

	required := []string{
		ColFirstName, ColMiddleName, ColLastName, ColSuffix,
		ColEmail, ColHouse, ColSubmitDate,
		ColDateOfBirth, ColSecondarySchool, ColCity, ColState, ColCountry,
		ColConcentrationTyp, ColConcentration, ColJointFirst, ColCustomConc, ColSecondaryField,
	}
	required = append(required, Honors...)
	if err := require(model.FormSenior, idx, required...); err != nil {
		return nil, err
	}

	jointSecond := ""
	for _, col := range header {
		if strings.HasPrefix(col, jointSecondPrefix) {
			jointSecond = col
			break
		}
	}
	if jointSecond == "" {
		return nil, &model.SchemaMismatchError{Form: model.FormSenior, Field: jointSecondPrefix + "..."}
	}

	return &SeniorColumns{
		FirstName:         ColFirstName,
		MiddleName:        ColMiddleName,
		LastName:          ColLastName,
		Suffix:            ColSuffix,
		Email:             ColEmail,
		House:             ColHouse,
		SubmitDate:        ColSubmitDate,
		DateOfBirth:       ColDateOfBirth,
		SecondarySchool:   ColSecondarySchool,
		City:              ColCity,
		State:             ColState,
		Country:           ColCountry,
		ConcentrationType: ColConcentrationTyp,
		Concentration:     ColConcentration,
		JointFirst:        ColJointFirst,
		JointSecond:       jointSecond,
		CustomConc:        ColCustomConc,
		SecondaryField:    ColSecondaryField,
		Honors:            append([]string(nil), Honors...),
		Activities:        pairs(matching(header, isActivityColumn)),
	}, nil
}

// GroupColumns resolves the columns used to compose a group record.
type GroupColumns struct {
	Name        string
	Description string
	SubmitDate  string

	// Officers lists the (position, full name) column pairs in header order.
	Officers []Pair
}

// Groups resolves the group columns of an export header.
func Groups(header []string) (*GroupColumns, error) {
	idx := index(header)
	if err := require(model.FormGroup, idx, ColGroupName, ColGroupDescription, ColSubmitDate); err != nil {
		return nil, err
	}

	return &GroupColumns{
		Name:        ColGroupName,
		Description: ColGroupDescription,
		SubmitDate:  ColSubmitDate,
		Officers:    pairs(matching(header, isOfficerColumn)),
	}, nil
}

// ProfessorColumns resolves the four professor sub-fields of the senior form.
type ProfessorColumns struct {
	FirstName string
	LastName  string
	Email     string
	Dept      string
}

// Professors resolves the professor columns of a senior export header.
func Professors(header []string) (*ProfessorColumns, error) {
	idx := index(header)
	if err := require(model.FormSenior, idx, ColProfFirstName, ColProfLastName, ColProfEmail, ColProfDept); err != nil {
		return nil, err
	}

	return &ProfessorColumns{
		FirstName: ColProfFirstName,
		LastName:  ColProfLastName,
		Email:     ColProfEmail,
		Dept:      ColProfDept,
	}, nil
}

func index(header []string) map[string]bool {
	idx := make(map[string]bool, len(header))
	for _, col := range header {
		idx[col] = true
	}
	return idx
}

func require(kind model.FormKind, idx map[string]bool, cols ...string) error {
	for _, col := range cols {
		if !idx[col] {
			return &model.SchemaMismatchError{Form: kind, Field: col}
		}
	}
	return nil
}

func matching(header []string, keep func(string) bool) []string {
	var out []string
	for _, col := range header {
		if keep(col) {
			out = append(out, col)
		}
	}
	return out
}

// pairs groups columns two by two.
func pairs(cols []string) []Pair {
	out := make([]Pair, 0, (len(cols)+1)/2)
	for i := 0; i < len(cols); i += 2 {
		p := Pair{Label: cols[i]}
		if i+1 < len(cols) {
			p.Qualifier = cols[i+1]
		}
		out = append(out, p)
	}
	return out
}

// isActivityColumn reports whether the column's base name, the part before
// the first '.', is an activity category.
func isActivityColumn(col string) bool {
	base, _, _ := strings.Cut(col, ".")
	for _, c := range ActivityCategories {
		if base == c {
			return true
		}
	}
	return false
}

// isOfficerColumn matches position and full-name columns, ignoring the ".N"
// suffix added to repeated questions.
func isOfficerColumn(col string) bool {
	base := trimRepeatSuffix(col)
	return strings.HasPrefix(base, officerPositionPrefix) || strings.HasSuffix(base, officerNameSuffix)
}

// trimRepeatSuffix removes a trailing ".N" added by model.UniqueHeader.
func trimRepeatSuffix(col string) string {
	i := strings.LastIndexByte(col, '.')
	if i < 0 || i == len(col)-1 {
		return col
	}
	for _, r := range col[i+1:] {
		if r < '0' || r > '9' {
			return col
		}
	}
	return col[:i]
}
