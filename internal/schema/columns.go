package schema

// Column names shared by both forms.
const (
	ColSubmitDate = "Submit Date (UTC)"
	ColStartDate  = "Start Date (UTC)"
)

// Senior bioform column names.
const (
	ColFirstName        = "First Name"
	ColMiddleName       = "Middle Name"
	ColLastName         = "Last Name"
	ColSuffix           = "Suffix"
	ColEmail            = "Email"
	ColHouse            = "House"
	ColDateOfBirth      = "Date of Birth"
	ColSecondarySchool  = "Secondary School Name"
	ColCity             = "Town/City"
	ColState            = "State/Territory"
	ColCountry          = "Country"
	ColConcentrationTyp = "Concentration Type"
	ColConcentration    = "Concentration"
	ColJointFirst       = "Joint Concentration in"
	ColCustomConc       = "Concentration.1"
	ColSecondaryField   = "Secondary Field"

	ColProfFirstName = "Professor's First Name"
	ColProfLastName  = "Professor's Last Name"
	ColProfEmail     = "Professor's Email"
	ColProfDept      = "Professor's Department"

	// jointSecondPrefix starts the second joint-concentration question. The
	// rest of its name embeds a piped answer reference that changes whenever
	// the form is rebuilt, so it is matched by prefix.
	jointSecondPrefix = "Joint Concentration in "
)

// Group bioform column names.
const (
	ColGroupName        = "Group Name"
	ColGroupDescription = "Organization Description"

	officerPositionPrefix = "Officer Position"
	officerNameSuffix     = "Full Name"
)

// GatePrefix starts the yes/no gate questions of the senior form, which
// carry no display data and are dropped during normalization.
const GatePrefix = "Are you "

// Honors lists the honor and prize columns in display order. Each column is
// answered with the prize name when awarded and left empty otherwise.
var Honors = []string{
	"Detur Prize",
	"Junior Phi Beta Kappa",
	"Phi Beta Kappa",
	"John Harvard Scholar",
	"Harvard College Scholar",
}

// ActivityCategories are the base names of the extracurricular columns.
// Every category is asked as a label column followed by a qualifier column,
// and categories repeat ("Activity", "Activity.1", "Activity.2", ...).
var ActivityCategories = []string{
	"Varsity Sport",
	"House Activity",
	"Activity",
	"Club Sport",
	"Officer/Leadership Position",
	"On-Campus Job",
	"Lab or Department Name",
}
