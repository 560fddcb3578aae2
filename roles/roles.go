package roles

// Role is one of the two mutually exclusive user classes of the portal.
// The zero value None means no role.
type Role string

const (
	None    Role = ""
	Doctor  Role = "doctor"
	Patient Role = "patient"
)

// All lists every assignable role
var All = []Role{Doctor, Patient}

// Parse maps a stored or submitted value onto a Role. Anything other than
// "doctor" or "patient" yields None.
func Parse(value string) (Role, bool) {
	switch Role(value) {
	case Doctor:
		return Doctor, true
	case Patient:
		return Patient, true
	default:
		return None, false
	}
}

func (r Role) Valid() bool {
	return r == Doctor || r == Patient
}

func (r Role) String() string {
	if r == None {
		return "none"
	}
	return string(r)
}
