package guard

import (
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/jrsteele09/hospital-portal/routes"
	"github.com/jrsteele09/hospital-portal/session"
)

type Outcome string

const (
	Allow         Outcome = "allow"
	RedirectLogin Outcome = "redirect_login"
	RedirectHome  Outcome = "redirect_home"
)

// Decision is the result of a guard check. Target is empty when Outcome is Allow.
type Decision struct {
	Outcome Outcome
	Target  string
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Decide is a pure function of the required role and the session snapshot.
//   - logged out: the login page for the required role (patient login when none is required)
//   - logged in with another role: that role's own home
//   - otherwise allow
func Decide(required roles.Role, snap session.Snapshot) Decision {
	if !snap.Active() {
		return Decision{Outcome: RedirectLogin, Target: routes.RoleLogin(required)}
	}
	if required != roles.None && snap.Role != required {
		return Decision{Outcome: RedirectHome, Target: routes.RoleHome(snap.Role)}
	}
	return Decision{Outcome: Allow}
}
