package guard_test

import (
	"testing"

	"github.com/jrsteele09/hospital-portal/guard"
	"github.com/jrsteele09/hospital-portal/internal/utils"
	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/jrsteele09/hospital-portal/session"
	"github.com/stretchr/testify/require"
)

func activeAs(role roles.Role) session.Snapshot {
	return session.Snapshot{Role: role, Profile: utils.Ptr(profiles.Profile{UID: "uid-1"})}
}

func TestDecide_LoggedOutDoctorArea(t *testing.T) {
	d := guard.Decide(roles.Doctor, session.Snapshot{})
	require.Equal(t, guard.RedirectLogin, d.Outcome)
	require.Equal(t, "/doctor-login", d.Target)
}

func TestDecide_RoleMismatchGoesHome(t *testing.T) {
	d := guard.Decide(roles.Doctor, activeAs(roles.Patient))
	require.Equal(t, guard.RedirectHome, d.Outcome)
	require.Equal(t, "/patient", d.Target)
}

func TestDecide_MatchAllows(t *testing.T) {
	d := guard.Decide(roles.Doctor, activeAs(roles.Doctor))
	require.True(t, d.Allowed())
	require.Empty(t, d.Target)
}

func TestDecide_Table(t *testing.T) {
	tests := []struct {
		name     string
		required roles.Role
		snap     session.Snapshot
		want     guard.Decision
	}{
		{"logged out, doctor", roles.Doctor, session.Snapshot{}, guard.Decision{Outcome: guard.RedirectLogin, Target: "/doctor-login"}},
		{"logged out, patient", roles.Patient, session.Snapshot{}, guard.Decision{Outcome: guard.RedirectLogin, Target: "/patient-login"}},
		{"logged out, none", roles.None, session.Snapshot{}, guard.Decision{Outcome: guard.RedirectLogin, Target: "/patient-login"}},
		{"logged out, unknown role", roles.Role("admin"), session.Snapshot{}, guard.Decision{Outcome: guard.RedirectLogin, Target: "/patient-login"}},
		{"role without profile", roles.Patient, session.Snapshot{Role: roles.Patient}, guard.Decision{Outcome: guard.RedirectLogin, Target: "/patient-login"}},
		{"doctor in patient area", roles.Patient, activeAs(roles.Doctor), guard.Decision{Outcome: guard.RedirectHome, Target: "/doctor"}},
		{"patient in doctor area", roles.Doctor, activeAs(roles.Patient), guard.Decision{Outcome: guard.RedirectHome, Target: "/patient"}},
		{"doctor, no role required", roles.None, activeAs(roles.Doctor), guard.Decision{Outcome: guard.Allow}},
		{"patient, no role required", roles.None, activeAs(roles.Patient), guard.Decision{Outcome: guard.Allow}},
		{"patient match", roles.Patient, activeAs(roles.Patient), guard.Decision{Outcome: guard.Allow}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, guard.Decide(tt.required, tt.snap))
		})
	}
}

func TestDecide_Deterministic(t *testing.T) {
	snap := activeAs(roles.Patient)
	first := guard.Decide(roles.Doctor, snap)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, guard.Decide(roles.Doctor, snap))
	}
}
