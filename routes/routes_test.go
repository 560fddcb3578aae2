package routes_test

import (
	"testing"

	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/jrsteele09/hospital-portal/routes"
	"github.com/stretchr/testify/require"
)

func TestRoleDestinations(t *testing.T) {
	require.Equal(t, "/doctor", routes.RoleHome(roles.Doctor))
	require.Equal(t, "/patient", routes.RoleHome(roles.Patient))
	require.Equal(t, "/doctor-login", routes.RoleLogin(roles.Doctor))
	require.Equal(t, "/patient-login", routes.RoleLogin(roles.Patient))
	require.Equal(t, "/patient-login", routes.RoleLogin(roles.None))
}

func TestExpand(t *testing.T) {
	require.Equal(t, "/patient/doctors/doc-1/book", routes.Expand(routes.PatientBookAppointment, "doctor_uid", "doc-1"))
	require.Equal(t, "/appointments/a%2Fb/cancel", routes.Expand(routes.CancelAppointment, "booking_id", "a/b"))
	require.Equal(t, routes.DoctorPatientView, routes.Expand(routes.DoctorPatientView))
	require.Equal(t, "/doctor/patients/{patient_uid}", routes.Expand(routes.DoctorPatientView, "patient_uid"))
}
