package routes

import (
	"net/url"
	"strings"

	"github.com/jrsteele09/hospital-portal/roles"
)

// Route path constants
// All portal routes are defined here so the guard and the handlers agree on destinations
const (
	Home = "/"

	// Role-gated areas
	DoctorHome  = "/doctor"
	PatientHome = "/patient"
	HealthGoals = "/health-goals"

	// Public auth pages
	DoctorLogin     = "/doctor-login"
	DoctorRegister  = "/doctor-register"
	PatientLogin    = "/patient-login"
	PatientRegister = "/patient-register"
	Logout          = "/logout"

	// Doctor actions
	DoctorAvailability    = "/doctor/availability"
	DoctorToggleStatus    = "/doctor/toggle-status"
	DoctorPatientView     = "/doctor/patients/{patient_uid}"
	DoctorBookAppointment = "/doctor/appointments"

	// Patient actions
	PatientCheckAvailability = "/patient/doctors/{doctor_uid}/availability"
	PatientBookAppointment   = "/patient/doctors/{doctor_uid}/book"

	// Shared actions
	CancelAppointment = "/appointments/{booking_id}/cancel"

	// Health goal actions
	HealthTrack             = "/health-goals/track"
	HealthMedicalTests      = "/health-goals/medical-tests"
	HealthPreventiveCheckup = "/health-goals/preventive-checkups"

	Metrics = "/metrics"
)

// RoleHome returns the authenticated landing page for a role
func RoleHome(role roles.Role) string {
	if role == roles.Doctor {
		return DoctorHome
	}
	return PatientHome
}

// RoleLogin returns the login page for a role. Only doctor has its own page,
// every other value falls back to the patient login.
func RoleLogin(role roles.Role) string {
	if role == roles.Doctor {
		return DoctorLogin
	}
	return PatientLogin
}

// Expand fills the {name} parameters of a pattern. pairs alternate name and value,
// values are path escaped.
func Expand(pattern string, pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		pattern = strings.ReplaceAll(pattern, "{"+pairs[i]+"}", url.PathEscape(pairs[i+1]))
	}
	return pattern
}
