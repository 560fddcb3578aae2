package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/jrsteele09/hospital-portal/backend"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/jrsteele09/hospital-portal/routes"
	"github.com/rs/zerolog/log"
)

// PatientDashboard is the Data of the patient home page
type PatientDashboard struct {
	Doctors      []DoctorCard
	ActiveOnly   bool
	Appointments []backend.Appointment
}

// DoctorCard is a doctor as listed to patients
type DoctorCard struct {
	UID            string
	Name           string
	Specialization string
	Experience     int
	IsActive       bool
}

// DayCheckPage is the Data of the availability page
type DayCheckPage struct {
	DoctorUID string
	Check     *backend.DayCheck
}

// PatientDashboardHandler lists doctors to book with and the patient's own appointments
func (s *Server) PatientDashboardHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("patient.html")

	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)
		ctx := r.Context()

		dashboard := PatientDashboard{ActiveOnly: r.URL.Query().Get("active_only") == "true"}
		var load pageLoad

		doctors, err := s.backend.ListDoctors(ctx, dashboard.ActiveOnly)
		load.note(err)
		if doctors != nil {
			for _, doctor := range doctors.Doctors {
				dashboard.Doctors = append(dashboard.Doctors, DoctorCard{
					UID:            doctor.UID,
					Name:           doctor.DisplayName(),
					Specialization: doctor.Specialization,
					Experience:     doctor.YearsOfExperience,
					IsActive:       doctor.IsActive,
				})
			}
		}

		appointments, err := s.backend.ListPatientAppointments(ctx, snap.Profile.UID)
		load.note(err)
		dashboard.Appointments = appointments

		if s.endSessionIfRejected(w, r, snap, load.err) {
			return
		}

		data := s.newPageData(r, "Patient dashboard")
		data.Data = dashboard
		if load.err != nil {
			log.Err(load.err).Str("request_id", RequestID(ctx)).Msg("PatientDashboard: Failed to load dashboard")
			data.Error = userMessage(load.err)
		}
		s.render(w, r, tmpl, http.StatusOK, data)
	}
}

// PatientCheckAvailabilityHandler shows a doctor's slots for one weekday (?day=monday)
func (s *Server) PatientCheckAvailabilityHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("availability.html")

	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)
		doctorUID := r.PathValue("doctor_uid")
		day := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("day")))
		if !slices.Contains(weekdays, day) {
			redirectWithError(w, r, routes.PatientHome, "Choose a day of the week")
			return
		}

		check, err := s.backend.CheckDoctorAvailability(r.Context(), doctorUID, day)
		if err != nil {
			s.handleActionError(w, r, snap, routes.PatientHome, err)
			return
		}

		data := s.newPageData(r, "Availability")
		data.Data = DayCheckPage{DoctorUID: doctorUID, Check: check}
		s.render(w, r, tmpl, http.StatusOK, data)
	}
}

// PatientBookAppointmentHandler books a slot with a doctor for the logged in patient
func (s *Server) PatientBookAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)
		p, err := newFormParser(r)
		if err != nil {
			redirectWithError(w, r, routes.PatientHome, msgInvalidForm)
			return
		}

		req := p.appointment()
		if err := s.checkForm(p, req); err != nil {
			redirectWithError(w, r, routes.PatientHome, userMessage(err))
			return
		}

		booking, err := s.backend.PatientBookAppointment(r.Context(), r.PathValue("doctor_uid"), req)
		if err != nil {
			s.handleActionError(w, r, snap, routes.PatientHome, err)
			return
		}
		redirectWithNotice(w, r, routes.PatientHome, bookingNotice(booking))
	}
}

// CancelAppointmentHandler cancels a booking from either dashboard. Doctors cancel
// through their own endpoint, patients prove ownership with their uid.
func (s *Server) CancelAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)
		bookingID := r.PathValue("booking_id")
		home := routes.RoleHome(snap.Role)

		var err error
		if snap.Role == roles.Doctor {
			err = s.backend.CancelAppointment(r.Context(), bookingID)
		} else {
			err = s.backend.PatientCancelAppointment(r.Context(), bookingID, snap.Profile.UID)
		}
		if err != nil {
			s.handleActionError(w, r, snap, home, err)
			return
		}
		redirectWithNotice(w, r, home, "Appointment cancelled")
	}
}
