package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/hospital-portal/backend"
	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/jrsteele09/hospital-portal/routes"
	"github.com/rs/zerolog/log"
)

// DoctorDashboard is the Data of the doctor home page
type DoctorDashboard struct {
	Profile      profiles.Profile
	Appointments []backend.Appointment
	Availability []AvailabilityRow
}

// AvailabilityRow is one weekday of the availability form
type AvailabilityRow struct {
	Day       string
	Available bool
	Slots     string
	Booked    []backend.TimeSlot
}

func availabilityRows(days []backend.DayAvailability) []AvailabilityRow {
	byDay := make(map[string]backend.DayAvailability, len(days))
	for _, day := range days {
		byDay[strings.ToLower(day.Day)] = day
	}

	rows := make([]AvailabilityRow, 0, len(weekdays))
	for _, name := range weekdays {
		day := byDay[name]
		row := AvailabilityRow{Day: name, Available: day.IsAvailable}
		slots := make([]string, 0, len(day.TimeSlots))
		for _, slot := range day.TimeSlots {
			slots = append(slots, slot.StartTime+"-"+slot.EndTime)
			if !slot.IsAvailable {
				row.Booked = append(row.Booked, slot)
			}
		}
		row.Slots = strings.Join(slots, ", ")
		rows = append(rows, row)
	}
	return rows
}

// pageLoad keeps the first failure while a page fetches its data
type pageLoad struct {
	err error
}

func (l *pageLoad) note(err error) {
	if l.err == nil {
		l.err = err
	}
}

// DoctorDashboardHandler shows the doctor's status, appointments and weekly availability
func (s *Server) DoctorDashboardHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("doctor.html")

	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)
		uid := snap.Profile.UID
		ctx := r.Context()

		dashboard := DoctorDashboard{Profile: *snap.Profile}
		var load pageLoad

		if profile, err := s.backend.GetDoctorProfile(ctx, uid); err != nil {
			load.note(err)
		} else {
			dashboard.Profile = *profile
		}

		appointments, err := s.backend.ListDoctorAppointments(ctx, uid)
		load.note(err)
		dashboard.Appointments = appointments

		availability, err := s.backend.GetDoctorAvailability(ctx, uid)
		load.note(err)
		if availability != nil {
			dashboard.Availability = availabilityRows(availability.Availability)
		} else {
			dashboard.Availability = availabilityRows(nil)
		}

		if s.endSessionIfRejected(w, r, snap, load.err) {
			return
		}

		data := s.newPageData(r, "Doctor dashboard")
		data.Data = dashboard
		if load.err != nil {
			log.Err(load.err).Str("request_id", RequestID(ctx)).Msg("DoctorDashboard: Failed to load dashboard")
			data.Error = userMessage(load.err)
		}
		s.render(w, r, tmpl, http.StatusOK, data)
	}
}

// DoctorAvailabilityHandler replaces the weekly availability from the dashboard form.
// Slots that are already booked keep their booking.
func (s *Server) DoctorAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)
		p, err := newFormParser(r)
		if err != nil {
			redirectWithError(w, r, routes.DoctorHome, msgInvalidForm)
			return
		}

		current, err := s.backend.GetDoctorAvailability(r.Context(), snap.Profile.UID)
		if err != nil {
			s.handleActionError(w, r, snap, routes.DoctorHome, err)
			return
		}

		days := p.availability(current.Availability)
		if err := s.checkForm(p, backend.Availability{Availability: days}); err != nil {
			redirectWithError(w, r, routes.DoctorHome, userMessage(err))
			return
		}

		if _, err := s.backend.UpdateDoctorAvailability(r.Context(), snap.Profile.UID, days); err != nil {
			s.handleActionError(w, r, snap, routes.DoctorHome, err)
			return
		}
		redirectWithNotice(w, r, routes.DoctorHome, "Availability updated")
	}
}

// DoctorToggleStatusHandler switches the doctor between accepting and not accepting bookings
func (s *Server) DoctorToggleStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)

		status, err := s.backend.ToggleDoctorStatus(r.Context(), snap.Profile.UID)
		if err != nil {
			s.handleActionError(w, r, snap, routes.DoctorHome, err)
			return
		}

		notice := status.Message
		if notice == "" {
			notice = "You are now offline"
			if status.IsActive {
				notice = "You are now online"
			}
		}
		redirectWithNotice(w, r, routes.DoctorHome, notice)
	}
}

// DoctorBookAppointmentHandler books one of the doctor's own slots for a patient
func (s *Server) DoctorBookAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)
		p, err := newFormParser(r)
		if err != nil {
			redirectWithError(w, r, routes.DoctorHome, msgInvalidForm)
			return
		}

		req := p.doctorAppointment()
		if err := s.checkForm(p, req); err != nil {
			redirectWithError(w, r, routes.DoctorHome, userMessage(err))
			return
		}

		booking, err := s.backend.BookAppointment(r.Context(), snap.Profile.UID, req)
		if err != nil {
			s.handleActionError(w, r, snap, routes.DoctorHome, err)
			return
		}
		redirectWithNotice(w, r, routes.DoctorHome, bookingNotice(booking))
	}
}

// DoctorPatientViewHandler shows a patient's health summary and records to the doctor
func (s *Server) DoctorPatientViewHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("doctor_patient.html")

	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)

		health, err := s.backend.PatientHealthForDoctor(r.Context(), r.PathValue("patient_uid"))
		if err != nil {
			s.handleActionError(w, r, snap, routes.DoctorHome, err)
			return
		}

		data := s.newPageData(r, "Patient health")
		data.Data = health
		s.render(w, r, tmpl, http.StatusOK, data)
	}
}

func bookingNotice(booking *backend.Booking) string {
	if booking.Message != "" {
		return booking.Message
	}
	return "Appointment booked"
}
