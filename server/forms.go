package server

import (
	"maps"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/hospital-portal/backend"
	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
	"github.com/jrsteele09/hospital-portal/internal/utils"
	"github.com/jrsteele09/hospital-portal/internal/validation"
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// formParser reads typed values out of a parsed form and collects conversion errors
type formParser struct {
	r      *http.Request
	errors validation.FieldErrors
}

func newFormParser(r *http.Request) (*formParser, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &formParser{r: r, errors: validation.FieldErrors{}}, nil
}

func (p *formParser) str(name string) string {
	return strings.TrimSpace(p.r.PostFormValue(name))
}

// secret returns a value untrimmed, passwords keep their whitespace
func (p *formParser) secret(name string) string {
	return p.r.PostFormValue(name)
}

func (p *formParser) optionalInt(name string) *int {
	raw := p.str(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errors[name] = name + " must be a whole number"
		return nil
	}
	return utils.Ptr(v)
}

func (p *formParser) optionalFloat(name string) *float64 {
	raw := p.str(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.errors[name] = name + " must be a number"
		return nil
	}
	return utils.Ptr(v)
}

// values echoes the submitted fields back for re-rendering, secrets excluded
func (p *formParser) values(names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = p.str(name)
	}
	return out
}

// checkForm validates v and merges in the conversion errors collected while parsing
func (s *Server) checkForm(p *formParser, v any) error {
	fields := validation.FieldErrors{}
	if err := s.validator.Validate(v); err != nil {
		var tagErrs validation.FieldErrors
		if !apperrors.As(err, &tagErrs) {
			return err
		}
		maps.Copy(fields, tagErrs)
	}
	maps.Copy(fields, p.errors)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (p *formParser) registration() backend.Registration {
	return backend.Registration{
		Email:           p.str("email"),
		Password:        p.secret("password"),
		PasswordConfirm: p.secret("password_confirm"),
		FirstName:       p.str("first_name"),
		LastName:        p.str("last_name"),
		PhoneNumber:     p.str("phone_number"),
	}
}

func (p *formParser) doctorRegistration() backend.DoctorRegistration {
	return backend.DoctorRegistration{
		Registration:      p.registration(),
		Specialization:    p.str("specialization"),
		LicenseNumber:     p.str("license_number"),
		YearsOfExperience: utils.Value(p.optionalInt("years_of_experience")),
		Bio:               p.str("bio"),
	}
}

func (p *formParser) patientRegistration() backend.PatientRegistration {
	return backend.PatientRegistration{
		Registration:     p.registration(),
		DateOfBirth:      p.str("date_of_birth"),
		Address:          p.str("address"),
		EmergencyContact: p.str("emergency_contact"),
	}
}

func (p *formParser) appointment() backend.AppointmentRequest {
	return backend.AppointmentRequest{
		Day:       strings.ToLower(p.str("day")),
		StartTime: p.str("start_time"),
		EndTime:   p.str("end_time"),
		Reason:    p.str("reason"),
	}
}

func (p *formParser) doctorAppointment() backend.DoctorAppointmentRequest {
	return backend.DoctorAppointmentRequest{
		AppointmentRequest: p.appointment(),
		PatientName:        p.str("patient_name"),
		PatientEmail:       p.str("patient_email"),
		PatientPhone:       p.str("patient_phone"),
	}
}

func (p *formParser) healthEntry() backend.HealthEntry {
	return backend.HealthEntry{
		Date:             p.str("date"),
		StepsTaken:       p.optionalInt("steps_taken"),
		HoursSleep:       p.optionalFloat("hours_sleep"),
		WaterIntake:      p.optionalFloat("water_intake"),
		CaloriesConsumed: p.optionalInt("calories_consumed"),
		ExerciseMinutes:  p.optionalInt("exercise_minutes"),
		Notes:            p.str("notes"),
	}
}

func (p *formParser) medicalTest() backend.MedicalTest {
	return backend.MedicalTest{
		TestName:   p.str("test_name"),
		TestDate:   p.str("test_date"),
		TestResult: p.str("test_result"),
		DoctorName: p.str("doctor_name"),
		Notes:      p.str("notes"),
		FileURL:    p.str("file_url"),
	}
}

func (p *formParser) checkup() backend.PreventiveCheckup {
	return backend.PreventiveCheckup{
		CheckupType:     p.str("checkup_type"),
		CheckupDate:     p.str("checkup_date"),
		DoctorName:      p.str("doctor_name"),
		Findings:        p.str("findings"),
		NextCheckupDate: p.str("next_checkup_date"),
		Notes:           p.str("notes"),
	}
}

// availability reads one "<day>_available" checkbox and one "<day>_slots" field
// per weekday. Slots are written "09:00-09:30, 10:00-10:30". Slots that already
// exist keep their booking state.
func (p *formParser) availability(current []backend.DayAvailability) []backend.DayAvailability {
	existing := map[string]backend.TimeSlot{}
	for _, day := range current {
		for _, slot := range day.TimeSlots {
			existing[day.Day+" "+slot.StartTime+"-"+slot.EndTime] = slot
		}
	}

	var days []backend.DayAvailability
	for _, day := range weekdays {
		available := p.str(day+"_available") != ""
		rawSlots := p.str(day + "_slots")
		if !available && rawSlots == "" {
			continue
		}

		entry := backend.DayAvailability{Day: day, IsAvailable: available}
		for _, raw := range strings.Split(rawSlots, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			start, end, ok := strings.Cut(raw, "-")
			if !ok {
				p.errors[day+"_slots"] = day + " slots must look like 09:00-09:30"
				continue
			}
			start, end = strings.TrimSpace(start), strings.TrimSpace(end)
			slot, found := existing[day+" "+start+"-"+end]
			if !found {
				slot = backend.TimeSlot{StartTime: start, EndTime: end, IsAvailable: true}
			}
			entry.TimeSlots = append(entry.TimeSlots, slot)
		}
		days = append(days, entry)
	}
	return days
}
