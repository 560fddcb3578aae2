package backend

import (
	"github.com/jrsteele09/hospital-portal/credentials"
	"github.com/jrsteele09/hospital-portal/profiles"
)

// LoginRequest is the body of both login endpoints
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration holds the fields shared by both registration forms
type Registration struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"required,max=100"`
	LastName        string `json:"last_name" validate:"required,max=100"`
	PhoneNumber     string `json:"phone_number,omitempty" validate:"max=15"`
}

type DoctorRegistration struct {
	Registration
	Specialization    string `json:"specialization,omitempty" validate:"max=100"`
	LicenseNumber     string `json:"license_number,omitempty" validate:"max=50"`
	YearsOfExperience int    `json:"years_of_experience" validate:"min=0"`
	Bio               string `json:"bio,omitempty"`
}

type PatientRegistration struct {
	Registration
	DateOfBirth      string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty" validate:"max=15"`
}

// AuthResult is what a successful login or registration yields
type AuthResult struct {
	Profile profiles.Profile
	Tokens  credentials.Tokens
}

type authResponse struct {
	Message string             `json:"message,omitempty"`
	Doctor  *profiles.Profile  `json:"doctor,omitempty"`
	Patient *profiles.Profile  `json:"patient,omitempty"`
	Tokens  credentials.Tokens `json:"tokens"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	Tokens credentials.Tokens `json:"tokens"`
}

// TimeSlot is one bookable slot inside a day of availability
type TimeSlot struct {
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	IsAvailable bool   `json:"is_available"`
	BookedBy    string `json:"booked_by,omitempty"`
	BookingID   string `json:"booking_id,omitempty"`
}

type DayAvailability struct {
	Day         string     `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	IsAvailable bool       `json:"is_available"`
	TimeSlots   []TimeSlot `json:"time_slots" validate:"dive"`
}

type Availability struct {
	UID          string            `json:"uid,omitempty"`
	Availability []DayAvailability `json:"availability" validate:"dive"`
}

// DayCheck is the answer to "is this doctor available on a given day"
type DayCheck struct {
	UID         string     `json:"uid"`
	Day         string     `json:"day"`
	IsAvailable bool       `json:"is_available"`
	TimeSlots   []TimeSlot `json:"time_slots,omitempty"`
	Message     string     `json:"message,omitempty"`
}

type DoctorList struct {
	Count   int                `json:"count"`
	Doctors []profiles.Profile `json:"doctors"`
}

type StatusToggle struct {
	Message  string `json:"message"`
	IsActive bool   `json:"is_active"`
}

// AppointmentRequest books a slot as a patient
type AppointmentRequest struct {
	Day       string `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Reason    string `json:"reason,omitempty"`
}

// DoctorAppointmentRequest books a slot on a patient's behalf, contact details included
type DoctorAppointmentRequest struct {
	AppointmentRequest
	PatientName  string `json:"patient_name" validate:"required,max=100"`
	PatientEmail string `json:"patient_email" validate:"required,email"`
	PatientPhone string `json:"patient_phone" validate:"required,max=15"`
}

type PatientDetails struct {
	UID              string `json:"uid"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

type Appointment struct {
	BookingID      string          `json:"booking_id"`
	DoctorUID      string          `json:"doctor_uid,omitempty"`
	DoctorName     string          `json:"doctor_name,omitempty"`
	PatientUID     string          `json:"patient_uid,omitempty"`
	PatientName    string          `json:"patient_name,omitempty"`
	PatientEmail   string          `json:"patient_email,omitempty"`
	PatientPhone   string          `json:"patient_phone,omitempty"`
	Day            string          `json:"day"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
	Reason         string          `json:"reason,omitempty"`
	Status         string          `json:"status,omitempty"`
	PatientDetails *PatientDetails `json:"patient_details,omitempty"`
}

type Booking struct {
	Message     string      `json:"message"`
	BookingID   string      `json:"booking_id"`
	Appointment Appointment `json:"appointment"`
}

type appointmentList struct {
	Count        int           `json:"count"`
	Appointments []Appointment `json:"appointments"`
}

type cancelRequest struct {
	PatientUID string `json:"patient_uid,omitempty"`
}

type profileResponse struct {
	Message string            `json:"message,omitempty"`
	Doctor  *profiles.Profile `json:"doctor,omitempty"`
	Patient *profiles.Profile `json:"patient,omitempty"`
}

// HealthEntry is one day of tracked metrics. Metrics left nil were not recorded.
type HealthEntry struct {
	Date             string   `json:"date" validate:"required,datetime=2006-01-02"`
	StepsTaken       *int     `json:"steps_taken,omitempty" validate:"omitempty,min=0"`
	HoursSleep       *float64 `json:"hours_sleep,omitempty" validate:"omitempty,min=0,max=24"`
	WaterIntake      *float64 `json:"water_intake,omitempty" validate:"omitempty,min=0"`
	CaloriesConsumed *int     `json:"calories_consumed,omitempty" validate:"omitempty,min=0"`
	ExerciseMinutes  *int     `json:"exercise_minutes,omitempty" validate:"omitempty,min=0"`
	Notes            string   `json:"notes,omitempty"`
}

type MedicalTest struct {
	TestName   string `json:"test_name" validate:"required,max=200"`
	TestDate   string `json:"test_date" validate:"required,datetime=2006-01-02"`
	TestResult string `json:"test_result,omitempty"`
	DoctorName string `json:"doctor_name,omitempty" validate:"max=200"`
	Notes      string `json:"notes,omitempty"`
	FileURL    string `json:"file_url,omitempty" validate:"omitempty,url"`
}

type PreventiveCheckup struct {
	CheckupType     string `json:"checkup_type" validate:"required,max=200"`
	CheckupDate     string `json:"checkup_date" validate:"required,datetime=2006-01-02"`
	DoctorName      string `json:"doctor_name,omitempty" validate:"max=200"`
	Findings        string `json:"findings,omitempty"`
	NextCheckupDate string `json:"next_checkup_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes           string `json:"notes,omitempty"`
}

type trackingList struct {
	Count    int           `json:"count"`
	Tracking []HealthEntry `json:"tracking"`
}

type medicalTestList struct {
	Count int           `json:"count"`
	Tests []MedicalTest `json:"tests"`
}

type checkupList struct {
	Count    int                 `json:"count"`
	Checkups []PreventiveCheckup `json:"checkups"`
}

type HealthSummary struct {
	TotalDaysTracked        int     `json:"total_days_tracked"`
	AvgStepsPerDay          float64 `json:"avg_steps_per_day"`
	AvgSleepHours           float64 `json:"avg_sleep_hours"`
	TotalMedicalTests       int     `json:"total_medical_tests"`
	TotalPreventiveCheckups int     `json:"total_preventive_checkups"`
}

// PatientHealth is a doctor's view of one patient's health records
type PatientHealth struct {
	PatientInfo        PatientDetails      `json:"patient_info"`
	HealthSummary      HealthSummary       `json:"health_summary"`
	RecentTracking     []HealthEntry       `json:"recent_tracking"`
	MedicalTests       []MedicalTest       `json:"medical_tests"`
	PreventiveCheckups []PreventiveCheckup `json:"preventive_checkups"`
}
