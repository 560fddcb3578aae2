package profiles

import "strings"

// Profile is the user record returned by the backend on login and registration.
// Doctors and patients share one shape; fields belonging to the other role stay empty.
type Profile struct {
	UID            string `json:"uid,omitempty"`             // Backend unique identifier
	Email          string `json:"email,omitempty"`           // Login email address
	FirstName      string `json:"first_name,omitempty"`      // First name
	LastName       string `json:"last_name,omitempty"`       // Last name
	PhoneNumber    string `json:"phone_number,omitempty"`    // Contact number
	ProfilePicture string `json:"profile_picture,omitempty"` // Avatar URL
	CreatedAt      string `json:"created_at,omitempty"`      // ISO-8601 as sent by the backend
	UpdatedAt      string `json:"updated_at,omitempty"`      // ISO-8601 as sent by the backend

	// Doctor
	Specialization    string `json:"specialization,omitempty"`
	LicenseNumber     string `json:"license_number,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	Bio               string `json:"bio,omitempty"`
	IsVerified        bool   `json:"is_verified,omitempty"`
	IsActive          bool   `json:"is_active,omitempty"` // Online/offline status for bookings

	// Patient
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

// DisplayName returns "First Last", falling back to the email address
func (p Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Email
	}
	return name
}
