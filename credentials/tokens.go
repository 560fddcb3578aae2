package credentials

import "time"

// Tokens is the access/refresh pair issued by the backend on login, registration and refresh.
type Tokens struct {
	Access    string `json:"access"`               // Short lived bearer token (JWT)
	Refresh   string `json:"refresh"`              // Long lived token exchanged for a new pair
	ExpiresIn int    `json:"expires_in,omitempty"` // Access token lifetime in seconds, a hint only
}

// ExpiresAt turns the ExpiresIn hint into an absolute time. Zero when no hint was sent.
func (t Tokens) ExpiresAt(issued time.Time) time.Time {
	if t.ExpiresIn <= 0 {
		return time.Time{}
	}
	return issued.Add(time.Duration(t.ExpiresIn) * time.Second)
}
