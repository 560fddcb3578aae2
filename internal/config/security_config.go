package config

import "time"

type SecurityConfig interface {
	GetTokenRefreshLeeway() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetTokenRefreshLeeway is how long before the access token's exp claim a refresh is attempted
func (Security) GetTokenRefreshLeeway() time.Duration {
	return GetDurationEnv("TOKEN_REFRESH_LEEWAY", 30*time.Second)
}
