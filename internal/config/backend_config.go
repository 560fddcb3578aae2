package config

import (
	"strings"
	"time"
)

const (
	backendURLVar     = "BACKEND_URL"
	backendTimeoutVar = "BACKEND_TIMEOUT"
)

type Backend struct{}

var _ BackendConfig = Backend{}

// GetBackendURL returns the base URL of the hospital API without a trailing slash,
// e.g. "http://localhost:8000/api"
func (Backend) GetBackendURL() string {
	return strings.TrimRight(GetEnv(backendURLVar, "http://localhost:8000/api"), "/")
}

func (Backend) GetBackendTimeout() time.Duration {
	return GetDurationEnv(backendTimeoutVar, 10*time.Second)
}
