package config

import (
	"time"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	BackendConfig
	StorageConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type BackendConfig interface {
	GetBackendURL() string
	GetBackendTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Backend
	Storage
	Security
}

// New loads an optional .env file and returns the environment backed config.
// Variables already present in the environment take precedence over the file.
func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}
