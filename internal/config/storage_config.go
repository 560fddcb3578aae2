package config

import (
	"os"
	"path/filepath"
)

type CredentialBackend string

const (
	CredentialBackendFile   CredentialBackend = "file"
	CredentialBackendRedis  CredentialBackend = "redis"
	CredentialBackendMemory CredentialBackend = "memory"
)

type StorageConfig interface {
	GetCredentialBackend() CredentialBackend
	GetCredentialFile() string
	GetWatchCredentials() bool
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisKeyPrefix() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetCredentialBackend() CredentialBackend {
	switch b := CredentialBackend(GetEnv("PORTAL_CREDENTIAL_BACKEND", string(CredentialBackendFile))); b {
	case CredentialBackendRedis, CredentialBackendMemory:
		return b
	default:
		return CredentialBackendFile
	}
}

// GetCredentialFile defaults to <user config dir>/hospital-portal/credentials.json
func (Storage) GetCredentialFile() string {
	if path := GetEnv("PORTAL_CREDENTIAL_FILE", ""); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "hospital-portal", "credentials.json")
}

func (Storage) GetWatchCredentials() bool {
	return GetBoolEnv("PORTAL_WATCH_CREDENTIALS", true)
}

func (Storage) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Storage) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Storage) GetRedisDB() int {
	return GetIntEnv("REDIS_DB", 0)
}

func (Storage) GetRedisKeyPrefix() string {
	return GetEnv("REDIS_KEY_PREFIX", "portal")
}
