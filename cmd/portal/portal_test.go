package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/hospital-portal/credentials"
	"github.com/jrsteele09/hospital-portal/internal/config"
	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	backendURL string
	storage    config.CredentialBackend
	file       string
	redisAddr  string
}

func (testConfig) GetPort() string                                  { return ":0" }
func (testConfig) GetAppName() string                               { return "Hospital Portal" }
func (testConfig) GetEnv() string                                   { return "TEST" }
func (testConfig) GetLogLevel() string                              { return "disabled" }
func (c testConfig) GetBackendURL() string                          { return c.backendURL }
func (testConfig) GetBackendTimeout() time.Duration                 { return 5 * time.Second }
func (testConfig) GetTokenRefreshLeeway() time.Duration             { return 30 * time.Second }
func (c testConfig) GetCredentialBackend() config.CredentialBackend { return c.storage }
func (c testConfig) GetCredentialFile() string                      { return c.file }
func (testConfig) GetWatchCredentials() bool                        { return false }
func (c testConfig) GetRedisAddr() string                           { return c.redisAddr }
func (testConfig) GetRedisPassword() string                         { return "" }
func (testConfig) GetRedisDB() int                                  { return 0 }
func (testConfig) GetRedisKeyPrefix() string                        { return "portal-test" }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func fakeBackend(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /patients/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "password123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"patient": map[string]any{"uid": "patient-1", "email": body["email"], "first_name": "Pat", "last_name": "Doe"},
			"tokens":  map[string]any{"access": "access-1", "refresh": "refresh-1", "expires_in": 3600},
		})
	})
	mux.HandleFunc("GET /patients/appointments/patient-1/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"count": 1,
			"appointments": []map[string]any{
				{"booking_id": "b-1", "doctor_name": "Greg House", "day": "monday", "start_time": "09:00", "end_time": "09:30", "status": "confirmed"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(t *testing.T, cfg testConfig, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, cfg, "", args...)
}

func executeWithInput(t *testing.T, cfg testConfig, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&rootOptions{newConfig: func() config.Config { return cfg }})
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSessionPersistsAcrossCommands(t *testing.T) {
	cfg := testConfig{
		backendURL: fakeBackend(t),
		storage:    config.CredentialBackendFile,
		file:       filepath.Join(t.TempDir(), "credentials.json"),
	}

	out, err := execute(t, cfg, "whoami")
	require.NoError(t, err)
	require.Equal(t, "Not logged in\n", out)

	out, err = execute(t, cfg, "login", "patient", "--email", "pat@example.com", "--password", "password123")
	require.NoError(t, err)
	require.Equal(t, "Logged in as Pat Doe (patient)\n", out)

	out, err = execute(t, cfg, "whoami")
	require.NoError(t, err)
	require.Equal(t, "Pat Doe <pat@example.com> (patient)\n", out)

	out, err = execute(t, cfg, "appointments")
	require.NoError(t, err)
	require.Contains(t, out, "BOOKING")
	require.Contains(t, out, "b-1")
	require.Contains(t, out, "Greg House")

	out, err = execute(t, cfg, "logout")
	require.NoError(t, err)
	require.Equal(t, "Logged out\n", out)

	out, err = execute(t, cfg, "whoami")
	require.NoError(t, err)
	require.Equal(t, "Not logged in\n", out)

	_, err = execute(t, cfg, "appointments")
	require.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
}

func TestLogin_Errors(t *testing.T) {
	cfg := testConfig{backendURL: fakeBackend(t), storage: config.CredentialBackendMemory}

	t.Run("unknown role", func(t *testing.T) {
		_, err := execute(t, cfg, "login", "admin", "--email", "a@b.com", "--password", "x")
		require.ErrorIs(t, err, apperrors.ErrInvalidRole)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := execute(t, cfg, "login", "patient", "--password", "x")
		require.ErrorContains(t, err, "email is required")
	})

	t.Run("rejected", func(t *testing.T) {
		_, err := execute(t, cfg, "login", "patient", "--email", "pat@example.com", "--password", "nope")
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("missing password on stdin", func(t *testing.T) {
		_, err := execute(t, cfg, "login", "patient", "--email", "pat@example.com")
		require.ErrorContains(t, err, "password is required")
	})
}

func TestLogin_PasswordFromStdin(t *testing.T) {
	cfg := testConfig{
		backendURL: fakeBackend(t),
		storage:    config.CredentialBackendFile,
		file:       filepath.Join(t.TempDir(), "credentials.json"),
	}

	out, err := executeWithInput(t, cfg, "password123\n", "login", "patient", "--email", "pat@example.com")
	require.NoError(t, err)
	require.Equal(t, "Logged in as Pat Doe (patient)\n", out)

	out, err = execute(t, cfg, "whoami")
	require.NoError(t, err)
	require.Equal(t, "Pat Doe <pat@example.com> (patient)\n", out)
}

func TestOpenStorage_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig{storage: config.CredentialBackendRedis, redisAddr: mr.Addr()}
	ctx := context.Background()

	a, err := newApp(ctx, cfg)
	require.NoError(t, err)
	a.session.Login(ctx, profiles.Profile{UID: "doctor-1"}, credentials.Tokens{Access: "access-1", Refresh: "refresh-1"}, roles.Doctor)
	a.Close()

	require.True(t, mr.Exists("portal-test:access_token"))

	shared, err := newApp(ctx, cfg)
	require.NoError(t, err)
	defer shared.Close()
	require.True(t, shared.session.IsActive())
	require.Equal(t, roles.Doctor, shared.session.Role())
}

func TestOpenStorage_RedisUnreachable(t *testing.T) {
	_, err := newApp(context.Background(), testConfig{storage: config.CredentialBackendRedis, redisAddr: "127.0.0.1:1"})
	require.Error(t, err)
}
