package credentials_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/hospital-portal/credentials"
	"github.com/jrsteele09/hospital-portal/credentials/memstore"
	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

var testProfile = profiles.Profile{
	UID:       "patient-1",
	Email:     "a@b.com",
	FirstName: "A",
	LastName:  "B",
}

func newStore(t *testing.T) (*credentials.Store, *memstore.MemStore) {
	t.Helper()
	m := memstore.New()
	return credentials.NewStore(m), m
}

func TestClearTokens_Idempotent(t *testing.T) {
	ctx := context.Background()
	store, m := newStore(t)

	require.False(t, store.IsAuthenticated(ctx))
	store.ClearTokens(ctx)
	require.False(t, store.IsAuthenticated(ctx))
	require.Equal(t, 0, m.Len())
}

func TestSetters_AllFourObservable(t *testing.T) {
	ctx := context.Background()
	store, m := newStore(t)

	store.SetTokens(ctx, "access-1", "refresh-1")
	store.SetUserData(ctx, testProfile, roles.Patient)

	profile, ok := store.GetUserData(ctx)
	require.True(t, ok)
	require.Equal(t, testProfile, profile)

	role, ok := store.GetUserRole(ctx)
	require.True(t, ok)
	require.Equal(t, roles.Patient, role)

	require.True(t, store.IsAuthenticated(ctx))
	access, _ := store.GetAccessToken(ctx)
	refresh, _ := store.GetRefreshToken(ctx)
	require.Equal(t, "access-1", access)
	require.Equal(t, "refresh-1", refresh)
	require.Equal(t, 4, m.Len())
}

func TestClearTokens_RemovesAllFour(t *testing.T) {
	ctx := context.Background()
	store, m := newStore(t)
	store.SetTokens(ctx, "access-1", "refresh-1")
	store.SetUserData(ctx, testProfile, roles.Doctor)

	store.ClearTokens(ctx)

	_, ok := store.GetUserData(ctx)
	require.False(t, ok)
	_, ok = store.GetUserRole(ctx)
	require.False(t, ok)
	require.False(t, store.IsAuthenticated(ctx))
	require.Equal(t, 0, m.Len())
}

func TestGetUserData_MalformedIsAbsent(t *testing.T) {
	ctx := context.Background()
	store, m := newStore(t)

	for _, raw := range []string{"{not json", "[1,2,3]", "\"just a string\""} {
		t.Run(raw, func(t *testing.T) {
			require.NoError(t, m.Set(ctx, credentials.KeyUserData, raw))
			require.NotPanics(t, func() {
				_, ok := store.GetUserData(ctx)
				require.False(t, ok)
			})
		})
	}
}

func TestGetUserRole_UnknownIsAbsent(t *testing.T) {
	ctx := context.Background()
	store, m := newStore(t)
	require.NoError(t, m.Set(ctx, credentials.KeyUserRole, "admin"))

	role, ok := store.GetUserRole(ctx)
	require.False(t, ok)
	require.Equal(t, roles.None, role)
}

func TestIsAuthenticated_PresenceOnly(t *testing.T) {
	ctx := context.Background()
	store, m := newStore(t)

	require.NoError(t, m.Set(ctx, credentials.KeyAccessToken, "not-a-jwt-and-long-expired"))
	require.True(t, store.IsAuthenticated(ctx))

	require.NoError(t, m.Set(ctx, credentials.KeyAccessToken, ""))
	require.False(t, store.IsAuthenticated(ctx))
}

func TestStore_AbsorbsStorageFailures(t *testing.T) {
	ctx := context.Background()
	store := credentials.NewStore(failingStorage{})

	require.NotPanics(t, func() {
		store.SetTokens(ctx, "a", "r")
		store.SetUserData(ctx, testProfile, roles.Patient)
		store.ClearTokens(ctx)
	})
	require.False(t, store.IsAuthenticated(ctx))
	_, ok := store.GetUserData(ctx)
	require.False(t, ok)
}

func TestStore_LogsStorageFailures(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	store := credentials.NewStore(failingStorage{})
	store.ClearTokens(ctx)
	store.SetTokens(ctx, "a", "r")
	store.IsAuthenticated(ctx)

	out := buf.String()
	require.Contains(t, out, `"message":"Failed to clear credentials"`)
	require.Contains(t, out, `"message":"Credential write failed"`)
	require.Contains(t, out, `"message":"Credential read failed, treating as absent"`)
	require.Contains(t, out, `"error":"disk on fire"`)
}

func TestSetSession_WritesAllFour(t *testing.T) {
	ctx := context.Background()
	store, m := newStore(t)

	store.SetSession(ctx, credentials.Tokens{Access: "access-1", Refresh: "refresh-1"}, testProfile, roles.Doctor)

	require.Equal(t, 4, m.Len())
	profile, role, ok, err := store.LoadUserData(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testProfile, profile)
	require.Equal(t, roles.Doctor, role)
	access, _ := store.GetAccessToken(ctx)
	require.Equal(t, "access-1", access)
}

func TestLoadUserData(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store is not ok", func(t *testing.T) {
		store, _ := newStore(t)
		_, _, ok, err := store.LoadUserData(ctx)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("malformed profile is not ok", func(t *testing.T) {
		store, m := newStore(t)
		require.NoError(t, m.SetMany(ctx, map[string]string{
			credentials.KeyUserData: "{broken",
			credentials.KeyUserRole: "patient",
		}))
		_, _, ok, err := store.LoadUserData(ctx)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("storage failure is an error", func(t *testing.T) {
		store := credentials.NewStore(failingStorage{})
		_, _, ok, err := store.LoadUserData(ctx)
		require.ErrorIs(t, err, errBroken)
		require.False(t, ok)
	})
}

type failingStorage struct{}

var errBroken = errors.New("disk on fire")

func (failingStorage) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (failingStorage) Set(context.Context, string, string) error         { return errBroken }
func (failingStorage) SetMany(context.Context, map[string]string) error  { return errBroken }
func (failingStorage) Remove(context.Context, ...string) error           { return errBroken }
