package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/hospital-portal/credentials"
	"github.com/jrsteele09/hospital-portal/credentials/filestore"
	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) (*filestore.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portal", "credentials.json")
	fs, err := filestore.New(path)
	require.NoError(t, err)
	return fs, path
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	fs, path := newFileStore(t)

	store := credentials.NewStore(fs)
	store.SetTokens(ctx, "access-1", "refresh-1")
	store.SetUserData(ctx, profiles.Profile{UID: "p-1", Email: "a@b.com"}, roles.Patient)

	reopened, err := filestore.New(path)
	require.NoError(t, err)
	restarted := credentials.NewStore(reopened)

	require.True(t, restarted.IsAuthenticated(ctx))
	profile, ok := restarted.GetUserData(ctx)
	require.True(t, ok)
	require.Equal(t, "p-1", profile.UID)
	role, ok := restarted.GetUserRole(ctx)
	require.True(t, ok)
	require.Equal(t, roles.Patient, role)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_RemoveIsSingleReplacement(t *testing.T) {
	ctx := context.Background()
	fs, path := newFileStore(t)

	for _, key := range credentials.Keys {
		require.NoError(t, fs.Set(ctx, key, "v"))
	}
	require.NoError(t, fs.Remove(ctx, credentials.Keys...))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(data))

	// Removing from an already empty store is a no-op
	require.NoError(t, fs.Remove(ctx, credentials.Keys...))
}

func TestFileStore_SetManyIsSingleReplacement(t *testing.T) {
	ctx := context.Background()
	fs, path := newFileStore(t)
	require.NoError(t, fs.Set(ctx, "unrelated", "kept"))

	require.NoError(t, fs.SetMany(ctx, map[string]string{
		credentials.KeyAccessToken:  "a",
		credentials.KeyRefreshToken: "r",
		credentials.KeyUserData:     `{"uid":"p-1"}`,
		credentials.KeyUserRole:     "patient",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"unrelated": "kept",
		"access_token": "a",
		"refresh_token": "r",
		"user_data": "{\"uid\":\"p-1\"}",
		"user_role": "patient"
	}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	fs, _ := newFileStore(t)
	_, ok, err := fs.Get(context.Background(), credentials.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	fs, path := newFileStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := fs.Get(ctx, credentials.KeyAccessToken)
	require.Error(t, err)

	// The credential store reports the unreadable document as logged out
	require.False(t, credentials.NewStore(fs).IsAuthenticated(ctx))

	// and the next write replaces it
	require.NoError(t, fs.Set(ctx, credentials.KeyAccessToken, "a"))
	value, ok, err := fs.Get(ctx, credentials.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", value)
}

func TestFileStore_WatchReportsOtherWriters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watched, path := newFileStore(t)
	require.NoError(t, watched.Set(ctx, credentials.KeyAccessToken, "mine"))

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watched.Watch(ctx, 20*time.Millisecond, func() { changes.Add(1) })
	}()

	// Give the watcher time to register before the other process writes
	time.Sleep(100 * time.Millisecond)

	other, err := filestore.New(path)
	require.NoError(t, err)
	require.NoError(t, other.Remove(ctx, credentials.Keys...))

	require.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
