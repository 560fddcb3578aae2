package redisstore_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/hospital-portal/credentials"
	"github.com/jrsteele09/hospital-portal/credentials/redisstore"
	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*redisstore.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return redisstore.New(rdb, "test"), mr
}

func TestRedisStore_PrefixedKeys(t *testing.T) {
	ctx := context.Background()
	rs, mr := newRedisStore(t)
	require.NoError(t, rs.Ping(ctx))

	require.NoError(t, rs.Set(ctx, credentials.KeyAccessToken, "a1"))
	got, err := mr.Get("test:access_token")
	require.NoError(t, err)
	require.Equal(t, "a1", got)

	value, ok, err := rs.Get(ctx, credentials.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a1", value)

	_, ok, err = rs.Get(ctx, credentials.KeyRefreshToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStore_ClearRemovesAllKeys(t *testing.T) {
	ctx := context.Background()
	rs, mr := newRedisStore(t)
	store := credentials.NewStore(rs)

	store.SetTokens(ctx, "a1", "r1")
	store.SetUserData(ctx, profiles.Profile{UID: "d-1"}, roles.Doctor)
	require.Len(t, mr.Keys(), 4)

	store.ClearTokens(ctx)
	require.Empty(t, mr.Keys())
	require.False(t, store.IsAuthenticated(ctx))

	// idempotent
	store.ClearTokens(ctx)
	require.Empty(t, mr.Keys())
}

func TestRedisStore_SetManyWritesEveryKey(t *testing.T) {
	ctx := context.Background()
	rs, mr := newRedisStore(t)

	require.NoError(t, rs.SetMany(ctx, map[string]string{
		credentials.KeyAccessToken: "a1",
		credentials.KeyUserRole:    "patient",
	}))
	require.ElementsMatch(t, []string{"test:access_token", "test:user_role"}, mr.Keys())
	role, err := mr.Get("test:user_role")
	require.NoError(t, err)
	require.Equal(t, "patient", role)

	require.NoError(t, rs.SetMany(ctx, nil))
}

func TestRedisStore_UnavailableIsAbsent(t *testing.T) {
	ctx := context.Background()
	rs, mr := newRedisStore(t)
	store := credentials.NewStore(rs)
	store.SetTokens(ctx, "a1", "r1")

	mr.Close()

	_, _, err := rs.Get(ctx, credentials.KeyAccessToken)
	require.Error(t, err)
	require.False(t, store.IsAuthenticated(ctx))
	require.NotPanics(t, func() { store.ClearTokens(ctx) })
}
