package redisstore

import (
	"context"

	"github.com/jrsteele09/hospital-portal/credentials"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ credentials.Storage = (*RedisStore)(nil)

// RedisStore keeps the credentials in redis so several portal processes on
// one device share a session. Keys are namespaced as "<prefix>:<key>".
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

func New(rdb redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "portal"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (r *RedisStore) key(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.rdb.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "RedisStore.Get")
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return errors.Wrap(err, "RedisStore.Set")
	}
	return nil
}

// SetMany issues one MSET, which redis applies atomically
func (r *RedisStore) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	pairs := make([]any, 0, 2*len(values))
	for key, value := range values {
		pairs = append(pairs, r.key(key), value)
	}
	if err := r.rdb.MSet(ctx, pairs...).Err(); err != nil {
		return errors.Wrap(err, "RedisStore.SetMany")
	}
	return nil
}

// Remove issues one DEL for all keys, which redis applies atomically
func (r *RedisStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, r.key(key))
	}
	if err := r.rdb.Del(ctx, prefixed...).Err(); err != nil {
		return errors.Wrap(err, "RedisStore.Remove")
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "RedisStore.Ping")
	}
	return nil
}
