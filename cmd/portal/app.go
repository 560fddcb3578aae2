package main

import (
	"context"

	"github.com/jrsteele09/hospital-portal/backend"
	"github.com/jrsteele09/hospital-portal/credentials"
	"github.com/jrsteele09/hospital-portal/credentials/filestore"
	"github.com/jrsteele09/hospital-portal/credentials/memstore"
	"github.com/jrsteele09/hospital-portal/credentials/redisstore"
	"github.com/jrsteele09/hospital-portal/internal/config"
	"github.com/jrsteele09/hospital-portal/internal/logging"
	"github.com/jrsteele09/hospital-portal/internal/metrics"
	"github.com/jrsteele09/hospital-portal/session"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// app holds the pieces every command shares. The CLI and a running portal
// built over the same storage see the same persisted session.
type app struct {
	cfg     config.Config
	metrics *metrics.Metrics
	store   *credentials.Store
	session *session.State
	backend *backend.Client
	files   *filestore.FileStore // nil unless credentials live on disk
	closers []func() error
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	logging.Setup(cfg.GetEnv(), cfg.GetLogLevel())

	a := &app{cfg: cfg, metrics: metrics.New()}

	storage, err := a.openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a.store = credentials.NewStore(storage)
	a.session = session.New(a.store, a.metrics)
	a.backend = backend.New(cfg, a.store, backend.WithRecorder(a.metrics))
	a.session.Initialize(ctx)
	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg config.StorageConfig) (credentials.Storage, error) {
	switch cfg.GetCredentialBackend() {
	case config.CredentialBackendMemory:
		log.Debug().Msg("Credentials kept in memory")
		return memstore.New(), nil

	case config.CredentialBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
			DB:       cfg.GetRedisDB(),
		})
		a.closers = append(a.closers, rdb.Close)

		store := redisstore.New(rdb, cfg.GetRedisKeyPrefix())
		if err := store.Ping(ctx); err != nil {
			return nil, errors.Wrap(err, "app.openStorage redis")
		}
		log.Debug().Str("addr", cfg.GetRedisAddr()).Msg("Credentials kept in redis")
		return store, nil

	default:
		files, err := filestore.New(cfg.GetCredentialFile())
		if err != nil {
			return nil, errors.Wrap(err, "app.openStorage file")
		}
		a.files = files
		log.Debug().Str("path", files.Path()).Msg("Credentials kept on disk")
		return files, nil
	}
}

// watchCredentials reloads the session whenever another process rewrites the
// credentials file. It is a no-op for the other storage backends.
func (a *app) watchCredentials(ctx context.Context) {
	if a.files == nil || !a.cfg.GetWatchCredentials() {
		return
	}
	go func() {
		err := a.files.Watch(ctx, filestore.DefaultDebounce, func() {
			a.session.Reload(ctx)
		})
		if err != nil {
			log.Err(err).Msg("Credentials watcher stopped")
		}
	}()
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Err(err).Msg("Failed to close")
		}
	}
}
