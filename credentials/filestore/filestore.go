package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/hospital-portal/credentials"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var _ credentials.Storage = (*FileStore)(nil)

// FileStore keeps the credentials in a single JSON document on disk so they
// survive a restart. Every write replaces the file through a temp file and a
// rename, so readers see either the old or the new document, never a torn one.
type FileStore struct {
	path string

	mu          sync.Mutex
	lastWritten []byte
}

// New creates the parent directory if needed. The file itself is created on first write.
func New(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "FileStore.New MkdirAll")
	}
	return &FileStore{path: filepath.Clean(path)}, nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := f.loadOrReset()
	values[key] = value
	return f.save(values)
}

// SetMany writes all values in one file replacement
func (f *FileStore) SetMany(_ context.Context, values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current := f.loadOrReset()
	maps.Copy(current, values)
	return f.save(current)
}

// Remove deletes all keys in one file replacement
func (f *FileStore) Remove(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := f.loadOrReset()
	changed := false
	for _, key := range keys {
		if _, ok := values[key]; ok {
			delete(values, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.save(values)
}

func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.load ReadFile")
	}
	values := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "FileStore.load Unmarshal")
	}
	return values, nil
}

// loadOrReset starts from an empty document when the file is unreadable so a
// corrupt file is replaced by the next write instead of blocking it forever
func (f *FileStore) loadOrReset() map[string]string {
	values, err := f.load()
	if err != nil {
		log.Warn().Err(err).Str("path", f.path).Msg("Discarding unreadable credentials file")
		return map[string]string{}
	}
	return values
}

func (f *FileStore) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "FileStore.save Marshal")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".credentials-*.tmp")
	if err != nil {
		return errors.Wrap(err, "FileStore.save CreateTemp")
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "FileStore.save Write")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "FileStore.save Sync")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "FileStore.save Close")
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return errors.Wrap(err, "FileStore.save Chmod")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrap(err, "FileStore.save Rename")
	}
	f.lastWritten = data
	return nil
}

// isOwnWrite reports whether the file currently holds exactly what this process last wrote
func (f *FileStore) isOwnWrite() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return f.lastWritten == nil && errors.Is(err, os.ErrNotExist)
	}
	return f.lastWritten != nil && bytes.Equal(data, f.lastWritten)
}
