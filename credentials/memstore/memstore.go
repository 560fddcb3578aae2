package memstore

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/jrsteele09/hospital-portal/credentials"
)

var _ credentials.Storage = (*MemStore)(nil)

// MemStore is an in-memory implementation of credentials.Storage. It does
// not survive a restart and is used for tests and throwaway sessions.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty in-memory store
func New() *MemStore {
	return &MemStore{
		values: make(map[string]string),
	}
}

// Get retrieves a value by key
func (m *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

// Set creates or overwrites a value
func (m *MemStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// SetMany writes all values under one lock. No value is written if any key is empty.
func (m *MemStore) SetMany(_ context.Context, values map[string]string) error {
	if _, ok := values[""]; ok {
		return fmt.Errorf("key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	maps.Copy(m.values, values)
	return nil
}

// Remove deletes the keys under one lock
func (m *MemStore) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.values, key) // Already doesn't exist, no error
	}
	return nil
}

// Len returns the number of stored keys
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
