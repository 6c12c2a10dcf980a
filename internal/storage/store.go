// Package storage persists session snapshots. A Store is a plain key/value
// contract keyed by profile; the simulation never waits on it.
package storage

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when no snapshot exists for the profile.
var ErrNotFound = errors.New("storage: snapshot not found")

// Store loads and saves encoded snapshots.
type Store interface {
	Load(ctx context.Context, profile string) ([]byte, error)
	Save(ctx context.Context, profile string, data []byte) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	saves map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saves: make(map[string][]byte)}
}

// Load returns a copy of the snapshot saved for profile.
func (m *MemoryStore) Load(ctx context.Context, profile string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.saves[profile]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data for profile.
func (m *MemoryStore) Save(ctx context.Context, profile string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[profile] = append([]byte(nil), data...)
	return nil
}
