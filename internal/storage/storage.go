// Package storage provides small string key/value stores for persisted
// settings such as high scores.
package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string key/value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Memory is an in-process Store. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Get returns the value stored under key, or ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// Open returns the SQLite store at path, or an in-memory store when path
// is empty or ":memory:". Close the returned closer on exit.
func Open(ctx context.Context, path string) (Store, io.Closer, error) {
	if path == "" || path == ":memory:" {
		return NewMemory(), nopCloser{}, nil
	}
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return db, db, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// DefaultPath returns the scores database path in the user's config
// directory for app, creating the directory. It returns "" (in-memory) when
// there is no usable config directory.
func DefaultPath(app string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "scores.db")
}
