// Package kv stores named string slots.
//
// Every slot is read and written whole. A failure on one slot never touches
// another, so a corrupt value in one key is isolated to that key.
package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound is returned by Get for a slot that was never written.
	ErrNotFound = errors.New("kv: slot not found")

	// ErrQuotaExceeded is returned by Set when a backend's quota is full.
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Slots is a named-slot store.
type Slots interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

var (
	_ Slots = (*Memory)(nil)
	_ Slots = (*SQLite)(nil)
	_ Slots = (*Badger)(nil)
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Open returns the backend named by backend. path is a database file for
// sqlite and a directory for badger; ":memory:" or "" keeps either in memory.
func Open(backend, path string) (Slots, error) {
	switch backend {
	case "", BackendSQLite:
		if path == "" {
			path = ":memory:"
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("kv: create data dir: %w", err)
			}
		}
		return OpenSQLite(path)
	case BackendBadger:
		return OpenBadger(path)
	case BackendMemory:
		return NewMemory(0), nil
	}
	return nil, fmt.Errorf("kv: unknown backend %q", backend)
}
