// Package storage provides the small string key-value persistence used for the
// form draft and the theme preference.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Get when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store persists string values by key. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	fileName   = "promptgen.json"
	sqliteName = "promptgen.db"
)

// Open constructs the named backend rooted at dir, creating dir when needed.
// An empty kind selects the file backend.
func Open(kind, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendFile:
		if err := ensureDir(dir, BackendFile); err != nil {
			return nil, err
		}
		return NewFileStore(filepath.Join(dir, fileName))
	case BackendSQLite:
		if err := ensureDir(dir, BackendSQLite); err != nil {
			return nil, err
		}
		return NewSQLStore(filepath.Join(dir, sqliteName))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", kind)
	}
}

func ensureDir(dir, backend string) error {
	if dir == "" {
		return fmt.Errorf("storage: data directory is required for %s backend", backend)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create data directory: %w", err)
	}
	return nil
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("storage: key is required")
	}
	return nil
}
