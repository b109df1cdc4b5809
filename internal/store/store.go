// Package store provides the local string-keyed persistence boundary.
// Values are JSON-serializable; the file backend stands in for the device's
// preference storage.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/tartampluch/go-companion/internal/config"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New(config.ErrKeyMissing)

// KV is the interface for a persistent key-value store.
// Keys are strings, values are JSON-serializable.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Has(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

// FileStore implements KV on top of a single JSON file holding a key/value map.
// There is exactly one writer (the current session), so a mutex is enough.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ KV = (*FileStore)(nil)

// NewFileStore creates a store backed by the given file, creating its parent
// directory with restricted permissions if needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return &FileStore{path: path}, nil
}

// Get decodes the stored value for key into dest.
// Returns ErrNotFound when the key (or the whole file) does not exist.
func (s *FileStore) Get(ctx context.Context, key string, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	raw, ok := entries[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
	}
	return nil
}

// Set encodes value and persists it under key.
// The whole map is rewritten atomically via a temp-file rename so that a crash
// mid-write never leaves a truncated store behind.
func (s *FileStore) Set(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	entries[key] = raw

	return s.write(entries)
}

// Has reports whether key exists in the store.
func (s *FileStore) Has(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return false, err
	}
	_, ok := entries[key]
	return ok, nil
}

// Delete removes key from the store. Deleting a missing key is a no-op.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.write(entries)
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}

	entries := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt store degrades to empty rather than blocking every read.
		slog.Warn(config.MsgStateLoadFailed,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyFile, s.path,
			config.LogKeyError, err,
		)
		return map[string]json.RawMessage{}, nil
	}
	return entries, nil
}

func (s *FileStore) write(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	return nil
}
