// Package localstore is the browser-localStorage analog: a small
// key/value file that survives restarts and is not identity-scoped.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oukeidos/caplet/internal/files"
	"github.com/oukeidos/caplet/internal/logger"
)

// Store is a persistent string map backed by one JSON file.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// DefaultPath returns the store location under the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".caplet", "local.json"), nil
}

// Open loads the store at path. A missing or unreadable file yields an
// empty store; the first Set creates it.
func Open(path string) *Store {
	s := &Store{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Local store unreadable; starting empty", "path", path, "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		logger.Warn("Local store corrupt; starting empty", "path", path, "error", err)
		s.values = make(map[string]string)
	}
	return s
}

// Get returns the value for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores key=value and persists the whole map atomically.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode local store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create local store directory: %w", err)
	}
	return files.AtomicWrite(s.path, data, 0600)
}
