package session

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
)

// Store persists serialized session.
// Load returns nil slice when nothing was saved yet.
type Store interface {
	Load() ([]byte, error)
	Save(b []byte) error
}

type fileStore struct {
	path string
}

// NewFileStore returns store which keeps session in the file.
func NewFileStore(path string) Store {
	return fileStore{path: path}
}

func (s fileStore) Load() ([]byte, error) {
	b, err := ioutil.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	return b, nil
}

func (s fileStore) Save(b []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := ioutil.WriteFile(tmp, b, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}

// MemoryStore keeps session in memory, it is used in tests and for one-shot commands.
type MemoryStore struct {
	mu sync.Mutex
	b  []byte
}

// Load ...
func (s *MemoryStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.b, nil
}

// Save ...
func (s *MemoryStore) Save(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.b = append([]byte(nil), b...)

	return nil
}
