// Package tokenstore provides a file-backed token store for a single device.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	tokenKey      = "token"
	legacyUserKey = "user"
)

// FileStore keeps string entries in a small JSON document on disk.
// The token lives under "token"; "user" is a legacy entry that is only ever deleted.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("token store path is required")
	}
	return &FileStore{path: path}, nil
}

// Path returns the credentials file location.
func (s *FileStore) Path() string { return s.path }

// Read returns the stored token or "" when none is stored.
func (s *FileStore) Read(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", err
	}
	return entries[tokenKey], nil
}

// Write persists token, replacing any previous one.
func (s *FileStore) Write(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[tokenKey] = token
	return s.save(entries)
}

// Clear removes the token and the legacy user entry.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		// An unreadable file cannot hold a usable token; replace it.
		entries = map[string]string{}
	}
	delete(entries, tokenKey)
	delete(entries, legacyUserKey)
	if len(entries) == 0 {
		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return fmt.Errorf("remove credentials file: %w", rmErr)
		}
		return nil
	}
	return s.save(entries)
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode credentials file: %w", err)
	}
	return entries, nil
}

func (s *FileStore) save(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode credentials file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("write credentials file: %w", err), tmp.Close(), os.Remove(tmpName))
	}
	if err := tmp.Chmod(0o600); err != nil {
		return errors.Join(fmt.Errorf("chmod credentials file: %w", err), tmp.Close(), os.Remove(tmpName))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(fmt.Errorf("close credentials file: %w", err), os.Remove(tmpName))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Join(fmt.Errorf("replace credentials file: %w", err), os.Remove(tmpName))
	}
	return nil
}
