// Package state stores draft snapshots as JSON files under the data
// directory, one file per draft key.
package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/logger"
)

// ErrBadKey is returned for keys that would escape the data directory.
var ErrBadKey = errors.New("draft key must be a plain file name")

// FileStore implements draft.Store on the local filesystem.
type FileStore struct {
	dir string
}

var _ draft.Store = (*FileStore)(nil)

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file that holds key.
func (s *FileStore) Path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get reads the draft file for key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, draft.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading draft file: %w", err)
	}
	return data, nil
}

// Put writes the draft atomically: a temp file in the same directory is
// renamed over the target so a crash never leaves a half-written draft.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp draft file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing draft file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing draft file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing draft file: %w", err)
	}

	logger.Debug("Draft written to %s", path)
	return nil
}

// Delete removes the draft file. A missing file is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing draft file: %w", err)
	}
	return nil
}
