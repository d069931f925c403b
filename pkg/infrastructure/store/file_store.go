package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileStore writes one JSON file per key under a directory
type FileStore struct {
	fs        afero.Fs
	dir       string
	namespace string
}

// NewFileStore stores files on the OS filesystem under dir
func NewFileStore(dir, namespace string) (*FileStore, error) {
	return NewFileStoreFs(afero.NewOsFs(), dir, namespace)
}

// NewFileStoreFs stores files on an arbitrary afero filesystem
func NewFileStoreFs(fs afero.Fs, dir, namespace string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir, namespace: namespace}, nil
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) path(key string) string {
	name := strings.ReplaceAll(namespacedKey(s.namespace, key), ":", ".")
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Set writes to a temporary file and renames it over the old value
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	target := s.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
