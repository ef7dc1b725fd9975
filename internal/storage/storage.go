// Package storage keeps uploaded files on the local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPath is returned for paths that would escape the storage root.
var ErrInvalidPath = errors.New("invalid storage path")

// BlobStore stores files under a namespace and returns their relative path.
type BlobStore interface {
	Put(namespace, filename string, r io.Reader) (string, error)
	Delete(relPath string) error
	URL(relPath string) string
}

// LocalStore writes files below Root. Stored files are served under URLPrefix.
type LocalStore struct {
	Root      string
	URLPrefix string
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root %s: %w", root, err)
	}
	return &LocalStore{Root: root, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *LocalStore) resolve(relPath string) (string, error) {
	clean := path.Clean("/" + relPath)
	if clean == "/" || strings.Contains(relPath, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, relPath)
	}
	return filepath.Join(s.Root, filepath.FromSlash(clean)), nil
}

// Put writes r to namespace/<uuid><ext>. Only the extension of filename is kept.
func (s *LocalStore) Put(namespace, filename string, r io.Reader) (string, error) {
	relPath := path.Join(namespace, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	full, err := s.resolve(relPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", relPath, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", relPath, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("writing %s: %w", relPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("closing %s: %w", relPath, err)
	}
	return relPath, nil
}

// Delete removes relPath. A missing file is not an error.
func (s *LocalStore) Delete(relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting %s: %w", relPath, err)
	}
	return nil
}

// URL returns the public URL of relPath.
func (s *LocalStore) URL(relPath string) string {
	return s.URLPrefix + "/" + strings.TrimLeft(relPath, "/")
}
