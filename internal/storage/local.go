// Package storage persists uploaded attachments on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Storage errors.
var (
	ErrEmptyFilename = errors.New("filename is empty")
)

// unsafeChars matches everything outside the allowed filename alphabet.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// LocalStore writes files into a server-controlled directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a store.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the upload directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes the reader's content under the given name inside the
// upload directory and returns the stored path. The name must already
// be sanitized; Save rejects anything that would escape the directory.
func (s *LocalStore) Save(name string, r io.Reader) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrEmptyFilename
	}

	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close file: %w", err)
	}

	return path, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *LocalStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// SanitizeFilename reduces a client-supplied filename to a safe base
// name: path components are stripped and disallowed characters removed.
// Returns ErrEmptyFilename when nothing safe remains.
func SanitizeFilename(name string) (string, error) {
	// Client path separators, both flavors, are never trusted.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")

	if name == "" {
		return "", ErrEmptyFilename
	}

	return name, nil
}
