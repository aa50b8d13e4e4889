// Package storage persists uploaded product images on the local filesystem.
// Stored files are renamed to a random UUID so the original filename never
// reaches disk; the returned path doubles as the public reference persisted
// on the product.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes uploaded images into a single directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory when missing.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save streams src to a new file named by a UUID, keeping the original
// extension, and returns the stored path.
func (s *LocalStore) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.dir, uuid.NewString()+ext)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}

	return filepath.ToSlash(path), nil
}
