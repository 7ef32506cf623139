package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes objects below a directory served as static files
type LocalStorage struct {
	root          string
	publicBaseURL string
}

// NewLocalStorage creates the root directory if needed
func NewLocalStorage(root, publicBaseURL string) (*LocalStorage, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStorage{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Root returns the directory objects are written to
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) path(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Put writes body to the file for key, replacing any previous content
func (s *LocalStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return f.Close()
}

// Delete removes the file for key; a missing file is not an error
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL joins the public base URL and key
func (s *LocalStorage) URL(key string) string {
	cleaned, err := cleanKey(key)
	if err != nil {
		return ""
	}
	return s.publicBaseURL + "/" + cleaned
}

var _ ObjectStorage = (*LocalStorage)(nil)
