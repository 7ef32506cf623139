// Package storage provides object storage implementations for uploaded files.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/alexrentacar/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrInvalidKey is returned for empty keys or keys escaping the storage root
var ErrInvalidKey = errors.New("invalid storage key")

// ObjectStorage stores uploaded files under slash-separated relative keys
// such as "logos/marca_1a2b3c4d_1736150400.png"
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns the address a browser can fetch the object from
	URL(key string) string
}

// cleanKey validates a key and strips leading slashes
func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// New creates the provider selected by cfg.Provider
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (ObjectStorage, error) {
	if cfg.Provider == "s3" {
		s3, err := NewS3ObjectStorage(&cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s3, nil
	}
	return NewLocalStorage(cfg.LocalRoot, cfg.PublicBaseURL)
}
