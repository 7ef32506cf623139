package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Category is the top-level directory an upload is stored under
type Category string

const (
	CategoryLogos    Category = "logos"
	CategoryOwners   Category = "owners"
	CategoryTenants  Category = "tenants"
	CategoryVehicles Category = "vehicles"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// allowedExtensions lists the accepted file extensions per category
var allowedExtensions = map[Category][]string{
	CategoryLogos:    imageExtensions,
	CategoryOwners:   append(append([]string{}, imageExtensions...), ".pdf"),
	CategoryTenants:  append(append([]string{}, imageExtensions...), ".pdf"),
	CategoryVehicles: append(append([]string{}, imageExtensions...), ".pdf", ".mp4"),
}

// ErrInvalidFileType is returned for an extension outside the category allow-list
var ErrInvalidFileType = shared.NewDomainError("INVALID_FILE_TYPE", "File type not allowed")

// ObjectStorage is where uploaded files end up
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// File is an uploaded file as received from a multipart form
type File struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// Service validates and stores uploaded files
type Service struct {
	storage ObjectStorage
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new upload service
func NewService(storage ObjectStorage, logger *zap.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Allowed reports whether fileName may be stored under category
func Allowed(category Category, fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return false
	}
	for _, allowed := range allowedExtensions[category] {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Save stores f under category and returns its relative key,
// named <prefix>_<uuid8>_<unix><ext>
func (s *Service) Save(ctx context.Context, category Category, prefix string, f File) (string, error) {
	if !Allowed(category, f.Name) {
		return "", shared.WrapDomainError(ErrInvalidFileType.Code,
			fmt.Sprintf("File type of %q is not allowed for %s", f.Name, category), ErrInvalidFileType)
	}

	key := path.Join(string(category), s.fileName(prefix, f.Name))
	if err := s.storage.Put(ctx, key, f.Body, f.Size, f.ContentType); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	s.logger.Info("File uploaded",
		zap.String("category", string(category)),
		zap.String("key", key),
		zap.Int64("size", f.Size),
	)
	return key, nil
}

// Replace stores f and removes the previous file when one was set
func (s *Service) Replace(ctx context.Context, category Category, prefix, previous string, f File) (string, error) {
	key, err := s.Save(ctx, category, prefix, f)
	if err != nil {
		return "", err
	}
	s.Remove(ctx, previous)
	return key, nil
}

// Remove deletes a stored file. Failures are logged, never returned, since
// the owning record is already updated when this runs.
func (s *Service) Remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Failed to delete uploaded file", zap.String("key", key), zap.Error(err))
	}
}

// URL returns the public address of key, or "" when key is empty
func (s *Service) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.storage.URL(key)
}

func (s *Service) fileName(prefix, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	prefix = strings.Trim(strings.ToLower(strings.ReplaceAll(prefix, " ", "_")), "_")
	if prefix == "" {
		prefix = "file"
	}
	return fmt.Sprintf("%s_%s_%d%s", prefix, uuid.NewString()[:8], s.now().Unix(), ext)
}
