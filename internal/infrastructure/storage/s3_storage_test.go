package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func minioConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Provider:          "s3",
		S3Bucket:          "rental-uploads",
		S3AccessKey:       "minioadmin",
		S3SecretKey:       "minioadmin",
		S3Region:          "us-east-1",
		S3Endpoint:        "http://localhost:9000",
		S3UsePathStyle:    true,
		PresignExpiration: 15 * time.Minute,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		cfg := minioConfig()
		cfg.S3Bucket = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		cfg := minioConfig()
		cfg.S3AccessKey = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		cfg := minioConfig()
		cfg.S3SecretKey = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(minioConfig())
		require.NoError(t, err)
		assert.Equal(t, "rental-uploads", storage.GetBucket())
		assert.Equal(t, 15*time.Minute, storage.presignExpiration)
	})

	t.Run("adds https prefix when missing", func(t *testing.T) {
		cfg := minioConfig()
		cfg.S3Endpoint = "s3.example.com/"
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://s3.example.com", storage.endpoint)
	})

	t.Run("default presign expiration is 15 minutes", func(t *testing.T) {
		cfg := minioConfig()
		cfg.PresignExpiration = 0
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, storage.presignExpiration)
	})
}

func TestS3ObjectStorageOptions(t *testing.T) {
	t.Run("WithLogger sets custom logger", func(t *testing.T) {
		logger := zaptest.NewLogger(t)
		storage, err := NewS3ObjectStorage(minioConfig(), WithLogger(logger))
		require.NoError(t, err)
		assert.Same(t, logger, storage.logger)
	})

	t.Run("WithPresignExpiration sets custom duration", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(minioConfig(), WithPresignExpiration(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, storage.presignExpiration)
	})
}

func TestS3ObjectStorage_URL(t *testing.T) {
	t.Run("path-style endpoint URL", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(minioConfig())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/rental-uploads/logos/marca_1.png", storage.URL("/logos/marca_1.png"))
	})

	t.Run("absolute public base URL wins", func(t *testing.T) {
		cfg := minioConfig()
		cfg.PublicBaseURL = "https://cdn.example.com/files/"
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/files/logos/marca_1.png", storage.URL("logos/marca_1.png"))
	})

	t.Run("relative public base URL is ignored", func(t *testing.T) {
		cfg := minioConfig()
		cfg.PublicBaseURL = "/uploads"
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(storage.URL("a.png"), "http://localhost:9000/"))
	})

	t.Run("invalid key yields empty URL", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(minioConfig())
		require.NoError(t, err)
		assert.Empty(t, storage.URL("../secret"))
	})
}

func TestS3ObjectStorage_GenerateDownloadURL(t *testing.T) {
	storage, err := NewS3ObjectStorage(minioConfig())
	require.NoError(t, err)

	t.Run("empty storage key returns error", func(t *testing.T) {
		url, _, err := storage.GenerateDownloadURL(context.Background(), "", 15*time.Minute)
		require.Error(t, err)
		assert.Empty(t, url)
	})

	t.Run("generates presigned URL", func(t *testing.T) {
		url, expiresAt, err := storage.GenerateDownloadURL(context.Background(), "documents/cedula_1.pdf", 0)
		require.NoError(t, err)
		assert.Contains(t, url, "localhost:9000")
		assert.Contains(t, url, "rental-uploads")
		assert.True(t, expiresAt.After(time.Now()))
		assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
	})
}

func TestS3ObjectStorage_KeyValidation(t *testing.T) {
	storage, err := NewS3ObjectStorage(minioConfig())
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, storage.Put(ctx, "", strings.NewReader("x"), 1, "text/plain"), ErrInvalidKey)
	assert.ErrorIs(t, storage.Delete(ctx, "../escape"), ErrInvalidKey)

	exists, err := storage.ObjectExists(ctx, "")
	require.Error(t, err)
	assert.False(t, exists)
}
