package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexrentacar/backoffice/internal/application/upload"
	"github.com/alexrentacar/backoffice/internal/infrastructure/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Uploads is an upload service writing below a temporary directory
type Uploads struct {
	*upload.Service
	Root string
}

// NewUploads creates an upload service backed by local storage in t.TempDir()
func NewUploads(t *testing.T) *Uploads {
	t.Helper()
	root := t.TempDir()
	local, err := storage.NewLocalStorage(root, "/uploads")
	require.NoError(t, err)
	return &Uploads{Service: upload.NewService(local, zap.NewNop()), Root: root}
}

// Exists reports whether key was written
func (u *Uploads) Exists(key string) bool {
	_, err := os.Stat(filepath.Join(u.Root, filepath.FromSlash(key)))
	return err == nil
}

// File builds an in-memory upload
func File(name, content string) upload.File {
	return upload.File{
		Name:        name,
		Size:        int64(len(content)),
		ContentType: "application/octet-stream",
		Body:        strings.NewReader(content),
	}
}
