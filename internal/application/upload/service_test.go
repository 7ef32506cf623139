package upload

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func newTestService(storage ObjectStorage) *Service {
	svc := NewService(storage, zap.NewNop())
	svc.now = func() time.Time { return time.Unix(1736150400, 0) }
	return svc
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		category Category
		name     string
		want     bool
	}{
		{CategoryLogos, "logo.PNG", true},
		{CategoryLogos, "logo.webp", true},
		{CategoryLogos, "logo.pdf", false},
		{CategoryLogos, "logo.svg", false},
		{CategoryOwners, "cedula.pdf", true},
		{CategoryTenants, "licencia.jpeg", true},
		{CategoryTenants, "video.mp4", false},
		{CategoryVehicles, "video.mp4", true},
		{CategoryVehicles, "noext", false},
		{Category("other"), "a.png", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.category, tt.name))
		})
	}
}

func TestService_Save(t *testing.T) {
	storage := new(MockObjectStorage)
	svc := newTestService(storage)
	ctx := context.Background()
	body := strings.NewReader("pdf")

	storage.On("Put", ctx, mock.AnythingOfType("string"), body, int64(3), "application/pdf").Return(nil)

	key, err := svc.Save(ctx, CategoryOwners, "Cedula", File{Name: "Mi Cédula.PDF", Size: 3, ContentType: "application/pdf", Body: body})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^owners/cedula_[0-9a-f]{8}_1736150400\.pdf$`), key)
	storage.AssertCalled(t, "Put", ctx, key, body, int64(3), "application/pdf")
}

func TestService_Save_RejectsType(t *testing.T) {
	storage := new(MockObjectStorage)
	svc := newTestService(storage)

	_, err := svc.Save(context.Background(), CategoryLogos, "marca", File{Name: "script.exe"})

	assert.ErrorIs(t, err, ErrInvalidFileType)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "INVALID_FILE_TYPE", de.Code)
	storage.AssertNotCalled(t, "Put")
}

func TestService_Save_StorageError(t *testing.T) {
	storage := new(MockObjectStorage)
	svc := newTestService(storage)
	storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := svc.Save(context.Background(), CategoryVehicles, "", File{Name: "a.mp4"})
	assert.ErrorContains(t, err, "disk full")
}

func TestService_Replace(t *testing.T) {
	storage := new(MockObjectStorage)
	svc := newTestService(storage)
	ctx := context.Background()

	storage.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	storage.On("Delete", ctx, "logos/old.png").Return(errors.New("gone"))

	key, err := svc.Replace(ctx, CategoryLogos, "banco", "logos/old.png", File{Name: "new.png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "logos/banco_"))
	storage.AssertExpectations(t)

	t.Run("no previous file", func(t *testing.T) {
		_, err := svc.Replace(ctx, CategoryLogos, "banco", "", File{Name: "new.png"})
		require.NoError(t, err)
		storage.AssertNumberOfCalls(t, "Delete", 1)
	})
}

func TestService_URL(t *testing.T) {
	storage := new(MockObjectStorage)
	svc := newTestService(storage)
	storage.On("URL", "logos/a.png").Return("/uploads/logos/a.png")

	assert.Equal(t, "/uploads/logos/a.png", svc.URL("logos/a.png"))
	assert.Empty(t, svc.URL(""))
}
