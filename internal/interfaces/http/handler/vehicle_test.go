package handler

import (
	"net/http"
	"strings"
	"testing"

	appfleet "github.com/alexrentacar/backoffice/internal/application/fleet"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/dto"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVehicleEngine(t *testing.T) (*gin.Engine, *testutil.TestStore, *testutil.Uploads) {
	t.Helper()
	store := testutil.NewTestStore(t)
	uploads := testutil.NewUploads(t)
	h := NewVehicleHandler(appfleet.NewService(store, uploads.Service, zap.NewNop()))

	r := newEngine(testutil.UserActor())
	r.POST("/vehicles", h.Create)
	r.GET("/vehicles", h.List)
	r.GET("/vehicles/:id", h.GetByID)
	r.PUT("/vehicles/:id", h.Update)
	r.DELETE("/vehicles/:id", h.Delete)
	r.POST("/vehicles/:id/media/:kind", h.UploadMedia)
	r.GET("/vehicles/:id/rentals", h.Rentals)
	return r, store, uploads
}

func TestVehicleHandler_CRUD(t *testing.T) {
	r, store, _ := newVehicleEngine(t)
	owner := store.Seed(t).Owner("ana gómez", "V-1000")

	w := doJSON(t, r, http.MethodPost, "/vehicles", map[string]any{
		"owner_id":     owner.ID,
		"plate":        "ab123cd",
		"weekly_price": "350",
		"available":    true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData[appfleet.VehicleResponse](t, w)
	assert.Equal(t, "AB123CD", created.Plate)

	t.Run("duplicate plate", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/vehicles", map[string]any{
			"owner_id":     owner.ID,
			"plate":        "AB123CD",
			"weekly_price": "300",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/vehicles?search=ab1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		env := testutil.DecodeEnvelope(t, w)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(1), env.Meta.Total)
	})

	t.Run("update", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/vehicles/"+created.ID.String(), map[string]any{
			"owner_id":     owner.ID,
			"plate":        "AB123CD",
			"color":        "rojo",
			"weekly_price": "375",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "rojo", decodeData[appfleet.VehicleResponse](t, w).Color)
	})

	t.Run("rental history is empty", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/vehicles/"+created.ID.String()+"/rentals", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(0), testutil.DecodeEnvelope(t, w).Meta.Total)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/vehicles/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodGet, "/vehicles/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVehicleHandler_CreateValidation(t *testing.T) {
	r, _, _ := newVehicleEngine(t)

	w := doJSON(t, r, http.MethodPost, "/vehicles", map[string]any{
		"owner_id": uuid.New(),
		"plate":    "??",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
}

func TestVehicleHandler_UploadMedia(t *testing.T) {
	r, store, uploads := newVehicleEngine(t)
	seed := store.Seed(t)
	vehicle := seed.Vehicle(seed.Owner("ana gómez", "V-1000").ID, "ab123cd", 350)
	base := "/vehicles/" + vehicle.ID.String() + "/media/"

	t.Run("photo", func(t *testing.T) {
		w := doUpload(t, r, base+"photo", "front.jpg", []byte("jpeg"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeData[appfleet.VehicleResponse](t, w)
		assert.True(t, strings.HasPrefix(resp.PhotoPath, "vehicles/AB123CD_photo_"))
		assert.True(t, uploads.Exists(resp.PhotoPath))
	})

	t.Run("disallowed extension", func(t *testing.T) {
		w := doUpload(t, r, base+"document", "script.exe", []byte("MZ"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidFileType, errorCode(t, w))
	})

	t.Run("unknown media kind", func(t *testing.T) {
		w := doUpload(t, r, base+"audio", "note.pdf", []byte("%PDF"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
