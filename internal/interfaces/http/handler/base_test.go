package handler

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/crypto"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/dto"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

func newContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name:       "from context",
			setup:      func(c *gin.Context) { c.Set("request_id", "ctx-request-id") },
			expectedID: "ctx-request-id",
		},
		{
			name:       "from header when context empty",
			setup:      func(c *gin.Context) { c.Request.Header.Set(middleware.RequestIDKey, "header-request-id") },
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set("request_id", "ctx-id")
				c.Request.Header.Set(middleware.RequestIDKey, "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "/")
			tt.setup(c)
			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandler_Responses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/")
		h.Success(c, map[string]string{"key": "value"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decodeResponse(t, w).Success)
	})

	t.Run("created", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/")
		h.Created(c, map[string]string{"id": "123"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("no content", func(t *testing.T) {
		c, w := newContext(http.MethodDelete, "/")
		h.NoContent(c)
		c.Writer.WriteHeaderNow()
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("paged empty page", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/")
		page := shared.NewPaginated[string](nil, 0, 1, 20)
		paged(h, c, &page)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Empty(t, body["data"])
		meta := body["meta"].(map[string]any)
		assert.Equal(t, float64(0), meta["total"])
	})
}

func TestBaseHandler_Helpers(t *testing.T) {
	h := &BaseHandler{}

	t.Run("actor missing answers 401", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/")
		_, ok := h.actor(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, decodeResponse(t, w).Error.Code)
	})

	t.Run("malformed uuid answers 400", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/vehicles/abc")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		_, ok := h.uuidParam(c, "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id format", decodeResponse(t, w).Error.Message)
	})

	t.Run("missing file answers 400", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/")
		_, _, ok := h.formFile(c, "file")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		accept     string
		wantStatus int
		wantCode   string
		wantText   string
	}{
		{
			name:       "not found",
			err:        shared.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("load vehicle: %w", shared.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "field validation code",
			err:        shared.NewDomainError("INVALID_PLATE", "Plate is invalid"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeValidation,
		},
		{
			name:       "duplicate code",
			err:        shared.NewDomainError("DUPLICATE_VEHICLE", "This vehicle is already in this week"),
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeAlreadyExists,
		},
		{
			name:       "invalid state",
			err:        shared.ErrInvalidState,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   dto.ErrCodeInvalidState,
		},
		{
			name:       "in use",
			err:        shared.ErrInUse,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeInUse,
		},
		{
			name:       "undecryptable value",
			err:        fmt.Errorf("scan: %w", crypto.ErrDecrypt),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
		{
			name:       "bad connection as json",
			err:        fmt.Errorf("query: %w", driver.ErrBadConn),
			accept:     "application/json",
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrCodeDatabaseUnavailable,
		},
		{
			name:       "dial failure as text",
			err:        &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantText:   "The database is temporarily unavailable",
		},
		{
			name:       "postgres error",
			err:        &pgconn.PgError{Code: "23514", Message: "check violation"},
			accept:     "application/json",
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeDatabase,
		},
		{
			name:       "gorm invalid transaction as text",
			err:        gorm.ErrInvalidTransaction,
			wantStatus: http.StatusInternalServerError,
			wantText:   "A database error occurred",
		},
		{
			name:       "canceled request",
			err:        context.Canceled,
			wantStatus: 499,
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(http.MethodGet, "/")
			if tt.accept != "" {
				c.Request.Header.Set("Accept", tt.accept)
			}
			h.HandleError(c, tt.err)
			c.Writer.WriteHeaderNow()

			assert.Equal(t, tt.wantStatus, w.Code)
			switch {
			case tt.wantCode != "":
				resp := decodeResponse(t, w)
				assert.False(t, resp.Success)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			case tt.wantText != "":
				assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
				assert.Equal(t, tt.wantText, w.Body.String())
			}
		})
	}
}

func TestBaseHandler_HandleErrorNil(t *testing.T) {
	h := &BaseHandler{}
	c, w := newContext(http.MethodGet, "/")
	h.HandleError(c, nil)
	assert.False(t, c.Writer.Written())
	assert.Equal(t, http.StatusOK, w.Code)
}
