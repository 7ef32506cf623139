package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("refused") })
)

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name         string
		db           Pinger
		cache        Pinger
		wantStatus   int
		wantHealth   string
		wantCacheMsg string
	}{
		{name: "all up", db: up, cache: up, wantStatus: http.StatusOK, wantHealth: "healthy", wantCacheMsg: "connected"},
		{name: "no cache configured", db: up, wantStatus: http.StatusOK, wantHealth: "healthy"},
		{name: "cache down", db: up, cache: down, wantStatus: http.StatusOK, wantHealth: "degraded", wantCacheMsg: "disconnected"},
		{name: "database down", db: down, cache: up, wantStatus: http.StatusServiceUnavailable, wantHealth: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler("test", tt.db, tt.cache)
			r := gin.New()
			r.GET("/health", h.Health)

			w := doJSON(t, r, http.MethodGet, "/health", nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantHealth, body.Status)
			assert.Equal(t, tt.wantCacheMsg, body.Cache)
		})
	}
}

func TestSystemHandler_Info(t *testing.T) {
	h := NewSystemHandler("1.2.3", up, nil)
	r := gin.New()
	r.GET("/system/info", h.Info)

	w := doJSON(t, r, http.MethodGet, "/system/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decodeData[SystemInfoResponse](t, w)
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
