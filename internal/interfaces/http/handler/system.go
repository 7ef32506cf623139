package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/alexrentacar/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves liveness and build information
type SystemHandler struct {
	BaseHandler
	version   string
	startTime time.Time
	db        Pinger
	cache     Pinger
}

// NewSystemHandler creates a new SystemHandler. cache may be nil.
func NewSystemHandler(version string, db, cache Pinger) *SystemHandler {
	return &SystemHandler{
		version:   version,
		startTime: time.Now(),
		db:        db,
		cache:     cache,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"Rental Back-office API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Database string `json:"database" example:"connected"`
	Cache    string `json:"cache,omitempty" example:"connected"`
}

// Info godoc
// @Summary      System information
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "Rental Back-office API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Health godoc
// @Summary      Health check
// @Description  503 when the database does not answer; a failing cache only degrades the status
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Database: "connected"}
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	if h.cache != nil {
		resp.Cache = "connected"
		if err := h.cache.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Cache = "disconnected"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Ping godoc
// @Summary      Ping the API
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message":   "pong",
		"timestamp": time.Now().Format(time.RFC3339),
	}))
}
