package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerEngine(cfg SwaggerConfig, jwt gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/swagger/*any", SwaggerProtection(cfg, jwt), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return r
}

func getFrom(r http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSwaggerProtection(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }

	tests := []struct {
		name   string
		cfg    SwaggerConfig
		jwt    gin.HandlerFunc
		remote string
		want   int
	}{
		{"disabled", SwaggerConfig{}, nil, "10.0.0.1:1234", http.StatusNotFound},
		{"open", SwaggerConfig{Enabled: true}, nil, "10.0.0.1:1234", http.StatusOK},
		{"exact ip", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, nil, "10.0.0.1:1234", http.StatusOK},
		{"cidr", SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, nil, "192.168.4.7:80", http.StatusOK},
		{"outside", SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, nil, "10.0.0.1:1234", http.StatusForbidden},
		{"garbage list", SwaggerConfig{Enabled: true, AllowedIPs: []string{"nope"}}, nil, "10.0.0.1:1234", http.StatusForbidden},
		{"auth required", SwaggerConfig{Enabled: true, RequireAuth: true}, deny, "10.0.0.1:1234", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getFrom(swaggerEngine(tt.cfg, tt.jwt), tt.remote))
		})
	}
}
