package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *time.Time) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	rl := NewRateLimiter(ctx, limit, window)
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Window(t *testing.T) {
	rl, now := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"))
	}
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.Equal(t, 0, rl.Remaining("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "keys are independent")

	*now = now.Add(30 * time.Second)
	assert.Equal(t, 30*time.Second, rl.retryAfter("10.0.0.1"))

	*now = now.Add(31 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.Equal(t, 2, rl.Remaining("10.0.0.1"))
}

func TestRateLimit_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	r := gin.New()
	r.Use(RateLimitByKey(rl, LoginRateLimitKey))
	r.POST("/login", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
}
