package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/middleware"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/gin-gonic/gin"
)

// newEngine returns an engine whose requests run as actor
func newEngine(actor identity.Actor) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ActorKey, actor)
		c.Next()
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Do(t, r, testutil.Request{Method: method, Target: target, Body: body})
}

func doUpload(t *testing.T, r http.Handler, target, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Upload(t, r, target, filename, content)
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	return testutil.DecodeData[T](t, w)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return testutil.ErrorCode(t, w)
}
