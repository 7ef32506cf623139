// HTTP helpers shared by handler and API tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Request describes one call against an http.Handler
type Request struct {
	Method string
	Target string
	Body   any
	// Token is sent as a bearer Authorization header when set
	Token   string
	Headers map[string]string
}

// Do serves req on h as a JSON client
func Do(t *testing.T, h http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		require.NoError(t, err, "Failed to marshal request body")
		body = bytes.NewReader(raw)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	r := httptest.NewRequest(method, req.Target, body)
	r.Header.Set("Accept", "application/json")
	if req.Body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// Upload posts content as the multipart "file" field
func Upload(t *testing.T, h http.Handler, target, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// Envelope is the API response with data kept raw
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

// DecodeEnvelope parses the recorded body
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// DecodeData requires a successful response and decodes its data into T
func DecodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	env := DecodeEnvelope(t, w)
	require.True(t, env.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

// ErrorCode requires an error response and returns its code
func ErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := DecodeEnvelope(t, w)
	require.NotNil(t, env.Error, w.Body.String())
	return env.Error.Code
}
