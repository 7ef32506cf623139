package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CORSPolicy is the cross-origin policy of the office frontend. Methods
// and headers arrive already defaulted from the http config section.
type CORSPolicy struct {
	Origins []string
	Methods []string
	Headers []string
}

// exposed to the browser: the export file name and the rate limit state
var exposedHeaders = strings.Join([]string{
	RequestIDKey, "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining",
}, ", ")

const preflightMaxAge = "43200"

// CORS grants the listed origins, with credentials so the session cookie
// travels. "*" grants every origin without credentials. An empty list
// grants nothing. Preflights always end in 204.
func CORS(p CORSPolicy) gin.HandlerFunc {
	allowed := make(map[string]bool, len(p.Origins))
	for _, o := range p.Origins {
		allowed[o] = true
	}
	wildcard := allowed["*"]
	methods := strings.Join(p.Methods, ", ")
	headers := strings.Join(p.Headers, ", ")

	return func(c *gin.Context) {
		h := c.Writer.Header()
		origin := c.GetHeader("Origin")

		granted := true
		switch {
		case wildcard:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		default:
			granted = false
		}
		if granted {
			h.Set("Access-Control-Expose-Headers", exposedHeaders)
		}

		if c.Request.Method == http.MethodOptions {
			if granted {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				h.Set("Access-Control-Max-Age", preflightMaxAge)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestID propagates the caller's X-Request-ID or mints a uuid. Oversized
// IDs are replaced, not truncated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDKey)
		if id == "" || len(id) > MaxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDKey, id)
		c.Next()
	}
}

const (
	// JSON responses load nothing
	apiCSP            = "default-src 'none'; frame-ancestors 'none'"
	hstsValue         = "max-age=31536000; includeSubDomains"
	permissionsPolicy = "camera=(), geolocation=(), microphone=(), payment=(), usb=()"
)

// SecurityHeaders sets the hardening headers. HSTS is sent only when the
// back-office is served over HTTPS. Paths under docsPrefix get no CSP so the
// swagger UI can run its inline bootstrap.
func SecurityHeaders(https bool, docsPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Permissions-Policy", permissionsPolicy)
		if docsPrefix == "" || !strings.HasPrefix(c.Request.URL.Path, docsPrefix) {
			h.Set("Content-Security-Policy", apiCSP)
		}
		if https {
			h.Set("Strict-Transport-Security", hstsValue)
		}
		c.Next()
	}
}
