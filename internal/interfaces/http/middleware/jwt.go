package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/infrastructure/auth"
	"github.com/alexrentacar/backoffice/internal/infrastructure/logger"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	ActorKey       = "actor"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// TokenValidator checks an access token's signature and revocation state
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// Validator is required for token validation
	Validator TokenValidator
	// CookieName is the cookie read when no Authorization header is sent
	CookieName string
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(validator TokenValidator, cookieName string) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		Validator:  validator,
		CookieName: cookieName,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/swagger",
		},
	}
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(validator TokenValidator, cookieName string) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(validator, cookieName))
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config.
// The token is taken from the Authorization header, falling back to the
// session cookie set at login.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString, err := extractToken(c, cfg.CookieName)
		if err != nil {
			handleAuthError(c, cfg, err)
			return
		}

		claims, err := cfg.Validator.ValidateAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			handleAuthError(c, cfg, err)
			return
		}

		actor, err := claims.Actor()
		if err != nil {
			handleAuthError(c, cfg, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, string(claims.Role))
		c.Set(ActorKey, actor)

		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))

		if cfg.Logger != nil {
			cfg.Logger.Debug("JWT authentication successful",
				zap.String("user_id", claims.UserID),
				zap.String("username", claims.Username),
			)
		}

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, error) {
	if header := c.GetHeader(AuthHeaderKey); header != "" {
		if !strings.HasPrefix(header, BearerPrefix) {
			return "", auth.ErrInvalidToken
		}
		token := strings.TrimPrefix(header, BearerPrefix)
		if token == "" {
			return "", auth.ErrInvalidToken
		}
		return token, nil
	}
	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token, nil
		}
	}
	return "", errMissingToken
}

var errMissingToken = errors.New("missing authorization token")

// handleAuthError aborts with 401. Redis failures while checking the
// revocation lists are not token problems and abort with 503.
func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error) {
	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	status := http.StatusUnauthorized

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		code, message = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrTokenNotYetValid):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	case errors.Is(err, errMissingToken):
	default:
		code, message = dto.ErrCodeInternal, "Could not verify the session"
		status = http.StatusServiceUnavailable
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("code", code),
			zap.String("path", c.Request.URL.Path),
		)
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetActor returns the authenticated actor stored by the JWT middleware
func GetActor(c *gin.Context) (identity.Actor, bool) {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(identity.Actor); ok {
			return actor, true
		}
	}
	return identity.Actor{}, false
}
