package middleware

import (
	"net/http"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for role middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireRoles creates middleware that lets through actors holding any of roles.
// It must run after the JWT middleware.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return RequireRolesWithConfig(PermissionConfig{}, roles...)
}

// RequireRolesWithConfig creates role middleware with custom config
func RequireRolesWithConfig(cfg PermissionConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", getRequestID(c)))
			return
		}

		if !actor.HasRole(roles...) {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Role check failed",
					zap.String("user_id", actor.UserID.String()),
					zap.String("role", string(actor.Role)),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Access denied: insufficient permissions", getRequestID(c)))
			return
		}

		c.Next()
	}
}

// RequireAdmin is RequireRoles(identity.RoleAdmin)
func RequireAdmin(cfg PermissionConfig) gin.HandlerFunc {
	return RequireRolesWithConfig(cfg, identity.RoleAdmin)
}
