package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/alexrentacar/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerConfig controls who may open the API documentation
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool
	// AllowedIPs holds addresses or CIDR prefixes; empty allows everyone
	AllowedIPs []string
}

// ipAllowList matches client addresses against configured prefixes.
// Single addresses are stored as full-length prefixes.
type ipAllowList []netip.Prefix

func parseAllowList(entries []string) ipAllowList {
	var list ipAllowList
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if p, err := netip.ParsePrefix(entry); err == nil {
				list = append(list, p.Masked())
			}
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			list = append(list, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
		}
	}
	return list
}

func (l ipAllowList) allows(raw string) bool {
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range l {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// SwaggerProtection guards /swagger: 404 when disabled, then the optional
// IP allow-list, then the optional JWT check.
func SwaggerProtection(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) gin.HandlerFunc {
	allowed := parseAllowList(cfg.AllowedIPs)
	restricted := len(cfg.AllowedIPs) > 0

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNotFound, "API documentation is not available", getRequestID(c)))
			return
		}

		// an allow-list with no parseable entry denies everyone
		if restricted && !allowed.allows(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Access to API documentation is restricted", getRequestID(c)))
			return
		}

		if cfg.RequireAuth && jwtMiddleware != nil {
			jwtMiddleware(c)
			if c.IsAborted() {
				return
			}
		}
		c.Next()
	}
}
