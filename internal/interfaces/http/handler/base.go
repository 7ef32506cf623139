// Package handler holds the gin handlers of the back-office API.
package handler

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/alexrentacar/backoffice/internal/application/upload"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/crypto"
	"github.com/alexrentacar/backoffice/internal/infrastructure/logger"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/dto"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDKey)
}

// actor returns the authenticated user. It aborts with 401 when the route
// was mounted without the JWT middleware.
func (h *BaseHandler) actor(c *gin.Context) (identity.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
	}
	return actor, ok
}

// uuidParam parses the path parameter name, answering 400 when malformed
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the body into req, answering 400 with field details on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// bindQuery binds the query string into req
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// formFile opens the multipart file field. The returned close func must be
// deferred by the caller.
func (h *BaseHandler) formFile(c *gin.Context, field string) (upload.File, func(), bool) {
	header, err := c.FormFile(field)
	if err != nil {
		h.BadRequest(c, "Missing file field "+field)
		return upload.File{}, nil, false
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable upload")
		return upload.File{}, nil, false
	}
	return upload.File{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        f,
	}, func() { _ = f.Close() }, true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// paged sends a page of results with its pagination meta
func paged[T any](h *BaseHandler, c *gin.Context, p *shared.Paginated[T]) {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	h.SuccessWithMeta(c, items, p.Total, p.Page, p.PageSize)
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts an error returned by a service into a response.
// Domain errors keep their code; database outages answer 503 and other
// database failures 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.ErrorWithCode(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
		return
	}

	log := logger.GetGinLogger(c)

	switch {
	case errors.Is(err, crypto.ErrDecrypt):
		log.Error("Stored value could not be decrypted", zap.Error(err))
		h.InternalError(c, "An unexpected error occurred")
	case isConnectionError(err):
		log.Error("Database unavailable", zap.Error(err))
		h.databaseError(c, http.StatusServiceUnavailable, dto.ErrCodeDatabaseUnavailable,
			"The database is temporarily unavailable")
	case isDatabaseError(err):
		log.Error("Database error", zap.Error(err))
		h.databaseError(c, http.StatusInternalServerError, dto.ErrCodeDatabase,
			"A database error occurred")
	case errors.Is(err, context.Canceled):
		c.Status(499)
	default:
		log.Error("Unhandled error", zap.Error(err))
		h.InternalError(c, "An unexpected error occurred")
	}
}

// databaseError answers JSON to API clients and plain text to everyone else
func (h *BaseHandler) databaseError(c *gin.Context, status int, code, message string) {
	if wantsJSON(c) {
		h.Error(c, status, code, message)
		return
	}
	c.String(status, message)
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func isDatabaseError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) ||
		errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, gorm.ErrInvalidField) ||
		errors.Is(err, gorm.ErrInvalidData)
}
