package handler

import (
	appaudit "github.com/alexrentacar/backoffice/internal/application/audit"
	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the change history of records
type AuditHandler struct {
	BaseHandler
	auditService *appaudit.Service
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *appaudit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// History godoc
// @Summary      Change history of a record
// @Description  Newest entries first. Snapshots are decrypted on the way out.
// @Tags         audit
// @Produce      json
// @Param        entity_type path string true "Entity type, e.g. vehicle or settlement_week"
// @Param        entity_id path string true "Entity ID" format(uuid)
// @Param        operation query string false "create, update or delete"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appaudit.EntryResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /admin/audit/{entity_type}/{entity_id} [get]
func (h *AuditHandler) History(c *gin.Context) {
	id, ok := h.uuidParam(c, "entity_id")
	if !ok {
		return
	}
	var filter appaudit.HistoryFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.auditService.History(c.Request.Context(), c.Param("entity_type"), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}
