package handler

import (
	"fmt"
	"net/http"

	appsettlement "github.com/alexrentacar/backoffice/internal/application/settlement"
	"github.com/gin-gonic/gin"
)

// SettlementHandler serves weekly settlements and profit percentages
type SettlementHandler struct {
	BaseHandler
	settlementService *appsettlement.Service
	profitService     *appsettlement.ProfitService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(settlementService *appsettlement.Service, profitService *appsettlement.ProfitService) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
		profitService:     profitService,
	}
}

// CreateWeek godoc
// @Summary      Open a settlement week
// @Description  Seeds one line item per rental active during the week and lists the rentals left out. Weeks of the same date range cannot coexist.
// @Tags         settlement
// @Accept       json
// @Produce      json
// @Param        request body appsettlement.CreateWeekRequest true "Week"
// @Success      201 {object} APIResponse[appsettlement.CreateWeekResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/weeks [post]
func (h *SettlementHandler) CreateWeek(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appsettlement.CreateWeekRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.settlementService.CreateWeek(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListWeeks godoc
// @Summary      List settlement weeks
// @Description  Newest first, with totals over the filtered set
// @Tags         settlement
// @Produce      json
// @Param        status query string false "abierta, cerrada or cancelada"
// @Param        year query int false "Year of the start date"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[appsettlement.WeekListResponse]
// @Security     BearerAuth
// @Router       /settlement/weeks [get]
func (h *SettlementHandler) ListWeeks(c *gin.Context) {
	var req appsettlement.ListWeeksRequest
	if !h.bindQuery(c, &req) {
		return
	}
	resp, err := h.settlementService.ListWeeks(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetWeek godoc
// @Summary      Get a week with its line items and statistics
// @Tags         settlement
// @Produce      json
// @Param        id path string true "Week ID" format(uuid)
// @Success      200 {object} APIResponse[appsettlement.WeekDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/weeks/{id} [get]
func (h *SettlementHandler) GetWeek(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.settlementService.GetWeek(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BatchEdit godoc
// @Summary      Save edits to many line items of an open week
// @Description  All edits are saved in one transaction. Items of other weeks are skipped.
// @Tags         settlement
// @Accept       json
// @Produce      json
// @Param        id path string true "Week ID" format(uuid)
// @Param        request body appsettlement.BatchEditRequest true "Edits"
// @Success      200 {object} APIResponse[appsettlement.BatchEditResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/weeks/{id}/items [put]
func (h *SettlementHandler) BatchEdit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appsettlement.BatchEditRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.settlementService.BatchEdit(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AvailableRentals godoc
// @Summary      Active rentals not yet in the week
// @Tags         settlement
// @Produce      json
// @Param        id path string true "Week ID" format(uuid)
// @Success      200 {object} APIResponse[[]appsettlement.AvailableRentalResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/weeks/{id}/available-rentals [get]
func (h *SettlementHandler) AvailableRentals(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.settlementService.AvailableRentals(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if rows == nil {
		rows = []appsettlement.AvailableRentalResponse{}
	}
	h.Success(c, rows)
}

// Available godoc
// @Summary      Vehicles and tenants that can be added to the week
// @Tags         settlement
// @Produce      json
// @Param        id path string true "Week ID" format(uuid)
// @Success      200 {object} APIResponse[appsettlement.AvailableResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/weeks/{id}/available [get]
func (h *SettlementHandler) Available(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.settlementService.Available(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddRental godoc
// @Summary      Add a vehicle and tenant pairing to an open week
// @Tags         settlement
// @Accept       json
// @Produce      json
// @Param        id path string true "Week ID" format(uuid)
// @Param        request body appsettlement.AddRentalRequest true "Pairing"
// @Success      201 {object} APIResponse[appsettlement.LineItemResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/weeks/{id}/rentals [post]
func (h *SettlementHandler) AddRental(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appsettlement.AddRentalRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.settlementService.AddRental(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// EditItem godoc
// @Summary      Edit every field of a line item
// @Tags         settlement
// @Accept       json
// @Produce      json
// @Param        item_id path string true "Line item ID" format(uuid)
// @Param        request body appsettlement.FullEditRequest true "Line item"
// @Success      200 {object} APIResponse[appsettlement.LineItemResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/items/{item_id} [put]
func (h *SettlementHandler) EditItem(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "item_id")
	if !ok {
		return
	}
	var req appsettlement.FullEditRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.settlementService.EditItem(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem godoc
// @Summary      Remove a line item from an open week
// @Tags         settlement
// @Produce      json
// @Param        item_id path string true "Line item ID" format(uuid)
// @Success      200 {object} APIResponse[appsettlement.WeekResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/items/{item_id} [delete]
func (h *SettlementHandler) RemoveItem(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "item_id")
	if !ok {
		return
	}
	resp, err := h.settlementService.RemoveItem(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CloseWeek godoc
// @Summary      Close a week
// @Description  Closed weeks are read-only
// @Tags         settlement
// @Produce      json
// @Param        id path string true "Week ID" format(uuid)
// @Success      200 {object} APIResponse[appsettlement.WeekResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/weeks/{id}/close [post]
func (h *SettlementHandler) CloseWeek(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.settlementService.CloseWeek(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteWeek godoc
// @Summary      Delete a week and its line items
// @Description  Weeks with line items can only be deleted by an administrator
// @Tags         settlement
// @Param        id path string true "Week ID" format(uuid)
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/weeks/{id} [delete]
func (h *SettlementHandler) DeleteWeek(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.settlementService.DeleteWeek(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ExportWeek godoc
// @Summary      Download a week as an Excel workbook
// @Tags         settlement
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id path string true "Week ID" format(uuid)
// @Success      200 {file} file
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/weeks/{id}/export [get]
func (h *SettlementHandler) ExportWeek(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	export, err := h.settlementService.ExportWeek(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName))
	c.Data(http.StatusOK, export.ContentType, export.Content)
}

// Banks godoc
// @Summary      Active banks for the deposit picker
// @Tags         settlement
// @Produce      json
// @Success      200 {object} APIResponse[[]appsettlement.BankOption]
// @Security     BearerAuth
// @Router       /settlement/banks [get]
func (h *SettlementHandler) Banks(c *gin.Context) {
	rows, err := h.settlementService.Banks(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if rows == nil {
		rows = []appsettlement.BankOption{}
	}
	h.Success(c, rows)
}

// CreateProfitPercentage godoc
// @Summary      Create a profit percentage
// @Description  Marking it as default clears the flag on the others
// @Tags         settlement
// @Accept       json
// @Produce      json
// @Param        request body appsettlement.ProfitPercentageRequest true "Profit percentage"
// @Success      201 {object} APIResponse[appsettlement.ProfitPercentageResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /settlement/profit-percentages [post]
func (h *SettlementHandler) CreateProfitPercentage(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appsettlement.ProfitPercentageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.profitService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListProfitPercentages godoc
// @Summary      List profit percentages
// @Tags         settlement
// @Produce      json
// @Success      200 {object} APIResponse[[]appsettlement.ProfitPercentageResponse]
// @Security     BearerAuth
// @Router       /settlement/profit-percentages [get]
func (h *SettlementHandler) ListProfitPercentages(c *gin.Context) {
	rows, err := h.profitService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if rows == nil {
		rows = []appsettlement.ProfitPercentageResponse{}
	}
	h.Success(c, rows)
}

// GetProfitPercentage godoc
// @Summary      Get a profit percentage
// @Tags         settlement
// @Produce      json
// @Param        id path string true "Profit percentage ID" format(uuid)
// @Success      200 {object} APIResponse[appsettlement.ProfitPercentageResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/profit-percentages/{id} [get]
func (h *SettlementHandler) GetProfitPercentage(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.profitService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProfitPercentage godoc
// @Summary      Update a profit percentage
// @Tags         settlement
// @Accept       json
// @Produce      json
// @Param        id path string true "Profit percentage ID" format(uuid)
// @Param        request body appsettlement.ProfitPercentageRequest true "Profit percentage"
// @Success      200 {object} APIResponse[appsettlement.ProfitPercentageResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/profit-percentages/{id} [put]
func (h *SettlementHandler) UpdateProfitPercentage(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appsettlement.ProfitPercentageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.profitService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteProfitPercentage godoc
// @Summary      Delete a profit percentage
// @Description  Refused while a week references it
// @Tags         settlement
// @Param        id path string true "Profit percentage ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settlement/profit-percentages/{id} [delete]
func (h *SettlementHandler) DeleteProfitPercentage(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.profitService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
