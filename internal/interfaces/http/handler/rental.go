package handler

import (
	apprental "github.com/alexrentacar/backoffice/internal/application/rental"
	"github.com/gin-gonic/gin"
)

// RentalHandler serves rentals, payments and debts
type RentalHandler struct {
	BaseHandler
	rentalService *apprental.Service
}

// NewRentalHandler creates a new RentalHandler
func NewRentalHandler(rentalService *apprental.Service) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// CreateRental godoc
// @Summary      Create a rental
// @Description  Rentals of one vehicle cannot overlap
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        request body apprental.RentalRequest true "Rental"
// @Success      201 {object} APIResponse[apprental.RentalResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /rentals [post]
func (h *RentalHandler) CreateRental(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req apprental.RentalRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.rentalService.CreateRental(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListRentals godoc
// @Summary      List rentals
// @Tags         rentals
// @Produce      json
// @Param        vehicle_id query string false "Vehicle" format(uuid)
// @Param        tenant_id query string false "Tenant" format(uuid)
// @Param        status_id query string false "Rental status" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]apprental.RentalResponse]
// @Security     BearerAuth
// @Router       /rentals [get]
func (h *RentalHandler) ListRentals(c *gin.Context) {
	var filter apprental.RentalListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.rentalService.ListRentals(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetRental godoc
// @Summary      Get a rental
// @Tags         rentals
// @Produce      json
// @Param        id path string true "Rental ID" format(uuid)
// @Success      200 {object} APIResponse[apprental.RentalResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /rentals/{id} [get]
func (h *RentalHandler) GetRental(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.rentalService.GetRental(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateRental godoc
// @Summary      Update a rental
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        id path string true "Rental ID" format(uuid)
// @Param        request body apprental.RentalRequest true "Rental"
// @Success      200 {object} APIResponse[apprental.RentalResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /rentals/{id} [put]
func (h *RentalHandler) UpdateRental(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apprental.RentalRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.rentalService.UpdateRental(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteRental godoc
// @Summary      Delete a rental
// @Description  Refused while payments reference the rental
// @Tags         rentals
// @Param        id path string true "Rental ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /rentals/{id} [delete]
func (h *RentalHandler) DeleteRental(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.rentalService.DeleteRental(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePayment godoc
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body apprental.PaymentRequest true "Payment"
// @Success      201 {object} APIResponse[apprental.PaymentResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /payments [post]
func (h *RentalHandler) CreatePayment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req apprental.PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.rentalService.CreatePayment(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPayments godoc
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        rental_id query string false "Rental" format(uuid)
// @Param        payment_method_id query string false "Payment method" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]apprental.PaymentResponse]
// @Security     BearerAuth
// @Router       /payments [get]
func (h *RentalHandler) ListPayments(c *gin.Context) {
	var filter apprental.PaymentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.rentalService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[apprental.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *RentalHandler) GetPayment(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.rentalService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdatePayment godoc
// @Summary      Correct a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body apprental.PaymentRequest true "Payment"
// @Success      200 {object} APIResponse[apprental.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [put]
func (h *RentalHandler) UpdatePayment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apprental.PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.rentalService.UpdatePayment(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeletePayment godoc
// @Summary      Delete a payment
// @Tags         payments
// @Param        id path string true "Payment ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [delete]
func (h *RentalHandler) DeletePayment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.rentalService.DeletePayment(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateDebt godoc
// @Summary      Register a debt
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        request body apprental.DebtRequest true "Debt"
// @Success      201 {object} APIResponse[apprental.DebtResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /debts [post]
func (h *RentalHandler) CreateDebt(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req apprental.DebtRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.rentalService.CreateDebt(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListDebts godoc
// @Summary      List debts
// @Tags         debts
// @Produce      json
// @Param        status query string false "pendiente, pagado or condonado"
// @Param        tenant_id query string false "Tenant" format(uuid)
// @Param        vehicle_id query string false "Vehicle" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]apprental.DebtResponse]
// @Security     BearerAuth
// @Router       /debts [get]
func (h *RentalHandler) ListDebts(c *gin.Context) {
	var filter apprental.DebtListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.rentalService.ListDebts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetDebt godoc
// @Summary      Get a debt
// @Tags         debts
// @Produce      json
// @Param        id path string true "Debt ID" format(uuid)
// @Success      200 {object} APIResponse[apprental.DebtResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /debts/{id} [get]
func (h *RentalHandler) GetDebt(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.rentalService.GetDebt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateDebt godoc
// @Summary      Edit a pending debt
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        id path string true "Debt ID" format(uuid)
// @Param        request body apprental.DebtRequest true "Debt"
// @Success      200 {object} APIResponse[apprental.DebtResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /debts/{id} [put]
func (h *RentalHandler) UpdateDebt(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apprental.DebtRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.rentalService.UpdateDebt(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeDebtStatus godoc
// @Summary      Settle or forgive a debt
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        id path string true "Debt ID" format(uuid)
// @Param        request body apprental.DebtStatusRequest true "New status"
// @Success      200 {object} APIResponse[apprental.DebtResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /debts/{id}/status [patch]
func (h *RentalHandler) ChangeDebtStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apprental.DebtStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.rentalService.ChangeDebtStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteDebt godoc
// @Summary      Delete a debt
// @Tags         debts
// @Param        id path string true "Debt ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /debts/{id} [delete]
func (h *RentalHandler) DeleteDebt(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.rentalService.DeleteDebt(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
