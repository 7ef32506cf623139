package handler

import (
	appworkshop "github.com/alexrentacar/backoffice/internal/application/workshop"
	"github.com/gin-gonic/gin"
)

// WorkshopHandler serves mechanics, parts and work orders
type WorkshopHandler struct {
	BaseHandler
	workshopService *appworkshop.Service
}

// NewWorkshopHandler creates a new WorkshopHandler
func NewWorkshopHandler(workshopService *appworkshop.Service) *WorkshopHandler {
	return &WorkshopHandler{workshopService: workshopService}
}

// CreateMechanic godoc
// @Summary      Create a mechanic
// @Tags         workshop
// @Accept       json
// @Produce      json
// @Param        request body appworkshop.MechanicRequest true "Mechanic"
// @Success      201 {object} APIResponse[appworkshop.MechanicResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /mechanics [post]
func (h *WorkshopHandler) CreateMechanic(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appworkshop.MechanicRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.workshopService.CreateMechanic(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListMechanics godoc
// @Summary      List mechanics
// @Tags         workshop
// @Produce      json
// @Param        search query string false "Name or speciality"
// @Param        active query bool false "Active flag"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appworkshop.MechanicResponse]
// @Security     BearerAuth
// @Router       /mechanics [get]
func (h *WorkshopHandler) ListMechanics(c *gin.Context) {
	var filter appworkshop.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.workshopService.ListMechanics(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetMechanic godoc
// @Summary      Get a mechanic
// @Tags         workshop
// @Produce      json
// @Param        id path string true "Mechanic ID" format(uuid)
// @Success      200 {object} APIResponse[appworkshop.MechanicResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /mechanics/{id} [get]
func (h *WorkshopHandler) GetMechanic(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.workshopService.GetMechanic(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateMechanic godoc
// @Summary      Update a mechanic
// @Tags         workshop
// @Accept       json
// @Produce      json
// @Param        id path string true "Mechanic ID" format(uuid)
// @Param        request body appworkshop.MechanicRequest true "Mechanic"
// @Success      200 {object} APIResponse[appworkshop.MechanicResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /mechanics/{id} [put]
func (h *WorkshopHandler) UpdateMechanic(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appworkshop.MechanicRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.workshopService.UpdateMechanic(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteMechanic godoc
// @Summary      Delete a mechanic
// @Tags         workshop
// @Param        id path string true "Mechanic ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /mechanics/{id} [delete]
func (h *WorkshopHandler) DeleteMechanic(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.workshopService.DeleteMechanic(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePart godoc
// @Summary      Create a part
// @Tags         workshop
// @Accept       json
// @Produce      json
// @Param        request body appworkshop.PartRequest true "Part"
// @Success      201 {object} APIResponse[appworkshop.PartResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /parts [post]
func (h *WorkshopHandler) CreatePart(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appworkshop.PartRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.workshopService.CreatePart(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListParts godoc
// @Summary      List parts
// @Tags         workshop
// @Produce      json
// @Param        search query string false "Name or brand"
// @Param        condition query string false "nueva or usada"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appworkshop.PartResponse]
// @Security     BearerAuth
// @Router       /parts [get]
func (h *WorkshopHandler) ListParts(c *gin.Context) {
	var filter appworkshop.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.workshopService.ListParts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetPart godoc
// @Summary      Get a part
// @Tags         workshop
// @Produce      json
// @Param        id path string true "Part ID" format(uuid)
// @Success      200 {object} APIResponse[appworkshop.PartResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /parts/{id} [get]
func (h *WorkshopHandler) GetPart(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.workshopService.GetPart(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdatePart godoc
// @Summary      Update a part
// @Tags         workshop
// @Accept       json
// @Produce      json
// @Param        id path string true "Part ID" format(uuid)
// @Param        request body appworkshop.PartRequest true "Part"
// @Success      200 {object} APIResponse[appworkshop.PartResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /parts/{id} [put]
func (h *WorkshopHandler) UpdatePart(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appworkshop.PartRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.workshopService.UpdatePart(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeletePart godoc
// @Summary      Delete a part
// @Tags         workshop
// @Param        id path string true "Part ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /parts/{id} [delete]
func (h *WorkshopHandler) DeletePart(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.workshopService.DeletePart(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateWorkOrder godoc
// @Summary      Open a work order
// @Tags         workshop
// @Accept       json
// @Produce      json
// @Param        request body appworkshop.WorkOrderRequest true "Work order"
// @Success      201 {object} APIResponse[appworkshop.WorkOrderResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders [post]
func (h *WorkshopHandler) CreateWorkOrder(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appworkshop.WorkOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.workshopService.CreateWorkOrder(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListWorkOrders godoc
// @Summary      List work orders
// @Tags         workshop
// @Produce      json
// @Param        search query string false "Description"
// @Param        vehicle_id query string false "Vehicle" format(uuid)
// @Param        mechanic_id query string false "Mechanic" format(uuid)
// @Param        status query string false "pendiente, en_progreso, completado or cancelado"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appworkshop.WorkOrderResponse]
// @Security     BearerAuth
// @Router       /work-orders [get]
func (h *WorkshopHandler) ListWorkOrders(c *gin.Context) {
	var filter appworkshop.WorkOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.workshopService.ListWorkOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetWorkOrder godoc
// @Summary      Get a work order
// @Tags         workshop
// @Produce      json
// @Param        id path string true "Work order ID" format(uuid)
// @Success      200 {object} APIResponse[appworkshop.WorkOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id} [get]
func (h *WorkshopHandler) GetWorkOrder(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.workshopService.GetWorkOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateWorkOrder godoc
// @Summary      Edit a work order
// @Tags         workshop
// @Accept       json
// @Produce      json
// @Param        id path string true "Work order ID" format(uuid)
// @Param        request body appworkshop.WorkOrderRequest true "Work order"
// @Success      200 {object} APIResponse[appworkshop.WorkOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id} [put]
func (h *WorkshopHandler) UpdateWorkOrder(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appworkshop.WorkOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.workshopService.UpdateWorkOrder(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteWorkOrder godoc
// @Summary      Delete a work order
// @Tags         workshop
// @Param        id path string true "Work order ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id} [delete]
func (h *WorkshopHandler) DeleteWorkOrder(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.workshopService.DeleteWorkOrder(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddPart godoc
// @Summary      Record a part used by a work order
// @Tags         workshop
// @Accept       json
// @Produce      json
// @Param        id path string true "Work order ID" format(uuid)
// @Param        request body appworkshop.PartUsageRequest true "Part usage"
// @Success      201 {object} APIResponse[appworkshop.WorkOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/parts [post]
func (h *WorkshopHandler) AddPart(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appworkshop.PartUsageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.workshopService.AddPartUsage(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemovePart godoc
// @Summary      Remove a part usage
// @Tags         workshop
// @Produce      json
// @Param        id path string true "Work order ID" format(uuid)
// @Param        usage_id path string true "Part usage ID" format(uuid)
// @Success      200 {object} APIResponse[appworkshop.WorkOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/parts/{usage_id} [delete]
func (h *WorkshopHandler) RemovePart(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	usageID, ok := h.uuidParam(c, "usage_id")
	if !ok {
		return
	}
	resp, err := h.workshopService.RemovePartUsage(c.Request.Context(), actor, id, usageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Transition godoc
// @Summary      Change a work order's status
// @Description  pendiente -> en_progreso -> completado; any open order can be cancelado
// @Tags         workshop
// @Accept       json
// @Produce      json
// @Param        id path string true "Work order ID" format(uuid)
// @Param        request body appworkshop.TransitionRequest true "Target status"
// @Success      200 {object} APIResponse[appworkshop.WorkOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/status [patch]
func (h *WorkshopHandler) Transition(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appworkshop.TransitionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.workshopService.TransitionWorkOrder(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
