package handler

import (
	appfleet "github.com/alexrentacar/backoffice/internal/application/fleet"
	"github.com/gin-gonic/gin"
)

// VehicleHandler serves the fleet
type VehicleHandler struct {
	BaseHandler
	fleetService *appfleet.Service
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(fleetService *appfleet.Service) *VehicleHandler {
	return &VehicleHandler{fleetService: fleetService}
}

// Create godoc
// @Summary      Register a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        request body appfleet.VehicleRequest true "Vehicle"
// @Success      201 {object} APIResponse[appfleet.VehicleResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appfleet.VehicleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.fleetService.CreateVehicle(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @Summary      List vehicles
// @Tags         vehicles
// @Produce      json
// @Param        search query string false "Plate or color"
// @Param        owner_id query string false "Owner" format(uuid)
// @Param        available query bool false "Availability"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appfleet.VehicleResponse]
// @Security     BearerAuth
// @Router       /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	var filter appfleet.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.fleetService.ListVehicles(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetByID godoc
// @Summary      Get a vehicle
// @Tags         vehicles
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} APIResponse[appfleet.VehicleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.fleetService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
// @Summary      Update a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Param        request body appfleet.VehicleRequest true "Vehicle"
// @Success      200 {object} APIResponse[appfleet.VehicleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vehicles/{id} [put]
func (h *VehicleHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appfleet.VehicleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.fleetService.UpdateVehicle(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @Summary      Delete a vehicle
// @Tags         vehicles
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.fleetService.DeleteVehicle(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadMedia godoc
// @Summary      Upload a vehicle photo or document
// @Tags         vehicles
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Param        kind path string true "photo or document"
// @Param        file formData file true "Image, PDF or MP4"
// @Success      200 {object} APIResponse[appfleet.VehicleResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /vehicles/{id}/media/{kind} [post]
func (h *VehicleHandler) UploadMedia(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	file, closeFile, ok := h.formFile(c, "file")
	if !ok {
		return
	}
	defer closeFile()

	kind := appfleet.MediaKind(c.Param("kind"))
	resp, err := h.fleetService.UploadVehicleMedia(c.Request.Context(), actor, id, kind, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Rentals godoc
// @Summary      Rental history of a vehicle
// @Tags         vehicles
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appfleet.VehicleRentalResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vehicles/{id}/rentals [get]
func (h *VehicleHandler) Rentals(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appfleet.PageRequest
	if !h.bindQuery(c, &req) {
		return
	}
	page, err := h.fleetService.VehicleRentals(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// Repairs godoc
// @Summary      Repair history of a vehicle
// @Tags         vehicles
// @Produce      json
// @Param        id path string true "Vehicle ID" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appfleet.VehicleRepairResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vehicles/{id}/repairs [get]
func (h *VehicleHandler) Repairs(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appfleet.PageRequest
	if !h.bindQuery(c, &req) {
		return
	}
	page, err := h.fleetService.VehicleRepairs(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}
