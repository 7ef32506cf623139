package handler

import (
	appparty "github.com/alexrentacar/backoffice/internal/application/party"
	"github.com/gin-gonic/gin"
)

// PartyHandler serves owners and tenants
type PartyHandler struct {
	BaseHandler
	partyService *appparty.Service
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(partyService *appparty.Service) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// documentKind validates the :kind path parameter of document uploads
func (h *PartyHandler) documentKind(c *gin.Context) (appparty.DocumentKind, bool) {
	kind := appparty.DocumentKind(c.Param("kind"))
	if !kind.IsValid() {
		h.HandleError(c, appparty.ErrInvalidDocumentKind)
		return "", false
	}
	return kind, true
}

// CreateOwner godoc
// @Summary      Create an owner
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        request body appparty.OwnerRequest true "Owner"
// @Success      201 {object} APIResponse[appparty.OwnerResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /owners [post]
func (h *PartyHandler) CreateOwner(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appparty.OwnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.partyService.CreateOwner(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListOwners godoc
// @Summary      List owners
// @Tags         owners
// @Produce      json
// @Param        search query string false "Name"
// @Param        user_id query string false "Linked user" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appparty.OwnerResponse]
// @Security     BearerAuth
// @Router       /owners [get]
func (h *PartyHandler) ListOwners(c *gin.Context) {
	var filter appparty.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.partyService.ListOwners(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetOwner godoc
// @Summary      Get an owner
// @Tags         owners
// @Produce      json
// @Param        id path string true "Owner ID" format(uuid)
// @Success      200 {object} APIResponse[appparty.OwnerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /owners/{id} [get]
func (h *PartyHandler) GetOwner(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.partyService.GetOwner(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateOwner godoc
// @Summary      Update an owner
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        id path string true "Owner ID" format(uuid)
// @Param        request body appparty.OwnerRequest true "Owner"
// @Success      200 {object} APIResponse[appparty.OwnerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /owners/{id} [put]
func (h *PartyHandler) UpdateOwner(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appparty.OwnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.partyService.UpdateOwner(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteOwner godoc
// @Summary      Delete an owner
// @Description  Refused while the owner still has vehicles
// @Tags         owners
// @Param        id path string true "Owner ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /owners/{id} [delete]
func (h *PartyHandler) DeleteOwner(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.partyService.DeleteOwner(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadOwnerDocument godoc
// @Summary      Upload an owner document
// @Tags         owners
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Owner ID" format(uuid)
// @Param        kind path string true "id, license or good_conduct"
// @Param        file formData file true "Image or PDF"
// @Success      200 {object} APIResponse[appparty.OwnerResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /owners/{id}/documents/{kind} [post]
func (h *PartyHandler) UploadOwnerDocument(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	kind, ok := h.documentKind(c)
	if !ok {
		return
	}
	file, closeFile, ok := h.formFile(c, "file")
	if !ok {
		return
	}
	defer closeFile()

	resp, err := h.partyService.UploadOwnerDocument(c.Request.Context(), actor, id, kind, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddOwnerReference godoc
// @Summary      Add an owner reference
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        id path string true "Owner ID" format(uuid)
// @Param        request body appparty.ReferenceRequest true "Reference"
// @Success      201 {object} APIResponse[appparty.OwnerResponse]
// @Security     BearerAuth
// @Router       /owners/{id}/references [post]
func (h *PartyHandler) AddOwnerReference(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appparty.ReferenceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.partyService.AddOwnerReference(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveOwnerReference godoc
// @Summary      Remove an owner reference
// @Tags         owners
// @Produce      json
// @Param        id path string true "Owner ID" format(uuid)
// @Param        ref_id path string true "Reference ID" format(uuid)
// @Success      200 {object} APIResponse[appparty.OwnerResponse]
// @Security     BearerAuth
// @Router       /owners/{id}/references/{ref_id} [delete]
func (h *PartyHandler) RemoveOwnerReference(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	refID, ok := h.uuidParam(c, "ref_id")
	if !ok {
		return
	}
	resp, err := h.partyService.RemoveOwnerReference(c.Request.Context(), actor, id, refID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateTenant godoc
// @Summary      Create a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body appparty.TenantRequest true "Tenant"
// @Success      201 {object} APIResponse[appparty.TenantResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /tenants [post]
func (h *PartyHandler) CreateTenant(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appparty.TenantRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.partyService.CreateTenant(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListTenants godoc
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Param        search query string false "Name"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appparty.TenantResponse]
// @Security     BearerAuth
// @Router       /tenants [get]
func (h *PartyHandler) ListTenants(c *gin.Context) {
	var filter appparty.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.partyService.ListTenants(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetTenant godoc
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[appparty.TenantResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id} [get]
func (h *PartyHandler) GetTenant(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.partyService.GetTenant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateTenant godoc
// @Summary      Update a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        request body appparty.TenantRequest true "Tenant"
// @Success      200 {object} APIResponse[appparty.TenantResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id} [put]
func (h *PartyHandler) UpdateTenant(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appparty.TenantRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.partyService.UpdateTenant(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteTenant godoc
// @Summary      Delete a tenant
// @Description  Refused while rentals, debts or settlement items reference the tenant
// @Tags         tenants
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id} [delete]
func (h *PartyHandler) DeleteTenant(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.partyService.DeleteTenant(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadTenantDocument godoc
// @Summary      Upload a tenant document
// @Tags         tenants
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        kind path string true "id, license or good_conduct"
// @Param        file formData file true "Image or PDF"
// @Success      200 {object} APIResponse[appparty.TenantResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id}/documents/{kind} [post]
func (h *PartyHandler) UploadTenantDocument(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	kind, ok := h.documentKind(c)
	if !ok {
		return
	}
	file, closeFile, ok := h.formFile(c, "file")
	if !ok {
		return
	}
	defer closeFile()

	resp, err := h.partyService.UploadTenantDocument(c.Request.Context(), actor, id, kind, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddGuarantor godoc
// @Summary      Add a guarantor
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        request body appparty.GuarantorRequest true "Guarantor"
// @Success      201 {object} APIResponse[appparty.TenantResponse]
// @Security     BearerAuth
// @Router       /tenants/{id}/guarantors [post]
func (h *PartyHandler) AddGuarantor(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appparty.GuarantorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.partyService.AddGuarantor(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveGuarantor godoc
// @Summary      Remove a guarantor
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        guarantor_id path string true "Guarantor ID" format(uuid)
// @Success      200 {object} APIResponse[appparty.TenantResponse]
// @Security     BearerAuth
// @Router       /tenants/{id}/guarantors/{guarantor_id} [delete]
func (h *PartyHandler) RemoveGuarantor(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	guarantorID, ok := h.uuidParam(c, "guarantor_id")
	if !ok {
		return
	}
	resp, err := h.partyService.RemoveGuarantor(c.Request.Context(), actor, id, guarantorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UploadEmploymentLetter godoc
// @Summary      Upload a guarantor's employment letter
// @Tags         tenants
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        guarantor_id path string true "Guarantor ID" format(uuid)
// @Param        file formData file true "Image or PDF"
// @Success      200 {object} APIResponse[appparty.TenantResponse]
// @Security     BearerAuth
// @Router       /tenants/{id}/guarantors/{guarantor_id}/employment-letter [post]
func (h *PartyHandler) UploadEmploymentLetter(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	guarantorID, ok := h.uuidParam(c, "guarantor_id")
	if !ok {
		return
	}
	file, closeFile, ok := h.formFile(c, "file")
	if !ok {
		return
	}
	defer closeFile()

	resp, err := h.partyService.UploadEmploymentLetter(c.Request.Context(), actor, id, guarantorID, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddTenantReference godoc
// @Summary      Add a tenant reference
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        request body appparty.ReferenceRequest true "Reference"
// @Success      201 {object} APIResponse[appparty.TenantResponse]
// @Security     BearerAuth
// @Router       /tenants/{id}/references [post]
func (h *PartyHandler) AddTenantReference(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appparty.ReferenceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.partyService.AddTenantReference(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveTenantReference godoc
// @Summary      Remove a tenant reference
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        ref_id path string true "Reference ID" format(uuid)
// @Success      200 {object} APIResponse[appparty.TenantResponse]
// @Security     BearerAuth
// @Router       /tenants/{id}/references/{ref_id} [delete]
func (h *PartyHandler) RemoveTenantReference(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	refID, ok := h.uuidParam(c, "ref_id")
	if !ok {
		return
	}
	resp, err := h.partyService.RemoveTenantReference(c.Request.Context(), actor, id, refID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
