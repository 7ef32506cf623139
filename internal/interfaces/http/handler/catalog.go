package handler

import (
	appcatalog "github.com/alexrentacar/backoffice/internal/application/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves brand/models, banks and the lookup lists
type CatalogHandler struct {
	BaseHandler
	catalogService *appcatalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *appcatalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateBrandModel godoc
// @Summary      Create a brand/model
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.BrandModelRequest true "Brand and model"
// @Success      201 {object} APIResponse[appcatalog.BrandModelResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /brand-models [post]
func (h *CatalogHandler) CreateBrandModel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appcatalog.BrandModelRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.CreateBrandModel(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListBrandModels godoc
// @Summary      List brand/models
// @Tags         catalog
// @Produce      json
// @Param        search query string false "Brand or model"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appcatalog.BrandModelResponse]
// @Security     BearerAuth
// @Router       /brand-models [get]
func (h *CatalogHandler) ListBrandModels(c *gin.Context) {
	var filter appcatalog.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.catalogService.ListBrandModels(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetBrandModel godoc
// @Summary      Get a brand/model
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Brand/model ID" format(uuid)
// @Success      200 {object} APIResponse[appcatalog.BrandModelResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /brand-models/{id} [get]
func (h *CatalogHandler) GetBrandModel(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.catalogService.GetBrandModel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateBrandModel godoc
// @Summary      Update a brand/model
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Brand/model ID" format(uuid)
// @Param        request body appcatalog.BrandModelRequest true "Brand and model"
// @Success      200 {object} APIResponse[appcatalog.BrandModelResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /brand-models/{id} [put]
func (h *CatalogHandler) UpdateBrandModel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appcatalog.BrandModelRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.catalogService.UpdateBrandModel(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteBrandModel godoc
// @Summary      Delete a brand/model
// @Tags         catalog
// @Param        id path string true "Brand/model ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /brand-models/{id} [delete]
func (h *CatalogHandler) DeleteBrandModel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteBrandModel(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadBrandModelLogo godoc
// @Summary      Upload a brand/model logo
// @Tags         catalog
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Brand/model ID" format(uuid)
// @Param        file formData file true "Image"
// @Success      200 {object} APIResponse[appcatalog.BrandModelResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /brand-models/{id}/logo [post]
func (h *CatalogHandler) UploadBrandModelLogo(c *gin.Context) {
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

	resp, err := h.catalogService.UploadBrandModelLogo(c.Request.Context(), actor, id, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateBank godoc
// @Summary      Create a bank account
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.BankRequest true "Bank account"
// @Success      201 {object} APIResponse[appcatalog.BankResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /banks [post]
func (h *CatalogHandler) CreateBank(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appcatalog.BankRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.catalogService.CreateBank(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListBanks godoc
// @Summary      List bank accounts
// @Tags         catalog
// @Produce      json
// @Param        search query string false "Bank name"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appcatalog.BankResponse]
// @Security     BearerAuth
// @Router       /banks [get]
func (h *CatalogHandler) ListBanks(c *gin.Context) {
	var filter appcatalog.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.catalogService.ListBanks(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetBank godoc
// @Summary      Get a bank account
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Bank ID" format(uuid)
// @Success      200 {object} APIResponse[appcatalog.BankResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /banks/{id} [get]
func (h *CatalogHandler) GetBank(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.catalogService.GetBank(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateBank godoc
// @Summary      Update a bank account
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Bank ID" format(uuid)
// @Param        request body appcatalog.BankRequest true "Bank account"
// @Success      200 {object} APIResponse[appcatalog.BankResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /banks/{id} [put]
func (h *CatalogHandler) UpdateBank(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appcatalog.BankRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.catalogService.UpdateBank(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteBank godoc
// @Summary      Delete a bank account
// @Tags         catalog
// @Param        id path string true "Bank ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /banks/{id} [delete]
func (h *CatalogHandler) DeleteBank(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteBank(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadBankLogo godoc
// @Summary      Upload a bank logo
// @Tags         catalog
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Bank ID" format(uuid)
// @Param        file formData file true "Image"
// @Success      200 {object} APIResponse[appcatalog.BankResponse]
// @Failure      400 {object} ValidationErrorResponse
// @Security     BearerAuth
// @Router       /banks/{id}/logo [post]
func (h *CatalogHandler) UploadBankLogo(c *gin.Context) {
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

	resp, err := h.catalogService.UploadBankLogo(c.Request.Context(), actor, id, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// lookupKind validates the :kind path parameter
func (h *CatalogHandler) lookupKind(c *gin.Context) (catalog.LookupKind, bool) {
	kind := catalog.LookupKind(c.Param("kind"))
	if !kind.IsValid() {
		h.NotFound(c, "Unknown lookup list")
		return "", false
	}
	return kind, true
}

// ListLookups godoc
// @Summary      List a lookup list
// @Description  Kinds: rental_status, payment_method, account_type, relationship, job_type
// @Tags         catalog
// @Produce      json
// @Param        kind path string true "Lookup kind"
// @Success      200 {object} APIResponse[[]appcatalog.LookupResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /lookups/{kind} [get]
func (h *CatalogHandler) ListLookups(c *gin.Context) {
	kind, ok := h.lookupKind(c)
	if !ok {
		return
	}
	entries, err := h.catalogService.ListLookups(c.Request.Context(), kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// CreateLookup godoc
// @Summary      Add a lookup entry
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        kind path string true "Lookup kind"
// @Param        request body appcatalog.LookupRequest true "Entry"
// @Success      201 {object} APIResponse[appcatalog.LookupResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /lookups/{kind} [post]
func (h *CatalogHandler) CreateLookup(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	kind, ok := h.lookupKind(c)
	if !ok {
		return
	}
	var req appcatalog.LookupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.catalogService.CreateLookup(c.Request.Context(), actor, kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetLookup godoc
// @Summary      Get a lookup entry
// @Tags         catalog
// @Produce      json
// @Param        kind path string true "Lookup kind"
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} APIResponse[appcatalog.LookupResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /lookups/{kind}/{id} [get]
func (h *CatalogHandler) GetLookup(c *gin.Context) {
	kind, ok := h.lookupKind(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.catalogService.GetLookup(c.Request.Context(), kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateLookup godoc
// @Summary      Update a lookup entry
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        kind path string true "Lookup kind"
// @Param        id path string true "Entry ID" format(uuid)
// @Param        request body appcatalog.LookupRequest true "Entry"
// @Success      200 {object} APIResponse[appcatalog.LookupResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /lookups/{kind}/{id} [put]
func (h *CatalogHandler) UpdateLookup(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	kind, ok := h.lookupKind(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appcatalog.LookupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.catalogService.UpdateLookup(c.Request.Context(), actor, kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteLookup godoc
// @Summary      Delete a lookup entry
// @Tags         catalog
// @Param        kind path string true "Lookup kind"
// @Param        id path string true "Entry ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /lookups/{kind}/{id} [delete]
func (h *CatalogHandler) DeleteLookup(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	kind, ok := h.lookupKind(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteLookup(c.Request.Context(), actor, kind, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
