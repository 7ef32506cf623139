package handler

import (
	appidentity "github.com/alexrentacar/backoffice/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the administrator's user management
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body appidentity.CreateUserRequest true "User"
// @Success      201 {object} APIResponse[appidentity.UserInfo]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appidentity.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// List godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Param        search query string false "Username or name"
// @Param        role query string false "admin, user or mechanic"
// @Param        active query bool false "Active flag"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appidentity.UserInfo]
// @Security     BearerAuth
// @Router       /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var filter appidentity.UserListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.userService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}

// GetByID godoc
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[appidentity.UserInfo]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update godoc
// @Summary      Update a user
// @Description  A blank password keeps the current one
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Param        request body appidentity.UpdateUserRequest true "User"
// @Success      200 {object} APIResponse[appidentity.UserInfo]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appidentity.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete godoc
// @Summary      Delete a user
// @Description  Administrators cannot delete their own account
// @Tags         admin
// @Param        id path string true "User ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AccessLogs godoc
// @Summary      List authentication events
// @Tags         admin
// @Produce      json
// @Param        user_id query string false "User ID" format(uuid)
// @Param        action query string false "login, login_failed or logout"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appidentity.AccessLogResponse]
// @Security     BearerAuth
// @Router       /admin/access-logs [get]
func (h *UserHandler) AccessLogs(c *gin.Context) {
	var filter appidentity.AccessLogFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.userService.ListAccessLogs(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paged(&h.BaseHandler, c, page)
}
