package handler

import (
	"net/http"
	"strings"

	appidentity "github.com/alexrentacar/backoffice/internal/application/identity"
	"github.com/alexrentacar/backoffice/internal/infrastructure/config"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	cookie      config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with username and password. The access token is returned in the body and as the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.LoginInput true "Login credentials"
// @Success      200 {object} APIResponse[appidentity.LoginResult]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}
	req.IP = c.ClientIP()

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.AccessToken)
	h.Success(c, result)
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.RefreshTokenInput true "Refresh token"
// @Success      200 {object} APIResponse[appidentity.RefreshTokenResult]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req appidentity.RefreshTokenInput
	if !h.bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		h.BadRequest(c, "refresh_token is required")
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.AccessToken)
	h.Success(c, result)
}

// Logout godoc
// @Summary      User logout
// @Description  Revoke the current access token and clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[MessageData]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	input := appidentity.LogoutInput{UserID: actor.UserID, IP: c.ClientIP()}
	if claims := middleware.GetJWTClaims(c); claims != nil {
		input.TokenJTI = claims.ID
		input.TokenTTL = claims.GetRemainingTTL()
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.clearSessionCookie(c)
	h.Success(c, MessageData{Message: "Logged out"})
}

// GetCurrentUser godoc
// @Summary      Current user
// @Description  Return the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[appidentity.UserInfo]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), actor.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.UpdateProfileInput true "Profile fields"
// @Success      200 {object} APIResponse[appidentity.UserInfo]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appidentity.UpdateProfileInput
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), actor.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword godoc
// @Summary      Change own password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.ChangePasswordInput true "Old and new password"
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appidentity.ChangePasswordInput
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), actor.UserID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageData{Message: "Password changed"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge.Seconds()),
		h.cookie.Path, h.cookie.Domain, h.cookie.Secure, h.cookie.HTTPOnly)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, "", -1, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, h.cookie.HTTPOnly)
}

func sameSiteMode(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
