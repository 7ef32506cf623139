package identity

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string `json:"username" binding:"required,max=80"`
	Password string `json:"password" binding:"required,max=128"`
	IP       string `json:"-"` // Client IP for the access log
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// UserInfo contains the user fields returned to clients
type UserInfo struct {
	ID        uuid.UUID     `json:"id"`
	Username  string        `json:"username"`
	Role      identity.Role `json:"role"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	FullName  string        `json:"full_name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string        // JWT ID of the access token to revoke
	TokenTTL time.Duration // remaining lifetime of that token
	IP       string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// UpdateProfileInput contains the self-editable profile fields
type UpdateProfileInput struct {
	FirstName string `json:"first_name" binding:"max=80"`
	LastName  string `json:"last_name" binding:"max=80"`
	Email     string `json:"email" binding:"omitempty,email,max=120"`
	Phone     string `json:"phone" binding:"max=30"`
}

// CreateUserRequest represents an administrator creating a user
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=80"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	Role      string `json:"role" binding:"required,role"`
	FirstName string `json:"first_name" binding:"max=80"`
	LastName  string `json:"last_name" binding:"max=80"`
	Email     string `json:"email" binding:"omitempty,email,max=120"`
	Phone     string `json:"phone" binding:"max=30"`
}

// UpdateUserRequest represents an administrator editing a user. A blank
// password keeps the current one.
type UpdateUserRequest struct {
	Role      string `json:"role" binding:"required,role"`
	FirstName string `json:"first_name" binding:"max=80"`
	LastName  string `json:"last_name" binding:"max=80"`
	Email     string `json:"email" binding:"omitempty,email,max=120"`
	Phone     string `json:"phone" binding:"max=30"`
	Active    *bool  `json:"active"`
	Password  string `json:"password" binding:"omitempty,min=6,max=72"`
}

// UserListFilter represents filter options for the user list
type UserListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,role"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f UserListFilter) toFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = f.Search
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.Role != "" {
		filter.Filters["role"] = f.Role
	}
	if f.Active != nil {
		filter.Filters["active"] = *f.Active
	}
	return filter.Normalize()
}

// AccessLogFilter represents filter options for the access log
type AccessLogFilter struct {
	UserID   *uuid.UUID `form:"user_id"`
	Action   string     `form:"action" binding:"omitempty,oneof=login login_failed logout"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (f AccessLogFilter) toFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.UserID != nil {
		filter.Filters["user_id"] = *f.UserID
	}
	if f.Action != "" {
		filter.Filters["action"] = f.Action
	}
	return filter.Normalize()
}

// AccessLogResponse represents one authentication event
type AccessLogResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Action     string     `json:"action"`
	IP         string     `json:"ip"`
	Details    string     `json:"details"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// ToUserInfo converts a domain User to UserInfo
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		Phone:     u.Phone,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToAccessLogResponse converts a domain AccessLog
func ToAccessLogResponse(l *identity.AccessLog) AccessLogResponse {
	return AccessLogResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		Action:     string(l.Action),
		IP:         l.IP,
		Details:    l.Details,
		OccurredAt: l.OccurredAt,
	}
}
