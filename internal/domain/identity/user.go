package identity

import (
	"regexp"
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse permission level of a user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleMechanic Role = "mechanic"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleMechanic:
		return true
	}
	return false
}

// Password cost for bcrypt
const bcryptCost = 12

// User is an operator of the back-office
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Active       bool
}

// NewUser creates an active user with a hashed password
func NewUser(username, password string, role Role, createdBy uuid.UUID) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be one of admin, user, mechanic")
	}
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		Role:              role,
		Active:            true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile replaces the personal fields
func (u *User) UpdateProfile(firstName, lastName, email, phone string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Email = email
	u.Phone = strings.TrimSpace(phone)
	u.Touch()
	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be one of admin, user, mechanic")
	}
	u.Role = role
	u.Touch()
	return nil
}

// ChangePassword verifies the old password before setting a new one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.WrapDomainError("PASSWORD_HASH_ERROR", "Failed to hash password", err)
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Activate enables login
func (u *User) Activate() {
	u.Active = true
	u.Touch()
}

// Deactivate disables login
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName joins first and last name, falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 80 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 80 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, dots, dashes and underscores")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 120 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
