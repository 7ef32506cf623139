package identity

import "github.com/google/uuid"

// Actor is the authenticated user on whose behalf an operation runs. It is
// passed explicitly from the HTTP layer into every mutating service call.
type Actor struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// IsAdmin reports whether the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasRole reports whether the actor has one of roles
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// SystemActor is used by maintenance commands that run without a login
var SystemActor = Actor{Username: "system", Role: RoleAdmin}
