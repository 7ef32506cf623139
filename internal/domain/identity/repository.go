package identity

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername matches case-insensitively
	FindByUsername(ctx context.Context, username string) (*User, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]User, int64, error)
	ExistsByUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccessLogRepository stores authentication events
type AccessLogRepository interface {
	Create(ctx context.Context, entry *AccessLog) error

	// FindAll lists entries newest first; Filters["user_id"] narrows to one user
	FindAll(ctx context.Context, filter shared.Filter) ([]AccessLog, int64, error)
}
