package party

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// OwnerRepository persists owners with their references
type OwnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Owner, error)
	// FindAll searches by name (Filter.Search)
	FindAll(ctx context.Context, filter shared.Filter) ([]Owner, int64, error)
	// ExistsByIDNumber compares against the ID number's blind index
	ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, o *Owner) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasVehicles(ctx context.Context, id uuid.UUID) (bool, error)
}

// TenantRepository persists tenants with guarantors and references
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, int64, error)
	// FindExcluding lists tenants whose ID is not in ids, ordered by name
	FindExcluding(ctx context.Context, ids []uuid.UUID) ([]Tenant, error)
	ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, t *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasRentals(ctx context.Context, id uuid.UUID) (bool, error)
}
