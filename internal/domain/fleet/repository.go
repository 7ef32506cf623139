package fleet

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleRepository persists vehicles
type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	// FindAll searches by plate or color; Filters["owner_id"], Filters["available"] narrow
	FindAll(ctx context.Context, filter shared.Filter) ([]Vehicle, int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Vehicle, error)
	// FindWithOwnerExcluding lists vehicles that have an owner and are not in ids, ordered by plate
	FindWithOwnerExcluding(ctx context.Context, ids []uuid.UUID) ([]Vehicle, error)
	ExistsByPlate(ctx context.Context, plate string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasRentals(ctx context.Context, id uuid.UUID) (bool, error)
}
