package workshop

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// MechanicRepository persists mechanics
type MechanicRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Mechanic, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Mechanic, int64, error)
	Save(ctx context.Context, m *Mechanic) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasWorkOrders(ctx context.Context, id uuid.UUID) (bool, error)
}

// PartRepository persists parts
type PartRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Part, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Part, int64, error)
	Save(ctx context.Context, p *Part) error
	Delete(ctx context.Context, id uuid.UUID) error
	IsUsed(ctx context.Context, id uuid.UUID) (bool, error)
}

// WorkOrderRepository persists work orders with their part usages
type WorkOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	// FindAll supports Filters["vehicle_id"], ["mechanic_id"], ["status"]
	FindAll(ctx context.Context, filter shared.Filter) ([]WorkOrder, int64, error)
	Save(ctx context.Context, w *WorkOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}
