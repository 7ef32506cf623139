package rental

import (
	"context"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// RentalRepository persists rentals
type RentalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Rental, error)
	// FindAll supports Filters["vehicle_id"], ["tenant_id"], ["status_id"]
	FindAll(ctx context.Context, filter shared.Filter) ([]Rental, int64, error)
	// FindOverlapping returns rentals with start <= end and end >= start
	FindOverlapping(ctx context.Context, start, end time.Time) ([]Rental, error)
	Save(ctx context.Context, r *Rental) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasPayments(ctx context.Context, id uuid.UUID) (bool, error)
}

// PaymentRepository persists payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	// FindAll supports Filters["rental_id"]
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, int64, error)
	Save(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DebtRepository persists debts
type DebtRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Debt, error)
	// FindAll supports Filters["status"], ["tenant_id"], ["vehicle_id"]
	FindAll(ctx context.Context, filter shared.Filter) ([]Debt, int64, error)
	Save(ctx context.Context, d *Debt) error
	Delete(ctx context.Context, id uuid.UUID) error
}
