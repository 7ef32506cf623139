package rental

import (
	"strings"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is money received against a rental
type Payment struct {
	shared.BaseAggregateRoot
	RentalID        uuid.UUID
	PaymentMethodID uuid.UUID
	Amount          decimal.Decimal
	PaymentDate     time.Time
	Deductions      decimal.Decimal
	Net             decimal.Decimal
	Receipt         string
	Notes           string
}

// PaymentInput carries the editable payment fields
type PaymentInput struct {
	RentalID        uuid.UUID
	PaymentMethodID uuid.UUID
	Amount          decimal.Decimal
	PaymentDate     time.Time
	Deductions      decimal.Decimal
	Receipt         string
	Notes           string
}

// NewPayment validates and creates a payment; net = amount - deductions
func NewPayment(in PaymentInput, createdBy uuid.UUID) (*Payment, error) {
	p := &Payment{BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy)}
	if err := p.Update(in, createdBy); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields and recomputes the net amount
func (p *Payment) Update(in PaymentInput, updatedBy uuid.UUID) error {
	if in.RentalID == uuid.Nil || in.PaymentMethodID == uuid.Nil {
		return shared.NewDomainError("INVALID_PAYMENT", "Rental and payment method are required")
	}
	if !in.Amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if in.Deductions.IsNegative() || in.Deductions.GreaterThan(in.Amount) {
		return shared.NewDomainError("INVALID_DEDUCTIONS", "Deductions must be between zero and the amount")
	}
	if in.PaymentDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Payment date is required")
	}
	p.RentalID = in.RentalID
	p.PaymentMethodID = in.PaymentMethodID
	p.Amount = in.Amount.Round(2)
	p.Deductions = in.Deductions.Round(2)
	p.Net = p.Amount.Sub(p.Deductions)
	p.PaymentDate = valueobject.TruncateDay(in.PaymentDate)
	p.Receipt = strings.TrimSpace(in.Receipt)
	p.Notes = strings.TrimSpace(in.Notes)
	p.MarkUpdatedBy(updatedBy)
	return nil
}
