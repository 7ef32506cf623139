package rental

import (
	"strings"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtStatus is the collection state of a debt
type DebtStatus string

const (
	DebtPending  DebtStatus = "pendiente"
	DebtPaid     DebtStatus = "pagado"
	DebtForgiven DebtStatus = "condonado"
)

// IsValid reports whether s is a known status
func (s DebtStatus) IsValid() bool {
	switch s {
	case DebtPending, DebtPaid, DebtForgiven:
		return true
	}
	return false
}

// Debt is an amount a tenant owes for a late rental payment
type Debt struct {
	shared.BaseAggregateRoot
	VehicleID    uuid.UUID
	TenantID     uuid.UUID
	RentalID     *uuid.UUID
	Amount       decimal.Decimal
	DaysLate     int
	DailyPenalty decimal.Decimal
	Status       DebtStatus
	DueDate      time.Time
	Notes        string
}

// DebtInput carries the editable debt fields
type DebtInput struct {
	VehicleID    uuid.UUID
	TenantID     uuid.UUID
	RentalID     *uuid.UUID
	Amount       decimal.Decimal
	DaysLate     int
	DailyPenalty decimal.Decimal
	DueDate      time.Time
	Notes        string
}

// NewDebt creates a pending debt
func NewDebt(in DebtInput, createdBy uuid.UUID) (*Debt, error) {
	d := &Debt{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Status:            DebtPending,
	}
	if err := d.Update(in, createdBy); err != nil {
		return nil, err
	}
	return d, nil
}

// Update replaces the editable fields
func (d *Debt) Update(in DebtInput, updatedBy uuid.UUID) error {
	if in.VehicleID == uuid.Nil || in.TenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_DEBT", "Vehicle and tenant are required")
	}
	if !in.Amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if in.DaysLate < 0 || in.DailyPenalty.IsNegative() {
		return shared.NewDomainError("INVALID_DEBT", "Days late and penalty cannot be negative")
	}
	if in.DueDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Due date is required")
	}
	d.VehicleID = in.VehicleID
	d.TenantID = in.TenantID
	d.RentalID = in.RentalID
	d.Amount = in.Amount.Round(2)
	d.DaysLate = in.DaysLate
	d.DailyPenalty = in.DailyPenalty.Round(2)
	d.DueDate = valueobject.TruncateDay(in.DueDate)
	d.Notes = strings.TrimSpace(in.Notes)
	d.MarkUpdatedBy(updatedBy)
	return nil
}

// Total is the amount plus accumulated penalty
func (d *Debt) Total() decimal.Decimal {
	return d.Amount.Add(d.DailyPenalty.Mul(decimal.NewFromInt(int64(d.DaysLate))))
}

// ChangeStatus moves a pending debt to paid or forgiven. Settled debts are final.
func (d *Debt) ChangeStatus(status DebtStatus, updatedBy uuid.UUID) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown debt status")
	}
	if d.Status != DebtPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending debts can change status")
	}
	if status == DebtPending {
		return nil
	}
	d.Status = status
	d.MarkUpdatedBy(updatedBy)
	return nil
}
