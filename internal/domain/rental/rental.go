package rental

import (
	"strings"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rental links a vehicle and a tenant for a date range
type Rental struct {
	shared.BaseAggregateRoot
	VehicleID       uuid.UUID
	TenantID        uuid.UUID
	StatusID        uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	WeekNumber      int
	DaysWorked      int
	Income          decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountConcept string
	Notes           string
}

// RentalInput carries the editable rental fields
type RentalInput struct {
	VehicleID       uuid.UUID
	TenantID        uuid.UUID
	StatusID        uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	DaysWorked      int
	Income          decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountConcept string
	Notes           string
}

// NewRental validates and creates a rental
func NewRental(in RentalInput, createdBy uuid.UUID) (*Rental, error) {
	r := &Rental{BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy)}
	if err := r.Update(in, createdBy); err != nil {
		return nil, err
	}
	return r, nil
}

// NewWeekRental creates the rental that backs a line item added to a
// settlement week: it spans the week, income = weekly price * days.
func NewWeekRental(vehicleID, tenantID, statusID uuid.UUID, period valueobject.DateRange, weeklyPrice decimal.Decimal, days int, createdBy uuid.UUID) (*Rental, error) {
	return NewRental(RentalInput{
		VehicleID:      vehicleID,
		TenantID:       tenantID,
		StatusID:       statusID,
		StartDate:      period.Start(),
		EndDate:        period.End(),
		DaysWorked:     days,
		Income:         weeklyPrice.Mul(decimal.NewFromInt(int64(days))).Round(2),
		DiscountAmount: decimal.Zero,
	}, createdBy)
}

// Update replaces the editable fields; the week number follows the start date
func (r *Rental) Update(in RentalInput, updatedBy uuid.UUID) error {
	period, err := valueobject.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return shared.WrapDomainError("INVALID_DATE_RANGE", "End date cannot be before start date", err)
	}
	if in.VehicleID == uuid.Nil || in.TenantID == uuid.Nil || in.StatusID == uuid.Nil {
		return shared.NewDomainError("INVALID_RENTAL", "Vehicle, tenant and status are required")
	}
	if in.Income.IsNegative() || in.DiscountAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}
	if in.DaysWorked < 0 {
		return shared.NewDomainError("INVALID_DAYS_WORKED", "Days worked cannot be negative")
	}
	r.VehicleID = in.VehicleID
	r.TenantID = in.TenantID
	r.StatusID = in.StatusID
	r.StartDate = period.Start()
	r.EndDate = period.End()
	r.WeekNumber = period.ISOWeek()
	r.DaysWorked = in.DaysWorked
	r.Income = in.Income.Round(2)
	r.DiscountAmount = in.DiscountAmount.Round(2)
	r.DiscountConcept = strings.TrimSpace(in.DiscountConcept)
	r.Notes = strings.TrimSpace(in.Notes)
	r.MarkUpdatedBy(updatedBy)
	return nil
}

// Period returns the rental date range
func (r *Rental) Period() valueobject.DateRange {
	return valueobject.MustNewDateRange(r.StartDate, r.EndDate)
}
