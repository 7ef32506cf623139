package settlement

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one vehicle/tenant pairing inside a settlement week
type LineItem struct {
	shared.BaseEntity
	WeekID               uuid.UUID
	RentalID             *uuid.UUID
	VehicleID            uuid.UUID
	TenantID             uuid.UUID
	OwnerID              uuid.UUID
	WeeklyPrice          decimal.Decimal
	DaysWorked           int
	Income               decimal.Decimal
	MechanicalInvestment decimal.Decimal
	InvestmentConcept    string
	DiscountAmount       decimal.Decimal
	DiscountConcept      string
	CompanyPercentage    decimal.Decimal
	CompanyCut           decimal.Decimal
	HasDebt              bool
	DebtAmount           decimal.Decimal
	PaymentDeadline      time.Time
	FinalPayout          decimal.Decimal
	BankID               *uuid.UUID
	ConfirmationDate     *time.Time
	Confirmed            bool
	Notes                string
	CreatedBy            *uuid.UUID
	UpdatedBy            *uuid.UUID
}

// Pairing identifies the parties of a new line item
type Pairing struct {
	RentalID    *uuid.UUID
	VehicleID   uuid.UUID
	TenantID    uuid.UUID
	OwnerID     uuid.UUID
	WeeklyPrice decimal.Decimal
}

// LineItemEdit carries the batch-editable fields of a line item
type LineItemEdit struct {
	ItemID               uuid.UUID
	WeeklyPrice          decimal.Decimal
	DaysWorked           int
	MechanicalInvestment decimal.Decimal
	InvestmentConcept    string
	DiscountAmount       decimal.Decimal
	DiscountConcept      string
	DebtAmount           decimal.Decimal
	BankID               *uuid.UUID
	ConfirmationDate     *time.Time
	Confirmed            bool
	Notes                string
}

// FullEdit replaces the parties of a line item along with its amounts
type FullEdit struct {
	VehicleID            uuid.UUID
	TenantID             uuid.UUID
	OwnerID              uuid.UUID
	WeeklyPrice          decimal.Decimal
	DaysWorked           int
	MechanicalInvestment decimal.Decimal
	InvestmentConcept    string
	DiscountAmount       decimal.Decimal
	DiscountConcept      string
	DebtAmount           decimal.Decimal
	BankID               *uuid.UUID
	ConfirmationDate     *time.Time
	Confirmed            bool
	Notes                string
}

func newLineItem(weekID uuid.UUID, p Pairing, days int, percentage decimal.Decimal, deadline, now time.Time, actor uuid.UUID) LineItem {
	amounts := CalculateOnCreate(p.WeeklyPrice, days, percentage)
	item := LineItem{
		BaseEntity:           shared.NewBaseEntity(),
		WeekID:               weekID,
		RentalID:             p.RentalID,
		VehicleID:            p.VehicleID,
		TenantID:             p.TenantID,
		OwnerID:              p.OwnerID,
		WeeklyPrice:          p.WeeklyPrice,
		DaysWorked:           days,
		Income:               amounts.Income,
		MechanicalInvestment: decimal.Zero,
		DiscountAmount:       decimal.Zero,
		CompanyPercentage:    percentage,
		CompanyCut:           amounts.CompanyCut,
		HasDebt:              HasDebt(now, deadline),
		DebtAmount:           decimal.Zero,
		PaymentDeadline:      deadline,
		FinalPayout:          amounts.FinalPayout,
	}
	if actor != uuid.Nil {
		item.CreatedBy = &actor
		item.UpdatedBy = &actor
	}
	return item
}

func (i *LineItem) applyEdit(e LineItemEdit, actor uuid.UUID) {
	i.WeeklyPrice = e.WeeklyPrice
	i.DaysWorked = e.DaysWorked
	i.MechanicalInvestment = e.MechanicalInvestment
	i.InvestmentConcept = e.InvestmentConcept
	i.DiscountAmount = e.DiscountAmount
	i.DiscountConcept = e.DiscountConcept
	i.DebtAmount = e.DebtAmount
	i.BankID = e.BankID
	if e.ConfirmationDate != nil {
		i.ConfirmationDate = e.ConfirmationDate
	}
	i.Confirmed = e.Confirmed
	i.Notes = e.Notes

	amounts := RecalculateOnEdit(i.WeeklyPrice, i.DaysWorked)
	i.Income = amounts.Income
	i.CompanyCut = amounts.CompanyCut
	i.FinalPayout = amounts.FinalPayout
	i.touch(actor)
}

func (i *LineItem) applyFullEdit(e FullEdit, actor uuid.UUID) {
	i.VehicleID = e.VehicleID
	i.TenantID = e.TenantID
	i.OwnerID = e.OwnerID
	i.WeeklyPrice = e.WeeklyPrice
	i.DaysWorked = e.DaysWorked
	i.MechanicalInvestment = e.MechanicalInvestment
	i.InvestmentConcept = e.InvestmentConcept
	i.DiscountAmount = e.DiscountAmount
	i.DiscountConcept = e.DiscountConcept
	i.DebtAmount = e.DebtAmount
	i.BankID = e.BankID
	if e.ConfirmationDate != nil {
		i.ConfirmationDate = e.ConfirmationDate
	}
	i.Confirmed = e.Confirmed
	i.Notes = e.Notes

	amounts := RecalculateOnFullEdit(i.WeeklyPrice, i.DaysWorked, i.CompanyPercentage, i.DebtAmount)
	i.Income = amounts.Income
	i.CompanyCut = amounts.CompanyCut
	i.FinalPayout = amounts.FinalPayout
	i.touch(actor)
}

func (i *LineItem) touch(actor uuid.UUID) {
	i.UpdatedAt = time.Now()
	if actor != uuid.Nil {
		i.UpdatedBy = &actor
	}
}

func validateDays(days int) error {
	if days < 0 || days > 31 {
		return shared.NewDomainError("INVALID_DAYS_WORKED", "Days worked must be between 0 and 31")
	}
	return nil
}
