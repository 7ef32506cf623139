package models

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitPercentageModel is the persistence model for a company margin option.
type ProfitPercentageModel struct {
	AggregateModel
	Description string          `gorm:"type:varchar(200);not null"`
	Percentage  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Active      bool            `gorm:"not null;default:true"`
	IsDefault   bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProfitPercentageModel) TableName() string {
	return "profit_percentages"
}

func (m *ProfitPercentageModel) ToDomain() *settlement.ProfitPercentage {
	return &settlement.ProfitPercentage{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Description:       m.Description,
		Percentage:        m.Percentage,
		Active:            m.Active,
		IsDefault:         m.IsDefault,
	}
}

func ProfitPercentageModelFromDomain(p *settlement.ProfitPercentage) *ProfitPercentageModel {
	m := &ProfitPercentageModel{
		Description: p.Description,
		Percentage:  p.Percentage,
		Active:      p.Active,
		IsDefault:   p.IsDefault,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// SettlementWeekModel is the persistence model for a settlement week.
// The (start_date, end_date) pair is unique.
type SettlementWeekModel struct {
	AggregateModel
	StartDate          time.Time                 `gorm:"type:date;not null;uniqueIndex:idx_week_dates"`
	EndDate            time.Time                 `gorm:"type:date;not null;uniqueIndex:idx_week_dates"`
	WeekNumber         int                       `gorm:"not null"`
	Year               int                       `gorm:"not null;index"`
	ProfitPercentageID uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Status             settlement.WeekStatus     `gorm:"type:varchar(20);not null;default:'abierta';index"`
	Notes              string                    `gorm:"type:text"`
	VehicleCount       int                       `gorm:"not null;default:0"`
	OwnerCount         int                       `gorm:"not null;default:0"`
	TenantCount        int                       `gorm:"not null;default:0"`
	TotalIncome        decimal.Decimal           `gorm:"type:decimal(14,2);not null;default:0"`
	PaymentWeekday     int                       `gorm:"not null;default:4"`
	Items              []SettlementLineItemModel `gorm:"foreignKey:WeekID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SettlementWeekModel) TableName() string {
	return "settlement_weeks"
}

// ToDomain converts the model; Items must have been preloaded to be included.
func (m *SettlementWeekModel) ToDomain() *settlement.Week {
	w := &settlement.Week{
		BaseAggregateRoot:  m.ToAggregateRoot(),
		StartDate:          m.StartDate.UTC(),
		EndDate:            m.EndDate.UTC(),
		WeekNumber:         m.WeekNumber,
		Year:               m.Year,
		ProfitPercentageID: m.ProfitPercentageID,
		Status:             m.Status,
		Notes:              m.Notes,
		VehicleCount:       m.VehicleCount,
		OwnerCount:         m.OwnerCount,
		TenantCount:        m.TenantCount,
		TotalIncome:        m.TotalIncome,
		PaymentWeekday:     time.Weekday(m.PaymentWeekday),
		Items:              make([]settlement.LineItem, len(m.Items)),
	}
	for i := range m.Items {
		w.Items[i] = m.Items[i].ToDomain()
	}
	return w
}

// SettlementWeekModelFromDomain maps the week header only
func SettlementWeekModelFromDomain(w *settlement.Week) *SettlementWeekModel {
	m := &SettlementWeekModel{
		StartDate:          w.StartDate,
		EndDate:            w.EndDate,
		WeekNumber:         w.WeekNumber,
		Year:               w.Year,
		ProfitPercentageID: w.ProfitPercentageID,
		Status:             w.Status,
		Notes:              w.Notes,
		VehicleCount:       w.VehicleCount,
		OwnerCount:         w.OwnerCount,
		TenantCount:        w.TenantCount,
		TotalIncome:        w.TotalIncome,
		PaymentWeekday:     int(w.PaymentWeekday),
	}
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	return m
}

// SettlementLineItemModel is one vehicle/tenant row of a week. The unique
// indexes back the one-vehicle and one-tenant per week rule.
type SettlementLineItemModel struct {
	BaseModel
	WeekID               uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_item_week_vehicle;uniqueIndex:idx_item_week_tenant"`
	RentalID             *uuid.UUID      `gorm:"type:uuid;index"`
	VehicleID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_item_week_vehicle"`
	TenantID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_item_week_tenant"`
	OwnerID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	WeeklyPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DaysWorked           int             `gorm:"not null;default:7"`
	Income               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MechanicalInvestment decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	InvestmentConcept    string          `gorm:"type:varchar(200)"`
	DiscountAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountConcept      string          `gorm:"type:varchar(200)"`
	CompanyPercentage    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CompanyCut           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	HasDebt              bool            `gorm:"not null;default:false"`
	DebtAmount           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentDeadline      time.Time       `gorm:"type:date;not null"`
	FinalPayout          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BankID               *uuid.UUID      `gorm:"type:uuid"`
	ConfirmationDate     *time.Time      `gorm:"type:date"`
	Confirmed            bool            `gorm:"not null;default:false;index"`
	Notes                string          `gorm:"type:text"`
	CreatedBy            *uuid.UUID      `gorm:"type:uuid"`
	UpdatedBy            *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SettlementLineItemModel) TableName() string {
	return "settlement_line_items"
}

func (m *SettlementLineItemModel) ToDomain() settlement.LineItem {
	return settlement.LineItem{
		BaseEntity:           shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		WeekID:               m.WeekID,
		RentalID:             m.RentalID,
		VehicleID:            m.VehicleID,
		TenantID:             m.TenantID,
		OwnerID:              m.OwnerID,
		WeeklyPrice:          m.WeeklyPrice,
		DaysWorked:           m.DaysWorked,
		Income:               m.Income,
		MechanicalInvestment: m.MechanicalInvestment,
		InvestmentConcept:    m.InvestmentConcept,
		DiscountAmount:       m.DiscountAmount,
		DiscountConcept:      m.DiscountConcept,
		CompanyPercentage:    m.CompanyPercentage,
		CompanyCut:           m.CompanyCut,
		HasDebt:              m.HasDebt,
		DebtAmount:           m.DebtAmount,
		PaymentDeadline:      m.PaymentDeadline.UTC(),
		FinalPayout:          m.FinalPayout,
		BankID:               m.BankID,
		ConfirmationDate:     m.ConfirmationDate,
		Confirmed:            m.Confirmed,
		Notes:                m.Notes,
		CreatedBy:            m.CreatedBy,
		UpdatedBy:            m.UpdatedBy,
	}
}

func SettlementLineItemModelFromDomain(it *settlement.LineItem) *SettlementLineItemModel {
	m := &SettlementLineItemModel{
		WeekID:               it.WeekID,
		RentalID:             it.RentalID,
		VehicleID:            it.VehicleID,
		TenantID:             it.TenantID,
		OwnerID:              it.OwnerID,
		WeeklyPrice:          it.WeeklyPrice,
		DaysWorked:           it.DaysWorked,
		Income:               it.Income,
		MechanicalInvestment: it.MechanicalInvestment,
		InvestmentConcept:    it.InvestmentConcept,
		DiscountAmount:       it.DiscountAmount,
		DiscountConcept:      it.DiscountConcept,
		CompanyPercentage:    it.CompanyPercentage,
		CompanyCut:           it.CompanyCut,
		HasDebt:              it.HasDebt,
		DebtAmount:           it.DebtAmount,
		PaymentDeadline:      it.PaymentDeadline,
		FinalPayout:          it.FinalPayout,
		BankID:               it.BankID,
		ConfirmationDate:     it.ConfirmationDate,
		Confirmed:            it.Confirmed,
		Notes:                it.Notes,
		CreatedBy:            it.CreatedBy,
		UpdatedBy:            it.UpdatedBy,
	}
	m.FromDomainBaseEntity(it.BaseEntity)
	return m
}
