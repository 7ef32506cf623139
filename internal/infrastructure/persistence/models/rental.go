package models

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentalModel is the persistence model for a rental.
type RentalModel struct {
	AggregateModel
	VehicleID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	StatusID        uuid.UUID       `gorm:"type:uuid;not null"`
	StartDate       time.Time       `gorm:"type:date;not null;index:idx_rental_period"`
	EndDate         time.Time       `gorm:"type:date;not null;index:idx_rental_period"`
	WeekNumber      int             `gorm:"not null"`
	DaysWorked      int             `gorm:"not null;default:7"`
	Income          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountConcept string          `gorm:"type:varchar(200)"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RentalModel) TableName() string {
	return "rentals"
}

func (m *RentalModel) ToDomain() *rental.Rental {
	return &rental.Rental{
		BaseAggregateRoot: m.ToAggregateRoot(),
		VehicleID:         m.VehicleID,
		TenantID:          m.TenantID,
		StatusID:          m.StatusID,
		StartDate:         m.StartDate.UTC(),
		EndDate:           m.EndDate.UTC(),
		WeekNumber:        m.WeekNumber,
		DaysWorked:        m.DaysWorked,
		Income:            m.Income,
		DiscountAmount:    m.DiscountAmount,
		DiscountConcept:   m.DiscountConcept,
		Notes:             m.Notes,
	}
}

func RentalModelFromDomain(r *rental.Rental) *RentalModel {
	m := &RentalModel{
		VehicleID:       r.VehicleID,
		TenantID:        r.TenantID,
		StatusID:        r.StatusID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		WeekNumber:      r.WeekNumber,
		DaysWorked:      r.DaysWorked,
		Income:          r.Income,
		DiscountAmount:  r.DiscountAmount,
		DiscountConcept: r.DiscountConcept,
		Notes:           r.Notes,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}

// PaymentModel is the persistence model for a rental payment.
type PaymentModel struct {
	AggregateModel
	RentalID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentMethodID uuid.UUID       `gorm:"type:uuid;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentDate     time.Time       `gorm:"type:date;not null;index"`
	Deductions      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Net             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Receipt         string          `gorm:"type:varchar(100)"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) ToDomain() *rental.Payment {
	return &rental.Payment{
		BaseAggregateRoot: m.ToAggregateRoot(),
		RentalID:          m.RentalID,
		PaymentMethodID:   m.PaymentMethodID,
		Amount:            m.Amount,
		PaymentDate:       m.PaymentDate.UTC(),
		Deductions:        m.Deductions,
		Net:               m.Net,
		Receipt:           m.Receipt,
		Notes:             m.Notes,
	}
}

func PaymentModelFromDomain(p *rental.Payment) *PaymentModel {
	m := &PaymentModel{
		RentalID:        p.RentalID,
		PaymentMethodID: p.PaymentMethodID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		Deductions:      p.Deductions,
		Net:             p.Net,
		Receipt:         p.Receipt,
		Notes:           p.Notes,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// DebtModel is the persistence model for a tenant debt.
type DebtModel struct {
	AggregateModel
	VehicleID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	TenantID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	RentalID     *uuid.UUID        `gorm:"type:uuid;index"`
	Amount       decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	DaysLate     int               `gorm:"not null;default:0"`
	DailyPenalty decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	Status       rental.DebtStatus `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	DueDate      time.Time         `gorm:"type:date;not null"`
	Notes        string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DebtModel) TableName() string {
	return "debts"
}

func (m *DebtModel) ToDomain() *rental.Debt {
	return &rental.Debt{
		BaseAggregateRoot: m.ToAggregateRoot(),
		VehicleID:         m.VehicleID,
		TenantID:          m.TenantID,
		RentalID:          m.RentalID,
		Amount:            m.Amount,
		DaysLate:          m.DaysLate,
		DailyPenalty:      m.DailyPenalty,
		Status:            m.Status,
		DueDate:           m.DueDate.UTC(),
		Notes:             m.Notes,
	}
}

func DebtModelFromDomain(d *rental.Debt) *DebtModel {
	m := &DebtModel{
		VehicleID:    d.VehicleID,
		TenantID:     d.TenantID,
		RentalID:     d.RentalID,
		Amount:       d.Amount,
		DaysLate:     d.DaysLate,
		DailyPenalty: d.DailyPenalty,
		Status:       d.Status,
		DueDate:      d.DueDate,
		Notes:        d.Notes,
	}
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	return m
}
