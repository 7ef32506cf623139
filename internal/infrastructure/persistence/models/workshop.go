package models

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/workshop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MechanicModel is the persistence model for a mechanic.
type MechanicModel struct {
	AggregateModel
	Name       string `gorm:"type:varchar(100);not null;index"`
	Address    string `gorm:"type:text"`
	Phone      string `gorm:"type:varchar(20)"`
	Email      string `gorm:"type:varchar(120)"`
	Speciality string `gorm:"type:varchar(100)"`
	Active     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MechanicModel) TableName() string {
	return "mechanics"
}

func (m *MechanicModel) ToDomain() *workshop.Mechanic {
	return &workshop.Mechanic{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		Phone:             m.Phone,
		Email:             m.Email,
		Speciality:        m.Speciality,
		Active:            m.Active,
	}
}

func MechanicModelFromDomain(mc *workshop.Mechanic) *MechanicModel {
	m := &MechanicModel{
		Name:       mc.Name,
		Address:    mc.Address,
		Phone:      mc.Phone,
		Email:      mc.Email,
		Speciality: mc.Speciality,
		Active:     mc.Active,
	}
	m.FromDomainAggregateRoot(mc.BaseAggregateRoot)
	return m
}

// PartModel is the persistence model for a spare part.
type PartModel struct {
	AggregateModel
	Name        string                 `gorm:"type:varchar(100);not null;index"`
	Brand       string                 `gorm:"type:varchar(50);not null"`
	Model       string                 `gorm:"type:varchar(50)"`
	Condition   workshop.PartCondition `gorm:"type:varchar(10);not null"`
	Cost        decimal.Decimal        `gorm:"type:decimal(12,2);not null;default:0"`
	Description string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PartModel) TableName() string {
	return "parts"
}

func (m *PartModel) ToDomain() *workshop.Part {
	return &workshop.Part{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Brand:             m.Brand,
		Model:             m.Model,
		Condition:         m.Condition,
		Cost:              m.Cost,
		Description:       m.Description,
	}
}

func PartModelFromDomain(p *workshop.Part) *PartModel {
	m := &PartModel{
		Name:        p.Name,
		Brand:       p.Brand,
		Model:       p.Model,
		Condition:   p.Condition,
		Cost:        p.Cost,
		Description: p.Description,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// WorkOrderModel is the persistence model for a repair work order.
type WorkOrderModel struct {
	AggregateModel
	VehicleID   uuid.UUID                `gorm:"type:uuid;not null;index"`
	MechanicID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	JobTypeID   uuid.UUID                `gorm:"type:uuid;not null"`
	StartDate   time.Time                `gorm:"type:date;not null"`
	EndDate     *time.Time               `gorm:"type:date"`
	Description string                   `gorm:"type:text;not null"`
	Cost        decimal.Decimal          `gorm:"type:decimal(12,2);not null;default:0"`
	Status      workshop.WorkOrderStatus `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Notes       string                   `gorm:"type:text"`
	Parts       []PartUsageModel         `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (WorkOrderModel) TableName() string {
	return "work_orders"
}

func (m *WorkOrderModel) ToDomain() *workshop.WorkOrder {
	w := &workshop.WorkOrder{
		BaseAggregateRoot: m.ToAggregateRoot(),
		VehicleID:         m.VehicleID,
		MechanicID:        m.MechanicID,
		JobTypeID:         m.JobTypeID,
		StartDate:         m.StartDate.UTC(),
		EndDate:           m.EndDate,
		Description:       m.Description,
		Cost:              m.Cost,
		Status:            m.Status,
		Notes:             m.Notes,
		Parts:             make([]workshop.PartUsage, len(m.Parts)),
	}
	for i := range m.Parts {
		w.Parts[i] = m.Parts[i].ToDomain()
	}
	return w
}

func WorkOrderModelFromDomain(w *workshop.WorkOrder) *WorkOrderModel {
	m := &WorkOrderModel{
		VehicleID:   w.VehicleID,
		MechanicID:  w.MechanicID,
		JobTypeID:   w.JobTypeID,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		Description: w.Description,
		Cost:        w.Cost,
		Status:      w.Status,
		Notes:       w.Notes,
	}
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	return m
}

// PartUsageModel records a part consumed by a work order
type PartUsageModel struct {
	BaseModel
	WorkOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PartID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    int             `gorm:"not null;default:1"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PartUsageModel) TableName() string {
	return "work_order_parts"
}

func (m *PartUsageModel) ToDomain() workshop.PartUsage {
	return workshop.PartUsage{
		BaseEntity: m.BaseModel.ToDomain(),
		PartID:     m.PartID,
		Quantity:   m.Quantity,
		UnitCost:   m.UnitCost,
		Notes:      m.Notes,
	}
}

func PartUsageModelFromDomain(workOrderID uuid.UUID, u workshop.PartUsage) *PartUsageModel {
	m := &PartUsageModel{
		WorkOrderID: workOrderID,
		PartID:      u.PartID,
		Quantity:    u.Quantity,
		UnitCost:    u.UnitCost,
		Notes:       u.Notes,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
