package models

import (
	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleModel is the persistence model for a vehicle.
type VehicleModel struct {
	AggregateModel
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Plate        string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	BrandModelID *uuid.UUID      `gorm:"type:uuid;index"`
	Year         int             `gorm:"not null;default:0"`
	Color        string          `gorm:"type:varchar(30)"`
	Description  string          `gorm:"type:text"`
	WeeklyPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Conditions   string          `gorm:"type:text"`
	Available    bool            `gorm:"not null;default:true"`
	PhotoPath    string          `gorm:"type:varchar(255)"`
	DocumentPath string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

func (m *VehicleModel) ToDomain() *fleet.Vehicle {
	return &fleet.Vehicle{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OwnerID:           m.OwnerID,
		Plate:             m.Plate,
		BrandModelID:      m.BrandModelID,
		Year:              m.Year,
		Color:             m.Color,
		Description:       m.Description,
		WeeklyPrice:       m.WeeklyPrice,
		Conditions:        m.Conditions,
		Available:         m.Available,
		PhotoPath:         m.PhotoPath,
		DocumentPath:      m.DocumentPath,
	}
}

func VehicleModelFromDomain(v *fleet.Vehicle) *VehicleModel {
	m := &VehicleModel{
		OwnerID:      v.OwnerID,
		Plate:        v.Plate,
		BrandModelID: v.BrandModelID,
		Year:         v.Year,
		Color:        v.Color,
		Description:  v.Description,
		WeeklyPrice:  v.WeeklyPrice,
		Conditions:   v.Conditions,
		Available:    v.Available,
		PhotoPath:    v.PhotoPath,
		DocumentPath: v.DocumentPath,
	}
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	return m
}
