package models

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel adds the audit columns recording who created and last
// changed the row.
type AggregateModel struct {
	BaseModel
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.CreatedBy = a.CreatedBy
	m.UpdatedBy = a.UpdatedBy
}

// ToAggregateRoot converts AggregateModel to domain BaseAggregateRoot
func (m *AggregateModel) ToAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.BaseModel.ToDomain(),
		CreatedBy:  m.CreatedBy,
		UpdatedBy:  m.UpdatedBy,
	}
}

// All lists every model in dependency order, used by AutoMigrate in tests.
func All() []any {
	return []any{
		&UserModel{},
		&AccessLogModel{},
		&LookupEntryModel{},
		&BrandModelModel{},
		&BankModel{},
		&OwnerModel{},
		&OwnerReferenceModel{},
		&TenantModel{},
		&TenantReferenceModel{},
		&GuarantorModel{},
		&VehicleModel{},
		&RentalModel{},
		&PaymentModel{},
		&DebtModel{},
		&MechanicModel{},
		&PartModel{},
		&WorkOrderModel{},
		&PartUsageModel{},
		&ProfitPercentageModel{},
		&SettlementWeekModel{},
		&SettlementLineItemModel{},
		&AuditEntryModel{},
	}
}
