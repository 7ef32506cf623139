package models

import (
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/google/uuid"
)

// BrandModelModel is the persistence model for a vehicle brand/model pair.
type BrandModelModel struct {
	AggregateModel
	Brand       string `gorm:"type:varchar(50);not null;uniqueIndex:idx_brand_model"`
	Model       string `gorm:"type:varchar(50);not null;uniqueIndex:idx_brand_model"`
	Type        string `gorm:"type:varchar(30)"`
	LogoPath    string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BrandModelModel) TableName() string {
	return "brand_models"
}

func (m *BrandModelModel) ToDomain() *catalog.BrandModel {
	return &catalog.BrandModel{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Brand:             m.Brand,
		Model:             m.Model,
		Type:              m.Type,
		LogoPath:          m.LogoPath,
		Description:       m.Description,
	}
}

func BrandModelModelFromDomain(b *catalog.BrandModel) *BrandModelModel {
	m := &BrandModelModel{
		Brand:       b.Brand,
		Model:       b.Model,
		Type:        b.Type,
		LogoPath:    b.LogoPath,
		Description: b.Description,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// BankModel stores a company bank account. The account number and the
// holder's ID number are encrypted at rest.
type BankModel struct {
	AggregateModel
	Name              string     `gorm:"type:varchar(100);not null"`
	AccountNumber     string     `gorm:"type:text;not null;serializer:encrypted"`
	AccountHash       string     `gorm:"type:varchar(64);uniqueIndex"`
	AccountTypeID     *uuid.UUID `gorm:"type:uuid"`
	HolderIDNumber    string     `gorm:"type:text;serializer:encrypted"`
	AdministratorName string     `gorm:"type:varchar(100)"`
	LogoPath          string     `gorm:"type:varchar(255)"`
	Description       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BankModel) TableName() string {
	return "banks"
}

func (m *BankModel) ToDomain() *catalog.Bank {
	return &catalog.Bank{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		AccountNumber:     m.AccountNumber,
		AccountTypeID:     m.AccountTypeID,
		HolderIDNumber:    m.HolderIDNumber,
		AdministratorName: m.AdministratorName,
		LogoPath:          m.LogoPath,
		Description:       m.Description,
	}
}

// BankModelFromDomain maps b; accountHash is the blind index of the account number.
func BankModelFromDomain(b *catalog.Bank, accountHash string) *BankModel {
	m := &BankModel{
		Name:              b.Name,
		AccountNumber:     b.AccountNumber,
		AccountHash:       accountHash,
		AccountTypeID:     b.AccountTypeID,
		HolderIDNumber:    b.HolderIDNumber,
		AdministratorName: b.AdministratorName,
		LogoPath:          b.LogoPath,
		Description:       b.Description,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// LookupEntryModel holds every small catalog (rental statuses, payment
// methods, account types, relationships, job types) in one table.
type LookupEntryModel struct {
	AggregateModel
	Kind        catalog.LookupKind `gorm:"type:varchar(30);not null;uniqueIndex:idx_lookup_kind_name"`
	Name        string             `gorm:"type:varchar(100);not null;uniqueIndex:idx_lookup_kind_name"`
	Description string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LookupEntryModel) TableName() string {
	return "lookup_entries"
}

func (m *LookupEntryModel) ToDomain() *catalog.LookupEntry {
	return &catalog.LookupEntry{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Kind:              m.Kind,
		Name:              m.Name,
		Description:       m.Description,
	}
}

func LookupEntryModelFromDomain(e *catalog.LookupEntry) *LookupEntryModel {
	m := &LookupEntryModel{
		Kind:        e.Kind,
		Name:        e.Name,
		Description: e.Description,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}
