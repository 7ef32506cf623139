package models

import (
	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// PersonColumns are the personal data columns shared by owners and tenants.
// IDNumberHash is NULL when no ID number was given so the unique index
// only applies to real values.
type PersonColumns struct {
	FullName        string  `gorm:"type:varchar(100);not null;index"`
	IDNumber        string  `gorm:"type:text;serializer:encrypted"`
	IDNumberHash    *string `gorm:"type:varchar(64);uniqueIndex"`
	License         string  `gorm:"type:text;serializer:encrypted"`
	Address         string  `gorm:"type:text;serializer:encrypted"`
	Phone           string  `gorm:"type:text;serializer:encrypted"`
	Email           string  `gorm:"type:varchar(120)"`
	IDPath          string  `gorm:"type:varchar(255)"`
	LicensePath     string  `gorm:"type:varchar(255)"`
	GoodConductPath string  `gorm:"type:varchar(255)"`
}

func personColumns(p party.PersonalData, d party.Documents, idHash string) PersonColumns {
	c := PersonColumns{
		FullName:        p.FullName,
		IDNumber:        p.IDNumber,
		License:         p.License,
		Address:         p.Address,
		Phone:           p.Phone,
		Email:           p.Email,
		IDPath:          d.IDPath,
		LicensePath:     d.LicensePath,
		GoodConductPath: d.GoodConductPath,
	}
	if idHash != "" {
		c.IDNumberHash = &idHash
	}
	return c
}

func (c PersonColumns) personalData() party.PersonalData {
	return party.PersonalData{
		FullName: c.FullName,
		IDNumber: c.IDNumber,
		License:  c.License,
		Address:  c.Address,
		Phone:    c.Phone,
		Email:    c.Email,
	}
}

func (c PersonColumns) documents() party.Documents {
	return party.Documents{
		IDPath:          c.IDPath,
		LicensePath:     c.LicensePath,
		GoodConductPath: c.GoodConductPath,
	}
}

// OwnerModel is the persistence model for a vehicle owner.
type OwnerModel struct {
	AggregateModel
	PersonColumns
	UserID     *uuid.UUID            `gorm:"type:uuid;index"`
	References []OwnerReferenceModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OwnerModel) TableName() string {
	return "owners"
}

func (m *OwnerModel) ToDomain() *party.Owner {
	o := &party.Owner{
		BaseAggregateRoot: m.ToAggregateRoot(),
		PersonalData:      m.personalData(),
		Documents:         m.documents(),
		UserID:            m.UserID,
		References:        make([]party.Reference, len(m.References)),
	}
	for i := range m.References {
		o.References[i] = m.References[i].ToDomain()
	}
	return o
}

// OwnerModelFromDomain maps o without its references, which the repository
// saves separately.
func OwnerModelFromDomain(o *party.Owner, idHash string) *OwnerModel {
	m := &OwnerModel{
		PersonColumns: personColumns(o.PersonalData, o.Documents, idHash),
		UserID:        o.UserID,
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	return m
}

// ReferenceColumns hold a personal reference
type ReferenceColumns struct {
	FullName       string     `gorm:"type:varchar(100);not null"`
	RelationshipID *uuid.UUID `gorm:"type:uuid"`
	Phone          string     `gorm:"type:text;serializer:encrypted"`
}

// OwnerReferenceModel is a personal reference given by an owner
type OwnerReferenceModel struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferenceColumns
}

// TableName returns the table name for GORM
func (OwnerReferenceModel) TableName() string {
	return "owner_references"
}

func (m *OwnerReferenceModel) ToDomain() party.Reference {
	return party.Reference{
		BaseEntity:     m.BaseModel.ToDomain(),
		FullName:       m.FullName,
		RelationshipID: m.RelationshipID,
		Phone:          m.Phone,
	}
}

func OwnerReferenceModelFromDomain(ownerID uuid.UUID, r party.Reference) *OwnerReferenceModel {
	m := &OwnerReferenceModel{
		OwnerID:          ownerID,
		ReferenceColumns: ReferenceColumns{FullName: r.FullName, RelationshipID: r.RelationshipID, Phone: r.Phone},
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// TenantModel is the persistence model for a tenant (driver).
type TenantModel struct {
	AggregateModel
	PersonColumns
	Guarantors []GuarantorModel       `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	References []TenantReferenceModel `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

func (m *TenantModel) ToDomain() *party.Tenant {
	t := &party.Tenant{
		BaseAggregateRoot: m.ToAggregateRoot(),
		PersonalData:      m.personalData(),
		Documents:         m.documents(),
		Guarantors:        make([]party.Guarantor, len(m.Guarantors)),
		References:        make([]party.Reference, len(m.References)),
	}
	for i := range m.Guarantors {
		t.Guarantors[i] = m.Guarantors[i].ToDomain()
	}
	for i := range m.References {
		t.References[i] = m.References[i].ToDomain()
	}
	return t
}

func TenantModelFromDomain(t *party.Tenant, idHash string) *TenantModel {
	m := &TenantModel{PersonColumns: personColumns(t.PersonalData, t.Documents, idHash)}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// TenantReferenceModel is a personal reference given by a tenant
type TenantReferenceModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferenceColumns
}

// TableName returns the table name for GORM
func (TenantReferenceModel) TableName() string {
	return "tenant_references"
}

func (m *TenantReferenceModel) ToDomain() party.Reference {
	return party.Reference{
		BaseEntity:     m.BaseModel.ToDomain(),
		FullName:       m.FullName,
		RelationshipID: m.RelationshipID,
		Phone:          m.Phone,
	}
}

func TenantReferenceModelFromDomain(tenantID uuid.UUID, r party.Reference) *TenantReferenceModel {
	m := &TenantReferenceModel{
		TenantID:         tenantID,
		ReferenceColumns: ReferenceColumns{FullName: r.FullName, RelationshipID: r.RelationshipID, Phone: r.Phone},
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// GuarantorModel is a tenant's guarantor
type GuarantorModel struct {
	BaseModel
	TenantID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	FullName             string     `gorm:"type:varchar(100);not null"`
	Address              string     `gorm:"type:text;serializer:encrypted"`
	Phone                string     `gorm:"type:text;serializer:encrypted"`
	Email                string     `gorm:"type:varchar(120)"`
	RelationshipID       *uuid.UUID `gorm:"type:uuid"`
	EmploymentLetterPath string     `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (GuarantorModel) TableName() string {
	return "guarantors"
}

func (m *GuarantorModel) ToDomain() party.Guarantor {
	return party.Guarantor{
		BaseEntity:           shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		FullName:             m.FullName,
		Address:              m.Address,
		Phone:                m.Phone,
		Email:                m.Email,
		RelationshipID:       m.RelationshipID,
		EmploymentLetterPath: m.EmploymentLetterPath,
	}
}

func GuarantorModelFromDomain(tenantID uuid.UUID, g party.Guarantor) *GuarantorModel {
	m := &GuarantorModel{
		TenantID:             tenantID,
		FullName:             g.FullName,
		Address:              g.Address,
		Phone:                g.Phone,
		Email:                g.Email,
		RelationshipID:       g.RelationshipID,
		EmploymentLetterPath: g.EmploymentLetterPath,
	}
	m.FromDomainBaseEntity(g.BaseEntity)
	return m
}
