package catalog

import (
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// LookupKind discriminates the small reference lists kept in one table
type LookupKind string

const (
	KindRentalStatus  LookupKind = "rental_status"
	KindPaymentMethod LookupKind = "payment_method"
	KindAccountType   LookupKind = "account_type"
	KindRelationship  LookupKind = "relationship"
	KindJobType       LookupKind = "job_type"
)

// DefaultRentalStatus is the status given to rentals created from a settlement week
const DefaultRentalStatus = "activo"

// IsValid reports whether k is a known lookup kind
func (k LookupKind) IsValid() bool {
	switch k {
	case KindRentalStatus, KindPaymentMethod, KindAccountType, KindRelationship, KindJobType:
		return true
	}
	return false
}

// LookupEntry is a named value of a reference list
type LookupEntry struct {
	shared.BaseAggregateRoot
	Kind        LookupKind
	Name        string
	Description string
}

// NewLookupEntry validates and creates a lookup entry
func NewLookupEntry(kind LookupKind, name, description string, createdBy uuid.UUID) (*LookupEntry, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown lookup kind")
	}
	e := &LookupEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Kind:              kind,
	}
	if err := e.Update(name, description, createdBy); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces name and description
func (e *LookupEntry) Update(name, description string, updatedBy uuid.UUID) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	e.Name = name
	e.Description = strings.TrimSpace(description)
	e.MarkUpdatedBy(updatedBy)
	return nil
}
