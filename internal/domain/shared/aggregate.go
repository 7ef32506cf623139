package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetCreatedBy() *uuid.UUID
	GetUpdatedBy() *uuid.UUID
}

// BaseAggregateRoot adds authorship tracking to BaseEntity.
// CreatedBy/UpdatedBy hold the acting user id of the last write.
type BaseAggregateRoot struct {
	BaseEntity
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
}

// GetCreatedBy returns the user that created the aggregate
func (a *BaseAggregateRoot) GetCreatedBy() *uuid.UUID {
	return a.CreatedBy
}

// GetUpdatedBy returns the user that last changed the aggregate
func (a *BaseAggregateRoot) GetUpdatedBy() *uuid.UUID {
	return a.UpdatedBy
}

// MarkUpdatedBy records the acting user and bumps UpdatedAt
func (a *BaseAggregateRoot) MarkUpdatedBy(userID uuid.UUID) {
	a.Touch()
	if userID != uuid.Nil {
		a.UpdatedBy = &userID
	}
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
	}
}

// NewBaseAggregateRootWithCreator creates a new aggregate root stamped with its creator
func NewBaseAggregateRootWithCreator(createdBy uuid.UUID) BaseAggregateRoot {
	root := NewBaseAggregateRoot()
	if createdBy != uuid.Nil {
		root.CreatedBy = &createdBy
		root.UpdatedBy = &createdBy
	}
	return root
}
