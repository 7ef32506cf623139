package party

import (
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Reference is a personal reference of an owner or tenant
type Reference struct {
	shared.BaseEntity
	FullName       string
	RelationshipID *uuid.UUID
	Phone          string
}

// NewReference validates and creates a reference
func NewReference(fullName string, relationshipID *uuid.UUID, phone string) (Reference, error) {
	fullName = NormalizeName(fullName)
	phone = strings.TrimSpace(phone)
	if fullName == "" || phone == "" {
		return Reference{}, shared.NewDomainError("INVALID_REFERENCE", "Reference name and phone are required")
	}
	return Reference{
		BaseEntity:     shared.NewBaseEntity(),
		FullName:       fullName,
		RelationshipID: relationshipID,
		Phone:          phone,
	}, nil
}

// Owner owns one or more vehicles
type Owner struct {
	shared.BaseAggregateRoot
	PersonalData
	Documents
	UserID     *uuid.UUID
	References []Reference
}

// NewOwner validates and creates an owner
func NewOwner(data PersonalData, userID *uuid.UUID, createdBy uuid.UUID) (*Owner, error) {
	o := &Owner{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		References:        make([]Reference, 0),
	}
	if err := o.Update(data, userID, createdBy); err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces personal data and the linked user
func (o *Owner) Update(data PersonalData, userID *uuid.UUID, updatedBy uuid.UUID) error {
	data = data.Normalize()
	if err := data.Validate(); err != nil {
		return err
	}
	o.PersonalData = data
	o.UserID = userID
	o.MarkUpdatedBy(updatedBy)
	return nil
}

// AddReference appends a personal reference
func (o *Owner) AddReference(ref Reference) {
	o.References = append(o.References, ref)
}

// RemoveReference drops a reference by ID
func (o *Owner) RemoveReference(id uuid.UUID) error {
	for i := range o.References {
		if o.References[i].ID == id {
			o.References = append(o.References[:i], o.References[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}
