package party

import (
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Guarantor vouches for a tenant
type Guarantor struct {
	shared.BaseEntity
	FullName             string
	Address              string
	Phone                string
	Email                string
	RelationshipID       *uuid.UUID
	EmploymentLetterPath string
}

// GuarantorInput carries the editable guarantor fields
type GuarantorInput struct {
	FullName       string
	Address        string
	Phone          string
	Email          string
	RelationshipID *uuid.UUID
}

// NewGuarantor validates and creates a guarantor
func NewGuarantor(in GuarantorInput) (Guarantor, error) {
	name := NormalizeName(in.FullName)
	if name == "" {
		return Guarantor{}, shared.NewDomainError("INVALID_GUARANTOR", "Guarantor name is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" && !emailPattern.MatchString(email) {
		return Guarantor{}, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return Guarantor{
		BaseEntity:     shared.NewBaseEntity(),
		FullName:       name,
		Address:        strings.TrimSpace(in.Address),
		Phone:          strings.TrimSpace(in.Phone),
		Email:          email,
		RelationshipID: in.RelationshipID,
	}, nil
}

// Tenant rents vehicles
type Tenant struct {
	shared.BaseAggregateRoot
	PersonalData
	Documents
	Guarantors []Guarantor
	References []Reference
}

// NewTenant validates and creates a tenant
func NewTenant(data PersonalData, createdBy uuid.UUID) (*Tenant, error) {
	t := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Guarantors:        make([]Guarantor, 0),
		References:        make([]Reference, 0),
	}
	if err := t.Update(data, createdBy); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces personal data
func (t *Tenant) Update(data PersonalData, updatedBy uuid.UUID) error {
	data = data.Normalize()
	if err := data.Validate(); err != nil {
		return err
	}
	t.PersonalData = data
	t.MarkUpdatedBy(updatedBy)
	return nil
}

// AddGuarantor appends a guarantor
func (t *Tenant) AddGuarantor(g Guarantor) {
	t.Guarantors = append(t.Guarantors, g)
}

// RemoveGuarantor drops a guarantor by ID
func (t *Tenant) RemoveGuarantor(id uuid.UUID) error {
	for i := range t.Guarantors {
		if t.Guarantors[i].ID == id {
			t.Guarantors = append(t.Guarantors[:i], t.Guarantors[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// AddReference appends a personal reference
func (t *Tenant) AddReference(ref Reference) {
	t.References = append(t.References, ref)
}

// RemoveReference drops a reference by ID
func (t *Tenant) RemoveReference(id uuid.UUID) error {
	for i := range t.References {
		if t.References[i].ID == id {
			t.References = append(t.References[:i], t.References[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}
