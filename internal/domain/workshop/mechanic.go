package workshop

import (
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Mechanic performs work orders
type Mechanic struct {
	shared.BaseAggregateRoot
	Name       string
	Address    string
	Phone      string
	Email      string
	Speciality string
	Active     bool
}

// MechanicInput carries the editable mechanic fields
type MechanicInput struct {
	Name       string
	Address    string
	Phone      string
	Email      string
	Speciality string
	Active     bool
}

// NewMechanic validates and creates a mechanic
func NewMechanic(in MechanicInput, createdBy uuid.UUID) (*Mechanic, error) {
	m := &Mechanic{BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy)}
	if err := m.Update(in, createdBy); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the editable fields
func (m *Mechanic) Update(in MechanicInput, updatedBy uuid.UUID) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Mechanic name is required")
	}
	m.Name = name
	m.Address = strings.TrimSpace(in.Address)
	m.Phone = strings.TrimSpace(in.Phone)
	m.Email = strings.ToLower(strings.TrimSpace(in.Email))
	m.Speciality = strings.TrimSpace(in.Speciality)
	m.Active = in.Active
	m.MarkUpdatedBy(updatedBy)
	return nil
}
