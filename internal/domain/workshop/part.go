package workshop

import (
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartCondition tells new parts from used ones
type PartCondition string

const (
	PartNew  PartCondition = "nueva"
	PartUsed PartCondition = "usada"
)

// Part is a spare part that can be consumed by work orders
type Part struct {
	shared.BaseAggregateRoot
	Name        string
	Brand       string
	Model       string
	Condition   PartCondition
	Cost        decimal.Decimal
	Description string
}

// PartInput carries the editable part fields
type PartInput struct {
	Name        string
	Brand       string
	Model       string
	Condition   PartCondition
	Cost        decimal.Decimal
	Description string
}

// NewPart validates and creates a part
func NewPart(in PartInput, createdBy uuid.UUID) (*Part, error) {
	p := &Part{BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy)}
	if err := p.Update(in, createdBy); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields
func (p *Part) Update(in PartInput, updatedBy uuid.UUID) error {
	name := strings.TrimSpace(in.Name)
	brand := strings.TrimSpace(in.Brand)
	if name == "" || brand == "" {
		return shared.NewDomainError("INVALID_PART", "Part name and brand are required")
	}
	if in.Condition != PartNew && in.Condition != PartUsed {
		return shared.NewDomainError("INVALID_CONDITION", "Condition must be nueva or usada")
	}
	if in.Cost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Cost cannot be negative")
	}
	p.Name = name
	p.Brand = brand
	p.Model = strings.TrimSpace(in.Model)
	p.Condition = in.Condition
	p.Cost = in.Cost.Round(2)
	p.Description = strings.TrimSpace(in.Description)
	p.MarkUpdatedBy(updatedBy)
	return nil
}
