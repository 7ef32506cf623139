package settlement

import (
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitPercentage is a named company margin applied to a week at creation
type ProfitPercentage struct {
	shared.BaseAggregateRoot
	Description string
	Percentage  decimal.Decimal
	Active      bool
	IsDefault   bool
}

// NewProfitPercentage validates and creates a profit percentage
func NewProfitPercentage(description string, percentage decimal.Decimal, active, isDefault bool, createdBy uuid.UUID) (*ProfitPercentage, error) {
	p := &ProfitPercentage{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
	}
	if err := p.Update(description, percentage, active, isDefault, createdBy); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields
func (p *ProfitPercentage) Update(description string, percentage decimal.Decimal, active, isDefault bool, updatedBy uuid.UUID) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}
	if len(description) > 200 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 200 characters")
	}
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_PERCENTAGE", "Percentage must be between 0 and 100")
	}
	p.Description = description
	p.Percentage = percentage
	p.Active = active
	p.IsDefault = isDefault
	p.MarkUpdatedBy(updatedBy)
	return nil
}
