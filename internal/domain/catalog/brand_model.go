package catalog

import (
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// BrandModel is a vehicle make/model pair
type BrandModel struct {
	shared.BaseAggregateRoot
	Brand       string
	Model       string
	Type        string
	LogoPath    string
	Description string
}

// NewBrandModel validates and creates a brand/model entry
func NewBrandModel(brand, model, vehicleType, description string, createdBy uuid.UUID) (*BrandModel, error) {
	b := &BrandModel{BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy)}
	if err := b.Update(brand, model, vehicleType, description, createdBy); err != nil {
		return nil, err
	}
	return b, nil
}

// Update replaces the descriptive fields
func (b *BrandModel) Update(brand, model, vehicleType, description string, updatedBy uuid.UUID) error {
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)
	if brand == "" || model == "" {
		return shared.NewDomainError("INVALID_BRAND_MODEL", "Brand and model are required")
	}
	if len(brand) > 50 || len(model) > 50 {
		return shared.NewDomainError("INVALID_BRAND_MODEL", "Brand and model cannot exceed 50 characters")
	}
	b.Brand = brand
	b.Model = model
	b.Type = strings.TrimSpace(vehicleType)
	b.Description = strings.TrimSpace(description)
	b.MarkUpdatedBy(updatedBy)
	return nil
}

// SetLogo stores the uploaded logo path
func (b *BrandModel) SetLogo(path string) {
	b.LogoPath = path
}

// Label renders "Brand Model"
func (b *BrandModel) Label() string {
	return b.Brand + " " + b.Model
}
