package fleet

import (
	"regexp"
	"strings"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vehicle is a rentable unit belonging to an owner
type Vehicle struct {
	shared.BaseAggregateRoot
	OwnerID      uuid.UUID
	Plate        string
	BrandModelID *uuid.UUID
	Year         int
	Color        string
	Description  string
	WeeklyPrice  decimal.Decimal
	Conditions   string
	Available    bool
	PhotoPath    string
	DocumentPath string
}

// VehicleInput carries the editable vehicle fields
type VehicleInput struct {
	OwnerID      uuid.UUID
	Plate        string
	BrandModelID *uuid.UUID
	Year         int
	Color        string
	Description  string
	WeeklyPrice  decimal.Decimal
	Conditions   string
	Available    bool
}

var platePattern = regexp.MustCompile(`^[A-Z0-9-]{3,20}$`)

// NormalizePlate upper-cases a plate and strips spaces
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}

// IsValidPlate reports whether plate, once normalized, is a well-formed plate
func IsValidPlate(plate string) bool {
	return platePattern.MatchString(NormalizePlate(plate))
}

// NewVehicle validates and creates a vehicle
func NewVehicle(in VehicleInput, createdBy uuid.UUID) (*Vehicle, error) {
	v := &Vehicle{BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy)}
	if err := v.Update(in, createdBy); err != nil {
		return nil, err
	}
	return v, nil
}

// Update replaces the editable fields
func (v *Vehicle) Update(in VehicleInput, updatedBy uuid.UUID) error {
	plate := NormalizePlate(in.Plate)
	if !platePattern.MatchString(plate) {
		return shared.NewDomainError("INVALID_PLATE", "Plate must be 3 to 20 letters, digits or dashes")
	}
	if in.OwnerID == uuid.Nil {
		return shared.NewDomainError("INVALID_OWNER", "Owner is required")
	}
	if !in.WeeklyPrice.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Weekly price must be greater than zero")
	}
	if in.Year != 0 && (in.Year < 1950 || in.Year > time.Now().Year()+1) {
		return shared.NewDomainError("INVALID_YEAR", "Year is out of range")
	}
	v.OwnerID = in.OwnerID
	v.Plate = plate
	v.BrandModelID = in.BrandModelID
	v.Year = in.Year
	v.Color = strings.TrimSpace(in.Color)
	v.Description = strings.TrimSpace(in.Description)
	v.WeeklyPrice = in.WeeklyPrice.Round(2)
	v.Conditions = strings.TrimSpace(in.Conditions)
	v.Available = in.Available
	v.MarkUpdatedBy(updatedBy)
	return nil
}

// SetMedia stores uploaded media paths; empty values keep the current path
func (v *Vehicle) SetMedia(photoPath, documentPath string) {
	if photoPath != "" {
		v.PhotoPath = photoPath
	}
	if documentPath != "" {
		v.DocumentPath = documentPath
	}
}
