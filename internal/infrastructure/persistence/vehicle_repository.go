package persistence

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVehicleRepository implements VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Vehicle, error) {
	var model models.VehicleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all vehicles matching the filter
func (r *GormVehicleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Vehicle, int64, error) {
	query := applySearch(r.db.WithContext(ctx).Model(&models.VehicleModel{}), filter.Search, "plate", "color")
	for key, value := range filter.Filters {
		switch key {
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		case "brand_model_id":
			query = query.Where("brand_model_id = ?", value)
		case "available":
			query = query.Where("available = ?", value)
		}
	}
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "plate", "asc"
	}

	var rows []models.VehicleModel
	total, err := countAndFind(query, filter, VehicleSortFields, "plate", &rows)
	if err != nil {
		return nil, 0, err
	}
	return vehiclesToDomain(rows), total, nil
}

// FindByIDs loads the vehicles with the given IDs
func (r *GormVehicleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]fleet.Vehicle, error) {
	if len(ids) == 0 {
		return []fleet.Vehicle{}, nil
	}
	var rows []models.VehicleModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return vehiclesToDomain(rows), nil
}

// FindWithOwnerExcluding lists owned vehicles not in ids, ordered by plate
func (r *GormVehicleRepository) FindWithOwnerExcluding(ctx context.Context, ids []uuid.UUID) ([]fleet.Vehicle, error) {
	query := r.db.WithContext(ctx).Model(&models.VehicleModel{}).Where("owner_id IS NOT NULL")
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}
	var rows []models.VehicleModel
	if err := query.Order("plate ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return vehiclesToDomain(rows), nil
}

// ExistsByPlate checks for another vehicle with the same normalized plate
func (r *GormVehicleRepository) ExistsByPlate(ctx context.Context, plate string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.VehicleModel{}).Where("plate = ?", fleet.NormalizePlate(plate))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

// Save creates or updates a vehicle
func (r *GormVehicleRepository) Save(ctx context.Context, v *fleet.Vehicle) error {
	return translateError(r.db.WithContext(ctx).Save(models.VehicleModelFromDomain(v)).Error)
}

// Delete deletes a vehicle by ID
func (r *GormVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.VehicleModel{}, id)
}

// HasRentals reports whether the vehicle appears on any rental
func (r *GormVehicleRepository) HasRentals(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.RentalModel{}).Where("vehicle_id = ?", id))
}

func vehiclesToDomain(rows []models.VehicleModel) []fleet.Vehicle {
	out := make([]fleet.Vehicle, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ fleet.VehicleRepository = (*GormVehicleRepository)(nil)
