package persistence

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/workshop"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMechanicRepository implements MechanicRepository using GORM
type GormMechanicRepository struct {
	db *gorm.DB
}

// NewGormMechanicRepository creates a new GormMechanicRepository
func NewGormMechanicRepository(db *gorm.DB) *GormMechanicRepository {
	return &GormMechanicRepository{db: db}
}

// FindByID finds a mechanic by ID
func (r *GormMechanicRepository) FindByID(ctx context.Context, id uuid.UUID) (*workshop.Mechanic, error) {
	var model models.MechanicModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists mechanics by name; Filters["active"] narrows
func (r *GormMechanicRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workshop.Mechanic, int64, error) {
	query := applySearch(r.db.WithContext(ctx).Model(&models.MechanicModel{}), filter.Search, "name", "speciality")
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "name", "asc"
	}

	var rows []models.MechanicModel
	total, err := countAndFind(query, filter, CatalogSortFields, "name", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]workshop.Mechanic, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a mechanic
func (r *GormMechanicRepository) Save(ctx context.Context, m *workshop.Mechanic) error {
	return translateError(r.db.WithContext(ctx).Save(models.MechanicModelFromDomain(m)).Error)
}

// Delete deletes a mechanic by ID
func (r *GormMechanicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.MechanicModel{}, id)
}

// HasWorkOrders reports whether the mechanic is assigned to any work order
func (r *GormMechanicRepository) HasWorkOrders(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.WorkOrderModel{}).Where("mechanic_id = ?", id))
}

// GormPartRepository implements PartRepository using GORM
type GormPartRepository struct {
	db *gorm.DB
}

// NewGormPartRepository creates a new GormPartRepository
func NewGormPartRepository(db *gorm.DB) *GormPartRepository {
	return &GormPartRepository{db: db}
}

// FindByID finds a part by ID
func (r *GormPartRepository) FindByID(ctx context.Context, id uuid.UUID) (*workshop.Part, error) {
	var model models.PartModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists parts; Filters["condition"] narrows
func (r *GormPartRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workshop.Part, int64, error) {
	query := applySearch(r.db.WithContext(ctx).Model(&models.PartModel{}), filter.Search, "name", "brand", "model")
	if condition, ok := filter.Filters["condition"]; ok {
		query = query.Where("condition = ?", condition)
	}
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "name", "asc"
	}

	var rows []models.PartModel
	total, err := countAndFind(query, filter, CatalogSortFields, "name", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]workshop.Part, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a part
func (r *GormPartRepository) Save(ctx context.Context, p *workshop.Part) error {
	return translateError(r.db.WithContext(ctx).Save(models.PartModelFromDomain(p)).Error)
}

// Delete deletes a part by ID
func (r *GormPartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.PartModel{}, id)
}

// IsUsed reports whether a work order consumed the part
func (r *GormPartRepository) IsUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.PartUsageModel{}).Where("part_id = ?", id))
}

// GormWorkOrderRepository implements WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// FindByID loads a work order with its part usages
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workshop.WorkOrder, error) {
	var model models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Parts", orderByCreated).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists work orders with their part usages
func (r *GormWorkOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workshop.WorkOrder, int64, error) {
	query := applySearch(r.db.WithContext(ctx).Model(&models.WorkOrderModel{}), filter.Search, "description")
	for key, value := range filter.Filters {
		switch key {
		case "vehicle_id":
			query = query.Where("vehicle_id = ?", value)
		case "mechanic_id":
			query = query.Where("mechanic_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "start_date", "desc"
	}

	var rows []models.WorkOrderModel
	total, err := countAndFind(query, filter, WorkOrderSortFields, "start_date", &rows, preloadParts)
	if err != nil {
		return nil, 0, err
	}
	out := make([]workshop.WorkOrder, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save upserts the work order and synchronises its part usages
func (r *GormWorkOrderRepository) Save(ctx context.Context, w *workshop.WorkOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Parts").Save(models.WorkOrderModelFromDomain(w)).Error; err != nil {
			return translateError(err)
		}
		usages := make([]*models.PartUsageModel, len(w.Parts))
		for i := range w.Parts {
			usages[i] = models.PartUsageModelFromDomain(w.ID, w.Parts[i])
		}
		return syncChildren(tx, "work_order_id", w.ID, usages, func(m *models.PartUsageModel) uuid.UUID { return m.ID })
	})
}

// Delete removes the work order and its part usages
func (r *GormWorkOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_order_id = ?", id).Delete(&models.PartUsageModel{}).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.WorkOrderModel{}, id)
	})
}

func preloadParts(db *gorm.DB) *gorm.DB {
	return db.Preload("Parts", orderByCreated)
}

// Ensure interfaces are implemented
var (
	_ workshop.MechanicRepository  = (*GormMechanicRepository)(nil)
	_ workshop.PartRepository      = (*GormPartRepository)(nil)
	_ workshop.WorkOrderRepository = (*GormWorkOrderRepository)(nil)
)
