package persistence

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOwnerRepository implements OwnerRepository using GORM
type GormOwnerRepository struct {
	db      *gorm.DB
	indexer BlindIndexer
}

// NewGormOwnerRepository creates a new GormOwnerRepository
func NewGormOwnerRepository(db *gorm.DB, indexer BlindIndexer) *GormOwnerRepository {
	return &GormOwnerRepository{db: db, indexer: indexer}
}

// FindByID loads an owner with its references
func (r *GormOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Owner, error) {
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).
		Preload("References", orderByCreated).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists owners by name, without references
func (r *GormOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]party.Owner, int64, error) {
	query := applySearch(r.db.WithContext(ctx).Model(&models.OwnerModel{}), filter.Search, "full_name", "email")
	if userID, ok := filter.Filters["user_id"]; ok {
		query = query.Where("user_id = ?", userID)
	}
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "full_name", "asc"
	}

	var rows []models.OwnerModel
	total, err := countAndFind(query, filter, PartySortFields, "full_name", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]party.Owner, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByIDNumber checks for another owner with the same ID number
func (r *GormOwnerRepository) ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error) {
	return existsByHash(ctx, r.db, &models.OwnerModel{}, r.indexer.BlindIndex(idNumber), excludeID)
}

// Save upserts the owner and synchronises its references
func (r *GormOwnerRepository) Save(ctx context.Context, o *party.Owner) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("References").Save(models.OwnerModelFromDomain(o, r.indexer.BlindIndex(o.IDNumber))).Error; err != nil {
			return translateError(err)
		}
		refs := make([]*models.OwnerReferenceModel, len(o.References))
		for i := range o.References {
			refs[i] = models.OwnerReferenceModelFromDomain(o.ID, o.References[i])
		}
		return syncChildren(tx, "owner_id", o.ID, refs, func(m *models.OwnerReferenceModel) uuid.UUID { return m.ID })
	})
}

// Delete removes the owner and its references
func (r *GormOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&models.OwnerReferenceModel{}).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.OwnerModel{}, id)
	})
}

// HasVehicles reports whether any vehicle belongs to the owner
func (r *GormOwnerRepository) HasVehicles(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.VehicleModel{}).Where("owner_id = ?", id))
}

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db      *gorm.DB
	indexer BlindIndexer
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB, indexer BlindIndexer) *GormTenantRepository {
	return &GormTenantRepository{db: db, indexer: indexer}
}

// FindByID loads a tenant with guarantors and references
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Preload("Guarantors", orderByCreated).
		Preload("References", orderByCreated).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists tenants by name, without children
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]party.Tenant, int64, error) {
	query := applySearch(r.db.WithContext(ctx).Model(&models.TenantModel{}), filter.Search, "full_name", "email")
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "full_name", "asc"
	}

	var rows []models.TenantModel
	total, err := countAndFind(query, filter, PartySortFields, "full_name", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]party.Tenant, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// FindExcluding lists tenants not in ids, ordered by name
func (r *GormTenantRepository) FindExcluding(ctx context.Context, ids []uuid.UUID) ([]party.Tenant, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}
	var rows []models.TenantModel
	if err := query.Order("full_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]party.Tenant, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByIDNumber checks for another tenant with the same ID number
func (r *GormTenantRepository) ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error) {
	return existsByHash(ctx, r.db, &models.TenantModel{}, r.indexer.BlindIndex(idNumber), excludeID)
}

// Save upserts the tenant and synchronises guarantors and references
func (r *GormTenantRepository) Save(ctx context.Context, t *party.Tenant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := models.TenantModelFromDomain(t, r.indexer.BlindIndex(t.IDNumber))
		if err := tx.Omit("Guarantors", "References").Save(header).Error; err != nil {
			return translateError(err)
		}

		guarantors := make([]*models.GuarantorModel, len(t.Guarantors))
		for i := range t.Guarantors {
			guarantors[i] = models.GuarantorModelFromDomain(t.ID, t.Guarantors[i])
		}
		if err := syncChildren(tx, "tenant_id", t.ID, guarantors, func(m *models.GuarantorModel) uuid.UUID { return m.ID }); err != nil {
			return err
		}

		refs := make([]*models.TenantReferenceModel, len(t.References))
		for i := range t.References {
			refs[i] = models.TenantReferenceModelFromDomain(t.ID, t.References[i])
		}
		return syncChildren(tx, "tenant_id", t.ID, refs, func(m *models.TenantReferenceModel) uuid.UUID { return m.ID })
	})
}

// Delete removes the tenant with its guarantors and references
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", id).Delete(&models.GuarantorModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&models.TenantReferenceModel{}).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.TenantModel{}, id)
	})
}

// HasRentals reports whether the tenant appears on any rental
func (r *GormTenantRepository) HasRentals(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.RentalModel{}).Where("tenant_id = ?", id))
}

func existsByHash(ctx context.Context, db *gorm.DB, model any, hash string, excludeID uuid.UUID) (bool, error) {
	if hash == "" {
		return false, nil
	}
	query := db.WithContext(ctx).Model(model).Where("id_number_hash = ?", hash)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

func orderByCreated(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// syncChildren deletes the children of parentID that are no longer in
// rows, then saves every row.
func syncChildren[M any](tx *gorm.DB, parentColumn string, parentID uuid.UUID, rows []*M, idOf func(*M) uuid.UUID) error {
	if len(rows) > 0 {
		ids := make([]uuid.UUID, len(rows))
		for i, row := range rows {
			ids[i] = idOf(row)
		}
		if err := tx.Where(parentColumn+" = ? AND id NOT IN ?", parentID, ids).Delete(new(M)).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where(parentColumn+" = ?", parentID).Delete(new(M)).Error; err != nil {
			return err
		}
	}

	for _, row := range rows {
		if err := tx.Save(row).Error; err != nil {
			return translateError(err)
		}
	}
	return nil
}

// Ensure interfaces are implemented
var (
	_ party.OwnerRepository  = (*GormOwnerRepository)(nil)
	_ party.TenantRepository = (*GormTenantRepository)(nil)
)
