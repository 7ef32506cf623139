package persistence

import (
	"context"
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBrandModelRepository implements BrandModelRepository using GORM
type GormBrandModelRepository struct {
	db *gorm.DB
}

// NewGormBrandModelRepository creates a new GormBrandModelRepository
func NewGormBrandModelRepository(db *gorm.DB) *GormBrandModelRepository {
	return &GormBrandModelRepository{db: db}
}

// FindByID finds a brand/model entry by ID
func (r *GormBrandModelRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.BrandModel, error) {
	var model models.BrandModelModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists entries, searching brand, model and type
func (r *GormBrandModelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.BrandModel, int64, error) {
	query := applySearch(r.db.WithContext(ctx).Model(&models.BrandModelModel{}), filter.Search, "brand", "model", "type")
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "brand", "asc"
	}

	var rows []models.BrandModelModel
	total, err := countAndFind(query, filter, CatalogSortFields, "brand", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.BrandModel, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByBrandAndModel checks for another entry with the same pair
func (r *GormBrandModelRepository) ExistsByBrandAndModel(ctx context.Context, brand, model string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.BrandModelModel{}).
		Where("LOWER(brand) = ? AND LOWER(model) = ?",
			strings.ToLower(strings.TrimSpace(brand)), strings.ToLower(strings.TrimSpace(model)))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

// Save creates or updates an entry
func (r *GormBrandModelRepository) Save(ctx context.Context, b *catalog.BrandModel) error {
	return translateError(r.db.WithContext(ctx).Save(models.BrandModelModelFromDomain(b)).Error)
}

// Delete deletes an entry by ID
func (r *GormBrandModelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.BrandModelModel{}, id)
}

// IsReferenced reports whether a vehicle uses the entry
func (r *GormBrandModelRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.VehicleModel{}).Where("brand_model_id = ?", id))
}

// GormBankRepository implements BankRepository using GORM. Account numbers
// are encrypted, so uniqueness is checked against their blind index.
type GormBankRepository struct {
	db      *gorm.DB
	indexer BlindIndexer
}

// NewGormBankRepository creates a new GormBankRepository
func NewGormBankRepository(db *gorm.DB, indexer BlindIndexer) *GormBankRepository {
	return &GormBankRepository{db: db, indexer: indexer}
}

// FindByID finds a bank by ID
func (r *GormBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Bank, error) {
	var model models.BankModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists banks, searching the bank and administrator names
func (r *GormBankRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Bank, int64, error) {
	query := applySearch(r.db.WithContext(ctx).Model(&models.BankModel{}), filter.Search, "name", "administrator_name")
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "name", "asc"
	}

	var rows []models.BankModel
	total, err := countAndFind(query, filter, CatalogSortFields, "name", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Bank, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByAccount checks for another bank holding the same account number
func (r *GormBankRepository) ExistsByAccount(ctx context.Context, accountNumber string, excludeID uuid.UUID) (bool, error) {
	hash := r.indexer.BlindIndex(accountNumber)
	if hash == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).Model(&models.BankModel{}).Where("account_hash = ?", hash)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

// Save creates or updates a bank
func (r *GormBankRepository) Save(ctx context.Context, b *catalog.Bank) error {
	model := models.BankModelFromDomain(b, r.indexer.BlindIndex(b.AccountNumber))
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a bank by ID
func (r *GormBankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.BankModel{}, id)
}

// GormLookupRepository implements LookupRepository using GORM
type GormLookupRepository struct {
	db *gorm.DB
}

// NewGormLookupRepository creates a new GormLookupRepository
func NewGormLookupRepository(db *gorm.DB) *GormLookupRepository {
	return &GormLookupRepository{db: db}
}

// FindByID finds a lookup entry by ID
func (r *GormLookupRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.LookupEntry, error) {
	var model models.LookupEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds an entry of a kind by name, ignoring case
func (r *GormLookupRepository) FindByName(ctx context.Context, kind catalog.LookupKind, name string) (*catalog.LookupEntry, error) {
	var model models.LookupEntryModel
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND LOWER(name) = ?", kind, strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindFirst returns the oldest entry of a kind
func (r *GormLookupRepository) FindFirst(ctx context.Context, kind catalog.LookupKind) (*catalog.LookupEntry, error) {
	var model models.LookupEntryModel
	if err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists every entry of a kind ordered by name
func (r *GormLookupRepository) FindAll(ctx context.Context, kind catalog.LookupKind) ([]catalog.LookupEntry, error) {
	var rows []models.LookupEntryModel
	if err := r.db.WithContext(ctx).Where("kind = ?", kind).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.LookupEntry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByName checks for another entry of the kind with the same name
func (r *GormLookupRepository) ExistsByName(ctx context.Context, kind catalog.LookupKind, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.LookupEntryModel{}).
		Where("kind = ? AND LOWER(name) = ?", kind, strings.ToLower(strings.TrimSpace(name)))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

// Save creates or updates an entry
func (r *GormLookupRepository) Save(ctx context.Context, e *catalog.LookupEntry) error {
	return translateError(r.db.WithContext(ctx).Save(models.LookupEntryModelFromDomain(e)).Error)
}

// Delete deletes an entry by ID
func (r *GormLookupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.LookupEntryModel{}, id)
}

// deleteByID deletes one row of model's table, ErrNotFound if none matched
func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure interfaces are implemented
var (
	_ catalog.BrandModelRepository = (*GormBrandModelRepository)(nil)
	_ catalog.BankRepository       = (*GormBankRepository)(nil)
	_ catalog.LookupRepository     = (*GormLookupRepository)(nil)
)
