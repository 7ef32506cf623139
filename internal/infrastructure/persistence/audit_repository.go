package persistence

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditRepository implements the append-only audit log using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts an entry; entries are never updated
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(models.AuditEntryModelFromDomain(entry)).Error
}

// FindByEntity lists the entries of one entity, newest first
func (r *GormAuditRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.Entry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditEntryModel{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)
	if op, ok := filter.Filters["operation"]; ok {
		query = query.Where("operation = ?", op)
	}
	filter.OrderBy, filter.OrderDir = "occurred_at", "desc"

	var rows []models.AuditEntryModel
	total, err := countAndFind(query, filter, map[string]bool{"occurred_at": true}, "occurred_at", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]audit.Entry, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

var _ audit.Repository = (*GormAuditRepository)(nil)
