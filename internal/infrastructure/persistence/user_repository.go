package persistence

import (
	"context"
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username, ignoring case
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists users matching the filter. Filters["role"] and
// Filters["active"] narrow the result.
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{})
	query = applySearch(query, filter.Search, "username", "first_name", "last_name", "email")
	for key, value := range filter.Filters {
		switch key {
		case "role":
			query = query.Where("role = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	var userModels []models.UserModel
	total, err := countAndFind(query, filter, UserSortFields, "created_at", &userModels)
	if err != nil {
		return nil, 0, err
	}
	users := make([]identity.User, len(userModels))
	for i := range userModels {
		users[i] = *userModels[i].ToDomain()
	}
	return users, total, nil
}

// ExistsByUsername checks for another user with the same username
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username)))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

// ExistsByEmail checks for another user with the same email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("email = ?", email)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a user by ID
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormAccessLogRepository implements AccessLogRepository using GORM
type GormAccessLogRepository struct {
	db *gorm.DB
}

// NewGormAccessLogRepository creates a new GormAccessLogRepository
func NewGormAccessLogRepository(db *gorm.DB) *GormAccessLogRepository {
	return &GormAccessLogRepository{db: db}
}

// Create appends an access log entry
func (r *GormAccessLogRepository) Create(ctx context.Context, entry *identity.AccessLog) error {
	return r.db.WithContext(ctx).Create(models.AccessLogModelFromDomain(entry)).Error
}

// FindAll lists entries newest first
func (r *GormAccessLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.AccessLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AccessLogModel{})
	if userID, ok := filter.Filters["user_id"]; ok {
		query = query.Where("user_id = ?", userID)
	}
	if action, ok := filter.Filters["action"]; ok {
		query = query.Where("action = ?", action)
	}
	filter.OrderBy = "occurred_at"
	filter.OrderDir = "desc"

	var logModels []models.AccessLogModel
	total, err := countAndFind(query, filter, map[string]bool{"occurred_at": true}, "occurred_at", &logModels)
	if err != nil {
		return nil, 0, err
	}
	logs := make([]identity.AccessLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToDomain()
	}
	return logs, total, nil
}

// Ensure interfaces are implemented
var (
	_ identity.UserRepository      = (*GormUserRepository)(nil)
	_ identity.AccessLogRepository = (*GormAccessLogRepository)(nil)
)
