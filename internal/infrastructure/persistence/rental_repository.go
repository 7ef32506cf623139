package persistence

import (
	"context"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRentalRepository implements RentalRepository using GORM
type GormRentalRepository struct {
	db *gorm.DB
}

// NewGormRentalRepository creates a new GormRentalRepository
func NewGormRentalRepository(db *gorm.DB) *GormRentalRepository {
	return &GormRentalRepository{db: db}
}

// FindByID finds a rental by ID
func (r *GormRentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	var model models.RentalModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all rentals matching the filter, newest period first by default
func (r *GormRentalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rental.Rental, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RentalModel{})
	for key, value := range filter.Filters {
		switch key {
		case "vehicle_id":
			query = query.Where("vehicle_id = ?", value)
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		case "status_id":
			query = query.Where("status_id = ?", value)
		}
	}
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "start_date", "desc"
	}

	var rows []models.RentalModel
	total, err := countAndFind(query, filter, RentalSortFields, "start_date", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]rental.Rental, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// FindOverlapping returns rentals whose period intersects [start, end],
// oldest first so that earlier rentals win a vehicle or tenant clash.
func (r *GormRentalRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]rental.Rental, error) {
	var rows []models.RentalModel
	if err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]rental.Rental, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a rental
func (r *GormRentalRepository) Save(ctx context.Context, rt *rental.Rental) error {
	return translateError(r.db.WithContext(ctx).Save(models.RentalModelFromDomain(rt)).Error)
}

// Delete deletes a rental by ID
func (r *GormRentalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.RentalModel{}, id)
}

// HasPayments reports whether the rental has recorded payments
func (r *GormRentalRepository) HasPayments(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("rental_id = ?", id))
}

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists payments, newest payment date first by default
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rental.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	if rentalID, ok := filter.Filters["rental_id"]; ok {
		query = query.Where("rental_id = ?", rentalID)
	}
	if method, ok := filter.Filters["payment_method_id"]; ok {
		query = query.Where("payment_method_id = ?", method)
	}
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "payment_date", "desc"
	}

	var rows []models.PaymentModel
	total, err := countAndFind(query, filter, PaymentSortFields, "payment_date", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]rental.Payment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, p *rental.Payment) error {
	return translateError(r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(p)).Error)
}

// Delete deletes a payment by ID
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.PaymentModel{}, id)
}

// GormDebtRepository implements DebtRepository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// FindByID finds a debt by ID
func (r *GormDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Debt, error) {
	var model models.DebtModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists debts, earliest due date first by default
func (r *GormDebtRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rental.Debt, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DebtModel{})
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		case "vehicle_id":
			query = query.Where("vehicle_id = ?", value)
		}
	}
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "due_date", "asc"
	}

	var rows []models.DebtModel
	total, err := countAndFind(query, filter, DebtSortFields, "due_date", &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]rental.Debt, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a debt
func (r *GormDebtRepository) Save(ctx context.Context, d *rental.Debt) error {
	return translateError(r.db.WithContext(ctx).Save(models.DebtModelFromDomain(d)).Error)
}

// Delete deletes a debt by ID
func (r *GormDebtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.DebtModel{}, id)
}

// Ensure interfaces are implemented
var (
	_ rental.RentalRepository  = (*GormRentalRepository)(nil)
	_ rental.PaymentRepository = (*GormPaymentRepository)(nil)
	_ rental.DebtRepository    = (*GormDebtRepository)(nil)
)
