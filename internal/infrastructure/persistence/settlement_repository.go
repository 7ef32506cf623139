package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormWeekRepository implements WeekRepository using GORM
type GormWeekRepository struct {
	db *gorm.DB
}

// NewGormWeekRepository creates a new GormWeekRepository
func NewGormWeekRepository(db *gorm.DB) *GormWeekRepository {
	return &GormWeekRepository{db: db}
}

// FindByID loads a week with its line items
func (r *GormWeekRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.Week, error) {
	var model models.SettlementWeekModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderByCreated).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByItemID loads the week owning a line item
func (r *GormWeekRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*settlement.Week, error) {
	var item models.SettlementLineItemModel
	if err := r.db.WithContext(ctx).Select("id", "week_id").First(&item, "id = ?", itemID).Error; err != nil {
		return nil, translateError(err)
	}
	return r.FindByID(ctx, item.WeekID)
}

// FindAll lists week headers newest first
func (r *GormWeekRepository) FindAll(ctx context.Context, filter settlement.WeekFilter) ([]settlement.Week, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SettlementWeekModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SettlementWeekModel
	if err := query.
		Order("start_date DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	weeks := make([]settlement.Week, len(rows))
	for i := range rows {
		weeks[i] = *rows[i].ToDomain()
	}
	return weeks, total, nil
}

// ExistsForDates reports whether a week with exactly these bounds exists
func (r *GormWeekRepository) ExistsForDates(ctx context.Context, start, end time.Time) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.SettlementWeekModel{}).
		Where("start_date = ? AND end_date = ?", start, end))
}

// Save upserts the week header and synchronises its line items
func (r *GormWeekRepository) Save(ctx context.Context, week *settlement.Week) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(models.SettlementWeekModelFromDomain(week)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return settlement.ErrWeekExists
			}
			return err
		}

		items := make([]*models.SettlementLineItemModel, len(week.Items))
		for i := range week.Items {
			week.Items[i].WeekID = week.ID
			items[i] = models.SettlementLineItemModelFromDomain(&week.Items[i])
		}
		return syncChildren(tx, "week_id", week.ID, items, func(m *models.SettlementLineItemModel) uuid.UUID { return m.ID })
	})
}

// Delete removes the week and all its items
func (r *GormWeekRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("week_id = ?", id).Delete(&models.SettlementLineItemModel{}).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.SettlementWeekModel{}, id)
	})
}

// CountByProfitPercentage counts weeks referencing a profit percentage
func (r *GormWeekRepository) CountByProfitPercentage(ctx context.Context, profitID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SettlementWeekModel{}).
		Where("profit_percentage_id = ?", profitID).
		Count(&count).Error
	return count, err
}

// Stats returns the counters shown above the week list. Month income sums
// the weeks starting inside [monthStart, monthEnd].
func (r *GormWeekRepository) Stats(ctx context.Context, monthStart, monthEnd time.Time) (settlement.WeekStats, error) {
	var stats settlement.WeekStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.SettlementWeekModel{}).Count(&stats.TotalWeeks).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.SettlementWeekModel{}).
		Where("status = ?", settlement.WeekStatusOpen).
		Count(&stats.OpenWeeks).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.SettlementLineItemModel{}).
		Where("confirmed = ?", false).
		Count(&stats.UnconfirmedItems).Error; err != nil {
		return stats, err
	}

	var income decimal.NullDecimal
	if err := db.Model(&models.SettlementWeekModel{}).
		Select("SUM(total_income)").
		Where("start_date >= ? AND start_date <= ?", monthStart, monthEnd).
		Row().Scan(&income); err != nil {
		return stats, err
	}
	stats.CurrentMonthIncome = decimal.Zero
	if income.Valid {
		stats.CurrentMonthIncome = income.Decimal
	}
	return stats, nil
}

// ItemDetails lists the items of a week joined with party, vehicle and
// bank names. Tenant phones are encrypted, so they are read through the
// tenant model in a second query.
func (r *GormWeekRepository) ItemDetails(ctx context.Context, weekID uuid.UUID) ([]settlement.ItemDetail, error) {
	type detailRow struct {
		models.SettlementLineItemModel
		OwnerName  string
		Plate      string
		Brand      string
		Model      string
		TenantName string
		BankName   string
	}

	var rows []detailRow
	if err := r.db.WithContext(ctx).
		Table("settlement_line_items AS i").
		Select(`i.*, o.full_name AS owner_name, v.plate AS plate, bm.brand AS brand, bm.model AS model,
			t.full_name AS tenant_name, b.name AS bank_name`).
		Joins("LEFT JOIN owners o ON o.id = i.owner_id").
		Joins("LEFT JOIN vehicles v ON v.id = i.vehicle_id").
		Joins("LEFT JOIN brand_models bm ON bm.id = v.brand_model_id").
		Joins("LEFT JOIN tenants t ON t.id = i.tenant_id").
		Joins("LEFT JOIN banks b ON b.id = i.bank_id").
		Where("i.week_id = ?", weekID).
		Order("o.full_name ASC, v.plate ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	tenantIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		tenantIDs = append(tenantIDs, row.TenantID)
	}
	phones := make(map[uuid.UUID]string, len(tenantIDs))
	if len(tenantIDs) > 0 {
		var tenants []models.TenantModel
		if err := r.db.WithContext(ctx).Select("id", "phone").Where("id IN ?", tenantIDs).Find(&tenants).Error; err != nil {
			return nil, err
		}
		for _, t := range tenants {
			phones[t.ID] = t.Phone
		}
	}

	details := make([]settlement.ItemDetail, len(rows))
	for i := range rows {
		details[i] = settlement.ItemDetail{
			LineItem:    rows[i].SettlementLineItemModel.ToDomain(),
			OwnerName:   rows[i].OwnerName,
			Plate:       rows[i].Plate,
			BrandModel:  strings.TrimSpace(rows[i].Brand + " " + rows[i].Model),
			TenantName:  rows[i].TenantName,
			TenantPhone: phones[rows[i].TenantID],
			BankName:    rows[i].BankName,
		}
	}
	return details, nil
}

// GormProfitPercentageRepository implements ProfitPercentageRepository using GORM
type GormProfitPercentageRepository struct {
	db *gorm.DB
}

// NewGormProfitPercentageRepository creates a new GormProfitPercentageRepository
func NewGormProfitPercentageRepository(db *gorm.DB) *GormProfitPercentageRepository {
	return &GormProfitPercentageRepository{db: db}
}

// FindByID finds a profit percentage by ID
func (r *GormProfitPercentageRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.ProfitPercentage, error) {
	var model models.ProfitPercentageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists default first, then active, then by ascending percentage
func (r *GormProfitPercentageRepository) FindAll(ctx context.Context) ([]settlement.ProfitPercentage, error) {
	var rows []models.ProfitPercentageModel
	if err := r.db.WithContext(ctx).
		Order("is_default DESC, active DESC, percentage ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]settlement.ProfitPercentage, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindDefault returns the percentage flagged as default
func (r *GormProfitPercentageRepository) FindDefault(ctx context.Context) (*settlement.ProfitPercentage, error) {
	var model models.ProfitPercentageModel
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a profit percentage
func (r *GormProfitPercentageRepository) Save(ctx context.Context, p *settlement.ProfitPercentage) error {
	return translateError(r.db.WithContext(ctx).Save(models.ProfitPercentageModelFromDomain(p)).Error)
}

// Delete deletes a profit percentage by ID
func (r *GormProfitPercentageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ProfitPercentageModel{}, id)
}

// ClearDefaultExcept unsets the default flag on every other row
func (r *GormProfitPercentageRepository) ClearDefaultExcept(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.ProfitPercentageModel{}).
		Where("id <> ? AND is_default = ?", id, true).
		Update("is_default", false).Error
}

// Ensure interfaces are implemented
var (
	_ settlement.WeekRepository             = (*GormWeekRepository)(nil)
	_ settlement.DetailRepository           = (*GormWeekRepository)(nil)
	_ settlement.ProfitPercentageRepository = (*GormProfitPercentageRepository)(nil)
)
