package persistence

import (
	"context"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// recentPaymentsLimit is how many payments the dashboard widget shows
const recentPaymentsLimit = 10

// debtTotalExpr sums a debt with its accumulated penalty
const debtTotalExpr = "d.amount + d.days_late * d.daily_penalty"

// GormReportRepository implements ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Dashboard computes the landing page counters
func (r *GormReportRepository) Dashboard(ctx context.Context, today, monthStart, monthEnd time.Time) (*report.Dashboard, error) {
	db := r.db.WithContext(ctx)
	dash := &report.Dashboard{GeneratedAt: time.Now()}

	counts := []struct {
		dest  *int64
		table string
		where string
		args  []any
	}{
		{&dash.TotalVehicles, "vehicles", "", nil},
		{&dash.AvailableVehicles, "vehicles", "available = ?", []any{true}},
		{&dash.TotalOwners, "owners", "", nil},
		{&dash.TotalTenants, "tenants", "", nil},
		{&dash.ActiveRentals, "rentals", "start_date <= ? AND end_date >= ?", []any{today, today}},
	}
	for _, c := range counts {
		q := db.Table(c.table)
		if c.where != "" {
			q = q.Where(c.where, c.args...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	type sums struct {
		PendingDebt decimal.Decimal
		MonthIncome decimal.Decimal
	}
	var s sums
	if err := db.Table("debts d").
		Select("COALESCE(SUM("+debtTotalExpr+"), 0) AS pending_debt").
		Where("d.status = ?", rental.DebtPending).
		Scan(&s).Error; err != nil {
		return nil, err
	}
	dash.PendingDebt = s.PendingDebt

	if err := db.Table("payments").
		Select("COALESCE(SUM(net), 0) AS month_income").
		Where("payment_date >= ? AND payment_date <= ?", monthStart, monthEnd).
		Scan(&s).Error; err != nil {
		return nil, err
	}
	dash.MonthIncome = s.MonthIncome

	recent, err := r.recentPayments(db)
	if err != nil {
		return nil, err
	}
	dash.RecentPayments = recent
	return dash, nil
}

func (r *GormReportRepository) recentPayments(db *gorm.DB) ([]report.RecentPayment, error) {
	var rows []report.RecentPayment
	err := db.Table("payments p").
		Select(`
			p.id AS payment_id,
			p.rental_id AS rental_id,
			v.plate AS plate,
			t.full_name AS tenant_name,
			p.amount AS amount,
			p.net AS net,
			p.payment_date AS payment_date
		`).
		Joins("JOIN rentals r ON r.id = p.rental_id").
		Joins("LEFT JOIN vehicles v ON v.id = r.vehicle_id").
		Joins("LEFT JOIN tenants t ON t.id = r.tenant_id").
		Order("p.payment_date DESC, p.created_at DESC").
		Limit(recentPaymentsLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.RecentPayment{}
	}
	return rows, nil
}

// IncomeByMonth sums payment net amounts per month of year. The grouping
// is done in Go because month extraction differs between PostgreSQL and
// SQLite.
func (r *GormReportRepository) IncomeByMonth(ctx context.Context, year int) ([]report.MonthlyIncome, error) {
	type paymentRow struct {
		PaymentDate time.Time
		Net         decimal.Decimal
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var rows []paymentRow
	if err := r.db.WithContext(ctx).Table("payments").
		Select("payment_date, net").
		Where("payment_date >= ? AND payment_date <= ?", from, to).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	byMonth := make(map[int]decimal.Decimal)
	for _, row := range rows {
		m := int(row.PaymentDate.Month())
		byMonth[m] = byMonth[m].Add(row.Net)
	}
	out := make([]report.MonthlyIncome, 0, len(byMonth))
	for m := 1; m <= 12; m++ {
		if income, ok := byMonth[m]; ok {
			out = append(out, report.MonthlyIncome{Month: m, Income: income})
		}
	}
	return out, nil
}

// OwnerSummaries lists owners with their vehicle count, by name
func (r *GormReportRepository) OwnerSummaries(ctx context.Context) ([]report.OwnerSummary, error) {
	var rows []report.OwnerSummary
	err := r.db.WithContext(ctx).Table("owners o").
		Select("o.id AS owner_id, o.full_name AS full_name, COUNT(v.id) AS vehicle_count").
		Joins("LEFT JOIN vehicles v ON v.owner_id = o.id").
		Group("o.id, o.full_name").
		Order("o.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

// TenantSummaries lists tenants with their rental count and pending debt
func (r *GormReportRepository) TenantSummaries(ctx context.Context) ([]report.TenantSummary, error) {
	var rows []report.TenantSummary
	err := r.db.WithContext(ctx).Table("tenants t").
		Select(`
			t.id AS tenant_id,
			t.full_name AS full_name,
			(SELECT COUNT(*) FROM rentals r WHERE r.tenant_id = t.id) AS rental_count,
			(SELECT COALESCE(SUM(`+debtTotalExpr+`), 0) FROM debts d
				WHERE d.tenant_id = t.id AND d.status = ?) AS pending_debt
		`, rental.DebtPending).
		Order("t.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

var _ report.ReportRepository = (*GormReportRepository)(nil)
