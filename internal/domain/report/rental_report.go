package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dashboard is the read model of the landing page counters
type Dashboard struct {
	TotalVehicles     int64           `json:"total_vehicles"`
	AvailableVehicles int64           `json:"available_vehicles"`
	TotalOwners       int64           `json:"total_owners"`
	TotalTenants      int64           `json:"total_tenants"`
	ActiveRentals     int64           `json:"active_rentals"`
	PendingDebt       decimal.Decimal `json:"pending_debt"`
	MonthIncome       decimal.Decimal `json:"month_income"`
	RecentPayments    []RecentPayment `json:"recent_payments"`
	GeneratedAt       time.Time       `json:"generated_at"`
}

// RecentPayment is one row of the last-payments widget
type RecentPayment struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	RentalID    uuid.UUID       `json:"rental_id"`
	Plate       string          `json:"plate"`
	TenantName  string          `json:"tenant_name"`
	Amount      decimal.Decimal `json:"amount"`
	Net         decimal.Decimal `json:"net"`
	PaymentDate time.Time       `json:"payment_date"`
}

// MonthlyIncome is the net income of one calendar month
type MonthlyIncome struct {
	Month  int             `json:"month"`
	Income decimal.Decimal `json:"income"`
}

// OwnerSummary lists an owner with how many vehicles they own
type OwnerSummary struct {
	OwnerID      uuid.UUID `json:"owner_id"`
	FullName     string    `json:"full_name"`
	VehicleCount int64     `json:"vehicle_count"`
}

// TenantSummary lists a tenant with rental activity and open debt
type TenantSummary struct {
	TenantID    uuid.UUID       `json:"tenant_id"`
	FullName    string          `json:"full_name"`
	RentalCount int64           `json:"rental_count"`
	PendingDebt decimal.Decimal `json:"pending_debt"`
}

// ReportRepository runs the read-side aggregate queries
type ReportRepository interface {
	// Dashboard computes the counters; month bounds select MonthIncome and
	// today selects the active rentals.
	Dashboard(ctx context.Context, today, monthStart, monthEnd time.Time) (*Dashboard, error)

	// IncomeByMonth sums payment net amounts per month of year; months
	// without payments are absent from the result.
	IncomeByMonth(ctx context.Context, year int) ([]MonthlyIncome, error)

	OwnerSummaries(ctx context.Context) ([]OwnerSummary, error)
	TenantSummaries(ctx context.Context) ([]TenantSummary, error)
}

// FillMonths expands a sparse per-month series into 12 entries, zero-filled
func FillMonths(series []MonthlyIncome) []MonthlyIncome {
	out := make([]MonthlyIncome, 12)
	for i := range out {
		out[i] = MonthlyIncome{Month: i + 1, Income: decimal.Zero}
	}
	for _, m := range series {
		if m.Month >= 1 && m.Month <= 12 {
			out[m.Month-1].Income = out[m.Month-1].Income.Add(m.Income)
		}
	}
	return out
}
