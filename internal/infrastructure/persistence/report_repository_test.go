package persistence

import (
	"context"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReportRepository(t *testing.T) {
	db, cipher := setupTestDB(t)
	f := newFixture(t, db, cipher)
	repo := NewGormReportRepository(db)
	ctx := context.Background()
	actor := uuid.New()

	method, err := catalog.NewLookupEntry(catalog.KindPaymentMethod, "Transferencia", "", actor)
	require.NoError(t, err)
	require.NoError(t, f.store.Lookups().Save(ctx, method))

	for _, p := range []rental.PaymentInput{
		{Amount: decimal.NewFromInt(350), Deductions: decimal.NewFromInt(50), PaymentDate: day(2025, 1, 9)},
		{Amount: decimal.NewFromInt(200), PaymentDate: day(2025, 1, 20)},
		{Amount: decimal.NewFromInt(100), PaymentDate: day(2025, 3, 2)},
	} {
		p.RentalID = f.rental.ID
		p.PaymentMethodID = method.ID
		payment, err := rental.NewPayment(p, actor)
		require.NoError(t, err)
		require.NoError(t, f.store.Payments().Save(ctx, payment))
	}

	debt, err := rental.NewDebt(rental.DebtInput{
		VehicleID:    f.vehicle.ID,
		TenantID:     f.tenant.ID,
		Amount:       decimal.NewFromInt(100),
		DaysLate:     2,
		DailyPenalty: decimal.NewFromInt(5),
		DueDate:      day(2025, 1, 9),
	}, actor)
	require.NoError(t, err)
	require.NoError(t, f.store.Debts().Save(ctx, debt))

	t.Run("dashboard", func(t *testing.T) {
		dash, err := repo.Dashboard(ctx, day(2025, 1, 8), day(2025, 1, 1), day(2025, 1, 31))
		require.NoError(t, err)

		assert.Equal(t, int64(1), dash.TotalVehicles)
		assert.Equal(t, int64(1), dash.AvailableVehicles)
		assert.Equal(t, int64(1), dash.TotalOwners)
		assert.Equal(t, int64(1), dash.TotalTenants)
		assert.Equal(t, int64(1), dash.ActiveRentals)
		assert.True(t, decimal.NewFromInt(110).Equal(dash.PendingDebt), dash.PendingDebt.String())
		assert.True(t, decimal.NewFromInt(500).Equal(dash.MonthIncome), dash.MonthIncome.String())
		require.Len(t, dash.RecentPayments, 3)
		assert.Equal(t, "AB123CD", dash.RecentPayments[0].Plate)
		assert.True(t, day(2025, 3, 2).Equal(dash.RecentPayments[0].PaymentDate))
	})

	t.Run("no active rental outside the range", func(t *testing.T) {
		dash, err := repo.Dashboard(ctx, day(2025, 2, 1), day(2025, 2, 1), day(2025, 2, 28))
		require.NoError(t, err)
		assert.Zero(t, dash.ActiveRentals)
		assert.True(t, dash.MonthIncome.IsZero())
	})

	t.Run("income by month", func(t *testing.T) {
		series, err := repo.IncomeByMonth(ctx, 2025)
		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Equal(t, 1, series[0].Month)
		assert.True(t, decimal.NewFromInt(500).Equal(series[0].Income))
		assert.Equal(t, 3, series[1].Month)
	})

	t.Run("owner and tenant summaries", func(t *testing.T) {
		owners, err := repo.OwnerSummaries(ctx)
		require.NoError(t, err)
		require.Len(t, owners, 1)
		assert.Equal(t, int64(1), owners[0].VehicleCount)

		tenants, err := repo.TenantSummaries(ctx)
		require.NoError(t, err)
		require.Len(t, tenants, 1)
		assert.Equal(t, int64(1), tenants[0].RentalCount)
		assert.True(t, decimal.NewFromInt(110).Equal(tenants[0].PendingDebt))
	})
}
