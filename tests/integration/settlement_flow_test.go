//go:build integration

package integration

import (
	"context"
	"testing"

	appsettlement "github.com/alexrentacar/backoffice/internal/application/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type weekFixture struct {
	tdb     *TestDB
	service *appsettlement.Service
	profit  *settlement.ProfitPercentage
}

// newWeekFixture rents one vehicle over 2025-01-06..12 using the seeded
// rental status and default profit percentage
func newWeekFixture(t *testing.T) *weekFixture {
	t.Helper()
	tdb := NewTestDB(t)
	ctx := context.Background()

	status, err := tdb.Store.Lookups().FindByName(ctx, catalog.KindRentalStatus, catalog.DefaultRentalStatus)
	require.NoError(t, err, "seed migration must provide the default rental status")
	profit, err := tdb.Store.ProfitPercentages().FindDefault(ctx)
	require.NoError(t, err, "seed migration must provide a default profit percentage")

	seed := tdb.Store.Seed(t)
	owner := seed.Owner("ana gómez", "V-1000")
	tenant := seed.Tenant("luis pérez", "V-2000", "0424-2222222")
	vehicle := seed.Vehicle(owner.ID, "ab123cd", 350)
	seed.Rental(vehicle, tenant.ID, status.ID,
		valueobject.MustNewDateRange(testutil.Day(2025, 1, 6), testutil.Day(2025, 1, 12)))

	return &weekFixture{
		tdb:     tdb,
		service: appsettlement.NewService(tdb.Store, appsettlement.Config{PaymentWeekday: 4, DefaultDaysWorked: 7}, zap.NewNop()),
		profit:  profit,
	}
}

func (f *weekFixture) createWeek(t *testing.T) *appsettlement.CreateWeekResponse {
	t.Helper()
	week, err := f.service.CreateWeek(context.Background(), testutil.UserActor(), appsettlement.CreateWeekRequest{
		StartDate:          "2025-01-06",
		EndDate:            "2025-01-12",
		ProfitPercentageID: f.profit.ID,
	})
	require.NoError(t, err)
	return week
}

func TestSettlementFlow_Postgres(t *testing.T) {
	f := newWeekFixture(t)
	ctx := context.Background()

	week := f.createWeek(t)
	assert.Equal(t, "abierta", week.Status)
	assert.Equal(t, 1, week.VehicleCount)
	assert.Equal(t, "2025-01-09", week.PaymentDeadline)
	assert.True(t, decimal.NewFromInt(2450).Equal(week.TotalIncome), week.TotalIncome.String())

	detail, err := f.service.GetWeek(ctx, week.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	item := detail.Items[0]
	assert.Equal(t, "AB123CD", item.Plate)
	assert.Equal(t, "Ana Gómez", item.OwnerName)
	assert.True(t, decimal.RequireFromString("367.5").Equal(item.CompanyCut), item.CompanyCut.String())

	edited, err := f.service.BatchEdit(ctx, testutil.UserActor(), week.ID, appsettlement.BatchEditRequest{
		Items: []appsettlement.ItemEditRequest{{
			ID:          item.ID,
			WeeklyPrice: decimal.NewFromInt(350),
			DaysWorked:  6,
			Confirmed:   true,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, edited.Updated)

	detail, err = f.service.GetWeek(ctx, week.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(detail.Items[0].Income))
	assert.Equal(t, 0, detail.Unconfirmed)

	closed, err := f.service.CloseWeek(ctx, testutil.UserActor(), week.ID)
	require.NoError(t, err)
	assert.Equal(t, "cerrada", closed.Status)

	_, err = f.service.RemoveItem(ctx, testutil.UserActor(), item.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	export, err := f.service.ExportWeek(ctx, week.ID)
	require.NoError(t, err)
	assert.Equal(t, "semana_20250106_20250112.xlsx", export.FileName)
	assert.Equal(t, "PK", string(export.Content[:2]))
}

func TestSettlementFlow_DuplicateWeek(t *testing.T) {
	f := newWeekFixture(t)
	f.createWeek(t)

	_, err := f.service.CreateWeek(context.Background(), testutil.UserActor(), appsettlement.CreateWeekRequest{
		StartDate:          "2025-01-06",
		EndDate:            "2025-01-12",
		ProfitPercentageID: f.profit.ID,
	})
	assert.ErrorIs(t, err, settlement.ErrWeekExists)
}

func TestSettlementFlow_DeleteNeedsAdmin(t *testing.T) {
	f := newWeekFixture(t)
	ctx := context.Background()
	week := f.createWeek(t)

	err := f.service.DeleteWeek(ctx, testutil.UserActor(), week.ID)
	assert.ErrorIs(t, err, settlement.ErrDeleteRequiresAdmin)

	require.NoError(t, f.service.DeleteWeek(ctx, testutil.AdminActor(), week.ID))

	var items int64
	require.NoError(t, f.tdb.DB.Table("settlement_line_items").Where("week_id = ?", week.ID).Count(&items).Error)
	assert.Zero(t, items, "items go with their week")
}
