package persistence

import (
	"context"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormWeekRepository_SaveAndFind(t *testing.T) {
	db, cipher := setupTestDB(t)
	f := newFixture(t, db, cipher)
	repo := NewGormWeekRepository(db)
	ctx := context.Background()

	week := f.populatedWeek(t)
	require.NoError(t, repo.Save(ctx, week))

	t.Run("loads header and items", func(t *testing.T) {
		found, err := repo.FindByID(ctx, week.ID)
		require.NoError(t, err)

		assert.Equal(t, settlement.WeekStatusOpen, found.Status)
		assert.Equal(t, 2, found.WeekNumber)
		assert.True(t, day(2025, 1, 6).Equal(found.StartDate))
		require.Len(t, found.Items, 1)
		item := found.Items[0]
		assert.True(t, decimal.NewFromInt(2450).Equal(item.Income))
		assert.True(t, decimal.RequireFromString("367.50").Equal(item.CompanyCut))
		assert.Equal(t, f.rental.ID, *item.RentalID)
		assert.True(t, day(2025, 1, 9).Equal(item.PaymentDeadline))
		assert.True(t, found.TotalIncome.Equal(item.Income))
	})

	t.Run("finds the week of an item", func(t *testing.T) {
		found, err := repo.FindByItemID(ctx, week.Items[0].ID)
		require.NoError(t, err)
		assert.Equal(t, week.ID, found.ID)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		_, err := repo.FindByItemID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("detects existing dates", func(t *testing.T) {
		exists, err := repo.ExistsForDates(ctx, day(2025, 1, 6), day(2025, 1, 12))
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsForDates(ctx, day(2025, 1, 6), day(2025, 1, 13))
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormWeekRepository_Save_DuplicateDates(t *testing.T) {
	db, cipher := setupTestDB(t)
	f := newFixture(t, db, cipher)
	repo := NewGormWeekRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, f.populatedWeek(t)))

	dup, err := settlement.NewWeek(valueobject.MustNewDateRange(day(2025, 1, 6), day(2025, 1, 12)), f.profit.ID, "", uuid.New())
	require.NoError(t, err)

	err = repo.Save(ctx, dup)
	assert.ErrorIs(t, err, settlement.ErrWeekExists)
}

func TestGormWeekRepository_Save_SyncsItems(t *testing.T) {
	db, cipher := setupTestDB(t)
	f := newFixture(t, db, cipher)
	repo := NewGormWeekRepository(db)
	ctx := context.Background()

	week := f.populatedWeek(t)
	require.NoError(t, repo.Save(ctx, week))

	_, err := week.RemoveItem(week.Items[0].ID, uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, week))

	var count int64
	require.NoError(t, db.Model(&models.SettlementLineItemModel{}).Where("week_id = ?", week.ID).Count(&count).Error)
	assert.Zero(t, count)

	found, err := repo.FindByID(ctx, week.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Items)
	assert.Zero(t, found.VehicleCount)
	assert.True(t, found.TotalIncome.IsZero())
}

func TestGormWeekRepository_Delete(t *testing.T) {
	db, cipher := setupTestDB(t)
	f := newFixture(t, db, cipher)
	repo := NewGormWeekRepository(db)
	ctx := context.Background()

	week := f.populatedWeek(t)
	require.NoError(t, repo.Save(ctx, week))

	require.NoError(t, repo.Delete(ctx, week.ID))

	_, err := repo.FindByID(ctx, week.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	var count int64
	require.NoError(t, db.Model(&models.SettlementLineItemModel{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Delete(ctx, week.ID), shared.ErrNotFound)
}

func TestGormWeekRepository_StatsAndList(t *testing.T) {
	db, cipher := setupTestDB(t)
	f := newFixture(t, db, cipher)
	repo := NewGormWeekRepository(db)
	ctx := context.Background()

	first := f.populatedWeek(t)
	require.NoError(t, repo.Save(ctx, first))

	second, err := settlement.NewWeek(valueobject.MustNewDateRange(day(2025, 1, 13), day(2025, 1, 19)), f.profit.ID, "", uuid.New())
	require.NoError(t, err)
	require.NoError(t, second.Close(uuid.New()))
	require.NoError(t, repo.Save(ctx, second))

	stats, err := repo.Stats(ctx, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalWeeks)
	assert.Equal(t, int64(1), stats.OpenWeeks)
	assert.Equal(t, int64(1), stats.UnconfirmedItems)
	assert.True(t, decimal.NewFromInt(2450).Equal(stats.CurrentMonthIncome), stats.CurrentMonthIncome.String())

	t.Run("empty month has zero income", func(t *testing.T) {
		stats, err := repo.Stats(ctx, day(2025, 3, 1), day(2025, 3, 31))
		require.NoError(t, err)
		assert.True(t, stats.CurrentMonthIncome.IsZero())
	})

	t.Run("lists newest first", func(t *testing.T) {
		weeks, total, err := repo.FindAll(ctx, settlement.WeekFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, weeks, 2)
		assert.Equal(t, second.ID, weeks[0].ID)
	})

	t.Run("filters by status", func(t *testing.T) {
		status := settlement.WeekStatusClosed
		weeks, total, err := repo.FindAll(ctx, settlement.WeekFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, second.ID, weeks[0].ID)
	})

	t.Run("counts weeks per profit percentage", func(t *testing.T) {
		n, err := repo.CountByProfitPercentage(ctx, f.profit.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

func TestGormWeekRepository_ItemDetails(t *testing.T) {
	db, cipher := setupTestDB(t)
	f := newFixture(t, db, cipher)
	repo := NewGormWeekRepository(db)
	ctx := context.Background()

	week := f.populatedWeek(t)
	require.NoError(t, repo.Save(ctx, week))

	details, err := repo.ItemDetails(ctx, week.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)

	d := details[0]
	assert.Equal(t, "Ana Gómez", d.OwnerName)
	assert.Equal(t, "Luis Pérez", d.TenantName)
	assert.Equal(t, "0424-2222222", d.TenantPhone)
	assert.Equal(t, "AB123CD", d.Plate)
	assert.Empty(t, d.BankName)
	assert.Equal(t, week.Items[0].ID, d.ID)
	assert.True(t, decimal.NewFromInt(2450).Equal(d.Income))
}

func TestGormProfitPercentageRepository(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewGormProfitPercentageRepository(db)
	ctx := context.Background()
	actor := uuid.New()

	standard, err := settlement.NewProfitPercentage("Standard", decimal.NewFromInt(15), true, true, actor)
	require.NoError(t, err)
	low, err := settlement.NewProfitPercentage("Low", decimal.NewFromInt(10), true, false, actor)
	require.NoError(t, err)
	retired, err := settlement.NewProfitPercentage("Retired", decimal.NewFromInt(5), false, false, actor)
	require.NoError(t, err)
	for _, p := range []*settlement.ProfitPercentage{standard, low, retired} {
		require.NoError(t, repo.Save(ctx, p))
	}

	t.Run("orders default, then active, then percentage", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"Standard", "Low", "Retired"},
			[]string{all[0].Description, all[1].Description, all[2].Description})
	})

	t.Run("moves the default flag", func(t *testing.T) {
		low.IsDefault = true
		require.NoError(t, repo.Save(ctx, low))
		require.NoError(t, repo.ClearDefaultExcept(ctx, low.ID))

		def, err := repo.FindDefault(ctx)
		require.NoError(t, err)
		assert.Equal(t, low.ID, def.ID)

		old, err := repo.FindByID(ctx, standard.ID)
		require.NoError(t, err)
		assert.False(t, old.IsDefault)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, retired.ID))
		_, err := repo.FindByID(ctx, retired.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
