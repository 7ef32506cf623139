package settlement

import (
	"context"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockMetrics is a mock implementation of Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) WeekCreated(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockMetrics) WeekClosed(ctx context.Context, totalIncome decimal.Decimal) {
	m.Called(ctx, totalIncome)
}

func (m *MockMetrics) ItemsEdited(ctx context.Context, mode string, n int) {
	m.Called(ctx, mode, n)
}

// world is one owner, tenant, vehicle ($350/week) and rental over
// 2025-01-06..12 with a 15% default profit percentage
type world struct {
	store   *testutil.TestStore
	seed    *testutil.Seeder
	svc     *Service
	owner   *party.Owner
	tenant  *party.Tenant
	vehicle *fleet.Vehicle
	status  *catalog.LookupEntry
	rental  *rental.Rental
	profit  *settlement.ProfitPercentage
}

func firstWeek() valueobject.DateRange {
	return valueobject.MustNewDateRange(testutil.Day(2025, 1, 6), testutil.Day(2025, 1, 12))
}

func newWorld(t *testing.T, opts ...Option) *world {
	t.Helper()
	store := testutil.NewTestStore(t)
	seed := store.Seed(t)
	w := &world{store: store, seed: seed}

	w.owner = seed.Owner("ana gómez", "V-1000")
	w.tenant = seed.Tenant("luis pérez", "V-2000", "0424-2222222")
	w.vehicle = seed.Vehicle(w.owner.ID, "ab123cd", 350)
	w.status = seed.Lookup(catalog.KindRentalStatus, catalog.DefaultRentalStatus)
	w.rental = seed.Rental(w.vehicle, w.tenant.ID, w.status.ID, firstWeek())
	w.profit = seed.Profit("Standard", 15, true)

	opts = append([]Option{WithClock(testutil.FixedClock(testutil.Day(2025, 1, 7)))}, opts...)
	w.svc = NewService(store, Config{PaymentWeekday: 4, DefaultDaysWorked: 7}, zap.NewNop(), opts...)
	return w
}

func (w *world) createWeek(t *testing.T) *CreateWeekResponse {
	t.Helper()
	week, err := w.svc.CreateWeek(context.Background(), testutil.UserActor(), CreateWeekRequest{
		StartDate:          "2025-01-06",
		EndDate:            "2025-01-12",
		ProfitPercentageID: w.profit.ID,
	})
	require.NoError(t, err)
	return week
}

func (w *world) weekCount(t *testing.T) int64 {
	t.Helper()
	_, total, err := w.store.Weeks().FindAll(context.Background(), settlement.WeekFilter{})
	require.NoError(t, err)
	return total
}

func TestService_CreateWeek(t *testing.T) {
	metrics := new(MockMetrics)
	metrics.On("WeekCreated", mock.Anything).Once()
	w := newWorld(t, WithMetrics(metrics))
	ctx := context.Background()

	week := w.createWeek(t)

	assert.Equal(t, "abierta", week.Status)
	assert.Equal(t, 2, week.WeekNumber)
	assert.Equal(t, 2025, week.Year)
	assert.Equal(t, "2025-01-09", week.PaymentDeadline)
	assert.Equal(t, 1, week.VehicleCount)
	assert.Equal(t, 1, week.OwnerCount)
	assert.Equal(t, 1, week.TenantCount)
	assert.True(t, decimal.NewFromInt(2450).Equal(week.TotalIncome), week.TotalIncome.String())
	metrics.AssertExpectations(t)

	detail, err := w.svc.GetWeek(ctx, week.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	item := detail.Items[0]
	assert.True(t, decimal.NewFromInt(2450).Equal(item.Income))
	assert.True(t, decimal.RequireFromString("367.50").Equal(item.CompanyCut), item.CompanyCut.String())
	assert.True(t, item.FinalPayout.Equal(item.Income))
	assert.False(t, item.HasDebt)
	assert.Equal(t, w.rental.ID, *item.RentalID)
	assert.Equal(t, "Ana Gómez", item.OwnerName)
	assert.Equal(t, "AG", item.OwnerInitials)
	assert.Equal(t, "AB123CD", item.Plate)
	assert.Equal(t, 7, detail.DaysWorked)
	assert.Equal(t, 1, detail.Unconfirmed)
	require.NotNil(t, detail.ProfitPercentage)
	assert.Equal(t, "Standard", detail.ProfitPercentage.Description)

	entries, total, err := w.store.Audit().FindByEntity(ctx, audit.EntitySettlementWeek, week.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, audit.OperationCreate, entries[0].Operation)
}

func TestService_CreateWeek_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("end before start writes nothing", func(t *testing.T) {
		w := newWorld(t)
		_, err := w.svc.CreateWeek(ctx, testutil.UserActor(), CreateWeekRequest{
			StartDate: "2025-01-12", EndDate: "2025-01-06", ProfitPercentageID: w.profit.ID,
		})
		assert.ErrorIs(t, err, settlement.ErrInvalidDateRange)
		assert.Zero(t, w.weekCount(t))
	})

	t.Run("duplicate date pair", func(t *testing.T) {
		w := newWorld(t)
		w.createWeek(t)
		_, err := w.svc.CreateWeek(ctx, testutil.UserActor(), CreateWeekRequest{
			StartDate: "2025-01-06", EndDate: "2025-01-12", ProfitPercentageID: w.profit.ID,
		})
		assert.ErrorIs(t, err, settlement.ErrWeekExists)
		assert.Equal(t, int64(1), w.weekCount(t))
	})

	t.Run("malformed date", func(t *testing.T) {
		w := newWorld(t)
		_, err := w.svc.CreateWeek(ctx, testutil.UserActor(), CreateWeekRequest{
			StartDate: "06/01/2025", EndDate: "2025-01-12", ProfitPercentageID: w.profit.ID,
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown profit percentage", func(t *testing.T) {
		w := newWorld(t)
		_, err := w.svc.CreateWeek(ctx, testutil.UserActor(), CreateWeekRequest{
			StartDate: "2025-01-06", EndDate: "2025-01-12", ProfitPercentageID: uuid.New(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Zero(t, w.weekCount(t))
	})
}

func TestService_CreateWeek_ReportsSkippedRentals(t *testing.T) {
	w := newWorld(t)
	owner2 := w.seed.Owner("carla ruiz", "V-3000")
	vehicle2 := w.seed.Vehicle(owner2.ID, "xy987zw", 700)
	// the same tenant holds a second vehicle over the week
	second := w.seed.Rental(vehicle2, w.tenant.ID, w.status.ID, firstWeek())

	week := w.createWeek(t)

	assert.Equal(t, 1, week.VehicleCount)
	require.Len(t, week.Skipped, 1)
	skipped := week.Skipped[0]
	assert.Equal(t, SkipAlreadyInWeek, skipped.Reason)
	assert.Equal(t, w.tenant.ID, skipped.TenantID)
	assert.Contains(t, []uuid.UUID{w.rental.ID, second.ID}, skipped.RentalID)
}

func TestService_CreateWeek_NothingSkipped(t *testing.T) {
	w := newWorld(t)
	week := w.createWeek(t)
	assert.NotNil(t, week.Skipped)
	assert.Empty(t, week.Skipped)
}

func TestNewService_DefaultPaymentWeekday(t *testing.T) {
	w := newWorld(t)
	svc := NewService(w.store, Config{}, zap.NewNop())

	week, err := svc.CreateWeek(context.Background(), testutil.UserActor(), CreateWeekRequest{
		StartDate: "2025-01-06", EndDate: "2025-01-12", ProfitPercentageID: w.profit.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-09", week.PaymentDeadline, "zero config falls back to Thursday")
}

func ptr[T any](v T) *T { return &v }

func TestService_CreateWeek_FridayDeadline(t *testing.T) {
	w := newWorld(t)
	week, err := w.svc.CreateWeek(context.Background(), testutil.UserActor(), CreateWeekRequest{
		StartDate: "2025-01-10", EndDate: "2025-01-16", ProfitPercentageID: w.profit.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-16", week.PaymentDeadline)
	// the seeded rental overlaps 01-10..12
	assert.Equal(t, 1, week.VehicleCount)
}

func TestService_AddRental(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week := w.createWeek(t)

	owner2 := w.seed.Owner("carla ruiz", "V-3000")
	vehicle2 := w.seed.Vehicle(owner2.ID, "xy987zw", 700)
	tenant2 := w.seed.Tenant("pedro lópez", "V-4000", "0412-4444444")

	t.Run("adds a rental and a line item", func(t *testing.T) {
		item, err := w.svc.AddRental(ctx, testutil.UserActor(), week.ID, AddRentalRequest{
			VehicleID: vehicle2.ID, TenantID: tenant2.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, 7, item.DaysWorked)
		assert.True(t, decimal.NewFromInt(4900).Equal(item.Income))
		assert.True(t, decimal.NewFromInt(735).Equal(item.CompanyCut))
		require.NotNil(t, item.RentalID)

		r, err := w.store.Rentals().FindByID(ctx, *item.RentalID)
		require.NoError(t, err)
		assert.Equal(t, w.status.ID, r.StatusID)
		assert.True(t, testutil.Day(2025, 1, 6).Equal(r.StartDate))

		found, err := w.store.Weeks().FindByID(ctx, week.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.VehicleCount)
		assert.Equal(t, 2, found.OwnerCount)
		assert.Equal(t, 2, found.TenantCount)
		assert.True(t, decimal.NewFromInt(7350).Equal(found.TotalIncome))
	})

	t.Run("vehicle already on the week", func(t *testing.T) {
		tenant3 := w.seed.Tenant("rosa díaz", "V-5000", "")
		_, err := w.svc.AddRental(ctx, testutil.UserActor(), week.ID, AddRentalRequest{
			VehicleID: w.vehicle.ID, TenantID: tenant3.ID,
		})
		assert.ErrorIs(t, err, settlement.ErrVehicleAlreadyInWeek)
	})

	t.Run("tenant already on the week", func(t *testing.T) {
		vehicle3 := w.seed.Vehicle(owner2.ID, "mn456op", 400)
		_, err := w.svc.AddRental(ctx, testutil.UserActor(), week.ID, AddRentalRequest{
			VehicleID: vehicle3.ID, TenantID: w.tenant.ID,
		})
		assert.ErrorIs(t, err, settlement.ErrTenantAlreadyInWeek)
	})
}

func TestService_AddRental_RentalStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to the first status", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		seed := store.Seed(t)
		owner := seed.Owner("ana gómez", "V-1000")
		vehicle := seed.Vehicle(owner.ID, "ab123cd", 350)
		tenant := seed.Tenant("luis pérez", "V-2000", "")
		pending := seed.Lookup(catalog.KindRentalStatus, "pendiente")
		profit := seed.Profit("Standard", 15, true)
		svc := NewService(store, Config{PaymentWeekday: 4}, zap.NewNop())

		week, err := svc.CreateWeek(ctx, testutil.UserActor(), CreateWeekRequest{
			StartDate: "2025-01-06", EndDate: "2025-01-12", ProfitPercentageID: profit.ID,
		})
		require.NoError(t, err)
		assert.Zero(t, week.VehicleCount)

		days := 3
		item, err := svc.AddRental(ctx, testutil.UserActor(), week.ID, AddRentalRequest{
			VehicleID: vehicle.ID, TenantID: tenant.ID, DaysWorked: &days,
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1050).Equal(item.Income))

		r, err := store.Rentals().FindByID(ctx, *item.RentalID)
		require.NoError(t, err)
		assert.Equal(t, pending.ID, r.StatusID)
	})

	t.Run("no status configured", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		seed := store.Seed(t)
		owner := seed.Owner("ana gómez", "V-1000")
		vehicle := seed.Vehicle(owner.ID, "ab123cd", 350)
		tenant := seed.Tenant("luis pérez", "V-2000", "")
		profit := seed.Profit("Standard", 15, true)
		svc := NewService(store, Config{PaymentWeekday: 4}, zap.NewNop())

		week, err := svc.CreateWeek(ctx, testutil.UserActor(), CreateWeekRequest{
			StartDate: "2025-01-06", EndDate: "2025-01-12", ProfitPercentageID: profit.ID,
		})
		require.NoError(t, err)

		_, err = svc.AddRental(ctx, testutil.UserActor(), week.ID, AddRentalRequest{
			VehicleID: vehicle.ID, TenantID: tenant.ID,
		})
		assert.ErrorIs(t, err, settlement.ErrNoRentalStatus)

		rentals, _, err := store.Rentals().FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, rentals)
	})
}

func TestService_BatchEdit(t *testing.T) {
	metrics := new(MockMetrics)
	metrics.On("WeekCreated", mock.Anything)
	metrics.On("ItemsEdited", mock.Anything, "batch", 1).Once()
	w := newWorld(t, WithMetrics(metrics))
	ctx := context.Background()
	week := w.createWeek(t)

	detail, err := w.svc.GetWeek(ctx, week.ID)
	require.NoError(t, err)
	itemID := detail.Items[0].ID

	resp, err := w.svc.BatchEdit(ctx, testutil.UserActor(), week.ID, BatchEditRequest{Items: []ItemEditRequest{
		{
			ID:               itemID,
			WeeklyPrice:      decimal.NewFromInt(700),
			DaysWorked:       3,
			DiscountConcept:  "lavado",
			ConfirmationDate: "2025-01-10",
			Confirmed:        true,
		},
		{ID: uuid.New(), WeeklyPrice: decimal.NewFromInt(100), DaysWorked: 7},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Updated)
	assert.True(t, decimal.NewFromInt(300).Equal(resp.Week.TotalIncome), resp.Week.TotalIncome.String())
	metrics.AssertExpectations(t)

	detail, err = w.svc.GetWeek(ctx, week.ID)
	require.NoError(t, err)
	item := detail.Items[0]
	assert.True(t, decimal.NewFromInt(300).Equal(item.Income))
	assert.True(t, decimal.NewFromInt(300).Equal(item.CompanyCut))
	assert.True(t, decimal.NewFromInt(300).Equal(item.FinalPayout))
	assert.Equal(t, "2025-01-10", item.ConfirmationDate)
	assert.True(t, item.Confirmed)
	assert.Zero(t, detail.Unconfirmed)

	t.Run("malformed confirmation date", func(t *testing.T) {
		_, err := w.svc.BatchEdit(ctx, testutil.UserActor(), week.ID, BatchEditRequest{Items: []ItemEditRequest{
			{ID: itemID, DaysWorked: 7, ConfirmationDate: "10-01-2025"},
		}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestService_EditItem(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week := w.createWeek(t)
	detail, err := w.svc.GetWeek(ctx, week.ID)
	require.NoError(t, err)
	itemID := detail.Items[0].ID

	owner2 := w.seed.Owner("carla ruiz", "V-3000")
	vehicle2 := w.seed.Vehicle(owner2.ID, "xy987zw", 700)

	item, err := w.svc.EditItem(ctx, testutil.UserActor(), itemID, FullEditRequest{
		VehicleID:   vehicle2.ID,
		TenantID:    w.tenant.ID,
		WeeklyPrice: ptr(decimal.NewFromInt(700)),
		DaysWorked:  ptr(7),
		DebtAmount:  decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, owner2.ID, item.OwnerID)
	assert.True(t, decimal.NewFromInt(4900).Equal(item.Income))
	assert.True(t, decimal.NewFromInt(735).Equal(item.CompanyCut))
	assert.True(t, decimal.NewFromInt(5000).Equal(item.FinalPayout))

	found, err := w.store.Weeks().FindByID(ctx, week.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4900).Equal(found.TotalIncome))
	assert.Equal(t, 1, found.OwnerCount)

	t.Run("closed week is read-only", func(t *testing.T) {
		_, err := w.svc.CloseWeek(ctx, testutil.UserActor(), week.ID)
		require.NoError(t, err)
		_, err = w.svc.EditItem(ctx, testutil.UserActor(), itemID, FullEditRequest{
			VehicleID: w.vehicle.ID, TenantID: w.tenant.ID,
		})
		assert.ErrorIs(t, err, settlement.ErrWeekNotOpen)
	})
}

func TestService_EditItem_Defaults(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week := w.createWeek(t)
	detail, err := w.svc.GetWeek(ctx, week.ID)
	require.NoError(t, err)
	itemID := detail.Items[0].ID

	_, err = w.svc.BatchEdit(ctx, testutil.UserActor(), week.ID, BatchEditRequest{Items: []ItemEditRequest{{
		ID:               itemID,
		WeeklyPrice:      decimal.NewFromInt(350),
		DaysWorked:       7,
		ConfirmationDate: "2025-01-10",
		Confirmed:        true,
	}}})
	require.NoError(t, err)

	owner2 := w.seed.Owner("carla ruiz", "V-3000")
	vehicle2 := w.seed.Vehicle(owner2.ID, "xy987zw", 700)

	// only the new pairing is sent
	item, err := w.svc.EditItem(ctx, testutil.UserActor(), itemID, FullEditRequest{
		VehicleID: vehicle2.ID,
		TenantID:  w.tenant.ID,
		Confirmed: true,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(700).Equal(item.WeeklyPrice), item.WeeklyPrice.String())
	assert.Equal(t, 7, item.DaysWorked)
	assert.True(t, decimal.NewFromInt(4900).Equal(item.Income), item.Income.String())
	assert.True(t, decimal.NewFromInt(735).Equal(item.CompanyCut), item.CompanyCut.String())
	assert.Equal(t, "2025-01-10", item.ConfirmationDate)

	found, err := w.store.Weeks().FindByID(ctx, week.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4900).Equal(found.TotalIncome))

	t.Run("negative price is refused", func(t *testing.T) {
		_, err := w.svc.EditItem(ctx, testutil.UserActor(), itemID, FullEditRequest{
			VehicleID:   vehicle2.ID,
			TenantID:    w.tenant.ID,
			WeeklyPrice: ptr(decimal.NewFromInt(-350)),
			DaysWorked:  ptr(7),
		})
		assert.ErrorIs(t, err, settlement.ErrNegativePrice)

		found, err := w.store.Weeks().FindByID(ctx, week.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(4900).Equal(found.TotalIncome))
	})
}

func TestService_UnknownBank(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week := w.createWeek(t)
	detail, err := w.svc.GetWeek(ctx, week.ID)
	require.NoError(t, err)
	itemID := detail.Items[0].ID
	missing := uuid.New()

	_, err = w.svc.BatchEdit(ctx, testutil.UserActor(), week.ID, BatchEditRequest{Items: []ItemEditRequest{
		{ID: itemID, WeeklyPrice: decimal.NewFromInt(350), DaysWorked: 7, BankID: &missing},
	}})
	assert.ErrorIs(t, err, settlement.ErrUnknownBank)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = w.svc.EditItem(ctx, testutil.UserActor(), itemID, FullEditRequest{
		VehicleID: w.vehicle.ID, TenantID: w.tenant.ID, BankID: &missing,
	})
	assert.ErrorIs(t, err, settlement.ErrUnknownBank)

	t.Run("existing bank is accepted", func(t *testing.T) {
		bank, err := catalog.NewBank(catalog.BankInput{Name: "Banesco", AccountNumber: "0134-0000-11-2222333344"}, testutil.TestUserID())
		require.NoError(t, err)
		require.NoError(t, w.store.Banks().Save(ctx, bank))

		resp, err := w.svc.BatchEdit(ctx, testutil.UserActor(), week.ID, BatchEditRequest{Items: []ItemEditRequest{
			{ID: itemID, WeeklyPrice: decimal.NewFromInt(350), DaysWorked: 7, BankID: &bank.ID},
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Updated)
	})
}

func TestService_RemoveItem(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week := w.createWeek(t)

	owner2 := w.seed.Owner("carla ruiz", "V-3000")
	vehicle2 := w.seed.Vehicle(owner2.ID, "xy987zw", 700)
	tenant2 := w.seed.Tenant("pedro lópez", "V-4000", "")
	added, err := w.svc.AddRental(ctx, testutil.UserActor(), week.ID, AddRentalRequest{VehicleID: vehicle2.ID, TenantID: tenant2.ID})
	require.NoError(t, err)

	resp, err := w.svc.RemoveItem(ctx, testutil.UserActor(), added.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.VehicleCount)
	assert.Equal(t, 1, resp.OwnerCount)
	assert.Equal(t, 1, resp.TenantCount)
	assert.True(t, decimal.NewFromInt(2450).Equal(resp.TotalIncome))

	_, err = w.svc.RemoveItem(ctx, testutil.UserActor(), added.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("closed week", func(t *testing.T) {
		detail, err := w.svc.GetWeek(ctx, week.ID)
		require.NoError(t, err)
		_, err = w.svc.CloseWeek(ctx, testutil.UserActor(), week.ID)
		require.NoError(t, err)

		_, err = w.svc.RemoveItem(ctx, testutil.UserActor(), detail.Items[0].ID)
		assert.ErrorIs(t, err, settlement.ErrWeekNotOpen)
	})
}

func TestService_CloseWeek(t *testing.T) {
	metrics := new(MockMetrics)
	metrics.On("WeekCreated", mock.Anything)
	metrics.On("WeekClosed", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(2450))
	})).Once()
	w := newWorld(t, WithMetrics(metrics))
	ctx := context.Background()
	week := w.createWeek(t)

	closed, err := w.svc.CloseWeek(ctx, testutil.UserActor(), week.ID)
	require.NoError(t, err)
	assert.Equal(t, "cerrada", closed.Status)

	_, err = w.svc.CloseWeek(ctx, testutil.UserActor(), week.ID)
	assert.ErrorIs(t, err, settlement.ErrWeekAlreadyClosed)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	found, err := w.store.Weeks().FindByID(ctx, week.ID)
	require.NoError(t, err)
	assert.Equal(t, settlement.WeekStatusClosed, found.Status)
	metrics.AssertExpectations(t)
}

func TestService_DeleteWeek(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week := w.createWeek(t)

	err := w.svc.DeleteWeek(ctx, testutil.UserActor(), week.ID)
	assert.ErrorIs(t, err, settlement.ErrDeleteRequiresAdmin)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	require.NoError(t, w.svc.DeleteWeek(ctx, testutil.AdminActor(), week.ID))
	_, err = w.svc.GetWeek(ctx, week.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("empty week can be deleted by anyone", func(t *testing.T) {
		empty, err := w.svc.CreateWeek(ctx, testutil.UserActor(), CreateWeekRequest{
			StartDate: "2025-03-03", EndDate: "2025-03-09", ProfitPercentageID: w.profit.ID,
		})
		require.NoError(t, err)
		assert.NoError(t, w.svc.DeleteWeek(ctx, testutil.UserActor(), empty.ID))
	})
}

func TestService_ListWeeks(t *testing.T) {
	w := newWorld(t, WithClock(testutil.FixedClock(testutil.Day(2025, 1, 20))))
	ctx := context.Background()
	first := w.createWeek(t)
	second, err := w.svc.CreateWeek(ctx, testutil.UserActor(), CreateWeekRequest{
		StartDate: "2025-01-13", EndDate: "2025-01-19", ProfitPercentageID: w.profit.ID,
	})
	require.NoError(t, err)
	_, err = w.svc.CloseWeek(ctx, testutil.UserActor(), first.ID)
	require.NoError(t, err)

	list, err := w.svc.ListWeeks(ctx, ListWeeksRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Weeks.Total)
	assert.Equal(t, second.ID, list.Weeks.Items[0].ID)
	assert.Equal(t, int64(2), list.Stats.TotalWeeks)
	assert.Equal(t, int64(1), list.Stats.OpenWeeks)
	assert.True(t, decimal.NewFromInt(2450).Equal(list.Stats.CurrentMonthIncome))

	t.Run("status filter", func(t *testing.T) {
		list, err := w.svc.ListWeeks(ctx, ListWeeksRequest{Status: "cerrada"})
		require.NoError(t, err)
		require.Len(t, list.Weeks.Items, 1)
		assert.Equal(t, first.ID, list.Weeks.Items[0].ID)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := w.svc.ListWeeks(ctx, ListWeeksRequest{Status: "reabierta"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestService_Availability(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	week := w.createWeek(t)

	owner2 := w.seed.Owner("carla ruiz", "V-3000")
	vehicle2 := w.seed.Vehicle(owner2.ID, "xy987zw", 700)
	tenant2 := w.seed.Tenant("pedro lópez", "V-4000", "0412-4444444")
	late := w.seed.Rental(vehicle2, tenant2.ID, w.status.ID,
		valueobject.MustNewDateRange(testutil.Day(2025, 1, 10), testutil.Day(2025, 1, 20)))

	rentals, err := w.svc.AvailableRentals(ctx, week.ID)
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, late.ID, rentals[0].RentalID)
	assert.Equal(t, "XY987ZW", rentals[0].Plate)
	assert.Equal(t, "Pedro López", rentals[0].TenantName)

	available, err := w.svc.Available(ctx, week.ID)
	require.NoError(t, err)
	require.Len(t, available.Vehicles, 1)
	assert.Equal(t, vehicle2.ID, available.Vehicles[0].ID)
	require.Len(t, available.Tenants, 1)
	assert.Equal(t, tenant2.ID, available.Tenants[0].ID)
}

func TestService_Banks(t *testing.T) {
	w := newWorld(t)
	bank, err := catalog.NewBank(catalog.BankInput{Name: "Banesco", AccountNumber: "0134-0000-11-2222333344"}, testutil.TestUserID())
	require.NoError(t, err)
	require.NoError(t, w.store.Banks().Save(context.Background(), bank))

	banks, err := w.svc.Banks(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.Equal(t, "Banesco", banks[0].Name)
	assert.Equal(t, "0134-0000-11-2222333344", banks[0].AccountNumber)
}
