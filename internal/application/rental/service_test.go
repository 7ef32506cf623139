package rental

import (
	"context"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc       *Service
	store     *testutil.TestStore
	vehicleID uuid.UUID
	tenantID  uuid.UUID
	statusID  uuid.UUID
	methodID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewTestStore(t)
	seed := store.Seed(t)
	owner := seed.Owner("ana", "V-1")
	return &fixture{
		svc:       NewService(store, zap.NewNop()),
		store:     store,
		vehicleID: seed.Vehicle(owner.ID, "AB123CD", 350).ID,
		tenantID:  seed.Tenant("luis", "V-2", "0414").ID,
		statusID:  seed.Lookup(catalog.KindRentalStatus, "activo").ID,
		methodID:  seed.Lookup(catalog.KindPaymentMethod, "transferencia").ID,
	}
}

func (f *fixture) rentalRequest(start, end string) RentalRequest {
	return RentalRequest{
		VehicleID:  f.vehicleID,
		TenantID:   f.tenantID,
		StatusID:   f.statusID,
		StartDate:  start,
		EndDate:    end,
		DaysWorked: 7,
		Income:     decimal.NewFromInt(2450),
	}
}

func TestService_RentalLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	actor := testutil.UserActor()

	created, err := f.svc.CreateRental(ctx, actor, f.rentalRequest("2025-01-06", "2025-01-12"))
	require.NoError(t, err)
	assert.Equal(t, 2, created.WeekNumber)

	_, err = f.svc.CreateRental(ctx, actor, f.rentalRequest("2025-01-10", "2025-01-16"))
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	next, err := f.svc.CreateRental(ctx, actor, f.rentalRequest("2025-01-13", "2025-01-19"))
	require.NoError(t, err)

	req := f.rentalRequest("2025-01-06", "2025-01-11")
	req.DaysWorked = 6
	updated, err := f.svc.UpdateRental(ctx, actor, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-11", updated.EndDate)

	_, err = f.svc.CreateRental(ctx, actor, f.rentalRequest("2025-01-20", "2025-01-19"))
	assert.Error(t, err)

	bad := f.rentalRequest("2025-01-27", "2025-02-02")
	bad.StatusID = f.methodID
	_, err = f.svc.CreateRental(ctx, actor, bad)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	page, err := f.svc.ListRentals(ctx, RentalListFilter{VehicleID: &f.vehicleID})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, next.ID, page.Items[0].ID)

	entries, _, err := f.store.Audit().FindByEntity(ctx, audit.EntityRental, created.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestService_Payments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	actor := testutil.UserActor()

	r, err := f.svc.CreateRental(ctx, actor, f.rentalRequest("2025-01-06", "2025-01-12"))
	require.NoError(t, err)

	p, err := f.svc.CreatePayment(ctx, actor, PaymentRequest{
		RentalID:        r.ID,
		PaymentMethodID: f.methodID,
		Amount:          decimal.NewFromInt(350),
		Deductions:      decimal.NewFromInt(50),
		PaymentDate:     "2025-01-09",
	})
	require.NoError(t, err)
	assert.True(t, p.Net.Equal(decimal.NewFromInt(300)))

	_, err = f.svc.CreatePayment(ctx, actor, PaymentRequest{
		RentalID:        r.ID,
		PaymentMethodID: f.statusID,
		Amount:          decimal.NewFromInt(350),
		PaymentDate:     "2025-01-09",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	fixed, err := f.svc.UpdatePayment(ctx, actor, p.ID, PaymentRequest{
		RentalID:        r.ID,
		PaymentMethodID: f.methodID,
		Amount:          decimal.NewFromInt(400),
		Deductions:      decimal.NewFromInt(25),
		PaymentDate:     "2025-01-10",
	})
	require.NoError(t, err)
	assert.True(t, fixed.Net.Equal(decimal.NewFromInt(375)))

	assert.ErrorIs(t, f.svc.DeleteRental(ctx, actor, r.ID), shared.ErrInUse)

	list, err := f.svc.ListPayments(ctx, PaymentListFilter{RentalID: &r.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	require.NoError(t, f.svc.DeletePayment(ctx, actor, p.ID))
	require.NoError(t, f.svc.DeleteRental(ctx, actor, r.ID))

	_, err = f.svc.GetRental(ctx, r.ID)
	assert.True(t, shared.IsNotFound(err))
}

func TestService_Debts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	actor := testutil.UserActor()

	d, err := f.svc.CreateDebt(ctx, actor, DebtRequest{
		VehicleID:    f.vehicleID,
		TenantID:     f.tenantID,
		Amount:       decimal.NewFromInt(100),
		DaysLate:     3,
		DailyPenalty: decimal.NewFromInt(5),
		DueDate:      "2025-01-09",
	})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", d.Status)
	assert.True(t, d.Total.Equal(decimal.NewFromInt(115)))

	_, err = f.svc.CreateDebt(ctx, actor, DebtRequest{
		VehicleID: f.vehicleID,
		TenantID:  testutil.NewTestUUID("ghost"),
		Amount:    decimal.NewFromInt(100),
		DueDate:   "2025-01-09",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	pending, err := f.svc.ListDebts(ctx, DebtListFilter{Status: "pendiente"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Total)

	paid, err := f.svc.ChangeDebtStatus(ctx, actor, d.ID, DebtStatusRequest{Status: "pagado"})
	require.NoError(t, err)
	assert.Equal(t, "pagado", paid.Status)

	_, err = f.svc.ChangeDebtStatus(ctx, actor, d.ID, DebtStatusRequest{Status: "condonado"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	_, err = f.svc.UpdateDebt(ctx, actor, d.ID, DebtRequest{
		VehicleID: f.vehicleID,
		TenantID:  f.tenantID,
		Amount:    decimal.NewFromInt(50),
		DueDate:   "2025-01-09",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	pending, err = f.svc.ListDebts(ctx, DebtListFilter{Status: "pendiente"})
	require.NoError(t, err)
	assert.Zero(t, pending.Total)

	require.NoError(t, f.svc.DeleteDebt(ctx, actor, d.ID))
	_, err = f.svc.GetDebt(ctx, d.ID)
	assert.True(t, shared.IsNotFound(err))
}

type recordingPublisher struct {
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		p.types = append(p.types, ev.EventType())
	}
	return nil
}

func TestService_PublishesCommittedChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := &recordingPublisher{}
	svc := NewService(f.store, zap.NewNop(), WithEventPublisher(pub))
	actor := testutil.UserActor()

	r, err := svc.CreateRental(ctx, actor, f.rentalRequest("2025-01-06", "2025-01-12"))
	require.NoError(t, err)

	_, err = svc.CreateRental(ctx, actor, f.rentalRequest("2025-01-08", "2025-01-14"))
	require.Error(t, err)

	p, err := svc.CreatePayment(ctx, actor, PaymentRequest{
		RentalID:        r.ID,
		PaymentMethodID: f.methodID,
		Amount:          decimal.NewFromInt(350),
		PaymentDate:     "2025-01-09",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeletePayment(ctx, actor, p.ID))

	assert.Equal(t, []string{
		"rental.changed",
		"payment.changed",
		"payment.changed",
	}, pub.types, "rejected writes publish nothing")
}
