package workshop

import (
	"context"
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *testutil.TestStore) {
	t.Helper()
	store := testutil.NewTestStore(t)
	clock := func() time.Time { return time.Date(2025, 2, 14, 15, 30, 0, 0, time.UTC) }
	return NewService(store, zap.NewNop(), WithClock(clock)), store
}

func TestService_Mechanics(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	actor := testutil.AdminActor()

	pedro, err := svc.CreateMechanic(ctx, actor, MechanicRequest{Name: "Pedro", Email: "Pedro@Taller.com", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "pedro@taller.com", pedro.Email)

	_, err = svc.CreateMechanic(ctx, actor, MechanicRequest{Name: "Ana", Speciality: "frenos"})
	require.NoError(t, err)

	active := true
	page, err := svc.ListMechanics(ctx, ListFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, pedro.ID, page.Items[0].ID)

	bySpeciality, err := svc.ListMechanics(ctx, ListFilter{Search: "fren"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), bySpeciality.Total)

	updated, err := svc.UpdateMechanic(ctx, actor, pedro.ID, MechanicRequest{Name: "Pedro Pérez", Active: false})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	require.NoError(t, svc.DeleteMechanic(ctx, actor, pedro.ID))
	_, err = svc.GetMechanic(ctx, pedro.ID)
	assert.True(t, shared.IsNotFound(err))
}

func TestService_WorkOrderFlow(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	actor := testutil.UserActor()
	seed := store.Seed(t)

	owner := seed.Owner("ana", "V-1")
	vehicle := seed.Vehicle(owner.ID, "AB123CD", 350)
	jobType := seed.Lookup(catalog.KindJobType, "frenos")

	mechanic, err := svc.CreateMechanic(ctx, actor, MechanicRequest{Name: "Pedro", Active: true})
	require.NoError(t, err)
	part, err := svc.CreatePart(ctx, actor, PartRequest{Name: "Pastilla", Brand: "Bosch", Condition: "nueva", Cost: decimal.NewFromInt(15)})
	require.NoError(t, err)

	req := WorkOrderRequest{
		VehicleID:   vehicle.ID,
		MechanicID:  mechanic.ID,
		JobTypeID:   jobType.ID,
		StartDate:   "2025-02-10",
		Description: "Cambio de pastillas",
		Cost:        decimal.NewFromInt(40),
	}
	order, err := svc.CreateWorkOrder(ctx, actor, req)
	require.NoError(t, err)
	assert.Equal(t, "pendiente", order.Status)

	withParts, err := svc.AddPartUsage(ctx, actor, order.ID, PartUsageRequest{PartID: part.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, withParts.Parts, 1)
	assert.True(t, withParts.PartsTotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, withParts.Total.Equal(decimal.NewFromInt(70)))

	discounted := decimal.NewFromInt(10)
	withParts, err = svc.AddPartUsage(ctx, actor, order.ID, PartUsageRequest{PartID: part.ID, Quantity: 1, UnitCost: &discounted})
	require.NoError(t, err)
	require.Len(t, withParts.Parts, 2)
	assert.True(t, withParts.PartsTotal.Equal(decimal.NewFromInt(40)))

	trimmed, err := svc.RemovePartUsage(ctx, actor, order.ID, withParts.Parts[1].ID)
	require.NoError(t, err)
	assert.Len(t, trimmed.Parts, 1)

	assert.ErrorIs(t, svc.DeletePart(ctx, actor, part.ID), shared.ErrInUse)
	assert.ErrorIs(t, svc.DeleteMechanic(ctx, actor, mechanic.ID), shared.ErrInUse)

	_, err = svc.TransitionWorkOrder(ctx, actor, order.ID, TransitionRequest{Status: "completado"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	started, err := svc.TransitionWorkOrder(ctx, actor, order.ID, TransitionRequest{Status: "en_progreso"})
	require.NoError(t, err)
	assert.Equal(t, "en_progreso", started.Status)

	done, err := svc.TransitionWorkOrder(ctx, actor, order.ID, TransitionRequest{Status: "completado"})
	require.NoError(t, err)
	assert.Equal(t, "completado", done.Status)
	assert.Equal(t, "2025-02-14", done.EndDate)

	_, err = svc.UpdateWorkOrder(ctx, actor, order.ID, req)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	_, err = svc.TransitionWorkOrder(ctx, actor, order.ID, TransitionRequest{Status: "cancelado"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	list, err := svc.ListWorkOrders(ctx, WorkOrderListFilter{VehicleID: &vehicle.ID, Status: "completado"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}

func TestService_CreateWorkOrder_Validation(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	actor := testutil.UserActor()
	seed := store.Seed(t)

	owner := seed.Owner("ana", "V-1")
	vehicle := seed.Vehicle(owner.ID, "AB123CD", 350)
	jobType := seed.Lookup(catalog.KindJobType, "motor")
	status := seed.Lookup(catalog.KindRentalStatus, "activo")

	idle, err := svc.CreateMechanic(ctx, actor, MechanicRequest{Name: "Luis", Active: false})
	require.NoError(t, err)
	_, err = svc.CreateWorkOrder(ctx, actor, WorkOrderRequest{
		VehicleID: vehicle.ID, MechanicID: idle.ID, JobTypeID: jobType.ID,
		StartDate: "2025-02-10", Description: "Motor",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	busy, err := svc.CreateMechanic(ctx, actor, MechanicRequest{Name: "Rosa", Active: true})
	require.NoError(t, err)
	_, err = svc.CreateWorkOrder(ctx, actor, WorkOrderRequest{
		VehicleID: vehicle.ID, MechanicID: busy.ID, JobTypeID: status.ID,
		StartDate: "2025-02-10", Description: "Motor",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.CreateWorkOrder(ctx, actor, WorkOrderRequest{
		VehicleID: vehicle.ID, MechanicID: busy.ID, JobTypeID: jobType.ID,
		StartDate: "2025-02-10", EndDate: "2025-02-01", Description: "Motor",
	})
	assert.Error(t, err)
}
