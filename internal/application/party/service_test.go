package party

import (
	"context"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *testutil.TestStore, *testutil.Uploads) {
	t.Helper()
	store := testutil.NewTestStore(t)
	uploads := testutil.NewUploads(t)
	return NewService(store, uploads.Service, zap.NewNop()), store, uploads
}

func TestService_OwnerLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store, uploads := newTestService(t)
	actor := testutil.UserActor()

	owner, err := svc.CreateOwner(ctx, actor, OwnerRequest{PersonRequest: PersonRequest{
		FullName: "  maría  DE los ángeles ",
		IDNumber: "V-10000001",
		Phone:    "0414-1111111",
		Email:    "Maria@Example.com",
	}})
	require.NoError(t, err)
	assert.Equal(t, "María De Los Ángeles", owner.FullName)
	assert.Equal(t, "MD", owner.Initials)
	assert.Equal(t, "maria@example.com", owner.Email)

	_, err = svc.CreateOwner(ctx, actor, OwnerRequest{PersonRequest: PersonRequest{FullName: "Otro", IDNumber: "V-10000001"}})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	relation := store.Seed(t).Lookup(catalog.KindRelationship, "hermano")
	withRef, err := svc.AddOwnerReference(ctx, actor, owner.ID, ReferenceRequest{
		FullName:       "josé gómez",
		RelationshipID: &relation.ID,
		Phone:          "0412-0000000",
	})
	require.NoError(t, err)
	require.Len(t, withRef.References, 1)
	assert.Equal(t, "José Gómez", withRef.References[0].FullName)

	withDoc, err := svc.UploadOwnerDocument(ctx, actor, owner.ID, DocumentLicense, testutil.File("licencia.pdf", "pdf"))
	require.NoError(t, err)
	assert.NotEmpty(t, withDoc.Documents.LicensePath)
	assert.True(t, uploads.Exists(withDoc.Documents.LicensePath))

	_, err = svc.UploadOwnerDocument(ctx, actor, owner.ID, DocumentKind("passport"), testutil.File("p.pdf", "pdf"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	got, err := svc.GetOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "V-10000001", got.IDNumber)
	assert.Equal(t, "0414-1111111", got.Phone)

	noRef, err := svc.RemoveOwnerReference(ctx, actor, owner.ID, withRef.References[0].ID)
	require.NoError(t, err)
	assert.Empty(t, noRef.References)

	page, err := svc.ListOwners(ctx, ListFilter{Search: "ángeles"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	vehicle := store.Seed(t).Vehicle(owner.ID, "AB123CD", 350)
	assert.ErrorIs(t, svc.DeleteOwner(ctx, actor, owner.ID), shared.ErrInUse)

	require.NoError(t, store.Vehicles().Delete(ctx, vehicle.ID))
	require.NoError(t, svc.DeleteOwner(ctx, actor, owner.ID))
	assert.False(t, uploads.Exists(withDoc.Documents.LicensePath))
}

func TestService_CreateOwner_LinkedUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	missing := testutil.NewTestUUID("missing-user")
	_, err := svc.CreateOwner(ctx, testutil.AdminActor(), OwnerRequest{
		PersonRequest: PersonRequest{FullName: "Ana"},
		UserID:        &missing,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestService_TenantGuarantors(t *testing.T) {
	ctx := context.Background()
	svc, _, uploads := newTestService(t)
	actor := testutil.UserActor()

	tenant, err := svc.CreateTenant(ctx, actor, TenantRequest{PersonRequest: PersonRequest{
		FullName: "luis pérez",
		IDNumber: "V-20000002",
		Phone:    "0424-2222222",
	}})
	require.NoError(t, err)
	assert.Equal(t, "Luis Pérez", tenant.FullName)

	withGuarantor, err := svc.AddGuarantor(ctx, actor, tenant.ID, GuarantorRequest{FullName: "carmen rojas", Phone: "0416-3333333"})
	require.NoError(t, err)
	require.Len(t, withGuarantor.Guarantors, 1)
	guarantorID := withGuarantor.Guarantors[0].ID

	withLetter, err := svc.UploadEmploymentLetter(ctx, actor, tenant.ID, guarantorID, testutil.File("constancia.pdf", "pdf"))
	require.NoError(t, err)
	letterURL := withLetter.Guarantors[0].EmploymentLetterURL
	require.NotEmpty(t, letterURL)

	stored, err := svc.store.Tenants().FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	letter := stored.Guarantors[0].EmploymentLetterPath
	assert.True(t, uploads.Exists(letter))

	_, err = svc.UploadEmploymentLetter(ctx, actor, tenant.ID, testutil.NewTestUUID("nobody"), testutil.File("c.pdf", "pdf"))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	withRef, err := svc.AddTenantReference(ctx, actor, tenant.ID, ReferenceRequest{FullName: "pedro", Phone: "0412"})
	require.NoError(t, err)
	assert.Len(t, withRef.References, 1)

	removed, err := svc.RemoveGuarantor(ctx, actor, tenant.ID, guarantorID)
	require.NoError(t, err)
	assert.Empty(t, removed.Guarantors)
	assert.Len(t, removed.References, 1)
	assert.False(t, uploads.Exists(letter))
}

func TestService_DeleteTenant(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	actor := testutil.AdminActor()
	seed := store.Seed(t)

	owner := seed.Owner("ana gómez", "V-1")
	vehicle := seed.Vehicle(owner.ID, "AB123CD", 350)
	status := seed.Lookup(catalog.KindRentalStatus, "activo")

	busy, err := svc.CreateTenant(ctx, actor, TenantRequest{PersonRequest: PersonRequest{FullName: "Luis"}})
	require.NoError(t, err)
	period, err := valueobject.NewDateRange(testutil.Day(2025, 1, 6), testutil.Day(2025, 1, 12))
	require.NoError(t, err)
	seed.Rental(vehicle, busy.ID, status.ID, period)

	assert.ErrorIs(t, svc.DeleteTenant(ctx, actor, busy.ID), shared.ErrInUse)

	free, err := svc.CreateTenant(ctx, actor, TenantRequest{PersonRequest: PersonRequest{FullName: "Rosa"}})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTenant(ctx, actor, free.ID))

	page, err := svc.ListTenants(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, busy.ID, page.Items[0].ID)
}
