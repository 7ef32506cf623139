package identity

import (
	"context"
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/auth"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService(t *testing.T) (*UserService, *testutil.TestStore, *auth.MemoryRevocations) {
	t.Helper()
	store := testutil.NewTestStore(t)
	revocations := auth.NewMemoryRevocations()
	svc := NewUserService(store, auth.NewJWTService(testJWTConfig()), revocations, zap.NewNop())
	return svc, store, revocations
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newUserService(t)
	admin := testutil.AdminActor()

	created, err := svc.CreateUser(ctx, admin, CreateUserRequest{
		Username:  "Mecanico1",
		Password:  "secreto1",
		Role:      "mechanic",
		FirstName: "Pedro",
		Email:     "pedro@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "mecanico1", created.Username)
	assert.Equal(t, identity.RoleMechanic, created.Role)
	assert.True(t, created.Active)

	_, err = svc.CreateUser(ctx, admin, CreateUserRequest{Username: "MECANICO1", Password: "secreto1", Role: "user"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = svc.CreateUser(ctx, admin, CreateUserRequest{Username: "otro", Password: "secreto1", Role: "user", Email: "pedro@example.com"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	history, _, err := store.Audit().FindByEntity(ctx, audit.EntityUser, created.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	svc, _, revocations := newUserService(t)
	admin := testutil.AdminActor()

	created, err := svc.CreateUser(ctx, admin, CreateUserRequest{Username: "operador", Password: "secreto1", Role: "user"})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdateUser(ctx, admin, created.ID, UpdateUserRequest{
		Role:     "admin",
		LastName: "Gómez",
		Active:   &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, updated.Role)
	assert.Equal(t, "Gómez", updated.FullName)
	assert.False(t, updated.Active)

	revoked, err := revocations.IssuedBeforeRevocation(ctx, created.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUserService_UpdateUser_SelfProtection(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService(t)
	admin := testutil.AdminActor()

	self, err := svc.CreateUser(ctx, admin, CreateUserRequest{Username: "jefe", Password: "secreto1", Role: "admin"})
	require.NoError(t, err)
	actor := identity.Actor{UserID: self.ID, Username: self.Username, Role: identity.RoleAdmin}

	_, err = svc.UpdateUser(ctx, actor, self.ID, UpdateUserRequest{Role: "user"})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	inactive := false
	_, err = svc.UpdateUser(ctx, actor, self.ID, UpdateUserRequest{Role: "admin", Active: &inactive})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	assert.ErrorIs(t, svc.DeleteUser(ctx, actor, self.ID), shared.ErrForbidden)
}

func TestUserService_UpdateUser_ResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newUserService(t)
	admin := testutil.AdminActor()

	created, err := svc.CreateUser(ctx, admin, CreateUserRequest{Username: "operador", Password: "secreto1", Role: "user"})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, admin, created.ID, UpdateUserRequest{Role: "user", Password: "nuevo123"})
	require.NoError(t, err)

	user, err := store.Users().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("nuevo123"))
}

func TestUserService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService(t)
	admin := testutil.AdminActor()

	for _, name := range []string{"ana", "beto", "carla"} {
		_, err := svc.CreateUser(ctx, admin, CreateUserRequest{Username: name, Password: "secreto1", Role: "user"})
		require.NoError(t, err)
	}
	mech, err := svc.CreateUser(ctx, admin, CreateUserRequest{Username: "taller", Password: "secreto1", Role: "mechanic"})
	require.NoError(t, err)

	page, err := svc.ListUsers(ctx, UserListFilter{Role: "user", PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.TotalPages)

	page, err = svc.ListUsers(ctx, UserListFilter{Search: "tall"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, mech.ID, page.Items[0].ID)

	require.NoError(t, svc.DeleteUser(ctx, admin, mech.ID))
	_, err = svc.GetUser(ctx, mech.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUserService_ListAccessLogs(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newUserService(t)
	admin := testutil.AdminActor()

	created, err := svc.CreateUser(ctx, admin, CreateUserRequest{Username: "operador", Password: "secreto1", Role: "user"})
	require.NoError(t, err)

	authService := NewAuthService(store.Users(), store.AccessLogs(), auth.NewJWTService(testJWTConfig()), auth.NewMemoryRevocations(), zap.NewNop())
	_, err = authService.Login(ctx, LoginInput{Username: "operador", Password: "mala-clave", IP: "10.0.0.1"})
	require.Error(t, err)
	_, err = authService.Login(ctx, LoginInput{Username: "operador", Password: "secreto1", IP: "10.0.0.1"})
	require.NoError(t, err)

	page, err := svc.ListAccessLogs(ctx, AccessLogFilter{UserID: &created.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.ListAccessLogs(ctx, AccessLogFilter{Action: "login_failed"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "10.0.0.1", page.Items[0].IP)
}
