package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/auth"
	"github.com/alexrentacar/backoffice/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccessLogRepository is a mock implementation of identity.AccessLogRepository
type MockAccessLogRepository struct {
	mock.Mock
}

func (m *MockAccessLogRepository) Create(ctx context.Context, entry *identity.AccessLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAccessLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.AccessLog, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.AccessLog), args.Get(1).(int64), args.Error(2)
}

func accessAction(action identity.AccessAction) interface{} {
	return mock.MatchedBy(func(e *identity.AccessLog) bool { return e.Action == action })
}

// Helper function to create a test user
func createTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("operador", "Password123", identity.RoleUser, uuid.Nil)
	require.NoError(t, err)
	return user
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
}

// Helper function to create auth service
func createAuthService(userRepo *MockUserRepository, logRepo *MockAccessLogRepository, revocations auth.Revocations) *AuthService {
	return NewAuthService(
		userRepo,
		logRepo,
		auth.NewJWTService(testJWTConfig()),
		revocations,
		zap.NewNop(),
	)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	logRepo := new(MockAccessLogRepository)

	user := createTestUser(t)
	userRepo.On("FindByUsername", ctx, "operador").Return(user, nil)
	logRepo.On("Create", ctx, accessAction(identity.AccessLogin)).Return(nil)

	authService := createAuthService(userRepo, logRepo, auth.NewMemoryRevocations())

	result, err := authService.Login(ctx, LoginInput{
		Username: "operador",
		Password: "Password123",
		IP:       "127.0.0.1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "operador", result.User.Username)
	assert.Equal(t, identity.RoleUser, result.User.Role)
	assert.Equal(t, "Bearer", result.TokenType)

	userRepo.AssertExpectations(t)
	logRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	logRepo := new(MockAccessLogRepository)

	user := createTestUser(t)
	userRepo.On("FindByUsername", ctx, "operador").Return(user, nil)
	logRepo.On("Create", ctx, accessAction(identity.AccessLoginFailed)).Return(nil)

	authService := createAuthService(userRepo, logRepo, auth.NewMemoryRevocations())

	result, err := authService.Login(ctx, LoginInput{Username: "operador", Password: "WrongPassword"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	logRepo.AssertExpectations(t)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	logRepo := new(MockAccessLogRepository)

	userRepo.On("FindByUsername", ctx, "nobody").Return(nil, shared.ErrNotFound)
	logRepo.On("Create", ctx, mock.MatchedBy(func(e *identity.AccessLog) bool {
		return e.Action == identity.AccessLoginFailed && e.UserID == nil
	})).Return(nil)

	authService := createAuthService(userRepo, logRepo, auth.NewMemoryRevocations())

	_, err := authService.Login(ctx, LoginInput{Username: "nobody", Password: "Password123"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	logRepo.AssertExpectations(t)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	logRepo := new(MockAccessLogRepository)

	user := createTestUser(t)
	user.Deactivate()
	userRepo.On("FindByUsername", ctx, "operador").Return(user, nil)
	logRepo.On("Create", ctx, accessAction(identity.AccessLoginFailed)).Return(nil)

	authService := createAuthService(userRepo, logRepo, auth.NewMemoryRevocations())

	_, err := authService.Login(ctx, LoginInput{Username: "operador", Password: "Password123"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_Login_AccessLogFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	logRepo := new(MockAccessLogRepository)

	user := createTestUser(t)
	userRepo.On("FindByUsername", ctx, "operador").Return(user, nil)
	logRepo.On("Create", ctx, mock.Anything).Return(errors.New("table missing"))

	authService := createAuthService(userRepo, logRepo, auth.NewMemoryRevocations())

	result, err := authService.Login(ctx, LoginInput{Username: "operador", Password: "Password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	logRepo := new(MockAccessLogRepository)
	revocations := auth.NewMemoryRevocations()

	user := createTestUser(t)
	userRepo.On("FindByUsername", ctx, "operador").Return(user, nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	logRepo.On("Create", ctx, mock.Anything).Return(nil)

	authService := createAuthService(userRepo, logRepo, revocations)

	loginResult, err := authService.Login(ctx, LoginInput{Username: "operador", Password: "Password123"})
	require.NoError(t, err)

	refreshResult, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: loginResult.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, refreshResult.AccessToken)
	assert.Equal(t, "Bearer", refreshResult.TokenType)
	assert.NotEqual(t, loginResult.RefreshToken, refreshResult.RefreshToken)

	// The rotated token cannot be replayed
	_, err = authService.RefreshToken(ctx, RefreshTokenInput{RefreshToken: loginResult.RefreshToken})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	ctx := context.Background()
	authService := createAuthService(new(MockUserRepository), new(MockAccessLogRepository), auth.NewMemoryRevocations())

	_, err := authService.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not-a-token"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t)
	jwtService := auth.NewJWTService(testJWTConfig())
	pair, err := jwtService.GenerateTokenPair(tokenInputFor(user))
	require.NoError(t, err)

	authService := createAuthService(new(MockUserRepository), new(MockAccessLogRepository), auth.NewMemoryRevocations())

	_, err = authService.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.AccessToken})
	require.Error(t, err)
}

func TestAuthService_RefreshToken_DeactivatedUser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser(t)
	pair, err := auth.NewJWTService(testJWTConfig()).GenerateTokenPair(tokenInputFor(user))
	require.NoError(t, err)

	user.Deactivate()
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo, new(MockAccessLogRepository), auth.NewMemoryRevocations())

	_, err = authService.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_RefreshToken_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser(t)
	pair, err := auth.NewJWTService(testJWTConfig()).GenerateTokenPair(tokenInputFor(user))
	require.NoError(t, err)

	userRepo.On("FindByID", ctx, user.ID).Return(nil, shared.ErrNotFound)

	authService := createAuthService(userRepo, new(MockAccessLogRepository), auth.NewMemoryRevocations())

	_, err = authService.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
}

func TestAuthService_GetCurrentUser_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser(t)
	require.NoError(t, user.UpdateProfile("Luis", "Pérez", "luis@example.com", ""))
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo, new(MockAccessLogRepository), auth.NewMemoryRevocations())

	info, err := authService.GetCurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luis Pérez", info.FullName)
	assert.Equal(t, "luis@example.com", info.Email)
}

func TestAuthService_UpdateProfile_EmailTaken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser(t)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("ExistsByEmail", ctx, "taken@example.com", user.ID).Return(true, nil)

	authService := createAuthService(userRepo, new(MockAccessLogRepository), auth.NewMemoryRevocations())

	_, err := authService.UpdateProfile(ctx, user.ID, UpdateProfileInput{Email: "taken@example.com"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	revocations := auth.NewMemoryRevocations()
	user := createTestUser(t)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	authService := createAuthService(userRepo, new(MockAccessLogRepository), revocations)

	err := authService.ChangePassword(ctx, user.ID, ChangePasswordInput{
		OldPassword: "Password123",
		NewPassword: "NewPassword456",
	})
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("NewPassword456"))

	invalidated, err := revocations.IssuedBeforeRevocation(ctx, user.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, invalidated)
	userRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser(t)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo, new(MockAccessLogRepository), auth.NewMemoryRevocations())

	err := authService.ChangePassword(ctx, user.ID, ChangePasswordInput{
		OldPassword: "WrongPassword",
		NewPassword: "NewPassword456",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Logout_Success(t *testing.T) {
	ctx := context.Background()
	logRepo := new(MockAccessLogRepository)
	revocations := auth.NewMemoryRevocations()
	userID := uuid.New()
	logRepo.On("Create", ctx, accessAction(identity.AccessLogout)).Return(nil)

	authService := createAuthService(new(MockUserRepository), logRepo, revocations)

	err := authService.Logout(ctx, LogoutInput{
		UserID:   userID,
		TokenJTI: "test-jti",
		TokenTTL: 15 * time.Minute,
		IP:       "127.0.0.1",
	})
	require.NoError(t, err)

	revoked, err := revocations.TokenRevoked(ctx, "test-jti")
	require.NoError(t, err)
	assert.True(t, revoked)
	logRepo.AssertExpectations(t)
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	revocations := auth.NewMemoryRevocations()
	user := createTestUser(t)
	pair, err := auth.NewJWTService(testJWTConfig()).GenerateTokenPair(tokenInputFor(user))
	require.NoError(t, err)

	authService := createAuthService(new(MockUserRepository), new(MockAccessLogRepository), revocations)

	claims, err := authService.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, claims.Role)

	require.NoError(t, revocations.RevokeToken(ctx, claims.ID, time.Minute))
	_, err = authService.ValidateAccessToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}
