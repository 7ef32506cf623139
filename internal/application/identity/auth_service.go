package identity

import (
	"context"
	"errors"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo      identity.UserRepository
	accessLogRepo identity.AccessLogRepository
	jwtService    *auth.JWTService
	revocations   auth.Revocations
	logger        *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	accessLogRepo identity.AccessLogRepository,
	jwtService *auth.JWTService,
	revocations auth.Revocations,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		accessLogRepo: accessLogRepo,
		jwtService:    jwtService,
		revocations:   revocations,
		logger:        logger,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		s.recordAccess(ctx, nil, identity.AccessLoginFailed, input.IP, "unknown user "+input.Username)
		return nil, errInvalidCredentials
	}

	if !user.Active {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", input.Username))
		s.recordAccess(ctx, &user.ID, identity.AccessLoginFailed, input.IP, "account deactivated")
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		s.recordAccess(ctx, &user.ID, identity.AccessLoginFailed, input.IP, "wrong password")
		return nil, errInvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(tokenInputFor(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.recordAccess(ctx, &user.ID, identity.AccessLogin, input.IP, "")
	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserInfo(user),
	}, nil
}

// RefreshToken rotates a refresh token. The presented token is revoked so
// it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Invalid refresh token", zap.Error(err))
		return nil, tokenError(err)
	}

	if revoked, err := s.isRevoked(ctx, claims); err != nil {
		return nil, err
	} else if revoked {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid token claims")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("INVALID_TOKEN", "User no longer exists")
		}
		return nil, err
	}
	if !user.Active {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, tokenInputFor(user))
	if err != nil {
		s.logger.Warn("Failed to refresh token pair", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, tokenError(err)
	}

	if err := s.revocations.RevokeToken(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
	}

	s.logger.Info("Token refreshed", zap.String("user_id", user.ID.String()))
	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the current access token and records the event
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" && input.TokenTTL > 0 {
		if err := s.revocations.RevokeToken(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to revoke token on logout",
				zap.String("user_id", input.UserID.String()),
				zap.Error(err))
			return err
		}
	}

	s.recordAccess(ctx, &input.UserID, identity.AccessLogout, input.IP, "")
	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser returns the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// UpdateProfile edits the caller's own personal fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if input.Email != "" {
		taken, err := s.userRepo.ExistsByEmail(ctx, input.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already in use")
		}
	}
	if err := user.UpdateProfile(input.FirstName, input.LastName, input.Email, input.Phone); err != nil {
		return nil, err
	}
	user.MarkUpdatedBy(userID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// ChangePassword changes the user's password and invalidates every token
// issued before the change.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		s.logger.Warn("Password change rejected", zap.String("user_id", userID.String()), zap.Error(err))
		return err
	}
	user.MarkUpdatedBy(userID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	if err := s.revocations.RevokeUser(ctx, userID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to invalidate tokens after password change",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// ValidateAccessToken checks a presented access token against its signature
// and the revocation lists.
func (s *AuthService) ValidateAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.isRevoked(ctx, claims)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, auth.ErrTokenRevoked
	}
	return claims, nil
}

func (s *AuthService) isRevoked(ctx context.Context, claims *auth.Claims) (bool, error) {
	if claims.ID != "" {
		revoked, err := s.revocations.TokenRevoked(ctx, claims.ID)
		if err != nil || revoked {
			return revoked, err
		}
	}
	return s.revocations.IssuedBeforeRevocation(ctx, claims.UserID, claims.GetIssuedAtTime())
}

// recordAccess writes an access log entry. Failures are logged, not returned.
func (s *AuthService) recordAccess(ctx context.Context, userID *uuid.UUID, action identity.AccessAction, ip, details string) {
	entry := identity.NewAccessLog(userID, action, ip, details)
	if err := s.accessLogRepo.Create(ctx, entry); err != nil {
		s.logger.Error("Failed to write access log",
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func tokenInputFor(user *identity.User) auth.GenerateTokenInput {
	return auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_EXPIRED", "Session has expired, please log in again")
	default:
		return shared.NewDomainError("INVALID_TOKEN", "Invalid token")
	}
}
