package identity

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	store       uow.Store
	revocations auth.Revocations
	logger      *zap.Logger
	jwt         *auth.JWTService
}

// NewUserService creates a new user service
func NewUserService(store uow.Store, jwtService *auth.JWTService, revocations auth.Revocations, logger *zap.Logger) *UserService {
	return &UserService{
		store:       store,
		revocations: revocations,
		logger:      logger,
		jwt:         jwtService,
	}
}

// CreateUser creates a new user
func (s *UserService) CreateUser(ctx context.Context, actor identity.Actor, req CreateUserRequest) (*UserInfo, error) {
	var user *identity.User
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		if err := s.checkUnique(ctx, repos, req.Username, req.Email, uuid.Nil); err != nil {
			return err
		}

		var err error
		user, err = identity.NewUser(req.Username, req.Password, identity.Role(req.Role), actor.UserID)
		if err != nil {
			return err
		}
		if err := user.UpdateProfile(req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
			return err
		}
		if err := repos.Users().Save(ctx, user); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityUser, user.ID, audit.OperationCreate, actor, ToUserInfo(user))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	info := ToUserInfo(user)
	return &info, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserInfo, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// ListUsers lists users with filtering and pagination
func (s *UserService) ListUsers(ctx context.Context, filter UserListFilter) (*shared.Paginated[UserInfo], error) {
	f := filter.toFilter()
	users, total, err := s.store.Users().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]UserInfo, len(users))
	for i := range users {
		items[i] = ToUserInfo(&users[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// UpdateUser edits role, profile, activation and optionally the password.
// Deactivating a user or resetting their password revokes their tokens.
func (s *UserService) UpdateUser(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateUserRequest) (*UserInfo, error) {
	var (
		user   *identity.User
		revoke bool
	)
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		user, err = repos.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkUnique(ctx, repos, "", req.Email, user.ID); err != nil {
			return err
		}

		role := identity.Role(req.Role)
		if user.ID == actor.UserID && role != user.Role {
			return shared.NewDomainError("FORBIDDEN", "You cannot change your own role")
		}
		if err := user.SetRole(role); err != nil {
			return err
		}
		if err := user.UpdateProfile(req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
			return err
		}
		if req.Active != nil && *req.Active != user.Active {
			if !*req.Active {
				if user.ID == actor.UserID {
					return shared.NewDomainError("FORBIDDEN", "You cannot deactivate your own account")
				}
				user.Deactivate()
				revoke = true
			} else {
				user.Activate()
			}
		}
		if req.Password != "" {
			if err := user.SetPassword(req.Password); err != nil {
				return err
			}
			revoke = true
		}
		user.MarkUpdatedBy(actor.UserID)

		if err := repos.Users().Save(ctx, user); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityUser, user.ID, audit.OperationUpdate, actor, ToUserInfo(user))
	})
	if err != nil {
		return nil, err
	}

	if revoke {
		s.revokeTokens(ctx, user.ID)
	}
	s.logger.Info("User updated", zap.String("user_id", id.String()), zap.String("actor_id", actor.UserID.String()))
	info := ToUserInfo(user)
	return &info, nil
}

// DeleteUser deletes a user. Administrators cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if id == actor.UserID {
		return shared.NewDomainError("FORBIDDEN", "You cannot delete your own account")
	}
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		user, err := repos.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Users().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityUser, id, audit.OperationDelete, actor, ToUserInfo(user))
	})
	if err != nil {
		return err
	}

	s.revokeTokens(ctx, id)
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

// ListAccessLogs lists authentication events, newest first
func (s *UserService) ListAccessLogs(ctx context.Context, filter AccessLogFilter) (*shared.Paginated[AccessLogResponse], error) {
	f := filter.toFilter()
	logs, total, err := s.store.AccessLogs().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]AccessLogResponse, len(logs))
	for i := range logs {
		items[i] = ToAccessLogResponse(&logs[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

func (s *UserService) checkUnique(ctx context.Context, repos uow.Repositories, username, email string, excludeID uuid.UUID) error {
	if username != "" {
		taken, err := repos.Users().ExistsByUsername(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
		}
	}
	if email != "" {
		taken, err := repos.Users().ExistsByEmail(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewDomainError("ALREADY_EXISTS", "Email is already in use")
		}
	}
	return nil
}

func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID) {
	if err := s.revocations.RevokeUser(ctx, userID.String(), s.jwt.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
