package settlement

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfitService manages the company profit percentages applied to weeks
type ProfitService struct {
	store  uow.Store
	logger *zap.Logger
}

// NewProfitService creates a new ProfitService
func NewProfitService(store uow.Store, logger *zap.Logger) *ProfitService {
	return &ProfitService{store: store, logger: logger}
}

// Create creates a profit percentage. Marking it default clears the flag
// on every other percentage.
func (s *ProfitService) Create(ctx context.Context, actor identity.Actor, req ProfitPercentageRequest) (*ProfitPercentageResponse, error) {
	var profit *settlement.ProfitPercentage
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		profit, err = settlement.NewProfitPercentage(req.Description, req.Percentage, req.Active, req.IsDefault, actor.UserID)
		if err != nil {
			return err
		}
		if profit.IsDefault {
			if err := repos.ProfitPercentages().ClearDefaultExcept(ctx, profit.ID); err != nil {
				return err
			}
		}
		if err := repos.ProfitPercentages().Save(ctx, profit); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityProfitPercentage, profit.ID, audit.OperationCreate, actor, profit)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Profit percentage created",
		zap.String("profit_percentage_id", profit.ID.String()),
		zap.String("percentage", profit.Percentage.String()),
	)
	resp := ToProfitPercentageResponse(profit)
	return &resp, nil
}

// Update updates a profit percentage
func (s *ProfitService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req ProfitPercentageRequest) (*ProfitPercentageResponse, error) {
	var profit *settlement.ProfitPercentage
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		profit, err = repos.ProfitPercentages().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := profit.Update(req.Description, req.Percentage, req.Active, req.IsDefault, actor.UserID); err != nil {
			return err
		}
		if profit.IsDefault {
			if err := repos.ProfitPercentages().ClearDefaultExcept(ctx, profit.ID); err != nil {
				return err
			}
		}
		if err := repos.ProfitPercentages().Save(ctx, profit); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityProfitPercentage, profit.ID, audit.OperationUpdate, actor, profit)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Profit percentage updated", zap.String("profit_percentage_id", id.String()))
	resp := ToProfitPercentageResponse(profit)
	return &resp, nil
}

// GetByID retrieves a profit percentage by ID
func (s *ProfitService) GetByID(ctx context.Context, id uuid.UUID) (*ProfitPercentageResponse, error) {
	profit, err := s.store.ProfitPercentages().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProfitPercentageResponse(profit)
	return &resp, nil
}

// List lists percentages: default first, then active, then ascending
func (s *ProfitService) List(ctx context.Context) ([]ProfitPercentageResponse, error) {
	all, err := s.store.ProfitPercentages().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]ProfitPercentageResponse, len(all))
	for i := range all {
		result[i] = ToProfitPercentageResponse(&all[i])
	}
	return result, nil
}

// Delete deletes a profit percentage no week uses
func (s *ProfitService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		profit, err := repos.ProfitPercentages().FindByID(ctx, id)
		if err != nil {
			return err
		}
		used, err := repos.Weeks().CountByProfitPercentage(ctx, id)
		if err != nil {
			return err
		}
		if used > 0 {
			return settlement.ErrPercentageInUse
		}
		if err := repos.ProfitPercentages().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityProfitPercentage, id, audit.OperationDelete, actor, profit)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Profit percentage deleted", zap.String("profit_percentage_id", id.String()))
	return nil
}
