package rental

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateDebt registers a pending debt of a tenant
func (s *Service) CreateDebt(ctx context.Context, actor identity.Actor, req DebtRequest) (*DebtResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}

	var d *rental.Debt
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		if err := checkDebt(ctx, repos, req); err != nil {
			return err
		}
		var err error
		d, err = rental.NewDebt(in, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Debts().Save(ctx, d); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityDebt, d.ID, audit.OperationCreate, actor, d)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, rental.EventDebtChanged, d.ID, rental.ChangeCreated)
	s.logger.Info("Debt registered",
		zap.String("debt_id", d.ID.String()),
		zap.String("tenant_id", d.TenantID.String()))
	resp := ToDebtResponse(d)
	return &resp, nil
}

// UpdateDebt edits a pending debt
func (s *Service) UpdateDebt(ctx context.Context, actor identity.Actor, id uuid.UUID, req DebtRequest) (*DebtResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	return s.mutateDebt(ctx, actor, id, func(repos uow.Repositories, d *rental.Debt) error {
		if d.Status != rental.DebtPending {
			return shared.NewDomainError("INVALID_STATE", "Only pending debts can be edited")
		}
		if err := checkDebt(ctx, repos, req); err != nil {
			return err
		}
		return d.Update(in, actor.UserID)
	})
}

// ChangeDebtStatus marks a pending debt as paid or forgiven
func (s *Service) ChangeDebtStatus(ctx context.Context, actor identity.Actor, id uuid.UUID, req DebtStatusRequest) (*DebtResponse, error) {
	resp, err := s.mutateDebt(ctx, actor, id, func(_ uow.Repositories, d *rental.Debt) error {
		return d.ChangeStatus(rental.DebtStatus(req.Status), actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Debt status changed",
		zap.String("debt_id", id.String()),
		zap.String("status", req.Status))
	return resp, nil
}

// GetDebt retrieves a debt by ID
func (s *Service) GetDebt(ctx context.Context, id uuid.UUID) (*DebtResponse, error) {
	d, err := s.store.Debts().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDebtResponse(d)
	return &resp, nil
}

// ListDebts lists debts, earliest due date first
func (s *Service) ListDebts(ctx context.Context, filter DebtListFilter) (*shared.Paginated[DebtResponse], error) {
	f := filter.toFilter()
	debts, total, err := s.store.Debts().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]DebtResponse, len(debts))
	for i := range debts {
		items[i] = ToDebtResponse(&debts[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteDebt deletes a debt
func (s *Service) DeleteDebt(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		d, err := repos.Debts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Debts().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityDebt, id, audit.OperationDelete, actor, d)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, rental.EventDebtChanged, id, rental.ChangeDeleted)
	return nil
}

func (s *Service) mutateDebt(ctx context.Context, actor identity.Actor, id uuid.UUID, fn func(repos uow.Repositories, d *rental.Debt) error) (*DebtResponse, error) {
	var d *rental.Debt
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		d, err = repos.Debts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(repos, d); err != nil {
			return err
		}
		if err := repos.Debts().Save(ctx, d); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityDebt, d.ID, audit.OperationUpdate, actor, d)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, rental.EventDebtChanged, d.ID, rental.ChangeUpdated)
	resp := ToDebtResponse(d)
	return &resp, nil
}

func checkDebt(ctx context.Context, repos uow.Repositories, req DebtRequest) error {
	if _, err := repos.Vehicles().FindByID(ctx, req.VehicleID); err != nil {
		return notFoundAsInvalid(err, "Vehicle not found")
	}
	if _, err := repos.Tenants().FindByID(ctx, req.TenantID); err != nil {
		return notFoundAsInvalid(err, "Tenant not found")
	}
	if req.RentalID != nil {
		r, err := repos.Rentals().FindByID(ctx, *req.RentalID)
		if err != nil {
			return notFoundAsInvalid(err, "Rental not found")
		}
		if r.VehicleID != req.VehicleID || r.TenantID != req.TenantID {
			return shared.NewDomainError("INVALID_INPUT", "Rental does not match vehicle and tenant")
		}
	}
	return nil
}
