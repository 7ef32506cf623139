// Package workshop manages mechanics, spare parts and the work orders that
// repair the fleet.
package workshop

import (
	"context"
	"time"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/workshop"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles mechanic, part and work order operations
type Service struct {
	store  uow.Store
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the clock used to stamp completion dates
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new workshop service
func NewService(store uow.Store, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMechanic creates a mechanic
func (s *Service) CreateMechanic(ctx context.Context, actor identity.Actor, req MechanicRequest) (*MechanicResponse, error) {
	var m *workshop.Mechanic
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		m, err = workshop.NewMechanic(req.toInput(), actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Mechanics().Save(ctx, m); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityMechanic, m.ID, audit.OperationCreate, actor, m)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Mechanic created", zap.String("mechanic_id", m.ID.String()))
	resp := ToMechanicResponse(m)
	return &resp, nil
}

// UpdateMechanic updates a mechanic
func (s *Service) UpdateMechanic(ctx context.Context, actor identity.Actor, id uuid.UUID, req MechanicRequest) (*MechanicResponse, error) {
	var m *workshop.Mechanic
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		m, err = repos.Mechanics().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := m.Update(req.toInput(), actor.UserID); err != nil {
			return err
		}
		if err := repos.Mechanics().Save(ctx, m); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityMechanic, m.ID, audit.OperationUpdate, actor, m)
	})
	if err != nil {
		return nil, err
	}
	resp := ToMechanicResponse(m)
	return &resp, nil
}

// GetMechanic retrieves a mechanic by ID
func (s *Service) GetMechanic(ctx context.Context, id uuid.UUID) (*MechanicResponse, error) {
	m, err := s.store.Mechanics().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMechanicResponse(m)
	return &resp, nil
}

// ListMechanics lists mechanics by name
func (s *Service) ListMechanics(ctx context.Context, filter ListFilter) (*shared.Paginated[MechanicResponse], error) {
	f := filter.toFilter()
	mechanics, total, err := s.store.Mechanics().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]MechanicResponse, len(mechanics))
	for i := range mechanics {
		items[i] = ToMechanicResponse(&mechanics[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteMechanic deletes a mechanic without work orders
func (s *Service) DeleteMechanic(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	return s.store.Execute(ctx, func(repos uow.Repositories) error {
		m, err := repos.Mechanics().FindByID(ctx, id)
		if err != nil {
			return err
		}
		busy, err := repos.Mechanics().HasWorkOrders(ctx, id)
		if err != nil {
			return err
		}
		if busy {
			return shared.NewDomainError("IN_USE", "Mechanic has work orders")
		}
		if err := repos.Mechanics().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityMechanic, id, audit.OperationDelete, actor, m)
	})
}

// CreatePart creates a spare part
func (s *Service) CreatePart(ctx context.Context, actor identity.Actor, req PartRequest) (*PartResponse, error) {
	var p *workshop.Part
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		p, err = workshop.NewPart(req.toInput(), actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Parts().Save(ctx, p); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityPart, p.ID, audit.OperationCreate, actor, p)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPartResponse(p)
	return &resp, nil
}

// UpdatePart updates a spare part. Costs already recorded on work orders
// are not touched.
func (s *Service) UpdatePart(ctx context.Context, actor identity.Actor, id uuid.UUID, req PartRequest) (*PartResponse, error) {
	var p *workshop.Part
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		p, err = repos.Parts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := p.Update(req.toInput(), actor.UserID); err != nil {
			return err
		}
		if err := repos.Parts().Save(ctx, p); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityPart, p.ID, audit.OperationUpdate, actor, p)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPartResponse(p)
	return &resp, nil
}

// GetPart retrieves a part by ID
func (s *Service) GetPart(ctx context.Context, id uuid.UUID) (*PartResponse, error) {
	p, err := s.store.Parts().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPartResponse(p)
	return &resp, nil
}

// ListParts lists parts, optionally by condition
func (s *Service) ListParts(ctx context.Context, filter ListFilter) (*shared.Paginated[PartResponse], error) {
	f := filter.toFilter()
	parts, total, err := s.store.Parts().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]PartResponse, len(parts))
	for i := range parts {
		items[i] = ToPartResponse(&parts[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeletePart deletes a part no work order used
func (s *Service) DeletePart(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	return s.store.Execute(ctx, func(repos uow.Repositories) error {
		p, err := repos.Parts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		used, err := repos.Parts().IsUsed(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return shared.NewDomainError("IN_USE", "Part was used by a work order")
		}
		if err := repos.Parts().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityPart, id, audit.OperationDelete, actor, p)
	})
}
