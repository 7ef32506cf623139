// Package rental manages rentals of vehicles to tenants, the payments
// received against them and the debts of late payers.
package rental

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles rental, payment and debt operations
type Service struct {
	store  uow.Store
	events shared.EventPublisher
	logger *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithEventPublisher sets where change events go after each committed write
func WithEventPublisher(p shared.EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

// NewService creates a new rental service
func NewService(store uow.Store, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{store: store, events: shared.NopPublisher{}, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) publish(ctx context.Context, eventType string, id uuid.UUID, change rental.ChangeKind) {
	if err := s.events.Publish(ctx, rental.NewChangedEvent(eventType, id, change)); err != nil {
		s.logger.Warn("Publishing change event failed",
			zap.String("event_type", eventType), zap.Error(err))
	}
}

// CreateRental creates a rental. A vehicle cannot be rented twice over
// overlapping dates.
func (s *Service) CreateRental(ctx context.Context, actor identity.Actor, req RentalRequest) (*RentalResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}

	var r *rental.Rental
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		r, err = rental.NewRental(in, actor.UserID)
		if err != nil {
			return err
		}
		if err := checkRental(ctx, repos, r); err != nil {
			return err
		}
		if err := repos.Rentals().Save(ctx, r); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityRental, r.ID, audit.OperationCreate, actor, r)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, rental.EventRentalChanged, r.ID, rental.ChangeCreated)
	s.logger.Info("Rental created",
		zap.String("rental_id", r.ID.String()),
		zap.String("vehicle_id", r.VehicleID.String()),
		zap.String("tenant_id", r.TenantID.String()))
	resp := ToRentalResponse(r)
	return &resp, nil
}

// UpdateRental updates a rental
func (s *Service) UpdateRental(ctx context.Context, actor identity.Actor, id uuid.UUID, req RentalRequest) (*RentalResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}

	var r *rental.Rental
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		r, err = repos.Rentals().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Update(in, actor.UserID); err != nil {
			return err
		}
		if err := checkRental(ctx, repos, r); err != nil {
			return err
		}
		if err := repos.Rentals().Save(ctx, r); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityRental, r.ID, audit.OperationUpdate, actor, r)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, rental.EventRentalChanged, r.ID, rental.ChangeUpdated)
	resp := ToRentalResponse(r)
	return &resp, nil
}

// GetRental retrieves a rental by ID
func (s *Service) GetRental(ctx context.Context, id uuid.UUID) (*RentalResponse, error) {
	r, err := s.store.Rentals().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRentalResponse(r)
	return &resp, nil
}

// ListRentals lists rentals, latest start first
func (s *Service) ListRentals(ctx context.Context, filter RentalListFilter) (*shared.Paginated[RentalResponse], error) {
	f := filter.toFilter()
	rentals, total, err := s.store.Rentals().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]RentalResponse, len(rentals))
	for i := range rentals {
		items[i] = ToRentalResponse(&rentals[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteRental deletes a rental without payments. Rentals referenced by a
// settlement week are kept by the foreign key and reported as IN_USE.
func (s *Service) DeleteRental(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		r, err := repos.Rentals().FindByID(ctx, id)
		if err != nil {
			return err
		}
		paid, err := repos.Rentals().HasPayments(ctx, id)
		if err != nil {
			return err
		}
		if paid {
			return shared.NewDomainError("IN_USE", "Rental has payments")
		}
		if err := repos.Rentals().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityRental, id, audit.OperationDelete, actor, r)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, rental.EventRentalChanged, id, rental.ChangeDeleted)
	s.logger.Info("Rental deleted", zap.String("rental_id", id.String()))
	return nil
}

// checkRental validates the references of r and that its vehicle is free
// over r's period.
func checkRental(ctx context.Context, repos uow.Repositories, r *rental.Rental) error {
	if _, err := repos.Vehicles().FindByID(ctx, r.VehicleID); err != nil {
		return notFoundAsInvalid(err, "Vehicle not found")
	}
	if _, err := repos.Tenants().FindByID(ctx, r.TenantID); err != nil {
		return notFoundAsInvalid(err, "Tenant not found")
	}
	if err := uow.RequireLookup(ctx, repos, catalog.KindRentalStatus, &r.StatusID); err != nil {
		return err
	}

	overlapping, err := repos.Rentals().FindOverlapping(ctx, r.StartDate, r.EndDate)
	if err != nil {
		return err
	}
	for _, other := range overlapping {
		if other.VehicleID == r.VehicleID && other.ID != r.ID {
			return shared.NewDomainError("INVALID_STATE", "Vehicle is already rented in that period")
		}
	}
	return nil
}

func notFoundAsInvalid(err error, message string) error {
	if shared.IsNotFound(err) {
		return shared.NewDomainError("INVALID_INPUT", message)
	}
	return err
}
