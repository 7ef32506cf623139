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

// CreatePayment records a payment against a rental
func (s *Service) CreatePayment(ctx context.Context, actor identity.Actor, req PaymentRequest) (*PaymentResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}

	var p *rental.Payment
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		if err := checkPayment(ctx, repos, req); err != nil {
			return err
		}
		var err error
		p, err = rental.NewPayment(in, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, p); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityPayment, p.ID, audit.OperationCreate, actor, p)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, rental.EventPaymentChanged, p.ID, rental.ChangeCreated)
	s.logger.Info("Payment recorded",
		zap.String("payment_id", p.ID.String()),
		zap.String("rental_id", p.RentalID.String()),
		zap.String("net", p.Net.StringFixed(2)))
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// UpdatePayment corrects a payment; the net amount is recomputed
func (s *Service) UpdatePayment(ctx context.Context, actor identity.Actor, id uuid.UUID, req PaymentRequest) (*PaymentResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}

	var p *rental.Payment
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		p, err = repos.Payments().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkPayment(ctx, repos, req); err != nil {
			return err
		}
		if err := p.Update(in, actor.UserID); err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, p); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityPayment, p.ID, audit.OperationUpdate, actor, p)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, rental.EventPaymentChanged, p.ID, rental.ChangeUpdated)
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// GetPayment retrieves a payment by ID
func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	p, err := s.store.Payments().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// ListPayments lists payments, latest first
func (s *Service) ListPayments(ctx context.Context, filter PaymentListFilter) (*shared.Paginated[PaymentResponse], error) {
	f := filter.toFilter()
	payments, total, err := s.store.Payments().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]PaymentResponse, len(payments))
	for i := range payments {
		items[i] = ToPaymentResponse(&payments[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeletePayment deletes a payment
func (s *Service) DeletePayment(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		p, err := repos.Payments().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Payments().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityPayment, id, audit.OperationDelete, actor, p)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, rental.EventPaymentChanged, id, rental.ChangeDeleted)
	s.logger.Info("Payment deleted", zap.String("payment_id", id.String()))
	return nil
}

func checkPayment(ctx context.Context, repos uow.Repositories, req PaymentRequest) error {
	if _, err := repos.Rentals().FindByID(ctx, req.RentalID); err != nil {
		return notFoundAsInvalid(err, "Rental not found")
	}
	return uow.RequireLookup(ctx, repos, catalog.KindPaymentMethod, &req.PaymentMethodID)
}
