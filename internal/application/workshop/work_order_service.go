package workshop

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/workshop"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateWorkOrder opens a pending work order
func (s *Service) CreateWorkOrder(ctx context.Context, actor identity.Actor, req WorkOrderRequest) (*WorkOrderResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}

	var w *workshop.WorkOrder
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		if err := checkWorkOrder(ctx, repos, req); err != nil {
			return err
		}
		var err error
		w, err = workshop.NewWorkOrder(in, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.WorkOrders().Save(ctx, w); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityWorkOrder, w.ID, audit.OperationCreate, actor, w)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Work order created",
		zap.String("work_order_id", w.ID.String()),
		zap.String("vehicle_id", w.VehicleID.String()))
	resp := ToWorkOrderResponse(w)
	return &resp, nil
}

// UpdateWorkOrder edits a work order that is not finished
func (s *Service) UpdateWorkOrder(ctx context.Context, actor identity.Actor, id uuid.UUID, req WorkOrderRequest) (*WorkOrderResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	return s.mutateWorkOrder(ctx, actor, id, func(repos uow.Repositories, w *workshop.WorkOrder) error {
		if err := checkWorkOrder(ctx, repos, req); err != nil {
			return err
		}
		return w.Update(in, actor.UserID)
	})
}

// GetWorkOrder retrieves a work order with its parts
func (s *Service) GetWorkOrder(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	w, err := s.store.WorkOrders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWorkOrderResponse(w)
	return &resp, nil
}

// ListWorkOrders lists work orders, latest start first
func (s *Service) ListWorkOrders(ctx context.Context, filter WorkOrderListFilter) (*shared.Paginated[WorkOrderResponse], error) {
	f := filter.toFilter()
	orders, total, err := s.store.WorkOrders().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]WorkOrderResponse, len(orders))
	for i := range orders {
		items[i] = ToWorkOrderResponse(&orders[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteWorkOrder deletes a work order with its part usages
func (s *Service) DeleteWorkOrder(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	return s.store.Execute(ctx, func(repos uow.Repositories) error {
		w, err := repos.WorkOrders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.WorkOrders().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityWorkOrder, id, audit.OperationDelete, actor, w)
	})
}

// AddPartUsage records a part consumed by a work order
func (s *Service) AddPartUsage(ctx context.Context, actor identity.Actor, id uuid.UUID, req PartUsageRequest) (*WorkOrderResponse, error) {
	return s.mutateWorkOrder(ctx, actor, id, func(repos uow.Repositories, w *workshop.WorkOrder) error {
		part, err := repos.Parts().FindByID(ctx, req.PartID)
		if err != nil {
			if shared.IsNotFound(err) {
				return shared.NewDomainError("INVALID_INPUT", "Part not found")
			}
			return err
		}
		cost := part.Cost
		if req.UnitCost != nil {
			cost = *req.UnitCost
		}
		if _, err := w.AddPart(part.ID, req.Quantity, cost, req.Notes); err != nil {
			return err
		}
		w.MarkUpdatedBy(actor.UserID)
		return nil
	})
}

// RemovePartUsage drops a part usage from a work order
func (s *Service) RemovePartUsage(ctx context.Context, actor identity.Actor, id, usageID uuid.UUID) (*WorkOrderResponse, error) {
	return s.mutateWorkOrder(ctx, actor, id, func(_ uow.Repositories, w *workshop.WorkOrder) error {
		if err := w.RemovePart(usageID); err != nil {
			return err
		}
		w.MarkUpdatedBy(actor.UserID)
		return nil
	})
}

// TransitionWorkOrder moves a work order along
// pendiente -> en_progreso -> completado, or cancels it.
func (s *Service) TransitionWorkOrder(ctx context.Context, actor identity.Actor, id uuid.UUID, req TransitionRequest) (*WorkOrderResponse, error) {
	resp, err := s.mutateWorkOrder(ctx, actor, id, func(_ uow.Repositories, w *workshop.WorkOrder) error {
		return w.TransitionTo(workshop.WorkOrderStatus(req.Status), s.now(), actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Work order status changed",
		zap.String("work_order_id", id.String()),
		zap.String("status", req.Status))
	return resp, nil
}

func (s *Service) mutateWorkOrder(ctx context.Context, actor identity.Actor, id uuid.UUID, fn func(repos uow.Repositories, w *workshop.WorkOrder) error) (*WorkOrderResponse, error) {
	var w *workshop.WorkOrder
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		w, err = repos.WorkOrders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(repos, w); err != nil {
			return err
		}
		if err := repos.WorkOrders().Save(ctx, w); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityWorkOrder, w.ID, audit.OperationUpdate, actor, w)
	})
	if err != nil {
		return nil, err
	}
	resp := ToWorkOrderResponse(w)
	return &resp, nil
}

// checkWorkOrder requires an existing vehicle, an active mechanic and a
// job type entry.
func checkWorkOrder(ctx context.Context, repos uow.Repositories, req WorkOrderRequest) error {
	if _, err := repos.Vehicles().FindByID(ctx, req.VehicleID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_INPUT", "Vehicle not found")
		}
		return err
	}
	mechanic, err := repos.Mechanics().FindByID(ctx, req.MechanicID)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_INPUT", "Mechanic not found")
		}
		return err
	}
	if !mechanic.Active {
		return shared.NewDomainError("INVALID_INPUT", "Mechanic is not active")
	}
	return uow.RequireLookup(ctx, repos, catalog.KindJobType, &req.JobTypeID)
}
