package workshop

import (
	"strings"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderStatus is the progress of a repair
type WorkOrderStatus string

const (
	WorkOrderPending    WorkOrderStatus = "pendiente"
	WorkOrderInProgress WorkOrderStatus = "en_progreso"
	WorkOrderCompleted  WorkOrderStatus = "completado"
	WorkOrderCancelled  WorkOrderStatus = "cancelado"
)

// IsTerminal reports whether no further transition is allowed
func (s WorkOrderStatus) IsTerminal() bool {
	return s == WorkOrderCompleted || s == WorkOrderCancelled
}

// CanTransitionTo encodes pendiente -> en_progreso -> completado, and
// cancellation from any non-terminal state.
func (s WorkOrderStatus) CanTransitionTo(target WorkOrderStatus) bool {
	switch target {
	case WorkOrderInProgress:
		return s == WorkOrderPending
	case WorkOrderCompleted:
		return s == WorkOrderInProgress
	case WorkOrderCancelled:
		return !s.IsTerminal()
	}
	return false
}

// PartUsage is a part consumed by a work order
type PartUsage struct {
	shared.BaseEntity
	PartID   uuid.UUID
	Quantity int
	UnitCost decimal.Decimal
	Notes    string
}

// Subtotal is quantity * unit cost
func (u PartUsage) Subtotal() decimal.Decimal {
	return u.UnitCost.Mul(decimal.NewFromInt(int64(u.Quantity)))
}

// WorkOrder is a repair job on a vehicle
type WorkOrder struct {
	shared.BaseAggregateRoot
	VehicleID   uuid.UUID
	MechanicID  uuid.UUID
	JobTypeID   uuid.UUID
	StartDate   time.Time
	EndDate     *time.Time
	Description string
	Cost        decimal.Decimal
	Status      WorkOrderStatus
	Notes       string
	Parts       []PartUsage
}

// WorkOrderInput carries the editable work order fields
type WorkOrderInput struct {
	VehicleID   uuid.UUID
	MechanicID  uuid.UUID
	JobTypeID   uuid.UUID
	StartDate   time.Time
	EndDate     *time.Time
	Description string
	Cost        decimal.Decimal
	Notes       string
}

// NewWorkOrder creates a pending work order
func NewWorkOrder(in WorkOrderInput, createdBy uuid.UUID) (*WorkOrder, error) {
	w := &WorkOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Status:            WorkOrderPending,
		Parts:             make([]PartUsage, 0),
	}
	if err := w.Update(in, createdBy); err != nil {
		return nil, err
	}
	return w, nil
}

// Update replaces the editable fields of a non-terminal order
func (w *WorkOrder) Update(in WorkOrderInput, updatedBy uuid.UUID) error {
	if w.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "A finished work order cannot be edited")
	}
	if in.VehicleID == uuid.Nil || in.MechanicID == uuid.Nil || in.JobTypeID == uuid.Nil {
		return shared.NewDomainError("INVALID_WORK_ORDER", "Vehicle, mechanic and job type are required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return shared.NewDomainError("INVALID_WORK_ORDER", "Description is required")
	}
	if in.StartDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Start date is required")
	}
	if in.EndDate != nil {
		if _, err := valueobject.NewDateRange(in.StartDate, *in.EndDate); err != nil {
			return shared.WrapDomainError("INVALID_DATE_RANGE", "End date cannot be before start date", err)
		}
		end := valueobject.TruncateDay(*in.EndDate)
		w.EndDate = &end
	} else {
		w.EndDate = nil
	}
	if in.Cost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Cost cannot be negative")
	}
	w.VehicleID = in.VehicleID
	w.MechanicID = in.MechanicID
	w.JobTypeID = in.JobTypeID
	w.StartDate = valueobject.TruncateDay(in.StartDate)
	w.Description = description
	w.Cost = in.Cost.Round(2)
	w.Notes = strings.TrimSpace(in.Notes)
	w.MarkUpdatedBy(updatedBy)
	return nil
}

// AddPart records a part consumed by the order
func (w *WorkOrder) AddPart(partID uuid.UUID, quantity int, unitCost decimal.Decimal, notes string) (*PartUsage, error) {
	if w.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "A finished work order cannot be edited")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Unit cost cannot be negative")
	}
	w.Parts = append(w.Parts, PartUsage{
		BaseEntity: shared.NewBaseEntity(),
		PartID:     partID,
		Quantity:   quantity,
		UnitCost:   unitCost.Round(2),
		Notes:      strings.TrimSpace(notes),
	})
	return &w.Parts[len(w.Parts)-1], nil
}

// RemovePart drops a part usage by ID
func (w *WorkOrder) RemovePart(usageID uuid.UUID) error {
	if w.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "A finished work order cannot be edited")
	}
	for i := range w.Parts {
		if w.Parts[i].ID == usageID {
			w.Parts = append(w.Parts[:i], w.Parts[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// PartsTotal sums the cost of all parts used
func (w *WorkOrder) PartsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range w.Parts {
		total = total.Add(p.Subtotal())
	}
	return total
}

// TransitionTo changes status; completing stamps an end date when missing
func (w *WorkOrder) TransitionTo(target WorkOrderStatus, now time.Time, updatedBy uuid.UUID) error {
	if !w.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Cannot move work order from "+string(w.Status)+" to "+string(target))
	}
	w.Status = target
	if target == WorkOrderCompleted && w.EndDate == nil {
		end := valueobject.TruncateDay(now)
		w.EndDate = &end
	}
	w.MarkUpdatedBy(updatedBy)
	return nil
}
