package rental

import (
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types published after rental, payment and debt writes
const (
	EventRentalChanged  = "rental.changed"
	EventPaymentChanged = "payment.changed"
	EventDebtChanged    = "debt.changed"
)

// ChangeKind tells what happened to the record
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// ChangedEvent reports a committed write to a rental, payment or debt
type ChangedEvent struct {
	shared.BaseDomainEvent
	Change ChangeKind `json:"change"`
}

// NewChangedEvent builds a ChangedEvent of eventType for id
func NewChangedEvent(eventType string, id uuid.UUID, change ChangeKind) *ChangedEvent {
	return &ChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, id),
		Change:          change,
	}
}
