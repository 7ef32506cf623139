package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is something that happened to an aggregate after its
// transaction committed
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// EventHandler reacts to published events
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types the handler wants; empty means all
	EventTypes() []string
}

// EventPublisher delivers events to subscribers
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus is a publisher that handlers can subscribe to
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// BaseDomainEvent carries the fields every event has
type BaseDomainEvent struct {
	ID          uuid.UUID `json:"event_id"`
	Type        string    `json:"event_type"`
	AggregateOf uuid.UUID `json:"aggregate_id"`
	Timestamp   time.Time `json:"occurred_at"`
}

// NewBaseDomainEvent stamps a new event of eventType for aggregateID
func NewBaseDomainEvent(eventType string, aggregateID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:          uuid.New(),
		Type:        eventType,
		AggregateOf: aggregateID,
		Timestamp:   time.Now(),
	}
}

func (e BaseDomainEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseDomainEvent) EventType() string      { return e.Type }
func (e BaseDomainEvent) AggregateID() uuid.UUID { return e.AggregateOf }
func (e BaseDomainEvent) OccurredAt() time.Time  { return e.Timestamp }

// NopPublisher drops every event
type NopPublisher struct{}

// Publish does nothing
func (NopPublisher) Publish(context.Context, ...DomainEvent) error { return nil }
