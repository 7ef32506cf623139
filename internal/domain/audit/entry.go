package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Operation is the kind of change an entry records
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Entity type names used in audit entries
const (
	EntityUser             = "user"
	EntityBrandModel       = "brand_model"
	EntityBank             = "bank"
	EntityLookup           = "lookup_entry"
	EntityOwner            = "owner"
	EntityTenant           = "tenant"
	EntityVehicle          = "vehicle"
	EntityRental           = "rental"
	EntityPayment          = "payment"
	EntityDebt             = "debt"
	EntityMechanic         = "mechanic"
	EntityPart             = "part"
	EntityWorkOrder        = "work_order"
	EntitySettlementWeek   = "settlement_week"
	EntitySettlementItem   = "settlement_line_item"
	EntityProfitPercentage = "profit_percentage"
)

// Entry is an append-only snapshot of an entity after (or, for deletes,
// before) a mutation.
type Entry struct {
	ID         uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Operation  Operation
	ActorID    *uuid.UUID
	OccurredAt time.Time
	Snapshot   json.RawMessage
}

// NewEntry marshals snapshot and stamps the entry
func NewEntry(entityType string, entityID uuid.UUID, op Operation, actorID uuid.UUID, snapshot any) (*Entry, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, shared.WrapDomainError("AUDIT_SNAPSHOT_ERROR", "Failed to serialize audit snapshot", err)
	}
	e := &Entry{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Operation:  op,
		OccurredAt: time.Now(),
		Snapshot:   data,
	}
	if actorID != uuid.Nil {
		e.ActorID = &actorID
	}
	return e, nil
}

// Repository appends and reads audit entries
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	// FindByEntity lists entries of one entity, newest first
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, filter shared.Filter) ([]Entry, int64, error)
}
