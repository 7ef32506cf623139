// Package audit serves the change history recorded for every mutation.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownEntityType is returned for an entity type that is never audited
var ErrUnknownEntityType = shared.NewDomainError("INVALID_INPUT", "Unknown entity type")

var entityTypes = map[string]struct{}{
	audit.EntityUser:             {},
	audit.EntityBrandModel:       {},
	audit.EntityBank:             {},
	audit.EntityLookup:           {},
	audit.EntityOwner:            {},
	audit.EntityTenant:           {},
	audit.EntityVehicle:          {},
	audit.EntityRental:           {},
	audit.EntityPayment:          {},
	audit.EntityDebt:             {},
	audit.EntityMechanic:         {},
	audit.EntityPart:             {},
	audit.EntityWorkOrder:        {},
	audit.EntitySettlementWeek:   {},
	audit.EntitySettlementItem:   {},
	audit.EntityProfitPercentage: {},
}

// HistoryFilter represents the history query
type HistoryFilter struct {
	Operation string `form:"operation" binding:"omitempty,oneof=create update delete"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// EntryResponse represents one audit entry
type EntryResponse struct {
	ID         uuid.UUID       `json:"id"`
	EntityType string          `json:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id"`
	Operation  string          `json:"operation"`
	ActorID    *uuid.UUID      `json:"actor_id,omitempty"`
	Actor      string          `json:"actor,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Snapshot   json.RawMessage `json:"snapshot"`
}

// Service reads audit history
type Service struct {
	store  uow.Store
	logger *zap.Logger
}

// NewService creates a new audit service
func NewService(store uow.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// History lists the entries of one entity, newest first, with the username
// of whoever made each change.
func (s *Service) History(ctx context.Context, entityType string, entityID uuid.UUID, filter HistoryFilter) (*shared.Paginated[EntryResponse], error) {
	if _, ok := entityTypes[entityType]; !ok {
		return nil, ErrUnknownEntityType
	}

	f := shared.DefaultFilter()
	f.OrderBy = ""
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Operation != "" {
		f.Filters["operation"] = filter.Operation
	}
	f = f.Normalize()

	entries, total, err := s.store.Audit().FindByEntity(ctx, entityType, entityID, f)
	if err != nil {
		return nil, err
	}

	usernames := make(map[uuid.UUID]string)
	items := make([]EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = EntryResponse{
			ID:         e.ID,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Operation:  string(e.Operation),
			ActorID:    e.ActorID,
			OccurredAt: e.OccurredAt,
			Snapshot:   e.Snapshot,
		}
		if e.ActorID != nil {
			items[i].Actor = s.username(ctx, usernames, *e.ActorID)
		}
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// username resolves an actor once per request. Deleted users render empty.
func (s *Service) username(ctx context.Context, seen map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := seen[id]; ok {
		return name
	}
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		if !shared.IsNotFound(err) {
			s.logger.Warn("Failed to resolve audit actor", zap.String("user_id", id.String()), zap.Error(err))
		}
		seen[id] = ""
		return ""
	}
	seen[id] = user.Username
	return user.Username
}
