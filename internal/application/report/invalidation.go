package report

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// DashboardInvalidator drops the cached dashboard whenever a rental,
// payment or debt changes, so counters are fresh on the next read
type DashboardInvalidator struct {
	service *Service
}

// NewDashboardInvalidator creates the handler for s
func NewDashboardInvalidator(s *Service) *DashboardInvalidator {
	return &DashboardInvalidator{service: s}
}

// EventTypes implements shared.EventHandler
func (h *DashboardInvalidator) EventTypes() []string {
	return []string{rental.EventRentalChanged, rental.EventPaymentChanged, rental.EventDebtChanged}
}

// Handle implements shared.EventHandler
func (h *DashboardInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.service.InvalidateDashboard(ctx); err != nil {
		return err
	}
	h.service.logger.Debug("Dashboard cache invalidated",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()))
	return nil
}

var _ shared.EventHandler = (*DashboardInvalidator)(nil)
