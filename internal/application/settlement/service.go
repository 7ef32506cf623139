// Package settlement implements the weekly settlement use cases: opening a
// week from the rentals of its date range, editing and confirming line
// items, adding and removing pairings, closing, deleting and exporting.
package settlement

import (
	"context"
	"time"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const serviceName = "SettlementService"

// Metrics records settlement business counters
type Metrics interface {
	WeekCreated(ctx context.Context)
	WeekClosed(ctx context.Context, totalIncome decimal.Decimal)
	ItemsEdited(ctx context.Context, mode string, n int)
}

type noopMetrics struct{}

func (noopMetrics) WeekCreated(context.Context)                 {}
func (noopMetrics) WeekClosed(context.Context, decimal.Decimal) {}
func (noopMetrics) ItemsEdited(context.Context, string, int)    {}

// Config holds the settlement knobs read from configuration
type Config struct {
	PaymentWeekday    time.Weekday
	DefaultDaysWorked int
}

// Service handles settlement week business operations
type Service struct {
	store   uow.Store
	cfg     Config
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// Option customises a Service
type Option func(*Service)

// WithMetrics records business counters on m
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new settlement Service
func NewService(store uow.Store, cfg Config, logger *zap.Logger, opts ...Option) *Service {
	if cfg.DefaultDaysWorked < 1 {
		cfg.DefaultDaysWorked = 7
	}
	// Sunday is not a valid deadline; the zero weekday means unset
	if cfg.PaymentWeekday == time.Sunday {
		cfg.PaymentWeekday = time.Thursday
	}
	s := &Service{
		store:   store,
		cfg:     cfg,
		metrics: noopMetrics{},
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateWeek opens a settlement week and fills it with the rentals that
// overlap its date range
func (s *Service) CreateWeek(ctx context.Context, actor identity.Actor, req CreateWeekRequest) (*CreateWeekResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "CreateWeek", telemetry.SpanAttrUserID, actor.UserID.String())
	defer span.End()

	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var week *settlement.Week
	var skipped []SkippedRental
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		exists, err := repos.Weeks().ExistsForDates(ctx, period.Start(), period.End())
		if err != nil {
			return err
		}
		if exists {
			return settlement.ErrWeekExists
		}

		profit, err := repos.ProfitPercentages().FindByID(ctx, req.ProfitPercentageID)
		if err != nil {
			return err
		}

		week, err = settlement.NewWeek(period, profit.ID, req.Notes, actor.UserID)
		if err != nil {
			return err
		}
		week.PaymentWeekday = s.cfg.PaymentWeekday

		pairings, orphans, err := s.pairingsFor(ctx, repos, period)
		if err != nil {
			return err
		}
		skipped = orphans
		for _, p := range week.Populate(pairings, profit.Percentage, s.now(), actor.UserID) {
			skipped = append(skipped, SkippedRental{
				RentalID:  *p.RentalID,
				VehicleID: p.VehicleID,
				TenantID:  p.TenantID,
				Reason:    SkipAlreadyInWeek,
			})
		}

		if err := repos.Weeks().Save(ctx, week); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntitySettlementWeek, week.ID, audit.OperationCreate, actor, week)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrWeekID, week.ID.String(), telemetry.SpanAttrItemCount, len(week.Items))
	s.metrics.WeekCreated(ctx)
	s.logger.Info("Settlement week created",
		zap.String("week_id", week.ID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.Int("items", len(week.Items)),
		zap.Int("skipped", len(skipped)),
	)
	if skipped == nil {
		skipped = []SkippedRental{}
	}
	return &CreateWeekResponse{WeekResponse: ToWeekResponse(week), Skipped: skipped}, nil
}

// pairingsFor turns the rentals overlapping period into pairings, taking
// price and owner from each rental's vehicle. Rentals whose vehicle has no
// owner are returned as skipped.
func (s *Service) pairingsFor(ctx context.Context, repos uow.Repositories, period valueobject.DateRange) ([]settlement.Pairing, []SkippedRental, error) {
	rentals, err := repos.Rentals().FindOverlapping(ctx, period.Start(), period.End())
	if err != nil {
		return nil, nil, err
	}
	if len(rentals) == 0 {
		return nil, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rentals))
	for _, r := range rentals {
		ids = append(ids, r.VehicleID)
	}
	vehicles, err := repos.Vehicles().FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]int, len(vehicles))
	for i := range vehicles {
		byID[vehicles[i].ID] = i
	}

	pairings := make([]settlement.Pairing, 0, len(rentals))
	var orphans []SkippedRental
	for i := range rentals {
		r := &rentals[i]
		idx, ok := byID[r.VehicleID]
		if !ok || vehicles[idx].OwnerID == uuid.Nil {
			s.logger.Warn("Rental skipped: vehicle without owner",
				zap.String("rental_id", r.ID.String()),
				zap.String("vehicle_id", r.VehicleID.String()),
			)
			orphans = append(orphans, SkippedRental{
				RentalID:  r.ID,
				VehicleID: r.VehicleID,
				TenantID:  r.TenantID,
				Reason:    SkipVehicleWithoutOwner,
			})
			continue
		}
		rentalID := r.ID
		pairings = append(pairings, settlement.Pairing{
			RentalID:    &rentalID,
			VehicleID:   r.VehicleID,
			TenantID:    r.TenantID,
			OwnerID:     vehicles[idx].OwnerID,
			WeeklyPrice: vehicles[idx].WeeklyPrice,
		})
	}
	return pairings, orphans, nil
}

// BatchEdit saves the edits of several line items of a week. Items that do
// not belong to the week are skipped.
func (s *Service) BatchEdit(ctx context.Context, actor identity.Actor, weekID uuid.UUID, req BatchEditRequest) (*BatchEditResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "BatchEdit",
		telemetry.SpanAttrWeekID, weekID.String(), telemetry.SpanAttrItemCount, len(req.Items))
	defer span.End()

	edits := make([]settlement.LineItemEdit, 0, len(req.Items))
	for _, it := range req.Items {
		confirmed, err := parseOptionalDate("confirmation_date", it.ConfirmationDate)
		if err != nil {
			return nil, err
		}
		edits = append(edits, settlement.LineItemEdit{
			ItemID:               it.ID,
			WeeklyPrice:          it.WeeklyPrice,
			DaysWorked:           it.DaysWorked,
			MechanicalInvestment: it.MechanicalInvestment,
			InvestmentConcept:    it.InvestmentConcept,
			DiscountAmount:       it.DiscountAmount,
			DiscountConcept:      it.DiscountConcept,
			DebtAmount:           it.DebtAmount,
			BankID:               it.BankID,
			ConfirmationDate:     confirmed,
			Confirmed:            it.Confirmed,
			Notes:                it.Notes,
		})
	}

	var week *settlement.Week
	var updated int
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		week, err = repos.Weeks().FindByID(ctx, weekID)
		if err != nil {
			return err
		}
		banks := make([]*uuid.UUID, 0, len(edits))
		for _, e := range edits {
			banks = append(banks, e.BankID)
		}
		if err := ensureBanks(ctx, repos, banks...); err != nil {
			return err
		}
		updated, err = week.ApplyEdits(edits, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Weeks().Save(ctx, week); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntitySettlementWeek, week.ID, audit.OperationUpdate, actor, week)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.ItemsEdited(ctx, "batch", updated)
	s.logger.Info("Settlement items saved",
		zap.String("week_id", weekID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.Int("updated", updated),
	)
	return &BatchEditResponse{Updated: updated, Week: ToWeekResponse(week)}, nil
}

// EditItem changes the vehicle, tenant and amounts of one line item of an
// open week. The owner follows the new vehicle.
func (s *Service) EditItem(ctx context.Context, actor identity.Actor, itemID uuid.UUID, req FullEditRequest) (*LineItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "EditItem", telemetry.SpanAttrItemID, itemID.String())
	defer span.End()

	confirmed, err := parseOptionalDate("confirmation_date", req.ConfirmationDate)
	if err != nil {
		return nil, err
	}

	var item *settlement.LineItem
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		week, err := repos.Weeks().FindByItemID(ctx, itemID)
		if err != nil {
			return err
		}
		vehicle, err := repos.Vehicles().FindByID(ctx, req.VehicleID)
		if err != nil {
			return err
		}
		if _, err := repos.Tenants().FindByID(ctx, req.TenantID); err != nil {
			return err
		}
		if err := ensureBanks(ctx, repos, req.BankID); err != nil {
			return err
		}

		price := vehicle.WeeklyPrice
		if req.WeeklyPrice != nil {
			price = *req.WeeklyPrice
		}
		days := s.cfg.DefaultDaysWorked
		if req.DaysWorked != nil {
			days = *req.DaysWorked
		}

		item, err = week.EditItem(itemID, settlement.FullEdit{
			VehicleID:            vehicle.ID,
			TenantID:             req.TenantID,
			OwnerID:              vehicle.OwnerID,
			WeeklyPrice:          price,
			DaysWorked:           days,
			MechanicalInvestment: req.MechanicalInvestment,
			InvestmentConcept:    req.InvestmentConcept,
			DiscountAmount:       req.DiscountAmount,
			DiscountConcept:      req.DiscountConcept,
			DebtAmount:           req.DebtAmount,
			BankID:               req.BankID,
			ConfirmationDate:     confirmed,
			Confirmed:            req.Confirmed,
			Notes:                req.Notes,
		}, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Weeks().Save(ctx, week); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntitySettlementItem, item.ID, audit.OperationUpdate, actor, item)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.ItemsEdited(ctx, "full", 1)
	s.logger.Info("Settlement item edited",
		zap.String("item_id", itemID.String()),
		zap.String("user_id", actor.UserID.String()),
	)
	resp := ToLineItemResponse(item)
	return &resp, nil
}

// AddRental creates a rental for the week's range and adds it as a line item
func (s *Service) AddRental(ctx context.Context, actor identity.Actor, weekID uuid.UUID, req AddRentalRequest) (*LineItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "AddRental",
		telemetry.SpanAttrWeekID, weekID.String(),
		telemetry.SpanAttrVehicleID, req.VehicleID.String(),
		telemetry.SpanAttrTenantID, req.TenantID.String(),
	)
	defer span.End()

	days := s.cfg.DefaultDaysWorked
	if req.DaysWorked != nil {
		days = *req.DaysWorked
	}

	var item *settlement.LineItem
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		week, err := repos.Weeks().FindByID(ctx, weekID)
		if err != nil {
			return err
		}
		if week.HasVehicle(req.VehicleID, uuid.Nil) {
			return settlement.ErrVehicleAlreadyInWeek
		}
		if week.HasTenant(req.TenantID, uuid.Nil) {
			return settlement.ErrTenantAlreadyInWeek
		}

		vehicle, err := repos.Vehicles().FindByID(ctx, req.VehicleID)
		if err != nil {
			return err
		}
		if vehicle.OwnerID == uuid.Nil {
			return settlement.ErrVehicleWithoutOwner
		}
		if _, err := repos.Tenants().FindByID(ctx, req.TenantID); err != nil {
			return err
		}
		status, err := rentalStatus(ctx, repos)
		if err != nil {
			return err
		}
		profit, err := repos.ProfitPercentages().FindByID(ctx, week.ProfitPercentageID)
		if err != nil {
			return err
		}

		r, err := rental.NewWeekRental(vehicle.ID, req.TenantID, status.ID, week.Period(), vehicle.WeeklyPrice, days, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Rentals().Save(ctx, r); err != nil {
			return err
		}

		rentalID := r.ID
		item, err = week.AddRental(settlement.Pairing{
			RentalID:    &rentalID,
			VehicleID:   vehicle.ID,
			TenantID:    req.TenantID,
			OwnerID:     vehicle.OwnerID,
			WeeklyPrice: vehicle.WeeklyPrice,
		}, days, profit.Percentage, s.now(), actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Weeks().Save(ctx, week); err != nil {
			return err
		}
		if err := uow.Audit(ctx, repos, audit.EntityRental, r.ID, audit.OperationCreate, actor, r); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntitySettlementItem, item.ID, audit.OperationCreate, actor, item)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Rental added to settlement week",
		zap.String("week_id", weekID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("user_id", actor.UserID.String()),
	)
	resp := ToLineItemResponse(item)
	return &resp, nil
}

// rentalStatus picks the "activo" rental status, falling back to the first
// configured one
func rentalStatus(ctx context.Context, repos uow.Repositories) (*catalog.LookupEntry, error) {
	status, err := repos.Lookups().FindByName(ctx, catalog.KindRentalStatus, catalog.DefaultRentalStatus)
	if err == nil {
		return status, nil
	}
	if !shared.IsNotFound(err) {
		return nil, err
	}
	status, err = repos.Lookups().FindFirst(ctx, catalog.KindRentalStatus)
	if shared.IsNotFound(err) {
		return nil, settlement.ErrNoRentalStatus
	}
	return status, err
}

// RemoveItem deletes a line item from an open week
func (s *Service) RemoveItem(ctx context.Context, actor identity.Actor, itemID uuid.UUID) (*WeekResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "RemoveItem", telemetry.SpanAttrItemID, itemID.String())
	defer span.End()

	var week *settlement.Week
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		week, err = repos.Weeks().FindByItemID(ctx, itemID)
		if err != nil {
			return err
		}
		removed, err := week.RemoveItem(itemID, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Weeks().Save(ctx, week); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntitySettlementItem, removed.ID, audit.OperationDelete, actor, removed)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Settlement item removed",
		zap.String("week_id", week.ID.String()),
		zap.String("item_id", itemID.String()),
		zap.String("user_id", actor.UserID.String()),
	)
	resp := ToWeekResponse(week)
	return &resp, nil
}

// CloseWeek closes an open week
func (s *Service) CloseWeek(ctx context.Context, actor identity.Actor, weekID uuid.UUID) (*WeekResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "CloseWeek", telemetry.SpanAttrWeekID, weekID.String())
	defer span.End()

	var week *settlement.Week
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		week, err = repos.Weeks().FindByID(ctx, weekID)
		if err != nil {
			return err
		}
		if err := week.Close(actor.UserID); err != nil {
			return err
		}
		if err := repos.Weeks().Save(ctx, week); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntitySettlementWeek, week.ID, audit.OperationUpdate, actor, week)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.WeekClosed(ctx, week.TotalIncome)
	s.logger.Info("Settlement week closed",
		zap.String("week_id", weekID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.String("total_income", week.TotalIncome.StringFixed(2)),
	)
	resp := ToWeekResponse(week)
	return &resp, nil
}

// DeleteWeek deletes a week. A week with line items can only be deleted by
// an administrator.
func (s *Service) DeleteWeek(ctx context.Context, actor identity.Actor, weekID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "DeleteWeek", telemetry.SpanAttrWeekID, weekID.String())
	defer span.End()

	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		week, err := repos.Weeks().FindByID(ctx, weekID)
		if err != nil {
			return err
		}
		if err := week.CheckDeletable(actor.IsAdmin()); err != nil {
			return err
		}
		if err := repos.Weeks().Delete(ctx, week.ID); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntitySettlementWeek, week.ID, audit.OperationDelete, actor, week)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("Settlement week deleted",
		zap.String("week_id", weekID.String()),
		zap.String("user_id", actor.UserID.String()),
	)
	return nil
}

func parsePeriod(start, end string) (valueobject.DateRange, error) {
	s, err := parseDate("start_date", start)
	if err != nil {
		return valueobject.DateRange{}, err
	}
	e, err := parseDate("end_date", end)
	if err != nil {
		return valueobject.DateRange{}, err
	}
	period, err := valueobject.NewDateRange(s, e)
	if err != nil {
		return valueobject.DateRange{}, settlement.ErrInvalidDateRange
	}
	return period, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := valueobject.ParseDate(value)
	if err != nil {
		return time.Time{}, shared.WrapDomainError("INVALID_INPUT", field+" must be a YYYY-MM-DD date", err)
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	t, err := valueobject.ParseOptionalDate(value)
	if err != nil {
		return nil, shared.WrapDomainError("INVALID_INPUT", field+" must be a YYYY-MM-DD date", err)
	}
	return t, nil
}

// ensureBanks checks that every non-nil bank exists
func ensureBanks(ctx context.Context, repos uow.Repositories, ids ...*uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		if _, err := repos.Banks().FindByID(ctx, *id); err != nil {
			if shared.IsNotFound(err) {
				return settlement.ErrUnknownBank
			}
			return err
		}
	}
	return nil
}
