package settlement

import (
	"context"
	"sort"

	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// ListWeeks lists weeks newest first along with the list counters
func (s *Service) ListWeeks(ctx context.Context, req ListWeeksRequest) (*WeekListResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "ListWeeks")
	defer span.End()

	filter := settlement.WeekFilter{Page: req.Page, PageSize: req.PageSize}
	if req.Status != "" {
		status := settlement.WeekStatus(req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown week status")
		}
		filter.Status = &status
	}
	if req.Year > 0 {
		year := req.Year
		filter.Year = &year
	}

	weeks, total, err := s.store.Weeks().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	monthStart, monthEnd := valueobject.MonthBounds(s.now())
	stats, err := s.store.Weeks().Stats(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	items := make([]WeekResponse, len(weeks))
	for i := range weeks {
		items[i] = ToWeekResponse(&weeks[i])
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return &WeekListResponse{
		Weeks: shared.NewPaginated(items, total, page, filter.Limit()),
		Stats: WeekStatsResponse{
			TotalWeeks:         stats.TotalWeeks,
			OpenWeeks:          stats.OpenWeeks,
			UnconfirmedItems:   stats.UnconfirmedItems,
			CurrentMonthIncome: stats.CurrentMonthIncome,
		},
	}, nil
}

// GetWeek returns a week with its items joined to owner, vehicle, tenant
// and bank names
func (s *Service) GetWeek(ctx context.Context, weekID uuid.UUID) (*WeekDetailResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "GetWeek", telemetry.SpanAttrWeekID, weekID.String())
	defer span.End()

	week, err := s.store.Weeks().FindByID(ctx, weekID)
	if err != nil {
		return nil, err
	}
	details, err := s.store.WeekDetails().ItemDetails(ctx, weekID)
	if err != nil {
		return nil, err
	}

	resp := &WeekDetailResponse{
		WeekResponse: ToWeekResponse(week),
		DaysWorked:   week.DaysWorked(),
		Unconfirmed:  week.UnconfirmedCount(),
		Items:        make([]LineItemDetailResponse, len(details)),
	}
	for i := range details {
		resp.Items[i] = ToLineItemDetailResponse(&details[i])
	}

	profit, err := s.store.ProfitPercentages().FindByID(ctx, week.ProfitPercentageID)
	switch {
	case err == nil:
		p := ToProfitPercentageResponse(profit)
		resp.ProfitPercentage = &p
	case !shared.IsNotFound(err):
		return nil, err
	}
	return resp, nil
}

// AvailableRentals lists the rentals overlapping the week that are not on
// it yet, sorted by plate
func (s *Service) AvailableRentals(ctx context.Context, weekID uuid.UUID) ([]AvailableRentalResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "AvailableRentals", telemetry.SpanAttrWeekID, weekID.String())
	defer span.End()

	week, err := s.store.Weeks().FindByID(ctx, weekID)
	if err != nil {
		return nil, err
	}
	rentals, err := s.store.Rentals().FindOverlapping(ctx, week.StartDate, week.EndDate)
	if err != nil {
		return nil, err
	}

	onWeek := make(map[uuid.UUID]struct{}, len(week.Items))
	for _, it := range week.Items {
		if it.RentalID != nil {
			onWeek[*it.RentalID] = struct{}{}
		}
	}

	result := make([]AvailableRentalResponse, 0, len(rentals))
	for i := range rentals {
		r := &rentals[i]
		if _, ok := onWeek[r.ID]; ok {
			continue
		}
		vehicle, err := s.store.Vehicles().FindByID(ctx, r.VehicleID)
		if err != nil {
			return nil, err
		}
		tenant, err := s.store.Tenants().FindByID(ctx, r.TenantID)
		if err != nil {
			return nil, err
		}
		result = append(result, AvailableRentalResponse{
			RentalID:    r.ID,
			VehicleID:   vehicle.ID,
			Plate:       vehicle.Plate,
			TenantID:    tenant.ID,
			TenantName:  tenant.FullName,
			StartDate:   r.StartDate.Format(valueobject.DateLayout),
			EndDate:     r.EndDate.Format(valueobject.DateLayout),
			WeeklyPrice: vehicle.WeeklyPrice,
		})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Plate < result[j].Plate })
	return result, nil
}

// Available lists the vehicles (with an owner) and tenants not yet on the week
func (s *Service) Available(ctx context.Context, weekID uuid.UUID) (*AvailableResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "Available", telemetry.SpanAttrWeekID, weekID.String())
	defer span.End()

	week, err := s.store.Weeks().FindByID(ctx, weekID)
	if err != nil {
		return nil, err
	}
	vehicleIDs := make([]uuid.UUID, 0, len(week.Items))
	tenantIDs := make([]uuid.UUID, 0, len(week.Items))
	for _, it := range week.Items {
		vehicleIDs = append(vehicleIDs, it.VehicleID)
		tenantIDs = append(tenantIDs, it.TenantID)
	}

	vehicles, err := s.store.Vehicles().FindWithOwnerExcluding(ctx, vehicleIDs)
	if err != nil {
		return nil, err
	}
	tenants, err := s.store.Tenants().FindExcluding(ctx, tenantIDs)
	if err != nil {
		return nil, err
	}

	resp := &AvailableResponse{
		Vehicles: make([]VehicleOption, len(vehicles)),
		Tenants:  make([]TenantOption, len(tenants)),
	}
	for i, v := range vehicles {
		resp.Vehicles[i] = VehicleOption{ID: v.ID, Plate: v.Plate, OwnerID: v.OwnerID, WeeklyPrice: v.WeeklyPrice}
	}
	for i, t := range tenants {
		resp.Tenants[i] = TenantOption{ID: t.ID, FullName: t.FullName, Phone: t.Phone}
	}
	return resp, nil
}

// Banks lists the banks offered when confirming a payout
func (s *Service) Banks(ctx context.Context) ([]BankOption, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 100
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	banks, _, err := s.store.Banks().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]BankOption, len(banks))
	for i, b := range banks {
		result[i] = BankOption{ID: b.ID, Name: b.Name, AccountNumber: b.AccountNumber}
	}
	return result, nil
}
