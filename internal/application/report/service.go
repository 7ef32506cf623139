// Package report builds the read-only views of the back-office: the
// dashboard counters, the yearly income series and owner/tenant summaries.
package report

import (
	"context"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/report"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// DashboardCacheKey is where the dashboard is cached
const DashboardCacheKey = "report:dashboard"

// Service provides report queries
type Service struct {
	repo   report.ReportRepository
	cache  shared.Cache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the clock that selects "today" and the current month
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a report service. A nil cache or a zero ttl disables
// dashboard caching.
func NewService(repo report.ReportRepository, cache shared.Cache, ttl time.Duration, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{repo: repo, cache: cache, ttl: ttl, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard returns the landing page counters, served from cache while fresh.
// Cache failures are logged and the counters are computed directly.
func (s *Service) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	if s.cachingEnabled() {
		var cached report.Dashboard
		hit, err := s.cache.Get(ctx, DashboardCacheKey, &cached)
		if err != nil {
			s.logger.Warn("Dashboard cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	now := s.now()
	today := valueobject.TruncateDay(now)
	monthStart, monthEnd := valueobject.MonthBounds(today)
	dash, err := s.repo.Dashboard(ctx, today, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	if s.cachingEnabled() {
		if err := s.cache.Set(ctx, DashboardCacheKey, dash, s.ttl); err != nil {
			s.logger.Warn("Dashboard cache write failed", zap.Error(err))
		}
	}
	return dash, nil
}

// InvalidateDashboard drops the cached dashboard
func (s *Service) InvalidateDashboard(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, DashboardCacheKey)
}

// IncomeByMonth returns twelve monthly totals of payment net amounts for
// year; months without payments are zero. A zero year means the current one.
func (s *Service) IncomeByMonth(ctx context.Context, year int) ([]report.MonthlyIncome, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < 2000 || year > 2100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Year is out of range")
	}
	series, err := s.repo.IncomeByMonth(ctx, year)
	if err != nil {
		return nil, err
	}
	return report.FillMonths(series), nil
}

// OwnerSummaries lists owners with their vehicle counts
func (s *Service) OwnerSummaries(ctx context.Context) ([]report.OwnerSummary, error) {
	return s.repo.OwnerSummaries(ctx)
}

// TenantSummaries lists tenants with rental counts and pending debt
func (s *Service) TenantSummaries(ctx context.Context) ([]report.TenantSummary, error) {
	return s.repo.TenantSummaries(ctx)
}

func (s *Service) cachingEnabled() bool {
	return s.cache != nil && s.ttl > 0
}
