package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WeekRepository persists settlement weeks together with their line items
type WeekRepository interface {
	// FindByID loads the week and its items
	FindByID(ctx context.Context, id uuid.UUID) (*Week, error)

	// FindByItemID loads the week that owns the given line item
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*Week, error)

	// FindAll returns weeks newest first, without items
	FindAll(ctx context.Context, filter WeekFilter) ([]Week, int64, error)

	// ExistsForDates reports whether a week with exactly these bounds exists
	ExistsForDates(ctx context.Context, start, end time.Time) (bool, error)

	// Save upserts the week and synchronises its items: items no longer on
	// the aggregate are deleted, the rest are saved.
	Save(ctx context.Context, week *Week) error

	// Delete removes the week and all its items
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByProfitPercentage counts weeks that reference a profit percentage
	CountByProfitPercentage(ctx context.Context, profitID uuid.UUID) (int64, error)

	// Stats returns the dashboard counters for the week list
	Stats(ctx context.Context, monthStart, monthEnd time.Time) (WeekStats, error)
}

// ProfitPercentageRepository persists profit percentages
type ProfitPercentageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProfitPercentage, error)

	// FindAll orders default first, then active, then ascending percentage
	FindAll(ctx context.Context) ([]ProfitPercentage, error)

	// FindDefault returns the default percentage, ErrNotFound if none
	FindDefault(ctx context.Context) (*ProfitPercentage, error)

	Save(ctx context.Context, p *ProfitPercentage) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearDefaultExcept unsets the default flag on every row except id
	ClearDefaultExcept(ctx context.Context, id uuid.UUID) error
}

// WeekFilter contains filter options for listing weeks
type WeekFilter struct {
	Status   *WeekStatus
	Year     *int
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page
func (f WeekFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the page size, 20 when unset
func (f WeekFilter) Limit() int {
	if f.PageSize < 1 || f.PageSize > 100 {
		return 20
	}
	return f.PageSize
}

// WeekStats are the counters shown above the week list
type WeekStats struct {
	TotalWeeks         int64
	OpenWeeks          int64
	UnconfirmedItems   int64
	CurrentMonthIncome decimal.Decimal
}

// ItemDetail is a line item joined with the names shown on the week
// detail screen and in the spreadsheet export
type ItemDetail struct {
	LineItem
	OwnerName   string
	Plate       string
	BrandModel  string
	TenantName  string
	TenantPhone string
	BankName    string
}

// DetailRepository reads the joined week detail
type DetailRepository interface {
	// ItemDetails lists the items of a week ordered by owner name and plate
	ItemDetails(ctx context.Context, weekID uuid.UUID) ([]ItemDetail, error)
}
