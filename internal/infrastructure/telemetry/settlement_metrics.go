package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// SettlementMetrics counts weekly settlement activity.
type SettlementMetrics struct {
	weeksCreated metric.Int64Counter
	weeksClosed  metric.Int64Counter
	itemsEdited  metric.Int64Counter
	weekIncome   metric.Float64Histogram
}

// NewSettlementMetrics creates the settlement instruments on meter.
func NewSettlementMetrics(meter metric.Meter) (*SettlementMetrics, error) {
	in := NewInstruments(meter)
	m := &SettlementMetrics{
		weeksCreated: in.Counter("settlement_weeks_created_total", "Settlement weeks created", "{week}"),
		weeksClosed:  in.Counter("settlement_weeks_closed_total", "Settlement weeks closed", "{week}"),
		itemsEdited:  in.Counter("settlement_items_edited_total", "Line items changed by batch or full edits", "{item}"),
		weekIncome:   in.Histogram("settlement_week_income", "Total income of a week when it is closed", "{currency}", WeekIncomeBuckets...),
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *SettlementMetrics) WeekCreated(ctx context.Context) {
	m.weeksCreated.Add(ctx, 1)
}

// WeekClosed records a closed week and its total income
func (m *SettlementMetrics) WeekClosed(ctx context.Context, totalIncome decimal.Decimal) {
	m.weeksClosed.Add(ctx, 1)
	m.weekIncome.Record(ctx, totalIncome.InexactFloat64())
}

// ItemsEdited records n line items changed in mode "batch" or "full"
func (m *SettlementMetrics) ItemsEdited(ctx context.Context, mode string, n int) {
	m.itemsEdited.Add(ctx, int64(n), With(AttrEditMode.String(mode)))
}
