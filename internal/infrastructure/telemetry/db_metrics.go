package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

// DBMetrics records query counts, latency and connection pool state.
type DBMetrics struct {
	queryTotal     metric.Int64Counter
	queryDuration  metric.Float64Histogram
	slowQueryTotal metric.Int64Counter
	slowThreshold  time.Duration
}

// NewDBMetrics creates the query instruments and an observable gauge that
// reads sqlDB.Stats on every collection.
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, slowThreshold time.Duration) (*DBMetrics, error) {
	if slowThreshold == 0 {
		slowThreshold = 200 * time.Millisecond
	}

	in := NewInstruments(meter)
	m := &DBMetrics{
		queryTotal:     in.Counter("db_query_total", "Database queries by table", "{query}"),
		queryDuration:  in.Histogram("db_query_duration_seconds", "Database query latency", "s", DBDurationBuckets...),
		slowQueryTotal: in.Counter("db_slow_query_total", "Queries slower than the configured threshold", "{query}"),
		slowThreshold:  slowThreshold,
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	if sqlDB == nil {
		return m, nil
	}

	pool, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(pool, int64(stats.InUse), With(AttrDBState.String("in_use")))
		o.ObserveInt64(pool, int64(stats.Idle), With(AttrDBState.String("idle")))
		o.ObserveInt64(pool, int64(stats.MaxOpenConnections), With(AttrDBState.String("max")))
		return nil
	}, pool)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Register installs the timing callbacks on db.
func (m *DBMetrics) Register(db *gorm.DB) error {
	return registerTimingCallbacks(db, "otel_metrics", markQueryStart, m.record)
}

func (m *DBMetrics) record(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("db.table", db.Statement.Table),
		attribute.Bool("db.error", db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound)),
	}
	opt := With(attrs...)
	m.queryTotal.Add(ctx, 1, opt)

	elapsed, ok := queryElapsed(db)
	if !ok {
		return
	}
	m.queryDuration.Record(ctx, elapsed.Seconds(), opt)
	if elapsed > m.slowThreshold {
		m.slowQueryTotal.Add(ctx, 1, opt)
	}
}
