package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound variables in spans
	SlowQueryThresh time.Duration // default 200ms
	DBName          string
}

// DBTracingPlugin registers otelgorm plus slow query marking on a GORM handle.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh == 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBName == "" {
		cfg.DBName = "postgresql"
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// registerTimingCallbacks wraps every GORM operation with before and after callbacks
func registerTimingCallbacks(db *gorm.DB, prefix string, before, after func(*gorm.DB)) error {
	cb := db.Callback()
	steps := []struct {
		name     string
		register func() error
	}{
		{"create", func() error {
			if err := cb.Create().Before("gorm:create").Register(prefix+":before_create", before); err != nil {
				return err
			}
			return cb.Create().After("gorm:create").Register(prefix+":after_create", after)
		}},
		{"query", func() error {
			if err := cb.Query().Before("gorm:query").Register(prefix+":before_query", before); err != nil {
				return err
			}
			return cb.Query().After("gorm:query").Register(prefix+":after_query", after)
		}},
		{"update", func() error {
			if err := cb.Update().Before("gorm:update").Register(prefix+":before_update", before); err != nil {
				return err
			}
			return cb.Update().After("gorm:update").Register(prefix+":after_update", after)
		}},
		{"delete", func() error {
			if err := cb.Delete().Before("gorm:delete").Register(prefix+":before_delete", before); err != nil {
				return err
			}
			return cb.Delete().After("gorm:delete").Register(prefix+":after_delete", after)
		}},
		{"row", func() error {
			if err := cb.Row().Before("gorm:row").Register(prefix+":before_row", before); err != nil {
				return err
			}
			return cb.Row().After("gorm:row").Register(prefix+":after_row", after)
		}},
		{"raw", func() error {
			if err := cb.Raw().Before("gorm:raw").Register(prefix+":before_raw", before); err != nil {
				return err
			}
			return cb.Raw().After("gorm:raw").Register(prefix+":after_raw", after)
		}},
	}
	for _, step := range steps {
		if err := step.register(); err != nil {
			return fmt.Errorf("register %s callbacks for %s: %w", prefix, step.name, err)
		}
	}
	return nil
}

// Register installs otelgorm and the timing callbacks on db.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBName)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerTimingCallbacks(db, "otel_timing", markQueryStart, p.annotateSpan); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

func queryElapsed(db *gorm.DB) (time.Duration, bool) {
	if db.Statement.Context == nil {
		return 0, false
	}
	start, ok := db.Statement.Context.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

// annotateSpan adds row counts, errors and the slow flag to the current span
func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}
	span := trace.SpanFromContext(db.Statement.Context)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if elapsed, ok := queryElapsed(db); ok && elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
