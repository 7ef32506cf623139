package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type trackedRow struct {
	ID    uint
	Plate string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&trackedRow{}))
	return db
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := openSQLite(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, p.Register(db))
	assert.Nil(t, db.Callback().Query().Get("otel_timing:after_query"))
}

func TestDBTracingPlugin_EmitsSpans(t *testing.T) {
	recorder := withRecorder(t)
	db := openSQLite(t)

	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zaptest.NewLogger(t))
	require.NoError(t, p.Register(db))
	assert.NotNil(t, db.Callback().Query().Get("otel_timing:after_query"))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&trackedRow{Plate: "AB123CD"}).Error)
	var rows []trackedRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)

	assert.NotEmpty(t, recorder.Ended())
}

func TestDBTracingPlugin_AnnotateSpan(t *testing.T) {
	recorder := withRecorder(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Nanosecond}, zaptest.NewLogger(t))

	ctx, span := otel.Tracer("test").Start(context.Background(), "query")
	stmt := &gorm.DB{
		Statement: &gorm.Statement{Context: ctx, Table: "settlement_weeks", DB: &gorm.DB{RowsAffected: 2}},
		Error:     errors.New("deadlock detected"),
	}
	markQueryStart(stmt)
	time.Sleep(time.Millisecond)
	p.annotateSpan(stmt)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	attrs := attrMap(got.Attributes())
	assert.Equal(t, "settlement_weeks", attrs["db.sql.table"])
	assert.Equal(t, "2", attrs["db.rows_affected"])
	assert.Equal(t, "true", attrs["db.slow_query"])
	assert.Equal(t, codes.Error, got.Status().Code)
}

func TestDBTracingPlugin_RecordNotFoundIsNotAnError(t *testing.T) {
	recorder := withRecorder(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zaptest.NewLogger(t))

	ctx, span := otel.Tracer("test").Start(context.Background(), "query")
	p.annotateSpan(&gorm.DB{Statement: &gorm.Statement{Context: ctx}, Error: gorm.ErrRecordNotFound})
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
}

func TestDBMetrics(t *testing.T) {
	reader, provider := newTestMeter(t)
	db := openSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	m, err := NewDBMetrics(provider.Meter("test"), sqlDB, time.Hour)
	require.NoError(t, err)
	require.NoError(t, m.Register(db))

	require.NoError(t, db.Create(&trackedRow{Plate: "XY987ZW"}).Error)
	var rows []trackedRow
	require.NoError(t, db.Find(&rows).Error)

	got := collect(t, reader)
	assert.GreaterOrEqual(t, sumValue(t, got["db_query_total"]), int64(2))
	assert.Contains(t, got, "db_query_duration_seconds")
	assert.Contains(t, got, "db_pool_connections")
	_, slow := got["db_slow_query_total"]
	assert.False(t, slow)
}
