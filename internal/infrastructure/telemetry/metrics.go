package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MetricsConfig is the metrics part of the telemetry section.
// ExportInterval defaults to a minute.
type MetricsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ExportInterval    time.Duration
	ServiceName       string
	Insecure          bool
}

// MeterProvider owns the SDK provider so main can flush it on shutdown.
// A nil sdk means metrics are off and meters come from the global no-op.
type MeterProvider struct {
	sdk    *sdkmetric.MeterProvider
	logger *zap.Logger
}

// NewMeterProvider builds the provider from cfg. The OTLP exporter is
// attached when CollectorEndpoint is set; extra readers are attached as
// given. Enabled with neither leaves metrics off.
func NewMeterProvider(ctx context.Context, cfg MetricsConfig, logger *zap.Logger, readers ...sdkmetric.Reader) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled {
		logger.Info("Metrics disabled")
		return mp, nil
	}

	interval := cfg.ExportInterval
	if interval <= 0 {
		interval = time.Minute
	}
	if cfg.CollectorEndpoint != "" {
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
		if cfg.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		exporter, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("otlp metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	}
	if len(readers) == 0 {
		logger.Warn("Metrics enabled without a collector endpoint, leaving them off")
		return mp, nil
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("metrics resource: %w", err)
	}
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	mp.sdk = sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp.sdk)

	logger.Info("Metrics enabled",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", interval),
		zap.Int("readers", len(readers)),
	)
	return mp, nil
}

// Shutdown flushes pending metrics, giving up after ten seconds.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.sdk == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := mp.sdk.Shutdown(ctx); err != nil {
		mp.logger.Error("Metrics shutdown failed", zap.Error(err))
		return fmt.Errorf("shutdown meter provider: %w", err)
	}
	return nil
}

func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.sdk == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.sdk.Meter(name, opts...)
}

func (mp *MeterProvider) IsEnabled() bool { return mp.sdk != nil }

// Instruments creates instruments on one meter and keeps the first
// creation error, so a constructor checks Err once at the end.
type Instruments struct {
	meter metric.Meter
	err   error
}

func NewInstruments(meter metric.Meter) *Instruments {
	return &Instruments{meter: meter}
}

func (in *Instruments) Counter(name, description, unit string) metric.Int64Counter {
	c, err := in.meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	in.keep(name, err)
	return c
}

func (in *Instruments) UpDown(name, description, unit string) metric.Int64UpDownCounter {
	c, err := in.meter.Int64UpDownCounter(name, metric.WithDescription(description), metric.WithUnit(unit))
	in.keep(name, err)
	return c
}

// Histogram uses the SDK's default buckets when none are given.
func (in *Instruments) Histogram(name, description, unit string, buckets ...float64) metric.Float64Histogram {
	opts := []metric.Float64HistogramOption{metric.WithDescription(description), metric.WithUnit(unit)}
	if len(buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(buckets...))
	}
	h, err := in.meter.Float64Histogram(name, opts...)
	in.keep(name, err)
	return h
}

func (in *Instruments) Err() error { return in.err }

func (in *Instruments) keep(name string, err error) {
	if err != nil && in.err == nil {
		in.err = fmt.Errorf("create instrument %s: %w", name, err)
	}
}

// With is shorthand for metric.WithAttributes
func With(attrs ...attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(attrs...)
}

// Metric attribute keys.
var (
	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrHTTPRoute      = attribute.Key("http.route")

	AttrDBState = attribute.Key("db.pool.state")

	AttrEditMode = attribute.Key("edit_mode")
)

// Bucket boundaries. Back-office requests are dominated by the xlsx
// export and the dashboard queries, hence the long tail.
var (
	HTTPDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	DBDurationBuckets   = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
	// week totals, in currency units
	WeekIncomeBuckets = []float64{500, 1000, 2500, 5000, 10000, 25000, 50000}
)
