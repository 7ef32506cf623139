package middleware

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// httpMetrics holds the HTTP server instruments
type httpMetrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	responseSize    metric.Float64Histogram
	activeRequests  metric.Int64UpDownCounter
}

// xlsx exports are the largest bodies, a few hundred KB
var responseSizeBuckets = []float64{512, 4096, 16384, 65536, 262144, 1048576, 4194304}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	in := telemetry.NewInstruments(meter)
	m := &httpMetrics{
		requestTotal:    in.Counter("http_server_request_total", "HTTP requests by route and status", "{request}"),
		requestDuration: in.Histogram("http_server_request_duration_seconds", "HTTP request latency", "s", telemetry.HTTPDurationBuckets...),
		responseSize:    in.Histogram("http_server_response_size_bytes", "HTTP response body size", "By", responseSizeBuckets...),
		activeRequests:  in.UpDown("http_server_active_requests", "HTTP requests in flight", "{request}"),
	}
	return m, in.Err()
}

// HTTPMetrics returns a middleware recording request count, latency,
// response size and in-flight requests. A nil or disabled provider yields a
// pass-through middleware.
func HTTPMetrics(mp *telemetry.MeterProvider, logger *zap.Logger) gin.HandlerFunc {
	if mp == nil || !mp.IsEnabled() {
		return passThrough
	}
	return HTTPMetricsWithMeter(mp.Meter("http.server"), logger)
}

// HTTPMetricsWithMeter returns the metrics middleware on an existing meter
func HTTPMetricsWithMeter(meter metric.Meter, logger *zap.Logger) gin.HandlerFunc {
	m, err := newHTTPMetrics(meter)
	if err != nil {
		logger.Warn("HTTP metrics disabled", zap.Error(err))
		return passThrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		m.activeRequests.Add(ctx, 1)
		c.Next()
		m.activeRequests.Add(ctx, -1)

		method := telemetry.AttrHTTPMethod.String(c.Request.Method)
		route := telemetry.AttrHTTPRoute.String(getRoutePattern(c))
		m.requestTotal.Add(ctx, 1, telemetry.With(method, route, telemetry.AttrHTTPStatusCode.Int(c.Writer.Status())))
		m.requestDuration.Record(ctx, time.Since(start).Seconds(), telemetry.With(method, route))
		if size := c.Writer.Size(); size > 0 {
			m.responseSize.Record(ctx, float64(size), telemetry.With(method, route))
		}
	}
}

// getRoutePattern returns the matched route ("/api/v1/vehicles/:id") rather
// than the raw path, keeping label cardinality bounded.
func getRoutePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}

func passThrough(c *gin.Context) {
	c.Next()
}
