package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexrentacar/backoffice/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func TestHTTPMetrics_RouteFallbackAndResponseSize(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	r := gin.New()
	r.Use(HTTPMetricsWithMeter(provider.Meter("test"), zaptest.NewLogger(t)))
	r.GET("/vehicles/:id", func(c *gin.Context) { c.String(http.StatusOK, "AB123CD") })

	for _, path := range []string{"/vehicles/1", "/vehicles/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	byName := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}

	total, ok := byName["http_server_request_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range total.DataPoints {
		route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute)
		counts[route.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{"/vehicles/:id": 2, "unknown": 1}, counts)

	active, ok := byName["http_server_active_requests"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range active.DataPoints {
		assert.Zero(t, dp.Value)
	}

	size, ok := byName["http_server_response_size_bytes"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var found bool
	for _, dp := range size.DataPoints {
		route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute)
		if route.AsString() != "/vehicles/:id" {
			continue
		}
		found = true
		assert.Equal(t, uint64(2), dp.Count)
		assert.InDelta(t, 14.0, dp.Sum, 0.001)
		method, _ := dp.Attributes.Value(attribute.Key("http.method"))
		assert.Equal(t, http.MethodGet, method.AsString())
	}
	assert.True(t, found)
}
