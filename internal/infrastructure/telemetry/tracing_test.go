package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// withRecorder installs a recording tracer provider for the test
func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value.Emit()
	}
	return m
}

func TestStartServiceSpan(t *testing.T) {
	recorder := withRecorder(t)
	weekID := uuid.New()

	ctx, span := StartServiceSpan(context.Background(), "settlement", "close_week", SpanAttrWeekID, weekID, SpanAttrItemCount, 3)
	assert.NotEmpty(t, TraceID(ctx))
	SetAttributes(span, "ignored_odd_key")
	AddEvent(span, "week_closed", SpanAttrItemCount, int64(3))
	RecordError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "settlement.close_week", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "boom", got.Status().Description)

	attrs := attrMap(got.Attributes())
	assert.Equal(t, weekID.String(), attrs[SpanAttrWeekID])
	assert.Equal(t, "3", attrs[SpanAttrItemCount])

	var names []string
	for _, e := range got.Events() {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "week_closed")
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}

func TestToAttribute(t *testing.T) {
	assert.Equal(t, attribute.BOOL, toAttribute("k", true).Value.Type())
	assert.Equal(t, attribute.FLOAT64, toAttribute("k", 1.5).Value.Type())
	assert.Equal(t, attribute.STRINGSLICE, toAttribute("k", []string{"a"}).Value.Type())
	assert.Equal(t, "map[a:1]", toAttribute("k", map[string]int{"a": 1}).Value.AsString())
}

func TestNilSpanHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		SetAttributes(nil, "k", "v")
		RecordError(nil, errors.New("x"))
		AddEvent(nil, "e")
	})
}
