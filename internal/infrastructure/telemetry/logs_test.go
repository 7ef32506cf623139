package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBridge_DisabledReturnsBase(t *testing.T) {
	base := zap.NewNop()
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, base)
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.Same(t, base, Bridge(base, lp, zapcore.InfoLevel))
	assert.Same(t, base, Bridge(base, nil, zapcore.InfoLevel))
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestLevelFilterCore(t *testing.T) {
	inner, recorded := observer.New(zapcore.DebugLevel)
	core := &levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel}
	logger := zap.New(core).With(zap.String("component", "settlement"))

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept too")

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "kept", entries[0].Message)
	assert.Equal(t, "settlement", entries[0].ContextMap()["component"])
	assert.False(t, core.Enabled(zapcore.InfoLevel))
}

func TestProfiler(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "rental"}, zap.NewNop())
	assert.Error(t, err)
	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.Error(t, err)
}
