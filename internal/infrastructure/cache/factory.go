package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrRedisDisabled is returned by Factory.Client when Redis is turned off
var ErrRedisDisabled = errors.New("redis is disabled")

// Factory builds the Redis-backed components and falls back to in-memory
// ones when Redis is disabled or unreachable
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	connect               func(config.RedisConfig) (*redis.Client, error)

	client  *redis.Client
	dialErr error
	dialed  bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory components when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		connect:               NewRedisClient,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Client returns the shared Redis client, dialing it on first use
func (f *Factory) Client() (*redis.Client, error) {
	if !f.redisConfig.Enabled {
		return nil, ErrRedisDisabled
	}
	if !f.dialed {
		f.client, f.dialErr = f.connect(f.redisConfig)
		f.dialed = true
	}
	return f.client, f.dialErr
}

// CreateCache returns a Redis cache when Redis is reachable, otherwise an
// in-memory cache if fallback is allowed
func (f *Factory) CreateCache() (shared.Cache, error) {
	client, err := f.Client()
	if err == nil {
		f.logger.Info("using Redis cache", zap.String("addr", f.redisConfig.Addr()))
		return NewRedisCache(client, defaultKeyPrefix), nil
	}

	if errors.Is(err, ErrRedisDisabled) {
		f.logger.Info("Redis disabled, using in-memory cache")
		return NewInMemoryCache(), nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache. "+
		"Cached reports are not shared between instances.",
		zap.Error(err),
	)
	return NewInMemoryCache(), nil
}

// Ping checks the Redis connection. It is a no-op when no client was dialed.
func (f *Factory) Ping(ctx context.Context) error {
	if f.client == nil {
		return nil
	}
	return f.client.Ping(ctx).Err()
}

// Close closes the Redis client if one was opened
func (f *Factory) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}
