package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prodKey = "cHJvZHVjdGlvbi1rZXktMzItYnl0ZXMtbG9uZy0hISE="

func setValidProductionBase(t *testing.T) {
	t.Helper()
	t.Setenv("RENTAL_APP_ENV", "production")
	t.Setenv("RENTAL_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
	t.Setenv("RENTAL_CRYPTO_FIELD_KEY", prodKey)
	t.Setenv("RENTAL_DATABASE_PASSWORD", "secure-password")
	t.Setenv("RENTAL_COOKIE_SECURE", "true")
	t.Setenv("RENTAL_SWAGGER_ENABLED", "false")
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "rental-backoffice", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "rental", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, int64(16<<20), cfg.HTTP.MaxBodySize)
		assert.Equal(t, 50, cfg.HTTP.RateLimitRequests)
		assert.Equal(t, time.Hour, cfg.HTTP.RateLimitWindow)
		assert.Equal(t, 5, cfg.HTTP.AuthRateLimitRequests)
		assert.Equal(t, time.Hour, cfg.Cookie.MaxAge)
		assert.True(t, cfg.Cookie.HTTPOnly)
		assert.Equal(t, "local", cfg.Storage.Provider)
		assert.Equal(t, "static/uploads", cfg.Storage.LocalRoot)
		assert.Equal(t, time.Thursday, cfg.Settlement.PaymentDeadlineWeekday)
		assert.Equal(t, 7, cfg.Settlement.DefaultDaysWorked)
		assert.Equal(t, 5*time.Minute, cfg.Report.DashboardCacheTTL)

		key, err := cfg.Crypto.Key()
		require.NoError(t, err)
		assert.Len(t, key, 32)
	})

	t.Run("loads values from environment variables with RENTAL prefix", func(t *testing.T) {
		t.Setenv("RENTAL_APP_PORT", "9000")
		t.Setenv("RENTAL_DATABASE_HOST", "testdb.local")
		t.Setenv("RENTAL_DATABASE_PORT", "5433")
		t.Setenv("RENTAL_STORAGE_PROVIDER", "s3")
		t.Setenv("RENTAL_STORAGE_S3_BUCKET", "uploads")
		t.Setenv("RENTAL_SETTLEMENT_PAYMENT_DEADLINE_WEEKDAY", "friday")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "s3", cfg.Storage.Provider)
		assert.Equal(t, "uploads", cfg.Storage.S3Bucket)
		assert.Equal(t, time.Friday, cfg.Settlement.PaymentDeadlineWeekday)
	})

	t.Run("sunday deadline falls back to thursday", func(t *testing.T) {
		t.Setenv("RENTAL_SETTLEMENT_PAYMENT_DEADLINE_WEEKDAY", "Sunday")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, time.Thursday, cfg.Settlement.PaymentDeadlineWeekday)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("RENTAL_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("RENTAL_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects a field key of the wrong size", func(t *testing.T) {
		t.Setenv("RENTAL_CRYPTO_FIELD_KEY", "c2hvcnQ=")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 bytes")
	})

	t.Run("rejects unknown storage provider", func(t *testing.T) {
		t.Setenv("RENTAL_STORAGE_PROVIDER", "ftp")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.provider")
	})

	t.Run("s3 requires a bucket", func(t *testing.T) {
		t.Setenv("RENTAL_STORAGE_PROVIDER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3_bucket")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("accepts a complete production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("RENTAL_JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("requires a real field key in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("RENTAL_CRYPTO_FIELD_KEY", "")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("requires secure cookies in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("RENTAL_COOKIE_SECURE", "false")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cookie.secure")
	})

	t.Run("rejects unprotected swagger in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("RENTAL_SWAGGER_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "rental", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/rental?sslmode=disable", d.DSN())
}
