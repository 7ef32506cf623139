// Package testutil provides common test utilities for the back-office:
// in-memory stores with seeding, HTTP request helpers and the fixed actors
// used across service and handler tests.
package testutil

import (
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/infrastructure/crypto"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestKey is the 32-byte field encryption key used by test stores
func TestKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	return key
}

// TestStore is an in-memory SQLite database behind a GormStore
type TestStore struct {
	*persistence.GormStore
	DB     *gorm.DB
	Cipher *crypto.FieldCipher
}

// NewTestStore opens an in-memory SQLite database with every table migrated
// and the encrypted serializer registered. One connection keeps the
// database alive until the test ends.
func NewTestStore(t *testing.T) *TestStore {
	t.Helper()

	cipher, err := crypto.NewFieldCipher(TestKey())
	require.NoError(t, err, "Failed to create field cipher")
	crypto.Register(crypto.NewEncryptedSerializer(cipher, zap.NewNop()))

	db, err := gorm.Open(sqlite.Open(":memory:"), persistence.GormConfig(gormlogger.Default.LogMode(gormlogger.Silent)))
	require.NoError(t, err, "Failed to open SQLite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "Failed to migrate test schema")

	return &TestStore{
		GormStore: persistence.NewGormStore(db, cipher),
		DB:        db,
		Cipher:    cipher,
	}
}

// NewTestUUID generates a deterministic UUID for testing.
// Uses the provided seed string to create a reproducible UUID.
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// TestUserID returns a standard user ID for tests.
func TestUserID() uuid.UUID {
	return NewTestUUID("test-user")
}

// AdminActor is an administrator acting in tests
func AdminActor() identity.Actor {
	return identity.Actor{UserID: NewTestUUID("test-admin"), Username: "admin", Role: identity.RoleAdmin}
}

// UserActor is a regular back-office user acting in tests
func UserActor() identity.Actor {
	return identity.Actor{UserID: TestUserID(), Username: "operador", Role: identity.RoleUser}
}

// Day returns midnight UTC of the given date
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FixedClock returns a clock function that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
