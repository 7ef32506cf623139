//go:build integration

// Package integration runs the back-office against a real PostgreSQL
// started with testcontainers. Run with: go test -tags integration ./tests/integration/...
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/infrastructure/crypto"
	"github.com/alexrentacar/backoffice/internal/infrastructure/migration"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence"
	"github.com/alexrentacar/backoffice/migrations"
	"github.com/alexrentacar/backoffice/tests/testutil"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB is a migrated PostgreSQL database with the store on top
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	Store *testutil.TestStore
	t     *testing.T
}

// NewTestDB returns a connection to the shared container with every table
// truncated. Migrations run once, when the container starts.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := sharedDSN(t)
	db, sqlDB := connectToDatabase(t, dsn)

	cipher, err := crypto.NewFieldCipher(testutil.TestKey())
	require.NoError(t, err)
	crypto.Register(crypto.NewEncryptedSerializer(cipher, zap.NewNop()))

	tdb := &TestDB{
		DB:    db,
		SqlDB: sqlDB,
		Store: &testutil.TestStore{
			GormStore: persistence.NewGormStore(db, cipher),
			DB:        db,
			Cipher:    cipher,
		},
		t: t,
	}
	tdb.CleanTables()
	t.Cleanup(func() { _ = sqlDB.Close() })
	return tdb
}

func sharedDSN(t *testing.T) string {
	t.Helper()
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		return sharedContainerDSN
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("rental_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	_, sqlDB := connectToDatabase(t, dsn)
	defer sqlDB.Close()
	m, err := migration.NewFromFS(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")

	sharedContainer = container
	sharedContainerDSN = dsn
	return dsn
}

// CleanTables empties every table except the migration bookkeeping and the
// seeded reference data.
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename NOT IN ('schema_migrations', 'lookup_entries', 'profit_percentages')
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	for _, table := range tables {
		require.NoError(tdb.t, tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error)
	}
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormLogger := logger.Default.LogMode(logger.Silent)
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), persistence.GormConfig(gormLogger))
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

// CleanupSharedContainer terminates the shared container
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
	}
}
