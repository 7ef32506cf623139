package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/internal/infrastructure/crypto"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with every table migrated
// and the encrypted serializer registered. A single connection keeps the
// in-memory database alive for the whole test.
func setupTestDB(t *testing.T) (*gorm.DB, *crypto.FieldCipher) {
	t.Helper()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	cipher, err := crypto.NewFieldCipher(key)
	require.NoError(t, err)
	crypto.Register(crypto.NewEncryptedSerializer(cipher, zap.NewNop()))

	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(gormlogger.Default.LogMode(gormlogger.Silent)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db, cipher
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixture holds one owner, vehicle, tenant and rental saved through the repositories
type fixture struct {
	store   *GormStore
	owner   *party.Owner
	tenant  *party.Tenant
	vehicle *fleet.Vehicle
	status  *catalog.LookupEntry
	rental  *rental.Rental
	profit  *settlement.ProfitPercentage
}

func newFixture(t *testing.T, db *gorm.DB, indexer BlindIndexer) *fixture {
	t.Helper()
	ctx := context.Background()
	actor := uuid.New()
	f := &fixture{store: NewGormStore(db, indexer)}

	var err error
	f.owner, err = party.NewOwner(party.PersonalData{FullName: "ana gómez", IDNumber: "V-1000", Phone: "0414-1111111"}, nil, actor)
	require.NoError(t, err)
	require.NoError(t, f.store.Owners().Save(ctx, f.owner))

	f.tenant, err = party.NewTenant(party.PersonalData{FullName: "luis pérez", IDNumber: "V-2000", Phone: "0424-2222222"}, actor)
	require.NoError(t, err)
	require.NoError(t, f.store.Tenants().Save(ctx, f.tenant))

	f.vehicle, err = fleet.NewVehicle(fleet.VehicleInput{
		OwnerID:     f.owner.ID,
		Plate:       "ab 123 cd",
		WeeklyPrice: decimal.NewFromInt(350),
		Available:   true,
	}, actor)
	require.NoError(t, err)
	require.NoError(t, f.store.Vehicles().Save(ctx, f.vehicle))

	f.status, err = catalog.NewLookupEntry(catalog.KindRentalStatus, catalog.DefaultRentalStatus, "", actor)
	require.NoError(t, err)
	require.NoError(t, f.store.Lookups().Save(ctx, f.status))

	f.rental, err = rental.NewWeekRental(f.vehicle.ID, f.tenant.ID, f.status.ID,
		valueobject.MustNewDateRange(day(2025, 1, 6), day(2025, 1, 12)), f.vehicle.WeeklyPrice, 7, actor)
	require.NoError(t, err)
	require.NoError(t, f.store.Rentals().Save(ctx, f.rental))

	f.profit, err = settlement.NewProfitPercentage("Standard", decimal.NewFromInt(15), true, true, actor)
	require.NoError(t, err)
	require.NoError(t, f.store.ProfitPercentages().Save(ctx, f.profit))
	return f
}

// populatedWeek builds an unsaved week for 2025-01-06..12 holding the fixture rental
func (f *fixture) populatedWeek(t *testing.T) *settlement.Week {
	t.Helper()
	week, err := settlement.NewWeek(valueobject.MustNewDateRange(day(2025, 1, 6), day(2025, 1, 12)), f.profit.ID, "", uuid.New())
	require.NoError(t, err)
	rentalID := f.rental.ID
	week.Populate([]settlement.Pairing{{
		RentalID:    &rentalID,
		VehicleID:   f.vehicle.ID,
		TenantID:    f.tenant.ID,
		OwnerID:     f.owner.ID,
		WeeklyPrice: f.vehicle.WeeklyPrice,
	}}, f.profit.Percentage, day(2025, 1, 7), uuid.Nil)
	return week
}
