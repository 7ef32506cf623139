package testutil

import (
	"context"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Seeder saves domain objects through the store's repositories
type Seeder struct {
	t     *testing.T
	store *TestStore
	ctx   context.Context
	by    uuid.UUID
}

// Seed returns a Seeder for s
func (s *TestStore) Seed(t *testing.T) *Seeder {
	return &Seeder{t: t, store: s, ctx: context.Background(), by: TestUserID()}
}

// Owner saves an owner with the given name and ID number
func (sd *Seeder) Owner(name, idNumber string) *party.Owner {
	sd.t.Helper()
	o, err := party.NewOwner(party.PersonalData{FullName: name, IDNumber: idNumber, Phone: "0414-0000000"}, nil, sd.by)
	require.NoError(sd.t, err)
	require.NoError(sd.t, sd.store.Owners().Save(sd.ctx, o))
	return o
}

// Tenant saves a tenant with the given name, ID number and phone
func (sd *Seeder) Tenant(name, idNumber, phone string) *party.Tenant {
	sd.t.Helper()
	tn, err := party.NewTenant(party.PersonalData{FullName: name, IDNumber: idNumber, Phone: phone}, sd.by)
	require.NoError(sd.t, err)
	require.NoError(sd.t, sd.store.Tenants().Save(sd.ctx, tn))
	return tn
}

// Vehicle saves an available vehicle of owner at the given weekly price
func (sd *Seeder) Vehicle(ownerID uuid.UUID, plate string, weeklyPrice int64) *fleet.Vehicle {
	sd.t.Helper()
	v, err := fleet.NewVehicle(fleet.VehicleInput{
		OwnerID:     ownerID,
		Plate:       plate,
		WeeklyPrice: decimal.NewFromInt(weeklyPrice),
		Available:   true,
	}, sd.by)
	require.NoError(sd.t, err)
	require.NoError(sd.t, sd.store.Vehicles().Save(sd.ctx, v))
	return v
}

// Lookup saves a lookup entry
func (sd *Seeder) Lookup(kind catalog.LookupKind, name string) *catalog.LookupEntry {
	sd.t.Helper()
	e, err := catalog.NewLookupEntry(kind, name, "", sd.by)
	require.NoError(sd.t, err)
	require.NoError(sd.t, sd.store.Lookups().Save(sd.ctx, e))
	return e
}

// Rental saves a rental of vehicle to tenant over period
func (sd *Seeder) Rental(v *fleet.Vehicle, tenantID, statusID uuid.UUID, period valueobject.DateRange) *rental.Rental {
	sd.t.Helper()
	r, err := rental.NewWeekRental(v.ID, tenantID, statusID, period, v.WeeklyPrice, period.Days(), sd.by)
	require.NoError(sd.t, err)
	require.NoError(sd.t, sd.store.Rentals().Save(sd.ctx, r))
	return r
}

// Profit saves an active profit percentage
func (sd *Seeder) Profit(description string, pct int64, isDefault bool) *settlement.ProfitPercentage {
	sd.t.Helper()
	p, err := settlement.NewProfitPercentage(description, decimal.NewFromInt(pct), true, isDefault, sd.by)
	require.NoError(sd.t, err)
	require.NoError(sd.t, sd.store.ProfitPercentages().Save(sd.ctx, p))
	return p
}
