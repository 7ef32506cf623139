package persistence

import (
	"context"
	"testing"

	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTenantRepository_EncryptedColumns(t *testing.T) {
	db, cipher := setupTestDB(t)
	repo := NewGormTenantRepository(db, cipher)
	ctx := context.Background()

	tenant, err := party.NewTenant(party.PersonalData{
		FullName: "  maría   DE los ángeles ",
		IDNumber: "V-20111222",
		Phone:    "0414-5550000",
		Address:  "Av. Bolívar 12",
	}, uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tenant))

	t.Run("stores ciphertext and a blind index", func(t *testing.T) {
		var raw struct {
			FullName     string
			IDNumber     string
			IDNumberHash string
			Phone        string
		}
		require.NoError(t, db.Table("tenants").
			Select("full_name, id_number, id_number_hash, phone").
			Where("id = ?", tenant.ID).
			Scan(&raw).Error)

		assert.Equal(t, "María De Los Ángeles", raw.FullName)
		assert.NotContains(t, raw.IDNumber, "20111222")
		assert.NotContains(t, raw.Phone, "5550000")
		assert.Equal(t, cipher.BlindIndex("v-20111222"), raw.IDNumberHash)
	})

	t.Run("decrypts on read", func(t *testing.T) {
		found, err := repo.FindByID(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, "V-20111222", found.IDNumber)
		assert.Equal(t, "0414-5550000", found.Phone)
		assert.Equal(t, "Av. Bolívar 12", found.Address)
	})

	t.Run("finds duplicates through the blind index", func(t *testing.T) {
		exists, err := repo.ExistsByIDNumber(ctx, " v-20111222 ", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByIDNumber(ctx, "V-20111222", tenant.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByIDNumber(ctx, "", uuid.Nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormTenantRepository_Children(t *testing.T) {
	db, cipher := setupTestDB(t)
	repo := NewGormTenantRepository(db, cipher)
	ctx := context.Background()

	tenant, err := party.NewTenant(party.PersonalData{FullName: "Luis Pérez"}, uuid.New())
	require.NoError(t, err)
	g, err := party.NewGuarantor(party.GuarantorInput{FullName: "carla pérez", Phone: "0412-1234567"})
	require.NoError(t, err)
	tenant.AddGuarantor(g)
	ref, err := party.NewReference("josé ruiz", nil, "0416-7654321")
	require.NoError(t, err)
	tenant.AddReference(ref)
	require.NoError(t, repo.Save(ctx, tenant))

	found, err := repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, found.Guarantors, 1)
	require.Len(t, found.References, 1)
	assert.Equal(t, "0412-1234567", found.Guarantors[0].Phone)
	assert.Equal(t, "José Ruiz", found.References[0].FullName)

	t.Run("removed children are deleted", func(t *testing.T) {
		require.NoError(t, found.RemoveGuarantor(g.ID))
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByID(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Empty(t, reloaded.Guarantors)
		assert.Len(t, reloaded.References, 1)
	})

	t.Run("delete cascades", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, tenant.ID))
		_, err := repo.FindByID(ctx, tenant.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOwnerRepository_FindAll(t *testing.T) {
	db, cipher := setupTestDB(t)
	repo := NewGormOwnerRepository(db, cipher)
	ctx := context.Background()

	for _, name := range []string{"zoila rojas", "ana gómez", "pedro ana"} {
		o, err := party.NewOwner(party.PersonalData{FullName: name}, nil, uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, o))
	}

	t.Run("orders by name by default", func(t *testing.T) {
		owners, total, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Equal(t, "Ana Gómez", owners[0].FullName)
		assert.Equal(t, "Zoila Rojas", owners[2].FullName)
	})

	t.Run("searches case-insensitively", func(t *testing.T) {
		owners, total, err := repo.FindAll(ctx, shared.Filter{Search: "ANA"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, owners, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		owners, total, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, owners, 1)
	})
}
