package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type sealedRow struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:100"`
	IDNumber string `gorm:"serializer:encrypted"`
}

func setupSerializerDB(t *testing.T) (*gorm.DB, *observer.ObservedLogs) {
	t.Helper()

	core, recorded := observer.New(zapcore.ErrorLevel)
	Register(NewEncryptedSerializer(newTestCipher(t), zap.New(core)))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&sealedRow{}))
	return db, recorded
}

func TestEncryptedSerializer_RoundTrip(t *testing.T) {
	db, _ := setupSerializerDB(t)

	row := sealedRow{Name: "Maria Perez", IDNumber: "V-20111222"}
	require.NoError(t, db.Create(&row).Error)

	var stored string
	require.NoError(t, db.Raw("SELECT id_number FROM sealed_rows WHERE id = ?", row.ID).Scan(&stored).Error)
	assert.NotEqual(t, "V-20111222", stored)
	assert.NotEmpty(t, stored)

	var loaded sealedRow
	require.NoError(t, db.First(&loaded, row.ID).Error)
	assert.Equal(t, "V-20111222", loaded.IDNumber)
	assert.Equal(t, "Maria Perez", loaded.Name)
}

func TestEncryptedSerializer_EmptyValue(t *testing.T) {
	db, _ := setupSerializerDB(t)

	row := sealedRow{Name: "No document"}
	require.NoError(t, db.Create(&row).Error)

	var loaded sealedRow
	require.NoError(t, db.First(&loaded, row.ID).Error)
	assert.Empty(t, loaded.IDNumber)
}

func TestEncryptedSerializer_CorruptValueAborts(t *testing.T) {
	db, recorded := setupSerializerDB(t)

	row := sealedRow{Name: "Corrupted", IDNumber: "V-1"}
	require.NoError(t, db.Create(&row).Error)
	require.NoError(t, db.Exec("UPDATE sealed_rows SET id_number = ? WHERE id = ?", "bm90LWNpcGhlcnRleHQtYXQtYWxsLWp1c3QtdGV4dA==", row.ID).Error)

	var loaded sealedRow
	err := db.First(&loaded, row.ID).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecrypt)
	assert.Equal(t, 1, recorded.FilterMessage("field decryption failed").Len())
}
