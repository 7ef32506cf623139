package crypto

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"
	"gorm.io/gorm/schema"

	"github.com/alexrentacar/backoffice/internal/infrastructure/logger"
)

// SerializerName is the name used in `gorm:"serializer:encrypted"` tags
const SerializerName = "encrypted"

// EncryptedSerializer encrypts string model fields on write and decrypts
// them on read.
type EncryptedSerializer struct {
	cipher *FieldCipher
	log    *zap.Logger
}

// NewEncryptedSerializer creates the serializer
func NewEncryptedSerializer(cipher *FieldCipher, log *zap.Logger) *EncryptedSerializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &EncryptedSerializer{cipher: cipher, log: log.Named("crypto")}
}

// Register installs s as the process-wide "encrypted" serializer
func Register(s *EncryptedSerializer) {
	schema.RegisterSerializer(SerializerName, s)
}

// Scan implements schema.SerializerInterface
func (s *EncryptedSerializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	var stored string
	switch v := dbValue.(type) {
	case nil:
	case string:
		stored = v
	case []byte:
		stored = string(v)
	default:
		return fmt.Errorf("crypto: unsupported column type %T for %s", dbValue, field.Name)
	}

	plain, err := s.cipher.Decrypt(stored)
	if err != nil {
		logger.Enrich(ctx, s.log).Error("field decryption failed",
			zap.String("table", field.Schema.Table),
			zap.String("column", field.DBName),
			zap.Error(err),
		)
		return err
	}

	target := field.ReflectValueOf(ctx, dst)
	if target.Kind() != reflect.String {
		return fmt.Errorf("crypto: field %s must be a string", field.Name)
	}
	target.SetString(plain)
	return nil
}

// Value implements schema.SerializerValuerInterface
func (s *EncryptedSerializer) Value(ctx context.Context, field *schema.Field, dst reflect.Value, fieldValue interface{}) (interface{}, error) {
	plain, ok := fieldValue.(string)
	if !ok {
		return nil, fmt.Errorf("crypto: field %s must be a string, got %T", field.Name, fieldValue)
	}
	return s.cipher.Encrypt(plain)
}
