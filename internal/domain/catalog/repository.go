package catalog

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// BrandModelRepository persists brand/model entries
type BrandModelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BrandModel, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]BrandModel, int64, error)
	ExistsByBrandAndModel(ctx context.Context, brand, model string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, b *BrandModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IsReferenced reports whether any vehicle uses the entry
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

// BankRepository persists banks
type BankRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bank, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Bank, int64, error)
	// ExistsByAccount compares against the account's blind index
	ExistsByAccount(ctx context.Context, accountNumber string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, b *Bank) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LookupRepository persists lookup entries of every kind
type LookupRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LookupEntry, error)
	FindByName(ctx context.Context, kind LookupKind, name string) (*LookupEntry, error)
	// FindFirst returns the oldest entry of a kind
	FindFirst(ctx context.Context, kind LookupKind) (*LookupEntry, error)
	FindAll(ctx context.Context, kind LookupKind) ([]LookupEntry, error)
	ExistsByName(ctx context.Context, kind LookupKind, name string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, e *LookupEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
