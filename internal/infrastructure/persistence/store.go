package persistence

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/report"
	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/workshop"
	"gorm.io/gorm"
)

// GormStore implements uow.Store on a GORM handle. Inside Execute a new
// GormStore is bound to the transaction, so every repository it hands out
// takes part in it.
type GormStore struct {
	db      *gorm.DB
	indexer BlindIndexer
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB, indexer BlindIndexer) *GormStore {
	return &GormStore{db: db, indexer: indexer}
}

// Execute runs fn within a database transaction. If fn returns an error,
// the transaction is rolled back; otherwise it is committed.
func (s *GormStore) Execute(ctx context.Context, fn func(repos uow.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, indexer: s.indexer})
	})
}

func (s *GormStore) Users() identity.UserRepository { return NewGormUserRepository(s.db) }

func (s *GormStore) AccessLogs() identity.AccessLogRepository {
	return NewGormAccessLogRepository(s.db)
}

func (s *GormStore) BrandModels() catalog.BrandModelRepository {
	return NewGormBrandModelRepository(s.db)
}

func (s *GormStore) Banks() catalog.BankRepository { return NewGormBankRepository(s.db, s.indexer) }

func (s *GormStore) Lookups() catalog.LookupRepository { return NewGormLookupRepository(s.db) }

func (s *GormStore) Owners() party.OwnerRepository { return NewGormOwnerRepository(s.db, s.indexer) }

func (s *GormStore) Tenants() party.TenantRepository {
	return NewGormTenantRepository(s.db, s.indexer)
}

func (s *GormStore) Vehicles() fleet.VehicleRepository { return NewGormVehicleRepository(s.db) }

func (s *GormStore) Rentals() rental.RentalRepository { return NewGormRentalRepository(s.db) }

func (s *GormStore) Payments() rental.PaymentRepository { return NewGormPaymentRepository(s.db) }

func (s *GormStore) Debts() rental.DebtRepository { return NewGormDebtRepository(s.db) }

func (s *GormStore) Mechanics() workshop.MechanicRepository {
	return NewGormMechanicRepository(s.db)
}

func (s *GormStore) Parts() workshop.PartRepository { return NewGormPartRepository(s.db) }

func (s *GormStore) WorkOrders() workshop.WorkOrderRepository {
	return NewGormWorkOrderRepository(s.db)
}

func (s *GormStore) Weeks() settlement.WeekRepository { return NewGormWeekRepository(s.db) }

func (s *GormStore) WeekDetails() settlement.DetailRepository { return NewGormWeekRepository(s.db) }

func (s *GormStore) ProfitPercentages() settlement.ProfitPercentageRepository {
	return NewGormProfitPercentageRepository(s.db)
}

func (s *GormStore) Audit() audit.Repository { return NewGormAuditRepository(s.db) }

func (s *GormStore) Reports() report.ReportRepository { return NewGormReportRepository(s.db) }

var _ uow.Store = (*GormStore)(nil)
