// Package uow defines the unit of work the application services run in:
// one set of repositories, optionally bound to a database transaction.
package uow

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/report"
	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/workshop"
	"github.com/google/uuid"
)

// Repositories gives access to every repository. All repositories returned
// by one value share the same database handle, so inside Execute they
// share the transaction.
type Repositories interface {
	Users() identity.UserRepository
	AccessLogs() identity.AccessLogRepository
	BrandModels() catalog.BrandModelRepository
	Banks() catalog.BankRepository
	Lookups() catalog.LookupRepository
	Owners() party.OwnerRepository
	Tenants() party.TenantRepository
	Vehicles() fleet.VehicleRepository
	Rentals() rental.RentalRepository
	Payments() rental.PaymentRepository
	Debts() rental.DebtRepository
	Mechanics() workshop.MechanicRepository
	Parts() workshop.PartRepository
	WorkOrders() workshop.WorkOrderRepository
	Weeks() settlement.WeekRepository
	WeekDetails() settlement.DetailRepository
	ProfitPercentages() settlement.ProfitPercentageRepository
	Audit() audit.Repository
	Reports() report.ReportRepository
}

// TransactionScope runs a function inside a database transaction.
// If the function returns an error, the transaction is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Store is what services depend on: plain repositories for reads and a
// transaction scope for writes.
type Store interface {
	Repositories
	TransactionScope
}

// Audit appends an audit entry for a mutation. It must be called with the
// transactional repositories so the entry commits with the change.
func Audit(ctx context.Context, repos Repositories, entityType string, entityID uuid.UUID, op audit.Operation, actor identity.Actor, snapshot any) error {
	entry, err := audit.NewEntry(entityType, entityID, op, actor.UserID, snapshot)
	if err != nil {
		return err
	}
	return repos.Audit().Append(ctx, entry)
}

// RequireLookup checks that id names an entry of the given lookup list.
// A nil id passes; optional references stay optional.
func RequireLookup(ctx context.Context, repos Repositories, kind catalog.LookupKind, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	entry, err := repos.Lookups().FindByID(ctx, *id)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_INPUT", "Unknown "+string(kind)+" entry")
		}
		return err
	}
	if entry.Kind != kind {
		return shared.NewDomainError("INVALID_INPUT", "Entry is not a "+string(kind))
	}
	return nil
}
