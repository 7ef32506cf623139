package catalog

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/application/upload"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBank creates a bank account
func (s *Service) CreateBank(ctx context.Context, actor identity.Actor, req BankRequest) (*BankResponse, error) {
	var bank *catalog.Bank
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		if err := checkBank(ctx, repos, req, uuid.Nil); err != nil {
			return err
		}
		var err error
		bank, err = catalog.NewBank(req.toInput(), actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Banks().Save(ctx, bank); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityBank, bank.ID, audit.OperationCreate, actor, bank)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bank created", zap.String("bank_id", bank.ID.String()), zap.String("name", bank.Name))
	resp := s.toBankResponse(bank)
	return &resp, nil
}

// UpdateBank updates a bank account
func (s *Service) UpdateBank(ctx context.Context, actor identity.Actor, id uuid.UUID, req BankRequest) (*BankResponse, error) {
	var bank *catalog.Bank
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		bank, err = repos.Banks().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkBank(ctx, repos, req, id); err != nil {
			return err
		}
		if err := bank.Update(req.toInput(), actor.UserID); err != nil {
			return err
		}
		if err := repos.Banks().Save(ctx, bank); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityBank, bank.ID, audit.OperationUpdate, actor, bank)
	})
	if err != nil {
		return nil, err
	}
	resp := s.toBankResponse(bank)
	return &resp, nil
}

// GetBank retrieves a bank account by ID
func (s *Service) GetBank(ctx context.Context, id uuid.UUID) (*BankResponse, error) {
	bank, err := s.store.Banks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toBankResponse(bank)
	return &resp, nil
}

// ListBanks lists bank accounts
func (s *Service) ListBanks(ctx context.Context, filter ListFilter) (*shared.Paginated[BankResponse], error) {
	f := filter.toFilter()
	banks, total, err := s.store.Banks().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]BankResponse, len(banks))
	for i := range banks {
		items[i] = s.toBankResponse(&banks[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteBank deletes a bank account. Accounts referenced by settlement
// items are kept by the foreign key and reported as IN_USE.
func (s *Service) DeleteBank(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	var logo string
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		bank, err := repos.Banks().FindByID(ctx, id)
		if err != nil {
			return err
		}
		logo = bank.LogoPath
		if err := repos.Banks().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityBank, id, audit.OperationDelete, actor, bank)
	})
	if err != nil {
		return err
	}
	s.uploads.Remove(ctx, logo)
	s.logger.Info("Bank deleted", zap.String("bank_id", id.String()))
	return nil
}

// UploadBankLogo stores a new logo and replaces the previous one
func (s *Service) UploadBankLogo(ctx context.Context, actor identity.Actor, id uuid.UUID, file upload.File) (*BankResponse, error) {
	bank, err := s.store.Banks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key, err := s.uploads.Save(ctx, upload.CategoryLogos, "bank_"+bank.Name, file)
	if err != nil {
		return nil, err
	}

	previous := bank.LogoPath
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		bank.SetLogo(key)
		bank.MarkUpdatedBy(actor.UserID)
		if err := repos.Banks().Save(ctx, bank); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityBank, bank.ID, audit.OperationUpdate, actor, bank)
	})
	if err != nil {
		s.uploads.Remove(ctx, key)
		return nil, err
	}
	s.uploads.Remove(ctx, previous)

	resp := s.toBankResponse(bank)
	return &resp, nil
}

func checkBank(ctx context.Context, repos uow.Repositories, req BankRequest, excludeID uuid.UUID) error {
	taken, err := repos.Banks().ExistsByAccount(ctx, req.AccountNumber, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "Account number already registered")
	}
	return uow.RequireLookup(ctx, repos, catalog.KindAccountType, req.AccountTypeID)
}
