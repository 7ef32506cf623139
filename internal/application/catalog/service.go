// Package catalog manages the reference data the rest of the back-office
// points at: vehicle brand/models, company bank accounts and the small
// lookup lists (rental statuses, payment methods, account types,
// relationships, job types).
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

// Service handles catalog operations
type Service struct {
	store   uow.Store
	uploads *upload.Service
	logger  *zap.Logger
}

// NewService creates a new catalog service
func NewService(store uow.Store, uploads *upload.Service, logger *zap.Logger) *Service {
	return &Service{store: store, uploads: uploads, logger: logger}
}

// CreateBrandModel creates a brand/model entry
func (s *Service) CreateBrandModel(ctx context.Context, actor identity.Actor, req BrandModelRequest) (*BrandModelResponse, error) {
	var entry *catalog.BrandModel
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		taken, err := repos.BrandModels().ExistsByBrandAndModel(ctx, req.Brand, req.Model, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewDomainError("ALREADY_EXISTS", "Brand and model already registered")
		}
		entry, err = catalog.NewBrandModel(req.Brand, req.Model, req.Type, req.Description, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.BrandModels().Save(ctx, entry); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityBrandModel, entry.ID, audit.OperationCreate, actor, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Brand model created", zap.String("brand_model_id", entry.ID.String()), zap.String("label", entry.Label()))
	resp := s.toBrandModelResponse(entry)
	return &resp, nil
}

// UpdateBrandModel updates a brand/model entry
func (s *Service) UpdateBrandModel(ctx context.Context, actor identity.Actor, id uuid.UUID, req BrandModelRequest) (*BrandModelResponse, error) {
	var entry *catalog.BrandModel
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		entry, err = repos.BrandModels().FindByID(ctx, id)
		if err != nil {
			return err
		}
		taken, err := repos.BrandModels().ExistsByBrandAndModel(ctx, req.Brand, req.Model, id)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewDomainError("ALREADY_EXISTS", "Brand and model already registered")
		}
		if err := entry.Update(req.Brand, req.Model, req.Type, req.Description, actor.UserID); err != nil {
			return err
		}
		if err := repos.BrandModels().Save(ctx, entry); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityBrandModel, entry.ID, audit.OperationUpdate, actor, entry)
	})
	if err != nil {
		return nil, err
	}
	resp := s.toBrandModelResponse(entry)
	return &resp, nil
}

// GetBrandModel retrieves a brand/model entry by ID
func (s *Service) GetBrandModel(ctx context.Context, id uuid.UUID) (*BrandModelResponse, error) {
	entry, err := s.store.BrandModels().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toBrandModelResponse(entry)
	return &resp, nil
}

// ListBrandModels lists brand/model entries
func (s *Service) ListBrandModels(ctx context.Context, filter ListFilter) (*shared.Paginated[BrandModelResponse], error) {
	f := filter.toFilter()
	entries, total, err := s.store.BrandModels().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]BrandModelResponse, len(entries))
	for i := range entries {
		items[i] = s.toBrandModelResponse(&entries[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteBrandModel deletes an entry no vehicle references, and its logo
func (s *Service) DeleteBrandModel(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	var logo string
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		entry, err := repos.BrandModels().FindByID(ctx, id)
		if err != nil {
			return err
		}
		used, err := repos.BrandModels().IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return shared.NewDomainError("IN_USE", "Brand and model is used by a vehicle")
		}
		logo = entry.LogoPath
		if err := repos.BrandModels().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityBrandModel, id, audit.OperationDelete, actor, entry)
	})
	if err != nil {
		return err
	}
	s.uploads.Remove(ctx, logo)
	s.logger.Info("Brand model deleted", zap.String("brand_model_id", id.String()))
	return nil
}

// UploadBrandModelLogo stores a new logo and replaces the previous one
func (s *Service) UploadBrandModelLogo(ctx context.Context, actor identity.Actor, id uuid.UUID, file upload.File) (*BrandModelResponse, error) {
	entry, err := s.store.BrandModels().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key, err := s.uploads.Save(ctx, upload.CategoryLogos, entry.Brand+"_"+entry.Model, file)
	if err != nil {
		return nil, err
	}

	previous := entry.LogoPath
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		entry.SetLogo(key)
		entry.MarkUpdatedBy(actor.UserID)
		if err := repos.BrandModels().Save(ctx, entry); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityBrandModel, entry.ID, audit.OperationUpdate, actor, entry)
	})
	if err != nil {
		s.uploads.Remove(ctx, key)
		return nil, err
	}
	s.uploads.Remove(ctx, previous)

	resp := s.toBrandModelResponse(entry)
	return &resp, nil
}
