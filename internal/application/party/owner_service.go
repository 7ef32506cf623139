// Package party manages vehicle owners and tenants with their documents,
// references and (for tenants) guarantors.
package party

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/application/upload"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles owner and tenant operations
type Service struct {
	store   uow.Store
	uploads *upload.Service
	logger  *zap.Logger
}

// NewService creates a new party service
func NewService(store uow.Store, uploads *upload.Service, logger *zap.Logger) *Service {
	return &Service{store: store, uploads: uploads, logger: logger}
}

// CreateOwner creates an owner
func (s *Service) CreateOwner(ctx context.Context, actor identity.Actor, req OwnerRequest) (*OwnerResponse, error) {
	var owner *party.Owner
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		if err := checkOwner(ctx, repos, req, uuid.Nil); err != nil {
			return err
		}
		var err error
		owner, err = party.NewOwner(req.toData(), req.UserID, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Owners().Save(ctx, owner); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityOwner, owner.ID, audit.OperationCreate, actor, owner)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Owner created", zap.String("owner_id", owner.ID.String()))
	resp := s.toOwnerResponse(owner)
	return &resp, nil
}

// UpdateOwner updates an owner's personal data and linked user
func (s *Service) UpdateOwner(ctx context.Context, actor identity.Actor, id uuid.UUID, req OwnerRequest) (*OwnerResponse, error) {
	return s.mutateOwner(ctx, actor, id, func(repos uow.Repositories, owner *party.Owner) error {
		if err := checkOwner(ctx, repos, req, id); err != nil {
			return err
		}
		return owner.Update(req.toData(), req.UserID, actor.UserID)
	})
}

// GetOwner retrieves an owner with references
func (s *Service) GetOwner(ctx context.Context, id uuid.UUID) (*OwnerResponse, error) {
	owner, err := s.store.Owners().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toOwnerResponse(owner)
	return &resp, nil
}

// ListOwners lists owners, searching by name or email
func (s *Service) ListOwners(ctx context.Context, filter ListFilter) (*shared.Paginated[OwnerResponse], error) {
	f := filter.toFilter()
	owners, total, err := s.store.Owners().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]OwnerResponse, len(owners))
	for i := range owners {
		items[i] = s.toOwnerResponse(&owners[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteOwner deletes an owner without vehicles, with its documents
func (s *Service) DeleteOwner(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	var docs party.Documents
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		owner, err := repos.Owners().FindByID(ctx, id)
		if err != nil {
			return err
		}
		hasVehicles, err := repos.Owners().HasVehicles(ctx, id)
		if err != nil {
			return err
		}
		if hasVehicles {
			return shared.NewDomainError("IN_USE", "Owner still has vehicles")
		}
		docs = owner.Documents
		if err := repos.Owners().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityOwner, id, audit.OperationDelete, actor, owner)
	})
	if err != nil {
		return err
	}

	s.removeDocuments(ctx, docs)
	s.logger.Info("Owner deleted", zap.String("owner_id", id.String()))
	return nil
}

// UploadOwnerDocument stores one identity document of an owner
func (s *Service) UploadOwnerDocument(ctx context.Context, actor identity.Actor, id uuid.UUID, kind DocumentKind, file upload.File) (*OwnerResponse, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidDocumentKind
	}
	owner, err := s.store.Owners().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key, err := s.uploads.Save(ctx, upload.CategoryOwners, "owner_"+string(kind), file)
	if err != nil {
		return nil, err
	}

	var previous string
	resp, err := s.mutateOwner(ctx, actor, id, func(_ uow.Repositories, owner *party.Owner) error {
		slot := documentSlot(&owner.Documents, kind)
		previous, *slot = *slot, key
		owner.MarkUpdatedBy(actor.UserID)
		return nil
	})
	if err != nil {
		s.uploads.Remove(ctx, key)
		return nil, err
	}
	s.uploads.Remove(ctx, previous)
	s.logger.Info("Owner document uploaded",
		zap.String("owner_id", owner.ID.String()),
		zap.String("document", string(kind)))
	return resp, nil
}

// AddOwnerReference appends a personal reference to an owner
func (s *Service) AddOwnerReference(ctx context.Context, actor identity.Actor, id uuid.UUID, req ReferenceRequest) (*OwnerResponse, error) {
	return s.mutateOwner(ctx, actor, id, func(repos uow.Repositories, owner *party.Owner) error {
		if err := uow.RequireLookup(ctx, repos, catalog.KindRelationship, req.RelationshipID); err != nil {
			return err
		}
		ref, err := party.NewReference(req.FullName, req.RelationshipID, req.Phone)
		if err != nil {
			return err
		}
		owner.AddReference(ref)
		owner.MarkUpdatedBy(actor.UserID)
		return nil
	})
}

// RemoveOwnerReference drops a personal reference of an owner
func (s *Service) RemoveOwnerReference(ctx context.Context, actor identity.Actor, id, referenceID uuid.UUID) (*OwnerResponse, error) {
	return s.mutateOwner(ctx, actor, id, func(_ uow.Repositories, owner *party.Owner) error {
		if err := owner.RemoveReference(referenceID); err != nil {
			return err
		}
		owner.MarkUpdatedBy(actor.UserID)
		return nil
	})
}

// mutateOwner loads an owner, applies fn and saves it with an audit entry
// in one transaction.
func (s *Service) mutateOwner(ctx context.Context, actor identity.Actor, id uuid.UUID, fn func(repos uow.Repositories, owner *party.Owner) error) (*OwnerResponse, error) {
	var owner *party.Owner
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		owner, err = repos.Owners().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(repos, owner); err != nil {
			return err
		}
		if err := repos.Owners().Save(ctx, owner); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityOwner, owner.ID, audit.OperationUpdate, actor, owner)
	})
	if err != nil {
		return nil, err
	}
	resp := s.toOwnerResponse(owner)
	return &resp, nil
}

func checkOwner(ctx context.Context, repos uow.Repositories, req OwnerRequest, excludeID uuid.UUID) error {
	if req.IDNumber != "" {
		taken, err := repos.Owners().ExistsByIDNumber(ctx, req.IDNumber, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewDomainError("ALREADY_EXISTS", "An owner with this ID number already exists")
		}
	}
	if req.UserID != nil {
		if _, err := repos.Users().FindByID(ctx, *req.UserID); err != nil {
			if shared.IsNotFound(err) {
				return shared.NewDomainError("INVALID_INPUT", "Linked user not found")
			}
			return err
		}
	}
	return nil
}

func (s *Service) removeDocuments(ctx context.Context, docs party.Documents) {
	s.uploads.Remove(ctx, docs.IDPath)
	s.uploads.Remove(ctx, docs.LicensePath)
	s.uploads.Remove(ctx, docs.GoodConductPath)
}
