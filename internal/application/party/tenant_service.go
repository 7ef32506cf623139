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

// CreateTenant creates a tenant
func (s *Service) CreateTenant(ctx context.Context, actor identity.Actor, req TenantRequest) (*TenantResponse, error) {
	var tenant *party.Tenant
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		if err := checkTenantIDNumber(ctx, repos, req.IDNumber, uuid.Nil); err != nil {
			return err
		}
		var err error
		tenant, err = party.NewTenant(req.toData(), actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Tenants().Save(ctx, tenant); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityTenant, tenant.ID, audit.OperationCreate, actor, tenant)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tenant created", zap.String("tenant_id", tenant.ID.String()))
	resp := s.toTenantResponse(tenant)
	return &resp, nil
}

// UpdateTenant updates a tenant's personal data
func (s *Service) UpdateTenant(ctx context.Context, actor identity.Actor, id uuid.UUID, req TenantRequest) (*TenantResponse, error) {
	return s.mutateTenant(ctx, actor, id, func(repos uow.Repositories, tenant *party.Tenant) error {
		if err := checkTenantIDNumber(ctx, repos, req.IDNumber, id); err != nil {
			return err
		}
		return tenant.Update(req.toData(), actor.UserID)
	})
}

// GetTenant retrieves a tenant with guarantors and references
func (s *Service) GetTenant(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.store.Tenants().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toTenantResponse(tenant)
	return &resp, nil
}

// ListTenants lists tenants, searching by name or email
func (s *Service) ListTenants(ctx context.Context, filter ListFilter) (*shared.Paginated[TenantResponse], error) {
	f := filter.toFilter()
	tenants, total, err := s.store.Tenants().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]TenantResponse, len(tenants))
	for i := range tenants {
		items[i] = s.toTenantResponse(&tenants[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteTenant deletes a tenant that never rented, with its documents
func (s *Service) DeleteTenant(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	var (
		docs    party.Documents
		letters []string
	)
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		tenant, err := repos.Tenants().FindByID(ctx, id)
		if err != nil {
			return err
		}
		hasRentals, err := repos.Tenants().HasRentals(ctx, id)
		if err != nil {
			return err
		}
		if hasRentals {
			return shared.NewDomainError("IN_USE", "Tenant has rentals")
		}
		docs = tenant.Documents
		for _, g := range tenant.Guarantors {
			letters = append(letters, g.EmploymentLetterPath)
		}
		if err := repos.Tenants().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityTenant, id, audit.OperationDelete, actor, tenant)
	})
	if err != nil {
		return err
	}

	s.removeDocuments(ctx, docs)
	for _, key := range letters {
		s.uploads.Remove(ctx, key)
	}
	s.logger.Info("Tenant deleted", zap.String("tenant_id", id.String()))
	return nil
}

// UploadTenantDocument stores one identity document of a tenant
func (s *Service) UploadTenantDocument(ctx context.Context, actor identity.Actor, id uuid.UUID, kind DocumentKind, file upload.File) (*TenantResponse, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidDocumentKind
	}
	if _, err := s.store.Tenants().FindByID(ctx, id); err != nil {
		return nil, err
	}
	key, err := s.uploads.Save(ctx, upload.CategoryTenants, "tenant_"+string(kind), file)
	if err != nil {
		return nil, err
	}

	var previous string
	resp, err := s.mutateTenant(ctx, actor, id, func(_ uow.Repositories, tenant *party.Tenant) error {
		slot := documentSlot(&tenant.Documents, kind)
		previous, *slot = *slot, key
		tenant.MarkUpdatedBy(actor.UserID)
		return nil
	})
	if err != nil {
		s.uploads.Remove(ctx, key)
		return nil, err
	}
	s.uploads.Remove(ctx, previous)
	return resp, nil
}

// AddGuarantor appends a guarantor to a tenant
func (s *Service) AddGuarantor(ctx context.Context, actor identity.Actor, id uuid.UUID, req GuarantorRequest) (*TenantResponse, error) {
	return s.mutateTenant(ctx, actor, id, func(repos uow.Repositories, tenant *party.Tenant) error {
		if err := uow.RequireLookup(ctx, repos, catalog.KindRelationship, req.RelationshipID); err != nil {
			return err
		}
		g, err := party.NewGuarantor(party.GuarantorInput{
			FullName:       req.FullName,
			Address:        req.Address,
			Phone:          req.Phone,
			Email:          req.Email,
			RelationshipID: req.RelationshipID,
		})
		if err != nil {
			return err
		}
		tenant.AddGuarantor(g)
		tenant.MarkUpdatedBy(actor.UserID)
		return nil
	})
}

// RemoveGuarantor drops a guarantor and its employment letter
func (s *Service) RemoveGuarantor(ctx context.Context, actor identity.Actor, id, guarantorID uuid.UUID) (*TenantResponse, error) {
	var letter string
	resp, err := s.mutateTenant(ctx, actor, id, func(_ uow.Repositories, tenant *party.Tenant) error {
		if g := findGuarantor(tenant, guarantorID); g != nil {
			letter = g.EmploymentLetterPath
		}
		if err := tenant.RemoveGuarantor(guarantorID); err != nil {
			return err
		}
		tenant.MarkUpdatedBy(actor.UserID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.uploads.Remove(ctx, letter)
	return resp, nil
}

// UploadEmploymentLetter stores the employment reference of a guarantor
func (s *Service) UploadEmploymentLetter(ctx context.Context, actor identity.Actor, id, guarantorID uuid.UUID, file upload.File) (*TenantResponse, error) {
	tenant, err := s.store.Tenants().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if findGuarantor(tenant, guarantorID) == nil {
		return nil, shared.ErrNotFound
	}
	key, err := s.uploads.Save(ctx, upload.CategoryTenants, "guarantor_letter", file)
	if err != nil {
		return nil, err
	}

	var previous string
	resp, err := s.mutateTenant(ctx, actor, id, func(_ uow.Repositories, tenant *party.Tenant) error {
		g := findGuarantor(tenant, guarantorID)
		if g == nil {
			return shared.ErrNotFound
		}
		previous, g.EmploymentLetterPath = g.EmploymentLetterPath, key
		tenant.MarkUpdatedBy(actor.UserID)
		return nil
	})
	if err != nil {
		s.uploads.Remove(ctx, key)
		return nil, err
	}
	s.uploads.Remove(ctx, previous)
	return resp, nil
}

// AddTenantReference appends a personal reference to a tenant
func (s *Service) AddTenantReference(ctx context.Context, actor identity.Actor, id uuid.UUID, req ReferenceRequest) (*TenantResponse, error) {
	return s.mutateTenant(ctx, actor, id, func(repos uow.Repositories, tenant *party.Tenant) error {
		if err := uow.RequireLookup(ctx, repos, catalog.KindRelationship, req.RelationshipID); err != nil {
			return err
		}
		ref, err := party.NewReference(req.FullName, req.RelationshipID, req.Phone)
		if err != nil {
			return err
		}
		tenant.AddReference(ref)
		tenant.MarkUpdatedBy(actor.UserID)
		return nil
	})
}

// RemoveTenantReference drops a personal reference of a tenant
func (s *Service) RemoveTenantReference(ctx context.Context, actor identity.Actor, id, referenceID uuid.UUID) (*TenantResponse, error) {
	return s.mutateTenant(ctx, actor, id, func(_ uow.Repositories, tenant *party.Tenant) error {
		if err := tenant.RemoveReference(referenceID); err != nil {
			return err
		}
		tenant.MarkUpdatedBy(actor.UserID)
		return nil
	})
}

func (s *Service) mutateTenant(ctx context.Context, actor identity.Actor, id uuid.UUID, fn func(repos uow.Repositories, tenant *party.Tenant) error) (*TenantResponse, error) {
	var tenant *party.Tenant
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		tenant, err = repos.Tenants().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(repos, tenant); err != nil {
			return err
		}
		if err := repos.Tenants().Save(ctx, tenant); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityTenant, tenant.ID, audit.OperationUpdate, actor, tenant)
	})
	if err != nil {
		return nil, err
	}
	resp := s.toTenantResponse(tenant)
	return &resp, nil
}

func findGuarantor(tenant *party.Tenant, id uuid.UUID) *party.Guarantor {
	for i := range tenant.Guarantors {
		if tenant.Guarantors[i].ID == id {
			return &tenant.Guarantors[i]
		}
	}
	return nil
}

func checkTenantIDNumber(ctx context.Context, repos uow.Repositories, idNumber string, excludeID uuid.UUID) error {
	if idNumber == "" {
		return nil
	}
	taken, err := repos.Tenants().ExistsByIDNumber(ctx, idNumber, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "A tenant with this ID number already exists")
	}
	return nil
}
