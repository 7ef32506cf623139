package catalog

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownKind is returned for a lookup kind outside the known lists
var ErrUnknownKind = shared.NewDomainError("INVALID_KIND", "Unknown lookup kind")

// CreateLookup adds an entry to one lookup list
func (s *Service) CreateLookup(ctx context.Context, actor identity.Actor, kind catalog.LookupKind, req LookupRequest) (*LookupResponse, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownKind
	}
	var entry *catalog.LookupEntry
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		if err := checkLookupName(ctx, repos, kind, req.Name, uuid.Nil); err != nil {
			return err
		}
		var err error
		entry, err = catalog.NewLookupEntry(kind, req.Name, req.Description, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Lookups().Save(ctx, entry); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityLookup, entry.ID, audit.OperationCreate, actor, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lookup entry created",
		zap.String("kind", string(kind)),
		zap.String("name", entry.Name))
	resp := ToLookupResponse(entry)
	return &resp, nil
}

// UpdateLookup renames an entry; its kind never changes
func (s *Service) UpdateLookup(ctx context.Context, actor identity.Actor, kind catalog.LookupKind, id uuid.UUID, req LookupRequest) (*LookupResponse, error) {
	var entry *catalog.LookupEntry
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		entry, err = findLookup(ctx, repos, kind, id)
		if err != nil {
			return err
		}
		if err := checkLookupName(ctx, repos, kind, req.Name, id); err != nil {
			return err
		}
		if err := entry.Update(req.Name, req.Description, actor.UserID); err != nil {
			return err
		}
		if err := repos.Lookups().Save(ctx, entry); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityLookup, entry.ID, audit.OperationUpdate, actor, entry)
	})
	if err != nil {
		return nil, err
	}
	resp := ToLookupResponse(entry)
	return &resp, nil
}

// GetLookup retrieves one entry of a list
func (s *Service) GetLookup(ctx context.Context, kind catalog.LookupKind, id uuid.UUID) (*LookupResponse, error) {
	entry, err := findLookup(ctx, s.store, kind, id)
	if err != nil {
		return nil, err
	}
	resp := ToLookupResponse(entry)
	return &resp, nil
}

// ListLookups returns every entry of a list, sorted by name
func (s *Service) ListLookups(ctx context.Context, kind catalog.LookupKind) ([]LookupResponse, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownKind
	}
	entries, err := s.store.Lookups().FindAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	result := make([]LookupResponse, len(entries))
	for i := range entries {
		result[i] = ToLookupResponse(&entries[i])
	}
	return result, nil
}

// DeleteLookup deletes an entry; entries still referenced fail with IN_USE
func (s *Service) DeleteLookup(ctx context.Context, actor identity.Actor, kind catalog.LookupKind, id uuid.UUID) error {
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		entry, err := findLookup(ctx, repos, kind, id)
		if err != nil {
			return err
		}
		if err := repos.Lookups().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityLookup, id, audit.OperationDelete, actor, entry)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Lookup entry deleted", zap.String("kind", string(kind)), zap.String("lookup_id", id.String()))
	return nil
}

// findLookup loads an entry and hides entries of another kind
func findLookup(ctx context.Context, repos uow.Repositories, kind catalog.LookupKind, id uuid.UUID) (*catalog.LookupEntry, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownKind
	}
	entry, err := repos.Lookups().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Kind != kind {
		return nil, shared.ErrNotFound
	}
	return entry, nil
}

func checkLookupName(ctx context.Context, repos uow.Repositories, kind catalog.LookupKind, name string, excludeID uuid.UUID) error {
	taken, err := repos.Lookups().ExistsByName(ctx, kind, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "An entry with this name already exists")
	}
	return nil
}
