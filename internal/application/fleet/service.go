// Package fleet manages the vehicles the company rents out on behalf of
// their owners.
package fleet

import (
	"context"

	"github.com/alexrentacar/backoffice/internal/application/uow"
	"github.com/alexrentacar/backoffice/internal/application/upload"
	"github.com/alexrentacar/backoffice/internal/domain/audit"
	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles vehicle operations
type Service struct {
	store   uow.Store
	uploads *upload.Service
	logger  *zap.Logger
}

// NewService creates a new fleet service
func NewService(store uow.Store, uploads *upload.Service, logger *zap.Logger) *Service {
	return &Service{store: store, uploads: uploads, logger: logger}
}

// CreateVehicle registers a vehicle of an existing owner
func (s *Service) CreateVehicle(ctx context.Context, actor identity.Actor, req VehicleRequest) (*VehicleResponse, error) {
	var vehicle *fleet.Vehicle
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		if err := checkVehicle(ctx, repos, req, uuid.Nil); err != nil {
			return err
		}
		var err error
		vehicle, err = fleet.NewVehicle(req.toInput(), actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Vehicles().Save(ctx, vehicle); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityVehicle, vehicle.ID, audit.OperationCreate, actor, vehicle)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("plate", vehicle.Plate))
	resp := s.toVehicleResponse(vehicle)
	return &resp, nil
}

// UpdateVehicle updates a vehicle
func (s *Service) UpdateVehicle(ctx context.Context, actor identity.Actor, id uuid.UUID, req VehicleRequest) (*VehicleResponse, error) {
	var vehicle *fleet.Vehicle
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		vehicle, err = repos.Vehicles().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkVehicle(ctx, repos, req, id); err != nil {
			return err
		}
		if err := vehicle.Update(req.toInput(), actor.UserID); err != nil {
			return err
		}
		if err := repos.Vehicles().Save(ctx, vehicle); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityVehicle, vehicle.ID, audit.OperationUpdate, actor, vehicle)
	})
	if err != nil {
		return nil, err
	}
	resp := s.toVehicleResponse(vehicle)
	return &resp, nil
}

// GetVehicle retrieves a vehicle with its owner name and brand/model label
func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.store.Vehicles().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toVehicleResponse(vehicle)

	owner, err := s.store.Owners().FindByID(ctx, vehicle.OwnerID)
	switch {
	case err == nil:
		resp.OwnerName = owner.FullName
	case !shared.IsNotFound(err):
		return nil, err
	}
	if vehicle.BrandModelID != nil {
		entry, err := s.store.BrandModels().FindByID(ctx, *vehicle.BrandModelID)
		switch {
		case err == nil:
			resp.BrandModel = entry.Label()
		case !shared.IsNotFound(err):
			return nil, err
		}
	}
	return &resp, nil
}

// ListVehicles lists vehicles, searching by plate or color
func (s *Service) ListVehicles(ctx context.Context, filter ListFilter) (*shared.Paginated[VehicleResponse], error) {
	f := filter.toFilter()
	vehicles, total, err := s.store.Vehicles().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		items[i] = s.toVehicleResponse(&vehicles[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// DeleteVehicle deletes a vehicle that was never rented, with its media
func (s *Service) DeleteVehicle(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	var media []string
	err := s.store.Execute(ctx, func(repos uow.Repositories) error {
		vehicle, err := repos.Vehicles().FindByID(ctx, id)
		if err != nil {
			return err
		}
		rented, err := repos.Vehicles().HasRentals(ctx, id)
		if err != nil {
			return err
		}
		if rented {
			return shared.NewDomainError("IN_USE", "Vehicle has rentals")
		}
		media = []string{vehicle.PhotoPath, vehicle.DocumentPath}
		if err := repos.Vehicles().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Audit(ctx, repos, audit.EntityVehicle, id, audit.OperationDelete, actor, vehicle)
	})
	if err != nil {
		return err
	}

	for _, key := range media {
		s.uploads.Remove(ctx, key)
	}
	s.logger.Info("Vehicle deleted", zap.String("vehicle_id", id.String()))
	return nil
}

// UploadVehicleMedia stores the photo or the registration document of a vehicle
func (s *Service) UploadVehicleMedia(ctx context.Context, actor identity.Actor, id uuid.UUID, kind MediaKind, file upload.File) (*VehicleResponse, error) {
	if kind != MediaPhoto && kind != MediaDocument {
		return nil, ErrInvalidMediaKind
	}
	vehicle, err := s.store.Vehicles().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key, err := s.uploads.Save(ctx, upload.CategoryVehicles, vehicle.Plate+"_"+string(kind), file)
	if err != nil {
		return nil, err
	}

	var previous string
	err = s.store.Execute(ctx, func(repos uow.Repositories) error {
		current, err := repos.Vehicles().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if kind == MediaPhoto {
			previous = current.PhotoPath
			current.SetMedia(key, "")
		} else {
			previous = current.DocumentPath
			current.SetMedia("", key)
		}
		current.MarkUpdatedBy(actor.UserID)
		if err := repos.Vehicles().Save(ctx, current); err != nil {
			return err
		}
		vehicle = current
		return uow.Audit(ctx, repos, audit.EntityVehicle, id, audit.OperationUpdate, actor, current)
	})
	if err != nil {
		s.uploads.Remove(ctx, key)
		return nil, err
	}
	s.uploads.Remove(ctx, previous)

	resp := s.toVehicleResponse(vehicle)
	return &resp, nil
}

// VehicleRentals lists the rentals of a vehicle, latest first
func (s *Service) VehicleRentals(ctx context.Context, id uuid.UUID, req PageRequest) (*shared.Paginated[VehicleRentalResponse], error) {
	if _, err := s.store.Vehicles().FindByID(ctx, id); err != nil {
		return nil, err
	}
	f := req.toFilter("vehicle_id", id)
	rentals, total, err := s.store.Rentals().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]VehicleRentalResponse, len(rentals))
	for i := range rentals {
		items[i] = toVehicleRentalResponse(&rentals[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// VehicleRepairs lists the work orders of a vehicle, latest first
func (s *Service) VehicleRepairs(ctx context.Context, id uuid.UUID, req PageRequest) (*shared.Paginated[VehicleRepairResponse], error) {
	if _, err := s.store.Vehicles().FindByID(ctx, id); err != nil {
		return nil, err
	}
	f := req.toFilter("vehicle_id", id)
	orders, total, err := s.store.WorkOrders().FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]VehicleRepairResponse, len(orders))
	for i := range orders {
		items[i] = toVehicleRepairResponse(&orders[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// checkVehicle enforces plate uniqueness and that the referenced owner and
// brand/model exist.
func checkVehicle(ctx context.Context, repos uow.Repositories, req VehicleRequest, excludeID uuid.UUID) error {
	taken, err := repos.Vehicles().ExistsByPlate(ctx, fleet.NormalizePlate(req.Plate), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "A vehicle with this plate already exists")
	}
	if _, err := repos.Owners().FindByID(ctx, req.OwnerID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_INPUT", "Owner not found")
		}
		return err
	}
	if req.BrandModelID != nil {
		if _, err := repos.BrandModels().FindByID(ctx, *req.BrandModelID); err != nil {
			if shared.IsNotFound(err) {
				return shared.NewDomainError("INVALID_INPUT", "Brand and model not found")
			}
			return err
		}
	}
	return nil
}
