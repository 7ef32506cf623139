package fleet

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/internal/domain/workshop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MediaKind selects which vehicle media slot an upload fills
type MediaKind string

const (
	MediaPhoto    MediaKind = "photo"
	MediaDocument MediaKind = "document"
)

// ErrInvalidMediaKind is returned for an unknown media slot
var ErrInvalidMediaKind = shared.NewDomainError("INVALID_INPUT", "Media must be photo or document")

// ListFilter represents the vehicle list query
type ListFilter struct {
	Search    string     `form:"search"`
	OwnerID   *uuid.UUID `form:"owner_id"`
	Available *bool      `form:"available"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ListFilter) toFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = f.Search
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.OrderBy = f.OrderBy
	filter.OrderDir = f.OrderDir
	if f.OwnerID != nil {
		filter.Filters["owner_id"] = *f.OwnerID
	}
	if f.Available != nil {
		filter.Filters["available"] = *f.Available
	}
	return filter.Normalize()
}

// PageRequest is the pagination of the per-vehicle history lists
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (p PageRequest) toFilter(key string, value any) shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = ""
	if p.Page > 0 {
		filter.Page = p.Page
	}
	if p.PageSize > 0 {
		filter.PageSize = p.PageSize
	}
	filter.Filters[key] = value
	return filter.Normalize()
}

// VehicleRequest represents a request to create or update a vehicle
type VehicleRequest struct {
	OwnerID      uuid.UUID       `json:"owner_id" form:"owner_id" binding:"required"`
	Plate        string          `json:"plate" form:"plate" binding:"required,plate"`
	BrandModelID *uuid.UUID      `json:"brand_model_id" form:"brand_model_id"`
	Year         int             `json:"year" form:"year" binding:"omitempty,min=1950,max=2100"`
	Color        string          `json:"color" form:"color" binding:"max=30"`
	Description  string          `json:"description" form:"description" binding:"max=2000"`
	WeeklyPrice  decimal.Decimal `json:"weekly_price" form:"weekly_price"`
	Conditions   string          `json:"conditions" form:"conditions" binding:"max=2000"`
	Available    bool            `json:"available" form:"available"`
}

func (r VehicleRequest) toInput() fleet.VehicleInput {
	return fleet.VehicleInput{
		OwnerID:      r.OwnerID,
		Plate:        r.Plate,
		BrandModelID: r.BrandModelID,
		Year:         r.Year,
		Color:        r.Color,
		Description:  r.Description,
		WeeklyPrice:  r.WeeklyPrice,
		Conditions:   r.Conditions,
		Available:    r.Available,
	}
}

// VehicleResponse represents a vehicle in API responses
type VehicleResponse struct {
	ID           uuid.UUID       `json:"id"`
	OwnerID      uuid.UUID       `json:"owner_id"`
	OwnerName    string          `json:"owner_name,omitempty"`
	Plate        string          `json:"plate"`
	BrandModelID *uuid.UUID      `json:"brand_model_id,omitempty"`
	BrandModel   string          `json:"brand_model,omitempty"`
	Year         int             `json:"year"`
	Color        string          `json:"color"`
	Description  string          `json:"description"`
	WeeklyPrice  decimal.Decimal `json:"weekly_price"`
	Conditions   string          `json:"conditions"`
	Available    bool            `json:"available"`
	PhotoPath    string          `json:"photo_path"`
	PhotoURL     string          `json:"photo_url,omitempty"`
	DocumentPath string          `json:"document_path"`
	DocumentURL  string          `json:"document_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// VehicleRentalResponse is one row of a vehicle's rental history
type VehicleRentalResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	StatusID       uuid.UUID       `json:"status_id"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	WeekNumber     int             `json:"week_number"`
	DaysWorked     int             `json:"days_worked"`
	Income         decimal.Decimal `json:"income"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// VehicleRepairResponse is one row of a vehicle's repair history
type VehicleRepairResponse struct {
	ID          uuid.UUID       `json:"id"`
	MechanicID  uuid.UUID       `json:"mechanic_id"`
	JobTypeID   uuid.UUID       `json:"job_type_id"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date,omitempty"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Cost        decimal.Decimal `json:"cost"`
	PartsTotal  decimal.Decimal `json:"parts_total"`
}

func (s *Service) toVehicleResponse(v *fleet.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Plate:        v.Plate,
		BrandModelID: v.BrandModelID,
		Year:         v.Year,
		Color:        v.Color,
		Description:  v.Description,
		WeeklyPrice:  v.WeeklyPrice,
		Conditions:   v.Conditions,
		Available:    v.Available,
		PhotoPath:    v.PhotoPath,
		PhotoURL:     s.uploads.URL(v.PhotoPath),
		DocumentPath: v.DocumentPath,
		DocumentURL:  s.uploads.URL(v.DocumentPath),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toVehicleRentalResponse(r *rental.Rental) VehicleRentalResponse {
	return VehicleRentalResponse{
		ID:             r.ID,
		TenantID:       r.TenantID,
		StatusID:       r.StatusID,
		StartDate:      valueobject.FormatDate(&r.StartDate),
		EndDate:        valueobject.FormatDate(&r.EndDate),
		WeekNumber:     r.WeekNumber,
		DaysWorked:     r.DaysWorked,
		Income:         r.Income,
		DiscountAmount: r.DiscountAmount,
	}
}

func toVehicleRepairResponse(w *workshop.WorkOrder) VehicleRepairResponse {
	return VehicleRepairResponse{
		ID:          w.ID,
		MechanicID:  w.MechanicID,
		JobTypeID:   w.JobTypeID,
		StartDate:   valueobject.FormatDate(&w.StartDate),
		EndDate:     valueobject.FormatDate(w.EndDate),
		Description: w.Description,
		Status:      string(w.Status),
		Cost:        w.Cost,
		PartsTotal:  w.PartsTotal(),
	}
}
