package workshop

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/internal/domain/workshop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilter represents the mechanic and part list query
type ListFilter struct {
	Search    string `form:"search"`
	Active    *bool  `form:"active"`
	Condition string `form:"condition" binding:"omitempty,oneof=nueva usada"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ListFilter) toFilter() shared.Filter {
	filter := pageFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	filter.Search = f.Search
	if f.Active != nil {
		filter.Filters["active"] = *f.Active
	}
	if f.Condition != "" {
		filter.Filters["condition"] = f.Condition
	}
	return filter
}

// WorkOrderListFilter represents the work order list query
type WorkOrderListFilter struct {
	Search     string     `form:"search"`
	VehicleID  *uuid.UUID `form:"vehicle_id"`
	MechanicID *uuid.UUID `form:"mechanic_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=pendiente en_progreso completado cancelado"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f WorkOrderListFilter) toFilter() shared.Filter {
	filter := pageFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	filter.Search = f.Search
	if f.VehicleID != nil {
		filter.Filters["vehicle_id"] = *f.VehicleID
	}
	if f.MechanicID != nil {
		filter.Filters["mechanic_id"] = *f.MechanicID
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}

func pageFilter(page, pageSize int, orderBy, orderDir string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = orderBy
	filter.OrderDir = orderDir
	return filter.Normalize()
}

// MechanicRequest represents a request to create or update a mechanic
type MechanicRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Address    string `json:"address" binding:"max=255"`
	Phone      string `json:"phone" binding:"max=30"`
	Email      string `json:"email" binding:"omitempty,email"`
	Speciality string `json:"speciality" binding:"max=100"`
	Active     bool   `json:"active"`
}

func (r MechanicRequest) toInput() workshop.MechanicInput {
	return workshop.MechanicInput{
		Name:       r.Name,
		Address:    r.Address,
		Phone:      r.Phone,
		Email:      r.Email,
		Speciality: r.Speciality,
		Active:     r.Active,
	}
}

// PartRequest represents a request to create or update a part
type PartRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Brand       string          `json:"brand" binding:"required,max=50"`
	Model       string          `json:"model" binding:"max=50"`
	Condition   string          `json:"condition" binding:"required,oneof=nueva usada"`
	Cost        decimal.Decimal `json:"cost"`
	Description string          `json:"description" binding:"max=2000"`
}

func (r PartRequest) toInput() workshop.PartInput {
	return workshop.PartInput{
		Name:        r.Name,
		Brand:       r.Brand,
		Model:       r.Model,
		Condition:   workshop.PartCondition(r.Condition),
		Cost:        r.Cost,
		Description: r.Description,
	}
}

// WorkOrderRequest represents a request to open or edit a work order
type WorkOrderRequest struct {
	VehicleID   uuid.UUID       `json:"vehicle_id" binding:"required"`
	MechanicID  uuid.UUID       `json:"mechanic_id" binding:"required"`
	JobTypeID   uuid.UUID       `json:"job_type_id" binding:"required"`
	StartDate   string          `json:"start_date" binding:"required,date"`
	EndDate     string          `json:"end_date" binding:"omitempty,date"`
	Description string          `json:"description" binding:"required,max=2000"`
	Cost        decimal.Decimal `json:"cost"`
	Notes       string          `json:"notes" binding:"max=2000"`
}

func (r WorkOrderRequest) toInput() (workshop.WorkOrderInput, error) {
	start, err := valueobject.ParseDate(r.StartDate)
	if err != nil {
		return workshop.WorkOrderInput{}, shared.WrapDomainError("INVALID_INPUT", err.Error(), err)
	}
	end, err := valueobject.ParseOptionalDate(r.EndDate)
	if err != nil {
		return workshop.WorkOrderInput{}, shared.WrapDomainError("INVALID_INPUT", err.Error(), err)
	}
	return workshop.WorkOrderInput{
		VehicleID:   r.VehicleID,
		MechanicID:  r.MechanicID,
		JobTypeID:   r.JobTypeID,
		StartDate:   start,
		EndDate:     end,
		Description: r.Description,
		Cost:        r.Cost,
		Notes:       r.Notes,
	}, nil
}

// PartUsageRequest records a part consumed by a work order. A nil unit
// cost takes the part's catalog cost.
type PartUsageRequest struct {
	PartID   uuid.UUID        `json:"part_id" binding:"required"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Notes    string           `json:"notes" binding:"max=500"`
}

// TransitionRequest moves a work order to another status
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=en_progreso completado cancelado"`
}

// MechanicResponse represents a mechanic in API responses
type MechanicResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Speciality string    `json:"speciality"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PartResponse represents a part in API responses
type PartResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Condition   string          `json:"condition"`
	Cost        decimal.Decimal `json:"cost"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PartUsageResponse represents a part used by a work order
type PartUsageResponse struct {
	ID       uuid.UUID       `json:"id"`
	PartID   uuid.UUID       `json:"part_id"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Notes    string          `json:"notes"`
}

// WorkOrderResponse represents a work order in API responses
type WorkOrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	VehicleID   uuid.UUID           `json:"vehicle_id"`
	MechanicID  uuid.UUID           `json:"mechanic_id"`
	JobTypeID   uuid.UUID           `json:"job_type_id"`
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date,omitempty"`
	Description string              `json:"description"`
	Cost        decimal.Decimal     `json:"cost"`
	PartsTotal  decimal.Decimal     `json:"parts_total"`
	Total       decimal.Decimal     `json:"total"`
	Status      string              `json:"status"`
	Notes       string              `json:"notes"`
	Parts       []PartUsageResponse `json:"parts"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToMechanicResponse converts a domain mechanic to a response
func ToMechanicResponse(m *workshop.Mechanic) MechanicResponse {
	return MechanicResponse{
		ID:         m.ID,
		Name:       m.Name,
		Address:    m.Address,
		Phone:      m.Phone,
		Email:      m.Email,
		Speciality: m.Speciality,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToPartResponse converts a domain part to a response
func ToPartResponse(p *workshop.Part) PartResponse {
	return PartResponse{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Model:       p.Model,
		Condition:   string(p.Condition),
		Cost:        p.Cost,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToWorkOrderResponse converts a domain work order to a response
func ToWorkOrderResponse(w *workshop.WorkOrder) WorkOrderResponse {
	parts := make([]PartUsageResponse, len(w.Parts))
	for i, p := range w.Parts {
		parts[i] = PartUsageResponse{
			ID:       p.ID,
			PartID:   p.PartID,
			Quantity: p.Quantity,
			UnitCost: p.UnitCost,
			Subtotal: p.Subtotal(),
			Notes:    p.Notes,
		}
	}
	partsTotal := w.PartsTotal()
	return WorkOrderResponse{
		ID:          w.ID,
		VehicleID:   w.VehicleID,
		MechanicID:  w.MechanicID,
		JobTypeID:   w.JobTypeID,
		StartDate:   valueobject.FormatDate(&w.StartDate),
		EndDate:     valueobject.FormatDate(w.EndDate),
		Description: w.Description,
		Cost:        w.Cost,
		PartsTotal:  partsTotal,
		Total:       w.Cost.Add(partsTotal),
		Status:      string(w.Status),
		Notes:       w.Notes,
		Parts:       parts,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
