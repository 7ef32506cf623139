package rental

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/rental"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentalListFilter represents the rental list query
type RentalListFilter struct {
	VehicleID *uuid.UUID `form:"vehicle_id"`
	TenantID  *uuid.UUID `form:"tenant_id"`
	StatusID  *uuid.UUID `form:"status_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f RentalListFilter) toFilter() shared.Filter {
	filter := pageFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	if f.VehicleID != nil {
		filter.Filters["vehicle_id"] = *f.VehicleID
	}
	if f.TenantID != nil {
		filter.Filters["tenant_id"] = *f.TenantID
	}
	if f.StatusID != nil {
		filter.Filters["status_id"] = *f.StatusID
	}
	return filter
}

// PaymentListFilter represents the payment list query
type PaymentListFilter struct {
	RentalID        *uuid.UUID `form:"rental_id"`
	PaymentMethodID *uuid.UUID `form:"payment_method_id"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy         string     `form:"order_by"`
	OrderDir        string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f PaymentListFilter) toFilter() shared.Filter {
	filter := pageFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	if f.RentalID != nil {
		filter.Filters["rental_id"] = *f.RentalID
	}
	if f.PaymentMethodID != nil {
		filter.Filters["payment_method_id"] = *f.PaymentMethodID
	}
	return filter
}

// DebtListFilter represents the debt list query
type DebtListFilter struct {
	Status    string     `form:"status" binding:"omitempty,oneof=pendiente pagado condonado"`
	TenantID  *uuid.UUID `form:"tenant_id"`
	VehicleID *uuid.UUID `form:"vehicle_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f DebtListFilter) toFilter() shared.Filter {
	filter := pageFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.TenantID != nil {
		filter.Filters["tenant_id"] = *f.TenantID
	}
	if f.VehicleID != nil {
		filter.Filters["vehicle_id"] = *f.VehicleID
	}
	return filter
}

// pageFilter leaves OrderBy empty unless asked so each repository applies
// its own default ordering.
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

// RentalRequest represents a request to create or update a rental
type RentalRequest struct {
	VehicleID       uuid.UUID       `json:"vehicle_id" binding:"required"`
	TenantID        uuid.UUID       `json:"tenant_id" binding:"required"`
	StatusID        uuid.UUID       `json:"status_id" binding:"required"`
	StartDate       string          `json:"start_date" binding:"required,date"`
	EndDate         string          `json:"end_date" binding:"required,date"`
	DaysWorked      int             `json:"days_worked" binding:"min=0,max=366"`
	Income          decimal.Decimal `json:"income"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	DiscountConcept string          `json:"discount_concept" binding:"max=255"`
	Notes           string          `json:"notes" binding:"max=2000"`
}

func (r RentalRequest) toInput() (rental.RentalInput, error) {
	start, err := valueobject.ParseDate(r.StartDate)
	if err != nil {
		return rental.RentalInput{}, invalidDate(err)
	}
	end, err := valueobject.ParseDate(r.EndDate)
	if err != nil {
		return rental.RentalInput{}, invalidDate(err)
	}
	return rental.RentalInput{
		VehicleID:       r.VehicleID,
		TenantID:        r.TenantID,
		StatusID:        r.StatusID,
		StartDate:       start,
		EndDate:         end,
		DaysWorked:      r.DaysWorked,
		Income:          r.Income,
		DiscountAmount:  r.DiscountAmount,
		DiscountConcept: r.DiscountConcept,
		Notes:           r.Notes,
	}, nil
}

// PaymentRequest represents a request to record or correct a payment
type PaymentRequest struct {
	RentalID        uuid.UUID       `json:"rental_id" binding:"required"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     string          `json:"payment_date" binding:"required,date"`
	Deductions      decimal.Decimal `json:"deductions"`
	Receipt         string          `json:"receipt" binding:"max=100"`
	Notes           string          `json:"notes" binding:"max=2000"`
}

func (r PaymentRequest) toInput() (rental.PaymentInput, error) {
	date, err := valueobject.ParseDate(r.PaymentDate)
	if err != nil {
		return rental.PaymentInput{}, invalidDate(err)
	}
	return rental.PaymentInput{
		RentalID:        r.RentalID,
		PaymentMethodID: r.PaymentMethodID,
		Amount:          r.Amount,
		PaymentDate:     date,
		Deductions:      r.Deductions,
		Receipt:         r.Receipt,
		Notes:           r.Notes,
	}, nil
}

// DebtRequest represents a request to register or edit a debt
type DebtRequest struct {
	VehicleID    uuid.UUID       `json:"vehicle_id" binding:"required"`
	TenantID     uuid.UUID       `json:"tenant_id" binding:"required"`
	RentalID     *uuid.UUID      `json:"rental_id"`
	Amount       decimal.Decimal `json:"amount"`
	DaysLate     int             `json:"days_late" binding:"min=0"`
	DailyPenalty decimal.Decimal `json:"daily_penalty"`
	DueDate      string          `json:"due_date" binding:"required,date"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

func (r DebtRequest) toInput() (rental.DebtInput, error) {
	due, err := valueobject.ParseDate(r.DueDate)
	if err != nil {
		return rental.DebtInput{}, invalidDate(err)
	}
	return rental.DebtInput{
		VehicleID:    r.VehicleID,
		TenantID:     r.TenantID,
		RentalID:     r.RentalID,
		Amount:       r.Amount,
		DaysLate:     r.DaysLate,
		DailyPenalty: r.DailyPenalty,
		DueDate:      due,
		Notes:        r.Notes,
	}, nil
}

// DebtStatusRequest represents a debt status change
type DebtStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pagado condonado"`
}

// RentalResponse represents a rental in API responses
type RentalResponse struct {
	ID              uuid.UUID       `json:"id"`
	VehicleID       uuid.UUID       `json:"vehicle_id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	StatusID        uuid.UUID       `json:"status_id"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	WeekNumber      int             `json:"week_number"`
	DaysWorked      int             `json:"days_worked"`
	Income          decimal.Decimal `json:"income"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	DiscountConcept string          `json:"discount_concept"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	RentalID        uuid.UUID       `json:"rental_id"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     string          `json:"payment_date"`
	Deductions      decimal.Decimal `json:"deductions"`
	Net             decimal.Decimal `json:"net"`
	Receipt         string          `json:"receipt"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
}

// DebtResponse represents a debt in API responses
type DebtResponse struct {
	ID           uuid.UUID       `json:"id"`
	VehicleID    uuid.UUID       `json:"vehicle_id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	RentalID     *uuid.UUID      `json:"rental_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	DaysLate     int             `json:"days_late"`
	DailyPenalty decimal.Decimal `json:"daily_penalty"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	DueDate      string          `json:"due_date"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToRentalResponse converts a domain rental to a response
func ToRentalResponse(r *rental.Rental) RentalResponse {
	return RentalResponse{
		ID:              r.ID,
		VehicleID:       r.VehicleID,
		TenantID:        r.TenantID,
		StatusID:        r.StatusID,
		StartDate:       valueobject.FormatDate(&r.StartDate),
		EndDate:         valueobject.FormatDate(&r.EndDate),
		WeekNumber:      r.WeekNumber,
		DaysWorked:      r.DaysWorked,
		Income:          r.Income,
		DiscountAmount:  r.DiscountAmount,
		DiscountConcept: r.DiscountConcept,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToPaymentResponse converts a domain payment to a response
func ToPaymentResponse(p *rental.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		RentalID:        p.RentalID,
		PaymentMethodID: p.PaymentMethodID,
		Amount:          p.Amount,
		PaymentDate:     valueobject.FormatDate(&p.PaymentDate),
		Deductions:      p.Deductions,
		Net:             p.Net,
		Receipt:         p.Receipt,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}
}

// ToDebtResponse converts a domain debt to a response
func ToDebtResponse(d *rental.Debt) DebtResponse {
	return DebtResponse{
		ID:           d.ID,
		VehicleID:    d.VehicleID,
		TenantID:     d.TenantID,
		RentalID:     d.RentalID,
		Amount:       d.Amount,
		DaysLate:     d.DaysLate,
		DailyPenalty: d.DailyPenalty,
		Total:        d.Total(),
		Status:       string(d.Status),
		DueDate:      valueobject.FormatDate(&d.DueDate),
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func invalidDate(err error) error {
	return shared.WrapDomainError("INVALID_INPUT", err.Error(), err)
}
