package settlement

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/settlement"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateWeekRequest represents a request to open a settlement week
type CreateWeekRequest struct {
	StartDate          string    `json:"start_date" binding:"required,date"`
	EndDate            string    `json:"end_date" binding:"required,date"`
	ProfitPercentageID uuid.UUID `json:"profit_percentage_id" binding:"required"`
	Notes              string    `json:"notes" binding:"max=2000"`
}

// ItemEditRequest carries the batch-editable fields of one line item
type ItemEditRequest struct {
	ID                   uuid.UUID       `json:"id" binding:"required"`
	WeeklyPrice          decimal.Decimal `json:"weekly_price"`
	DaysWorked           int             `json:"days_worked" binding:"min=0,max=31"`
	MechanicalInvestment decimal.Decimal `json:"mechanical_investment"`
	InvestmentConcept    string          `json:"investment_concept" binding:"max=255"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	DiscountConcept      string          `json:"discount_concept" binding:"max=255"`
	DebtAmount           decimal.Decimal `json:"debt_amount"`
	BankID               *uuid.UUID      `json:"bank_id"`
	ConfirmationDate     string          `json:"confirmation_date" binding:"omitempty,date"`
	Confirmed            bool            `json:"confirmed"`
	Notes                string          `json:"notes" binding:"max=2000"`
}

// BatchEditRequest represents the batch save of a week's line items
type BatchEditRequest struct {
	Items []ItemEditRequest `json:"items" binding:"required,dive"`
}

// FullEditRequest represents the complete edit of one line item. A missing
// price falls back to the vehicle's weekly price, missing days to the
// configured default, and a missing confirmation date keeps the stored one.
type FullEditRequest struct {
	VehicleID            uuid.UUID        `json:"vehicle_id" binding:"required"`
	TenantID             uuid.UUID        `json:"tenant_id" binding:"required"`
	WeeklyPrice          *decimal.Decimal `json:"weekly_price"`
	DaysWorked           *int             `json:"days_worked" binding:"omitempty,min=0,max=31"`
	MechanicalInvestment decimal.Decimal  `json:"mechanical_investment"`
	InvestmentConcept    string           `json:"investment_concept" binding:"max=255"`
	DiscountAmount       decimal.Decimal  `json:"discount_amount"`
	DiscountConcept      string           `json:"discount_concept" binding:"max=255"`
	DebtAmount           decimal.Decimal  `json:"debt_amount"`
	BankID               *uuid.UUID       `json:"bank_id"`
	ConfirmationDate     string           `json:"confirmation_date" binding:"omitempty,date"`
	Confirmed            bool             `json:"confirmed"`
	Notes                string           `json:"notes" binding:"max=2000"`
}

// AddRentalRequest represents adding a vehicle/tenant pairing to a week.
// DaysWorked defaults to the configured value when nil.
type AddRentalRequest struct {
	VehicleID  uuid.UUID `json:"vehicle_id" binding:"required"`
	TenantID   uuid.UUID `json:"tenant_id" binding:"required"`
	DaysWorked *int      `json:"days_worked" binding:"omitempty,min=1,max=31"`
}

// ListWeeksRequest represents the week list query
type ListWeeksRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=abierta cerrada cancelada"`
	Year     int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProfitPercentageRequest represents a create or update of a profit percentage
type ProfitPercentageRequest struct {
	Description string          `json:"description" binding:"required,max=200"`
	Percentage  decimal.Decimal `json:"percentage"`
	Active      bool            `json:"active"`
	IsDefault   bool            `json:"is_default"`
}

// WeekResponse represents a settlement week header
type WeekResponse struct {
	ID                 uuid.UUID       `json:"id"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	WeekNumber         int             `json:"week_number"`
	Year               int             `json:"year"`
	ProfitPercentageID uuid.UUID       `json:"profit_percentage_id"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes"`
	VehicleCount       int             `json:"vehicle_count"`
	OwnerCount         int             `json:"owner_count"`
	TenantCount        int             `json:"tenant_count"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	PaymentDeadline    string          `json:"payment_deadline"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// SkippedRental is an overlapping rental left out of a new week
type SkippedRental struct {
	RentalID  uuid.UUID `json:"rental_id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Reason    string    `json:"reason"`
}

// Reasons a rental is left out of a new week
const (
	SkipVehicleWithoutOwner = "vehicle_without_owner"
	SkipAlreadyInWeek       = "vehicle_or_tenant_already_in_week"
)

// CreateWeekResponse is the created week plus the overlapping rentals that
// did not make it into a line item
type CreateWeekResponse struct {
	WeekResponse
	Skipped []SkippedRental `json:"skipped"`
}

// LineItemResponse represents one line item of a week
type LineItemResponse struct {
	ID                   uuid.UUID       `json:"id"`
	WeekID               uuid.UUID       `json:"week_id"`
	RentalID             *uuid.UUID      `json:"rental_id,omitempty"`
	VehicleID            uuid.UUID       `json:"vehicle_id"`
	TenantID             uuid.UUID       `json:"tenant_id"`
	OwnerID              uuid.UUID       `json:"owner_id"`
	WeeklyPrice          decimal.Decimal `json:"weekly_price"`
	DaysWorked           int             `json:"days_worked"`
	Income               decimal.Decimal `json:"income"`
	MechanicalInvestment decimal.Decimal `json:"mechanical_investment"`
	InvestmentConcept    string          `json:"investment_concept"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	DiscountConcept      string          `json:"discount_concept"`
	CompanyPercentage    decimal.Decimal `json:"company_percentage"`
	CompanyCut           decimal.Decimal `json:"company_cut"`
	HasDebt              bool            `json:"has_debt"`
	DebtAmount           decimal.Decimal `json:"debt_amount"`
	PaymentDeadline      string          `json:"payment_deadline"`
	FinalPayout          decimal.Decimal `json:"final_payout"`
	BankID               *uuid.UUID      `json:"bank_id,omitempty"`
	ConfirmationDate     string          `json:"confirmation_date,omitempty"`
	Confirmed            bool            `json:"confirmed"`
	Notes                string          `json:"notes"`
}

// LineItemDetailResponse is a line item with the names shown on the week page
type LineItemDetailResponse struct {
	LineItemResponse
	OwnerName     string `json:"owner_name"`
	OwnerInitials string `json:"owner_initials"`
	Plate         string `json:"plate"`
	BrandModel    string `json:"brand_model"`
	TenantName    string `json:"tenant_name"`
	TenantPhone   string `json:"tenant_phone"`
	BankName      string `json:"bank_name,omitempty"`
}

// WeekDetailResponse represents a week with its enriched items
type WeekDetailResponse struct {
	WeekResponse
	ProfitPercentage *ProfitPercentageResponse `json:"profit_percentage,omitempty"`
	DaysWorked       int                       `json:"days_worked"`
	Unconfirmed      int                       `json:"unconfirmed"`
	Items            []LineItemDetailResponse  `json:"items"`
}

// WeekStatsResponse represents the counters above the week list
type WeekStatsResponse struct {
	TotalWeeks         int64           `json:"total_weeks"`
	OpenWeeks          int64           `json:"open_weeks"`
	UnconfirmedItems   int64           `json:"unconfirmed_items"`
	CurrentMonthIncome decimal.Decimal `json:"current_month_income"`
}

// WeekListResponse represents a page of weeks with the list counters
type WeekListResponse struct {
	Weeks shared.Paginated[WeekResponse] `json:"weeks"`
	Stats WeekStatsResponse              `json:"stats"`
}

// AvailableRentalResponse represents a rental overlapping a week but not on it
type AvailableRentalResponse struct {
	RentalID    uuid.UUID       `json:"rental_id"`
	VehicleID   uuid.UUID       `json:"vehicle_id"`
	Plate       string          `json:"plate"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	TenantName  string          `json:"tenant_name"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	WeeklyPrice decimal.Decimal `json:"weekly_price"`
}

// VehicleOption is a vehicle selectable for a week
type VehicleOption struct {
	ID          uuid.UUID       `json:"id"`
	Plate       string          `json:"plate"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	WeeklyPrice decimal.Decimal `json:"weekly_price"`
}

// TenantOption is a tenant selectable for a week
type TenantOption struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone"`
}

// AvailableResponse lists vehicles and tenants not yet on a week
type AvailableResponse struct {
	Vehicles []VehicleOption `json:"vehicles"`
	Tenants  []TenantOption  `json:"tenants"`
}

// BankOption is a bank for the payment confirmation select
type BankOption struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"account_number"`
}

// ProfitPercentageResponse represents a profit percentage
type ProfitPercentageResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Percentage  decimal.Decimal `json:"percentage"`
	Active      bool            `json:"active"`
	IsDefault   bool            `json:"is_default"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BatchEditResponse reports how many items a batch save changed
type BatchEditResponse struct {
	Updated int          `json:"updated"`
	Week    WeekResponse `json:"week"`
}

// ToWeekResponse converts a domain Week to WeekResponse
func ToWeekResponse(w *settlement.Week) WeekResponse {
	deadline := w.PaymentDeadline()
	return WeekResponse{
		ID:                 w.ID,
		StartDate:          w.StartDate.Format(valueobject.DateLayout),
		EndDate:            w.EndDate.Format(valueobject.DateLayout),
		WeekNumber:         w.WeekNumber,
		Year:               w.Year,
		ProfitPercentageID: w.ProfitPercentageID,
		Status:             string(w.Status),
		Notes:              w.Notes,
		VehicleCount:       w.VehicleCount,
		OwnerCount:         w.OwnerCount,
		TenantCount:        w.TenantCount,
		TotalIncome:        w.TotalIncome,
		PaymentDeadline:    valueobject.FormatDate(&deadline),
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}

// ToLineItemResponse converts a domain LineItem to LineItemResponse
func ToLineItemResponse(i *settlement.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:                   i.ID,
		WeekID:               i.WeekID,
		RentalID:             i.RentalID,
		VehicleID:            i.VehicleID,
		TenantID:             i.TenantID,
		OwnerID:              i.OwnerID,
		WeeklyPrice:          i.WeeklyPrice,
		DaysWorked:           i.DaysWorked,
		Income:               i.Income,
		MechanicalInvestment: i.MechanicalInvestment,
		InvestmentConcept:    i.InvestmentConcept,
		DiscountAmount:       i.DiscountAmount,
		DiscountConcept:      i.DiscountConcept,
		CompanyPercentage:    i.CompanyPercentage,
		CompanyCut:           i.CompanyCut,
		HasDebt:              i.HasDebt,
		DebtAmount:           i.DebtAmount,
		PaymentDeadline:      valueobject.FormatDate(&i.PaymentDeadline),
		FinalPayout:          i.FinalPayout,
		BankID:               i.BankID,
		ConfirmationDate:     valueobject.FormatDate(i.ConfirmationDate),
		Confirmed:            i.Confirmed,
		Notes:                i.Notes,
	}
}

// ToLineItemDetailResponse converts a joined item detail
func ToLineItemDetailResponse(d *settlement.ItemDetail) LineItemDetailResponse {
	return LineItemDetailResponse{
		LineItemResponse: ToLineItemResponse(&d.LineItem),
		OwnerName:        d.OwnerName,
		OwnerInitials:    party.Initials(d.OwnerName),
		Plate:            d.Plate,
		BrandModel:       d.BrandModel,
		TenantName:       d.TenantName,
		TenantPhone:      d.TenantPhone,
		BankName:         d.BankName,
	}
}

// ToProfitPercentageResponse converts a domain ProfitPercentage
func ToProfitPercentageResponse(p *settlement.ProfitPercentage) ProfitPercentageResponse {
	return ProfitPercentageResponse{
		ID:          p.ID,
		Description: p.Description,
		Percentage:  p.Percentage,
		Active:      p.Active,
		IsDefault:   p.IsDefault,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
