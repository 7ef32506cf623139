package catalog

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/catalog"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ListFilter represents the common list query parameters
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
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
	return filter.Normalize()
}

// BrandModelRequest represents a request to create or update a brand/model
type BrandModelRequest struct {
	Brand       string `json:"brand" form:"brand" binding:"required,max=50"`
	Model       string `json:"model" form:"model" binding:"required,max=50"`
	Type        string `json:"type" form:"type" binding:"max=30"`
	Description string `json:"description" form:"description" binding:"max=500"`
}

// BrandModelResponse represents a brand/model in API responses
type BrandModelResponse struct {
	ID          uuid.UUID `json:"id"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Label       string    `json:"label"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	LogoPath    string    `json:"logo_path"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BankRequest represents a request to create or update a bank account
type BankRequest struct {
	Name              string     `json:"name" form:"name" binding:"required,max=100"`
	AccountNumber     string     `json:"account_number" form:"account_number" binding:"required,max=40"`
	AccountTypeID     *uuid.UUID `json:"account_type_id" form:"account_type_id"`
	HolderIDNumber    string     `json:"holder_id_number" form:"holder_id_number" binding:"max=30"`
	AdministratorName string     `json:"administrator_name" form:"administrator_name" binding:"max=150"`
	Description       string     `json:"description" form:"description" binding:"max=500"`
}

func (r BankRequest) toInput() catalog.BankInput {
	return catalog.BankInput{
		Name:              r.Name,
		AccountNumber:     r.AccountNumber,
		AccountTypeID:     r.AccountTypeID,
		HolderIDNumber:    r.HolderIDNumber,
		AdministratorName: r.AdministratorName,
		Description:       r.Description,
	}
}

// BankResponse represents a bank account in API responses
type BankResponse struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	AccountNumber     string     `json:"account_number"`
	MaskedAccount     string     `json:"masked_account"`
	AccountTypeID     *uuid.UUID `json:"account_type_id,omitempty"`
	HolderIDNumber    string     `json:"holder_id_number"`
	AdministratorName string     `json:"administrator_name"`
	Description       string     `json:"description"`
	LogoPath          string     `json:"logo_path"`
	LogoURL           string     `json:"logo_url,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// LookupRequest represents a request to create or update a lookup entry
type LookupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// LookupResponse represents a lookup entry in API responses
type LookupResponse struct {
	ID          uuid.UUID          `json:"id"`
	Kind        catalog.LookupKind `json:"kind"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (s *Service) toBrandModelResponse(b *catalog.BrandModel) BrandModelResponse {
	return BrandModelResponse{
		ID:          b.ID,
		Brand:       b.Brand,
		Model:       b.Model,
		Label:       b.Label(),
		Type:        b.Type,
		Description: b.Description,
		LogoPath:    b.LogoPath,
		LogoURL:     s.uploads.URL(b.LogoPath),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (s *Service) toBankResponse(b *catalog.Bank) BankResponse {
	return BankResponse{
		ID:                b.ID,
		Name:              b.Name,
		AccountNumber:     b.AccountNumber,
		MaskedAccount:     b.MaskedAccount(),
		AccountTypeID:     b.AccountTypeID,
		HolderIDNumber:    b.HolderIDNumber,
		AdministratorName: b.AdministratorName,
		Description:       b.Description,
		LogoPath:          b.LogoPath,
		LogoURL:           s.uploads.URL(b.LogoPath),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// ToLookupResponse converts a domain LookupEntry
func ToLookupResponse(e *catalog.LookupEntry) LookupResponse {
	return LookupResponse{
		ID:          e.ID,
		Kind:        e.Kind,
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
