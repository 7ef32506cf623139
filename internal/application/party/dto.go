package party

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/party"
	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentKind names one of the identity documents kept per person
type DocumentKind string

const (
	DocumentID          DocumentKind = "id"
	DocumentLicense     DocumentKind = "license"
	DocumentGoodConduct DocumentKind = "good_conduct"
)

// IsValid reports whether k is a known document kind
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentID, DocumentLicense, DocumentGoodConduct:
		return true
	}
	return false
}

// ErrInvalidDocumentKind is returned for an unknown document kind
var ErrInvalidDocumentKind = shared.NewDomainError("INVALID_INPUT", "Document must be one of id, license, good_conduct")

// ListFilter represents the list query parameters for owners and tenants
type ListFilter struct {
	Search   string     `form:"search"`
	UserID   *uuid.UUID `form:"user_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
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
	if f.UserID != nil {
		filter.Filters["user_id"] = *f.UserID
	}
	return filter.Normalize()
}

// PersonRequest carries the personal fields of an owner or tenant
type PersonRequest struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	IDNumber string `json:"id_number" binding:"max=30"`
	License  string `json:"license" binding:"max=30"`
	Address  string `json:"address" binding:"max=300"`
	Phone    string `json:"phone" binding:"max=30"`
	Email    string `json:"email" binding:"omitempty,email,max=120"`
}

func (r PersonRequest) toData() party.PersonalData {
	return party.PersonalData{
		FullName: r.FullName,
		IDNumber: r.IDNumber,
		License:  r.License,
		Address:  r.Address,
		Phone:    r.Phone,
		Email:    r.Email,
	}
}

// OwnerRequest represents a request to create or update an owner
type OwnerRequest struct {
	PersonRequest
	UserID *uuid.UUID `json:"user_id"`
}

// TenantRequest represents a request to create or update a tenant
type TenantRequest struct {
	PersonRequest
}

// ReferenceRequest represents a personal reference to add
type ReferenceRequest struct {
	FullName       string     `json:"full_name" binding:"required,max=100"`
	RelationshipID *uuid.UUID `json:"relationship_id"`
	Phone          string     `json:"phone" binding:"required,max=30"`
}

// GuarantorRequest represents a guarantor to add to a tenant
type GuarantorRequest struct {
	FullName       string     `json:"full_name" binding:"required,max=100"`
	Address        string     `json:"address" binding:"max=300"`
	Phone          string     `json:"phone" binding:"max=30"`
	Email          string     `json:"email" binding:"omitempty,email,max=120"`
	RelationshipID *uuid.UUID `json:"relationship_id"`
}

// DocumentsResponse lists the stored documents with their public URLs
type DocumentsResponse struct {
	IDPath          string `json:"id_path"`
	IDURL           string `json:"id_url,omitempty"`
	LicensePath     string `json:"license_path"`
	LicenseURL      string `json:"license_url,omitempty"`
	GoodConductPath string `json:"good_conduct_path"`
	GoodConductURL  string `json:"good_conduct_url,omitempty"`
}

// ReferenceResponse represents a personal reference
type ReferenceResponse struct {
	ID             uuid.UUID  `json:"id"`
	FullName       string     `json:"full_name"`
	RelationshipID *uuid.UUID `json:"relationship_id,omitempty"`
	Phone          string     `json:"phone"`
}

// GuarantorResponse represents a tenant guarantor
type GuarantorResponse struct {
	ID                  uuid.UUID  `json:"id"`
	FullName            string     `json:"full_name"`
	Address             string     `json:"address"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email"`
	RelationshipID      *uuid.UUID `json:"relationship_id,omitempty"`
	EmploymentLetterURL string     `json:"employment_letter_url,omitempty"`
}

// PersonResponse carries the personal fields shared by owners and tenants
type PersonResponse struct {
	ID        uuid.UUID         `json:"id"`
	FullName  string            `json:"full_name"`
	Initials  string            `json:"initials"`
	IDNumber  string            `json:"id_number"`
	License   string            `json:"license"`
	Address   string            `json:"address"`
	Phone     string            `json:"phone"`
	Email     string            `json:"email"`
	Documents DocumentsResponse `json:"documents"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// OwnerResponse represents an owner in API responses
type OwnerResponse struct {
	PersonResponse
	UserID     *uuid.UUID          `json:"user_id,omitempty"`
	References []ReferenceResponse `json:"references"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	PersonResponse
	Guarantors []GuarantorResponse `json:"guarantors"`
	References []ReferenceResponse `json:"references"`
}

func (s *Service) toPersonResponse(base *shared.BaseAggregateRoot, data party.PersonalData, docs party.Documents) PersonResponse {
	return PersonResponse{
		ID:       base.ID,
		FullName: data.FullName,
		Initials: party.Initials(data.FullName),
		IDNumber: data.IDNumber,
		License:  data.License,
		Address:  data.Address,
		Phone:    data.Phone,
		Email:    data.Email,
		Documents: DocumentsResponse{
			IDPath:          docs.IDPath,
			IDURL:           s.uploads.URL(docs.IDPath),
			LicensePath:     docs.LicensePath,
			LicenseURL:      s.uploads.URL(docs.LicensePath),
			GoodConductPath: docs.GoodConductPath,
			GoodConductURL:  s.uploads.URL(docs.GoodConductPath),
		},
		CreatedAt: base.CreatedAt,
		UpdatedAt: base.UpdatedAt,
	}
}

func (s *Service) toOwnerResponse(o *party.Owner) OwnerResponse {
	return OwnerResponse{
		PersonResponse: s.toPersonResponse(&o.BaseAggregateRoot, o.PersonalData, o.Documents),
		UserID:         o.UserID,
		References:     toReferenceResponses(o.References),
	}
}

func (s *Service) toTenantResponse(t *party.Tenant) TenantResponse {
	guarantors := make([]GuarantorResponse, len(t.Guarantors))
	for i, g := range t.Guarantors {
		guarantors[i] = GuarantorResponse{
			ID:                  g.ID,
			FullName:            g.FullName,
			Address:             g.Address,
			Phone:               g.Phone,
			Email:               g.Email,
			RelationshipID:      g.RelationshipID,
			EmploymentLetterURL: s.uploads.URL(g.EmploymentLetterPath),
		}
	}
	return TenantResponse{
		PersonResponse: s.toPersonResponse(&t.BaseAggregateRoot, t.PersonalData, t.Documents),
		Guarantors:     guarantors,
		References:     toReferenceResponses(t.References),
	}
}

func toReferenceResponses(refs []party.Reference) []ReferenceResponse {
	out := make([]ReferenceResponse, len(refs))
	for i, r := range refs {
		out[i] = ReferenceResponse{
			ID:             r.ID,
			FullName:       r.FullName,
			RelationshipID: r.RelationshipID,
			Phone:          r.Phone,
		}
	}
	return out
}

// documentSlot returns the field of docs holding kind
func documentSlot(docs *party.Documents, kind DocumentKind) *string {
	switch kind {
	case DocumentID:
		return &docs.IDPath
	case DocumentLicense:
		return &docs.LicensePath
	case DocumentGoodConduct:
		return &docs.GoodConductPath
	}
	return nil
}
