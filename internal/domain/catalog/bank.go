package catalog

import (
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Bank is a company bank account used to confirm payouts.
// AccountNumber and HolderIDNumber are stored encrypted.
type Bank struct {
	shared.BaseAggregateRoot
	Name              string
	AccountNumber     string
	AccountTypeID     *uuid.UUID
	HolderIDNumber    string
	AdministratorName string
	LogoPath          string
	Description       string
}

// BankInput carries the editable bank fields
type BankInput struct {
	Name              string
	AccountNumber     string
	AccountTypeID     *uuid.UUID
	HolderIDNumber    string
	AdministratorName string
	Description       string
}

// NewBank validates and creates a bank entry
func NewBank(in BankInput, createdBy uuid.UUID) (*Bank, error) {
	b := &Bank{BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy)}
	if err := b.Update(in, createdBy); err != nil {
		return nil, err
	}
	return b, nil
}

// Update replaces the editable fields
func (b *Bank) Update(in BankInput, updatedBy uuid.UUID) error {
	name := strings.TrimSpace(in.Name)
	account := strings.TrimSpace(in.AccountNumber)
	if name == "" {
		return shared.NewDomainError("INVALID_BANK", "Bank name is required")
	}
	if account == "" {
		return shared.NewDomainError("INVALID_BANK", "Account number is required")
	}
	b.Name = name
	b.AccountNumber = account
	b.AccountTypeID = in.AccountTypeID
	b.HolderIDNumber = strings.TrimSpace(in.HolderIDNumber)
	b.AdministratorName = strings.TrimSpace(in.AdministratorName)
	b.Description = strings.TrimSpace(in.Description)
	b.MarkUpdatedBy(updatedBy)
	return nil
}

// SetLogo stores the uploaded logo path
func (b *Bank) SetLogo(path string) {
	b.LogoPath = path
}

// MaskedAccount shows only the last four digits
func (b *Bank) MaskedAccount() string {
	n := len(b.AccountNumber)
	if n <= 4 {
		return b.AccountNumber
	}
	return strings.Repeat("*", n-4) + b.AccountNumber[n-4:]
}
