package party

import (
	"regexp"
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PersonalData are the identifying fields shared by owners and tenants.
// IDNumber, License, Address and Phone are stored encrypted.
type PersonalData struct {
	FullName string
	IDNumber string
	License  string
	Address  string
	Phone    string
	Email    string
}

// Documents holds relative paths of uploaded identity documents
type Documents struct {
	IDPath          string
	LicensePath     string
	GoodConductPath string
}

var (
	spaces       = regexp.MustCompile(`\s+`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nameCaser    = cases.Title(language.Spanish)
)

// NormalizeName collapses whitespace and title-cases a person name
// ("  maría  DE los ángeles" -> "María De Los Ángeles").
func NormalizeName(name string) string {
	name = spaces.ReplaceAllString(strings.TrimSpace(name), " ")
	return nameCaser.String(strings.ToLower(name))
}

// Normalize trims every field and title-cases the name
func (p PersonalData) Normalize() PersonalData {
	return PersonalData{
		FullName: NormalizeName(p.FullName),
		IDNumber: strings.TrimSpace(p.IDNumber),
		License:  strings.TrimSpace(p.License),
		Address:  strings.TrimSpace(p.Address),
		Phone:    strings.TrimSpace(p.Phone),
		Email:    strings.ToLower(strings.TrimSpace(p.Email)),
	}
}

// Validate checks the required fields of normalized data
func (p PersonalData) Validate() error {
	if p.FullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name is required")
	}
	if len(p.FullName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 100 characters")
	}
	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

// Initials returns up to two upper-case initials of the name
func Initials(name string) string {
	initials := make([]rune, 0, 2)
	for _, part := range strings.Fields(name) {
		initials = append(initials, []rune(part)[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}
