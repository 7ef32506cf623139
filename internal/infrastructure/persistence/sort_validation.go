package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to every table
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = withCommon("username", "first_name", "last_name", "email", "role", "active")

// PartySortFields contains allowed sort fields for owners and tenants.
// Encrypted columns are not sortable.
var PartySortFields = withCommon("full_name", "email")

// VehicleSortFields contains allowed sort fields for vehicles
var VehicleSortFields = withCommon("plate", "year", "color", "weekly_price", "available")

// RentalSortFields contains allowed sort fields for rentals
var RentalSortFields = withCommon("start_date", "end_date", "income", "week_number")

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = withCommon("payment_date", "amount", "net")

// DebtSortFields contains allowed sort fields for debts
var DebtSortFields = withCommon("due_date", "amount", "status", "days_late")

// CatalogSortFields contains allowed sort fields for brand models, banks,
// mechanics and parts
var CatalogSortFields = withCommon("name", "brand", "model", "type", "speciality", "cost", "active")

// WorkOrderSortFields contains allowed sort fields for work orders
var WorkOrderSortFields = withCommon("start_date", "end_date", "cost", "status")

func withCommon(fields ...string) map[string]bool {
	m := make(map[string]bool, len(CommonSortFields)+len(fields))
	for k := range CommonSortFields {
		m[k] = true
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}
