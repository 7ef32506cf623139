package settlement

import "github.com/alexrentacar/backoffice/internal/domain/shared"

// Settlement errors. Codes are shared with the generic sentinels where the
// HTTP mapping is the same, so errors.Is(err, shared.ErrInvalidState) holds.
var (
	ErrInvalidDateRange     = shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	ErrWeekExists           = shared.NewDomainError("ALREADY_EXISTS", "A settlement week already exists for these dates")
	ErrWeekNotOpen          = shared.NewDomainError("INVALID_STATE", "Settlement week is not open")
	ErrWeekAlreadyClosed    = shared.NewDomainError("INVALID_STATE", "Settlement week is already closed")
	ErrVehicleAlreadyInWeek = shared.NewDomainError("DUPLICATE_VEHICLE", "This vehicle is already in this week")
	ErrTenantAlreadyInWeek  = shared.NewDomainError("DUPLICATE_TENANT", "This tenant already has a vehicle assigned in this week")
	ErrItemNotFound         = shared.NewDomainError("NOT_FOUND", "Line item not found in this week")
	ErrDeleteRequiresAdmin  = shared.NewDomainError("FORBIDDEN", "Only an administrator can delete a week that has line items")
	ErrVehicleWithoutOwner  = shared.NewDomainError("VEHICLE_WITHOUT_OWNER", "The vehicle has no owner assigned")
	ErrNoRentalStatus       = shared.NewDomainError("INVALID_STATE", "No rental statuses are configured")
	ErrPercentageInUse      = shared.NewDomainError("IN_USE", "Profit percentage is used by one or more weeks")
	ErrProfitRequired       = shared.NewDomainError("INVALID_INPUT", "Profit percentage is required")
	ErrUnknownBank          = shared.NewDomainError("INVALID_INPUT", "Bank does not exist")
	ErrNegativePrice        = shared.NewDomainError("INVALID_PRICE", "Weekly price cannot be negative")
)
