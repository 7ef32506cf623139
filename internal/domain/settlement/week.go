package settlement

import (
	"strings"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Week is the settlement aggregate: a date range, the profit percentage it
// was created with, its line items and the totals derived from them.
type Week struct {
	shared.BaseAggregateRoot
	StartDate          time.Time
	EndDate            time.Time
	WeekNumber         int
	Year               int
	ProfitPercentageID uuid.UUID
	Status             WeekStatus
	Notes              string
	VehicleCount       int
	OwnerCount         int
	TenantCount        int
	TotalIncome        decimal.Decimal
	PaymentWeekday     time.Weekday
	Items              []LineItem
}

// NewWeek creates an open week for period
func NewWeek(period valueobject.DateRange, profitPercentageID uuid.UUID, notes string, createdBy uuid.UUID) (*Week, error) {
	if profitPercentageID == uuid.Nil {
		return nil, ErrProfitRequired
	}
	return &Week{
		BaseAggregateRoot:  shared.NewBaseAggregateRootWithCreator(createdBy),
		StartDate:          period.Start(),
		EndDate:            period.End(),
		WeekNumber:         period.ISOWeek(),
		Year:               period.Start().Year(),
		ProfitPercentageID: profitPercentageID,
		Status:             WeekStatusOpen,
		Notes:              strings.TrimSpace(notes),
		TotalIncome:        decimal.Zero,
		PaymentWeekday:     time.Thursday,
		Items:              make([]LineItem, 0),
	}, nil
}

// Period returns the week's date range
func (w *Week) Period() valueobject.DateRange {
	return valueobject.MustNewDateRange(w.StartDate, w.EndDate)
}

// DaysWorked is the number of days covered by the week
func (w *Week) DaysWorked() int {
	return w.Period().Days()
}

// PaymentDeadline is the first payment weekday (Thursday unless configured
// otherwise) on or after the week start
func (w *Week) PaymentDeadline() time.Time {
	return PaymentDeadlineFor(w.StartDate, w.PaymentWeekday)
}

// Populate derives one line item per pairing, using the whole week as
// days worked. A pairing whose vehicle or tenant is already on the week is
// left out and returned.
func (w *Week) Populate(pairings []Pairing, percentage decimal.Decimal, now time.Time, actor uuid.UUID) []Pairing {
	days := w.DaysWorked()
	deadline := w.PaymentDeadline()
	var skipped []Pairing
	for _, p := range pairings {
		if w.HasVehicle(p.VehicleID, uuid.Nil) || w.HasTenant(p.TenantID, uuid.Nil) {
			skipped = append(skipped, p)
			continue
		}
		w.Items = append(w.Items, newLineItem(w.ID, p, days, percentage, deadline, now, actor))
	}
	w.RecalculateTotals()
	return skipped
}

// AddRental appends a line item for a newly created rental. The vehicle
// count is incremented, the income re-summed and the distinct owner and
// tenant counts include the new row.
func (w *Week) AddRental(p Pairing, days int, percentage decimal.Decimal, now time.Time, actor uuid.UUID) (*LineItem, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}
	if w.HasVehicle(p.VehicleID, uuid.Nil) {
		return nil, ErrVehicleAlreadyInWeek
	}
	if w.HasTenant(p.TenantID, uuid.Nil) {
		return nil, ErrTenantAlreadyInWeek
	}
	if p.OwnerID == uuid.Nil {
		return nil, ErrVehicleWithoutOwner
	}

	w.Items = append(w.Items, newLineItem(w.ID, p, days, percentage, w.PaymentDeadline(), now, actor))
	w.VehicleCount++
	w.TotalIncome = w.sumIncome()
	w.OwnerCount, w.TenantCount = w.distinctParties()
	w.MarkUpdatedBy(actor)
	return &w.Items[len(w.Items)-1], nil
}

// RemoveItem deletes a line item from an open week and returns it
func (w *Week) RemoveItem(itemID uuid.UUID, actor uuid.UUID) (LineItem, error) {
	if !w.Status.IsEditable() {
		return LineItem{}, ErrWeekNotOpen
	}
	idx := w.indexOf(itemID)
	if idx < 0 {
		return LineItem{}, ErrItemNotFound
	}
	removed := w.Items[idx]

	if w.VehicleCount > 0 {
		w.VehicleCount--
	}
	w.TotalIncome = w.TotalIncome.Sub(removed.Income)
	w.Items = append(w.Items[:idx], w.Items[idx+1:]...)
	w.OwnerCount, w.TenantCount = w.distinctParties()
	w.MarkUpdatedBy(actor)
	return removed, nil
}

// ApplyEdits applies a batch of edits using RecalculateOnEdit and
// re-sums the week income. Edits for items outside the week are skipped.
// It returns how many items were updated.
func (w *Week) ApplyEdits(edits []LineItemEdit, actor uuid.UUID) (int, error) {
	for _, e := range edits {
		if err := validateDays(e.DaysWorked); err != nil {
			return 0, err
		}
		if e.WeeklyPrice.IsNegative() {
			return 0, ErrNegativePrice
		}
	}

	updated := 0
	for _, e := range edits {
		idx := w.indexOf(e.ItemID)
		if idx < 0 {
			continue
		}
		w.Items[idx].applyEdit(e, actor)
		updated++
	}
	w.TotalIncome = w.sumIncome()
	w.MarkUpdatedBy(actor)
	return updated, nil
}

// EditItem replaces vehicle, tenant and amounts of an item in an open week
// using RecalculateOnFullEdit, then recomputes every total.
func (w *Week) EditItem(itemID uuid.UUID, e FullEdit, actor uuid.UUID) (*LineItem, error) {
	if !w.Status.IsEditable() {
		return nil, ErrWeekNotOpen
	}
	idx := w.indexOf(itemID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	if err := validateDays(e.DaysWorked); err != nil {
		return nil, err
	}
	if e.WeeklyPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if w.HasVehicle(e.VehicleID, itemID) {
		return nil, ErrVehicleAlreadyInWeek
	}
	if w.HasTenant(e.TenantID, itemID) {
		return nil, ErrTenantAlreadyInWeek
	}
	if e.OwnerID == uuid.Nil {
		return nil, ErrVehicleWithoutOwner
	}

	w.Items[idx].applyFullEdit(e, actor)
	w.RecalculateTotals()
	w.MarkUpdatedBy(actor)
	return &w.Items[idx], nil
}

// Close moves the week from open to closed
func (w *Week) Close(actor uuid.UUID) error {
	if w.Status == WeekStatusClosed {
		return ErrWeekAlreadyClosed
	}
	if !w.Status.CanTransitionTo(WeekStatusClosed) {
		return ErrWeekNotOpen
	}
	w.Status = WeekStatusClosed
	w.MarkUpdatedBy(actor)
	return nil
}

// CheckDeletable allows deleting an empty week to anyone and a populated
// week only to an administrator.
func (w *Week) CheckDeletable(isAdmin bool) error {
	if len(w.Items) > 0 && !isAdmin {
		return ErrDeleteRequiresAdmin
	}
	return nil
}

// RecalculateTotals derives all four totals from the live items
func (w *Week) RecalculateTotals() {
	w.VehicleCount = w.distinctVehicles()
	w.OwnerCount, w.TenantCount = w.distinctParties()
	w.TotalIncome = w.sumIncome()
}

// HasVehicle reports whether another item (not except) uses vehicleID
func (w *Week) HasVehicle(vehicleID, except uuid.UUID) bool {
	for _, it := range w.Items {
		if it.VehicleID == vehicleID && it.ID != except {
			return true
		}
	}
	return false
}

// HasTenant reports whether another item (not except) uses tenantID
func (w *Week) HasTenant(tenantID, except uuid.UUID) bool {
	for _, it := range w.Items {
		if it.TenantID == tenantID && it.ID != except {
			return true
		}
	}
	return false
}

// Item returns the line item with the given ID
func (w *Week) Item(itemID uuid.UUID) (*LineItem, bool) {
	idx := w.indexOf(itemID)
	if idx < 0 {
		return nil, false
	}
	return &w.Items[idx], true
}

// UnconfirmedCount counts items whose payment is not yet confirmed
func (w *Week) UnconfirmedCount() int {
	n := 0
	for _, it := range w.Items {
		if !it.Confirmed {
			n++
		}
	}
	return n
}

func (w *Week) indexOf(itemID uuid.UUID) int {
	for i := range w.Items {
		if w.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (w *Week) sumIncome() decimal.Decimal {
	total := decimal.Zero
	for _, it := range w.Items {
		total = total.Add(it.Income)
	}
	return total
}

func (w *Week) distinctVehicles() int {
	seen := make(map[uuid.UUID]struct{}, len(w.Items))
	for _, it := range w.Items {
		seen[it.VehicleID] = struct{}{}
	}
	return len(seen)
}

func (w *Week) distinctParties() (owners, tenants int) {
	o := make(map[uuid.UUID]struct{}, len(w.Items))
	t := make(map[uuid.UUID]struct{}, len(w.Items))
	for _, it := range w.Items {
		o[it.OwnerID] = struct{}{}
		t[it.TenantID] = struct{}{}
	}
	return len(o), len(t)
}
