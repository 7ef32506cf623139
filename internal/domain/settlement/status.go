package settlement

// WeekStatus is the lifecycle state of a settlement week
type WeekStatus string

const (
	WeekStatusOpen      WeekStatus = "abierta"
	WeekStatusClosed    WeekStatus = "cerrada"
	WeekStatusCancelled WeekStatus = "cancelada" // stored only; no transition leads here
)

// IsValid reports whether s is a known status
func (s WeekStatus) IsValid() bool {
	switch s {
	case WeekStatusOpen, WeekStatusClosed, WeekStatusCancelled:
		return true
	}
	return false
}

// String returns the stored value
func (s WeekStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the week may move from s to target.
// The only transition is open -> closed; there is no way back.
func (s WeekStatus) CanTransitionTo(target WeekStatus) bool {
	return s == WeekStatusOpen && target == WeekStatusClosed
}

// IsEditable reports whether line items may be removed or fully edited
func (s WeekStatus) IsEditable() bool {
	return s == WeekStatusOpen
}
