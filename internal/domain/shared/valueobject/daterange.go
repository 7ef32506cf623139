package valueobject

import (
	"errors"
	"time"
)

// ErrInvalidDateRange is returned when an end date precedes its start date
var ErrInvalidDateRange = errors.New("end date cannot be before start date")

// DateRange is an inclusive range of calendar days.
// Both bounds are truncated to midnight UTC.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange creates a validated inclusive date range
func NewDateRange(start, end time.Time) (DateRange, error) {
	s := TruncateDay(start)
	e := TruncateDay(end)
	if e.Before(s) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: s, end: e}, nil
}

// MustNewDateRange panics on an invalid range; for tests and constants
func MustNewDateRange(start, end time.Time) DateRange {
	r, err := NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Start returns the first day of the range
func (r DateRange) Start() time.Time {
	return r.start
}

// End returns the last day of the range
func (r DateRange) End() time.Time {
	return r.end
}

// Days returns the number of calendar days covered, both ends included
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// Overlaps reports whether other shares at least one day with r
func (r DateRange) Overlaps(other DateRange) bool {
	return !other.start.After(r.end) && !other.end.Before(r.start)
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateDay(t)
	return !d.Before(r.start) && !d.After(r.end)
}

// Equals compares both bounds
func (r DateRange) Equals(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

// ISOWeek returns the ISO-8601 week number of the start day
func (r DateRange) ISOWeek() int {
	_, w := r.start.ISOWeek()
	return w
}

// TruncateDay drops the clock part of t, keeping its calendar date, in UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
