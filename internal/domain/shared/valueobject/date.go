package valueobject

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for a date not in YYYY-MM-DD form
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDate parses a YYYY-MM-DD date as midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseOptionalDate is ParseDate for optional fields: blank yields nil
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders t as YYYY-MM-DD; nil renders empty
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// MonthBounds returns the first and last day of t's month
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
