// Package calendar holds the UTC day arithmetic shared by the API.
package calendar

import (
	"errors"
	"strings"
	"time"
)

// DayLayout is the key format for one calendar day.
const DayLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be RFC3339 or YYYY-MM-DD")

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey formats the UTC calendar day of t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ParseDate accepts a full RFC3339 timestamp or a bare day and returns UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(DayLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
