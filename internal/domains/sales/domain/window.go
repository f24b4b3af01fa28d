package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Apurer/cell-tech-api/internal/shared/calendar"
)

// MaxWindowDays is the largest explicit day count a query may ask for.
const MaxWindowDays = 3660

// ErrWindowTooLarge reports a days selector above MaxWindowDays.
var ErrWindowTooLarge = errors.New("window is too large")

// WindowQuery carries the raw window selectors from a request.
type WindowQuery struct {
	Days         string
	CurrentYear  string
	CurrentMonth string
	CurrentWeek  string
}

// Window is the trailing span of UTC calendar days a query covers.
// Since is midnight of Today minus Days, so the filter reaches one day
// further back than the dense series.
type Window struct {
	Days  int
	Since time.Time
	Today time.Time
}

// ComputeWindow picks the window size; the first matching selector wins:
// days, currentYear, currentMonth, currentWeek, then a one day default.
// Weeks start on Sunday, so a Sunday request for the current week is empty.
func ComputeWindow(q WindowQuery, now time.Time) (Window, error) {
	today := calendar.StartOfDay(now)
	days := 1
	switch {
	case positiveInt(q.Days) > 0:
		days = positiveInt(q.Days)
	case flagSet(q.CurrentYear):
		days = today.YearDay()
	case flagSet(q.CurrentMonth):
		days = today.Day()
	case flagSet(q.CurrentWeek):
		days = int(today.Weekday())
	}
	if days > MaxWindowDays {
		return Window{}, fmt.Errorf("%w: %d days, at most %d", ErrWindowTooLarge, days, MaxWindowDays)
	}
	return Window{
		Days:  days,
		Since: today.AddDate(0, 0, -days),
		Today: today,
	}, nil
}

// Dates lists the window's days, today first.
func (w Window) Dates() []time.Time {
	out := make([]time.Time, 0, w.Days)
	for i := 0; i < w.Days; i++ {
		out = append(out, w.Today.AddDate(0, 0, -i))
	}
	return out
}

func positiveInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// flagSet accepts any positive number or an explicit true/yes.
func flagSet(raw string) bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "true", "yes":
		return true
	case "":
		return false
	}
	n, err := strconv.ParseFloat(raw, 64)
	return err == nil && n > 0
}
