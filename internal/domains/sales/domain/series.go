package domain

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/cell-tech-api/internal/shared/calendar"
)

// DailyTotal is one point of the dense statistics series.
type DailyTotal struct {
	Date            string
	Day             string
	TotalAmountSold decimal.Decimal
}

// Statistics is the dense series plus its roll-up.
type Statistics struct {
	WindowDays      int
	TotalAmountSold decimal.Decimal
	Series          []DailyTotal
}

// MergeSeries zero-fills the sparse per-day sums over the window, today first.
// Keys of sparse are calendar.DayLayout strings; keys outside the window are ignored.
func MergeSeries(w Window, sparse map[string]decimal.Decimal) Statistics {
	stats := Statistics{
		WindowDays:      w.Days,
		TotalAmountSold: decimal.Zero,
		Series:          make([]DailyTotal, 0, w.Days),
	}
	for _, day := range w.Dates() {
		key := calendar.DayKey(day)
		total, ok := sparse[key]
		if !ok {
			total = decimal.Zero
		}
		stats.Series = append(stats.Series, DailyTotal{
			Date:            key,
			Day:             day.Weekday().String(),
			TotalAmountSold: total,
		})
		stats.TotalAmountSold = stats.TotalAmountSold.Add(total)
	}
	return stats
}
