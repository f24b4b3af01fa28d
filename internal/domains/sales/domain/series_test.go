package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSeries_ZeroFillsMissingDays(t *testing.T) {
	w, err := ComputeWindow(WindowQuery{Days: "3"}, wednesday)
	require.NoError(t, err)

	stats := MergeSeries(w, map[string]decimal.Decimal{
		"2024-03-12": decimal.NewFromInt(150),
		"2024-03-11": decimal.NewFromInt(75),
		"2024-03-10": decimal.NewFromInt(999),
	})

	require.Len(t, stats.Series, 3)
	assert.Equal(t, "2024-03-13", stats.Series[0].Date)
	assert.Equal(t, "Wednesday", stats.Series[0].Day)
	assert.True(t, stats.Series[0].TotalAmountSold.IsZero())
	assert.Equal(t, "2024-03-12", stats.Series[1].Date)
	assert.True(t, stats.Series[1].TotalAmountSold.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "2024-03-11", stats.Series[2].Date)
	assert.True(t, stats.Series[2].TotalAmountSold.Equal(decimal.NewFromInt(75)))

	assert.Equal(t, 3, stats.WindowDays)
	assert.True(t, stats.TotalAmountSold.Equal(decimal.NewFromInt(225)))
}

func TestMergeSeries_NoSales(t *testing.T) {
	w, err := ComputeWindow(WindowQuery{Days: "3"}, wednesday)
	require.NoError(t, err)
	stats := MergeSeries(w, nil)

	require.Len(t, stats.Series, 3)
	for _, point := range stats.Series {
		assert.True(t, point.TotalAmountSold.IsZero())
	}
	assert.True(t, stats.TotalAmountSold.IsZero())
}

func TestMergeSeries_EveryDayAppearsOnce(t *testing.T) {
	w, err := ComputeWindow(WindowQuery{CurrentYear: "1"}, wednesday)
	require.NoError(t, err)
	stats := MergeSeries(w, nil)

	seen := map[string]bool{}
	for _, point := range stats.Series {
		assert.False(t, seen[point.Date], point.Date)
		seen[point.Date] = true
	}
	assert.Len(t, seen, 73)
	assert.True(t, seen["2024-01-01"])
}
