package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewSale_NormalizesDateToUTC(t *testing.T) {
	dhaka := time.FixedZone("BDT", 6*60*60)
	sale, err := NewSale(uuid.New(), uuid.New(), uuid.New(), 2, decimal.NewFromInt(20), time.Date(2024, 3, 10, 3, 0, 0, 0, dhaka))
	require.NoError(t, err)
	require.Equal(t, time.UTC, sale.DateSold.Location())
	require.Equal(t, 9, sale.DateSold.Day())
}

func TestNewSale_Validation(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name     string
		id       uuid.UUID
		product  uuid.UUID
		seller   uuid.UUID
		quantity int64
		total    decimal.Decimal
		date     time.Time
		want     error
	}{
		{"missing id", uuid.Nil, uuid.New(), uuid.New(), 1, decimal.Zero, now, ErrMissingSaleID},
		{"missing product", uuid.New(), uuid.Nil, uuid.New(), 1, decimal.Zero, now, ErrMissingProduct},
		{"missing seller", uuid.New(), uuid.New(), uuid.Nil, 1, decimal.Zero, now, ErrMissingSeller},
		{"zero quantity", uuid.New(), uuid.New(), uuid.New(), 0, decimal.Zero, now, ErrInvalidQuantity},
		{"negative amount", uuid.New(), uuid.New(), uuid.New(), 1, decimal.NewFromInt(-1), now, ErrNegativeAmount},
		{"missing date", uuid.New(), uuid.New(), uuid.New(), 1, decimal.Zero, time.Time{}, ErrMissingDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSale(tc.id, tc.product, tc.seller, tc.quantity, tc.total, tc.date)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	seller := uuid.New()
	since := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	sale := &Sale{SellerID: seller, DateSold: since}

	require.True(t, Filter{Since: since}.Matches(sale))
	require.True(t, Filter{Since: since, SellerID: &seller}.Matches(sale))

	other := uuid.New()
	require.False(t, Filter{SellerID: &other}.Matches(sale))
	require.False(t, Filter{Since: since.Add(time.Second)}.Matches(sale))
}
