package money

import (
	"github.com/shopspring/decimal"
)

// Amount is a decimal that serializes as a bare JSON number.
type Amount decimal.Decimal

func FromDecimal(d decimal.Decimal) Amount { return Amount(d) }

func (a Amount) Decimal() decimal.Decimal { return decimal.Decimal(a) }

func (a Amount) String() string { return decimal.Decimal(a).String() }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

// UnmarshalJSON accepts both numbers and quoted numeric strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}
