package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingSaleID   = errors.New("sale id is required")
	ErrMissingProduct  = errors.New("product id is required")
	ErrMissingSeller   = errors.New("seller id is required")
	ErrInvalidQuantity = errors.New("quantity sold must be positive")
	ErrNegativeAmount  = errors.New("total amount must not be negative")
	ErrMissingDate     = errors.New("date sold is required")
)

// Sale is an immutable record of units leaving stock.
type Sale struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	SellerID     uuid.UUID
	QuantitySold int64
	TotalAmount  decimal.Decimal
	DateSold     time.Time
}

// NewSale validates the inputs and normalizes the sale date to UTC.
func NewSale(id, productID, sellerID uuid.UUID, quantity int64, total decimal.Decimal, dateSold time.Time) (*Sale, error) {
	s := &Sale{
		ID:           id,
		ProductID:    productID,
		SellerID:     sellerID,
		QuantitySold: quantity,
		TotalAmount:  total,
		DateSold:     dateSold.UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sale) Validate() error {
	switch {
	case s.ID == uuid.Nil:
		return ErrMissingSaleID
	case s.ProductID == uuid.Nil:
		return ErrMissingProduct
	case s.SellerID == uuid.Nil:
		return ErrMissingSeller
	case s.QuantitySold <= 0:
		return ErrInvalidQuantity
	case s.TotalAmount.IsNegative():
		return ErrNegativeAmount
	case s.DateSold.IsZero():
		return ErrMissingDate
	}
	return nil
}

// Clone returns a copy safe to hand across adapter boundaries.
func (s *Sale) Clone() *Sale {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
