package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter narrows sales for listing and aggregation.
type Filter struct {
	Since    time.Time
	SellerID *uuid.UUID
}

// Matches reports whether a sale falls inside the filter.
func (f Filter) Matches(s *Sale) bool {
	if s == nil {
		return false
	}
	if !f.Since.IsZero() && s.DateSold.Before(f.Since) {
		return false
	}
	if f.SellerID != nil && s.SellerID != *f.SellerID {
		return false
	}
	return true
}

// ProductSummary is the product as seen from a sale. It is nil when the product was deleted.
type ProductSummary struct {
	ID     uuid.UUID
	Name   string
	Price  decimal.Decimal
	Stock  int64
	Sold   int64
	Status bool
	Brand  string
	Model  string
}

// SellerSummary is the public part of the user who made the sale.
type SellerSummary struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Role   string
	Status string
}

// SaleDetails joins a sale with its product and seller.
type SaleDetails struct {
	Sale    *Sale
	Product *ProductSummary
	Seller  SellerSummary
}
