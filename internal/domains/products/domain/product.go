package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("product name is required")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrNegativeStock     = errors.New("stock must not be negative")
	ErrNegativeSold      = errors.New("sold must not be negative")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("quantity sold is more than available stock")
)

// Specs holds the phone attributes shown in the catalogue.
type Specs struct {
	Brand           string
	Model           string
	OperatingSystem string
	Storage         string
	ReleaseDate     *time.Time
	Features        map[string]string
}

// Product is a sellable inventory line. Status is derived: true iff Stock > 0.
type Product struct {
	ID     uuid.UUID
	Name   string
	Price  decimal.Decimal
	Stock  int64
	Sold   int64
	Status bool
	Specs  Specs
}

// NewProduct validates and constructs a product with zero units sold.
func NewProduct(name string, price decimal.Decimal, stock int64, specs Specs) (*Product, error) {
	p := &Product{Specs: specs}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reprice(price); err != nil {
		return nil, err
	}
	if err := p.SetStock(stock); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename trims and validates the name.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice sets a non-negative price.
func (p *Product) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// SetStock overwrites available units and re-derives status.
func (p *Product) SetStock(stock int64) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.Stock = stock
	p.refreshStatus()
	return nil
}

// SetSold overwrites the cumulative sold counter.
func (p *Product) SetSold(sold int64) error {
	if sold < 0 {
		return ErrNegativeSold
	}
	p.Sold = sold
	return nil
}

// Withdraw moves qty units from stock to sold. Nothing changes on error.
func (p *Product) Withdraw(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	p.Sold += qty
	p.refreshStatus()
	return nil
}

// Restore reverses a Withdraw.
func (p *Product) Restore(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	p.Stock += qty
	p.Sold -= qty
	if p.Sold < 0 {
		p.Sold = 0
	}
	p.refreshStatus()
	return nil
}

// Validate re-applies invariants before persistence.
func (p *Product) Validate() error {
	if err := p.Rename(p.Name); err != nil {
		return err
	}
	if err := p.Reprice(p.Price); err != nil {
		return err
	}
	if err := p.SetSold(p.Sold); err != nil {
		return err
	}
	return p.SetStock(p.Stock)
}

// Clone returns a deep copy.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Specs.ReleaseDate != nil {
		date := *p.Specs.ReleaseDate
		clone.Specs.ReleaseDate = &date
	}
	if p.Specs.Features != nil {
		clone.Specs.Features = make(map[string]string, len(p.Specs.Features))
		for k, v := range p.Specs.Features {
			clone.Specs.Features[k] = v
		}
	}
	return &clone
}

func (p *Product) refreshStatus() {
	p.Status = p.Stock > 0
}
