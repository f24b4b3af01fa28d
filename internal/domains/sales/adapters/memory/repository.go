package memory

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productdomain "github.com/Apurer/cell-tech-api/internal/domains/products/domain"
	producttypes "github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
	productports "github.com/Apurer/cell-tech-api/internal/domains/products/ports"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
	userdomain "github.com/Apurer/cell-tech-api/internal/domains/users/domain"
	userports "github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	"github.com/Apurer/cell-tech-api/internal/shared/calendar"
)

// Inventory is the slice of the products memory store the ledger needs.
type Inventory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*producttypes.ProductProjection, error)
	WithdrawStock(ctx context.Context, id uuid.UUID, qty int64) (*producttypes.ProductProjection, error)
	RestoreStock(ctx context.Context, id uuid.UUID, qty int64) error
}

// Directory resolves sellers for joined listings.
type Directory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error)
}

// Repository is an in-memory sales ledger backed by the in-memory catalogue.
type Repository struct {
	mu        sync.RWMutex
	inventory Inventory
	directory Directory
	sales     map[uuid.UUID]*domain.Sale
}

var _ ports.Repository = (*Repository)(nil)

func NewRepository(inventory Inventory, directory Directory) *Repository {
	return &Repository{
		inventory: inventory,
		directory: directory,
		sales:     make(map[uuid.UUID]*domain.Sale),
	}
}

// Record withdraws stock under the product's lock and appends the sale.
// The withdrawal is undone when the append cannot happen.
func (r *Repository) Record(ctx context.Context, sale *domain.Sale) (*domain.Sale, bool, error) {
	if sale == nil {
		return nil, false, errors.New("sale is nil")
	}
	if err := sale.Validate(); err != nil {
		return nil, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sales[sale.ID]; ok {
		return existing.Clone(), false, nil
	}
	if _, err := r.inventory.WithdrawStock(ctx, sale.ProductID, sale.QuantitySold); err != nil {
		switch {
		case errors.Is(err, productports.ErrNotFound):
			return nil, false, ports.ErrProductNotFound
		case errors.Is(err, productdomain.ErrInsufficientStock):
			return nil, false, ports.ErrInsufficientStock
		}
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		if restoreErr := r.inventory.RestoreStock(context.WithoutCancel(ctx), sale.ProductID, sale.QuantitySold); restoreErr != nil {
			return nil, false, errors.Join(err, restoreErr)
		}
		return nil, false, err
	}
	r.sales[sale.ID] = sale.Clone()
	return sale.Clone(), true, nil
}

// List joins sales with products and sellers. Sales whose seller no longer
// exists are skipped; a missing product leaves Product nil.
func (r *Repository) List(ctx context.Context, filter domain.Filter) ([]domain.SaleDetails, error) {
	matched := r.matching(filter)
	sort.Slice(matched, func(i, j int) bool {
		return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) > 0
	})
	out := make([]domain.SaleDetails, 0, len(matched))
	for _, sale := range matched {
		seller, err := r.directory.GetByID(ctx, sale.SellerID)
		if err != nil {
			if errors.Is(err, userports.ErrNotFound) {
				continue
			}
			return nil, err
		}
		details := domain.SaleDetails{
			Sale: sale,
			Seller: domain.SellerSummary{
				ID:     seller.ID,
				Name:   seller.Name,
				Email:  seller.Email,
				Role:   string(seller.Role),
				Status: string(seller.Status),
			},
		}
		product, err := r.inventory.GetByID(ctx, sale.ProductID)
		switch {
		case err == nil:
			details.Product = summarize(product)
		case !errors.Is(err, productports.ErrNotFound):
			return nil, err
		}
		out = append(out, details)
	}
	return out, nil
}

// DailyTotals sums amounts per UTC day.
func (r *Repository) DailyTotals(_ context.Context, filter domain.Filter) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal)
	for _, sale := range r.matching(filter) {
		key := calendar.DayKey(sale.DateSold)
		totals[key] = totals[key].Add(sale.TotalAmount)
	}
	return totals, nil
}

func (r *Repository) matching(filter domain.Filter) []*domain.Sale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		if filter.Matches(sale) {
			out = append(out, sale.Clone())
		}
	}
	return out
}

func summarize(p *producttypes.ProductProjection) *domain.ProductSummary {
	if p == nil || p.Entity == nil {
		return nil
	}
	return &domain.ProductSummary{
		ID:     p.Entity.ID,
		Name:   p.Entity.Name,
		Price:  p.Entity.Price,
		Stock:  p.Entity.Stock,
		Sold:   p.Entity.Sold,
		Status: p.Entity.Status,
		Brand:  p.Entity.Specs.Brand,
		Model:  p.Entity.Specs.Model,
	}
}
