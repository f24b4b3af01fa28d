package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
)

var (
	// ErrProductNotFound is returned when the sold product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when the product has fewer units than requested.
	ErrInsufficientStock = errors.New("quantity sold is more than available stock")
)

// Repository records sales and answers windowed queries.
type Repository interface {
	// Record withdraws stock and stores the sale in one unit of work and reports created.
	// Recording an ID that already exists returns the stored sale untouched with created false.
	Record(ctx context.Context, sale *domain.Sale) (stored *domain.Sale, created bool, err error)
	// List returns joined sales, newest first.
	List(ctx context.Context, filter domain.Filter) ([]domain.SaleDetails, error)
	// DailyTotals sums totalAmount per UTC day, keyed by calendar.DayLayout.
	DailyTotals(ctx context.Context, filter domain.Filter) (map[string]decimal.Decimal, error)
}
