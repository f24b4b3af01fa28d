package ports

import (
	"context"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
)

// Service exposes the sale processor and statistics aggregator.
type Service interface {
	RecordSale(ctx context.Context, input types.RecordSaleInput) (*domain.Sale, error)
	ListSales(ctx context.Context, query types.SalesQuery) ([]domain.SaleDetails, error)
	SalesStatistics(ctx context.Context, query types.SalesQuery) (*domain.Statistics, error)
}
