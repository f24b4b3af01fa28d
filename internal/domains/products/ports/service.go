package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
)

// Service exposes catalogue use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*types.ProductProjection, error)
	ListProducts(ctx context.Context, filter types.ListProductsFilter) ([]*types.ProductProjection, error)
	PatchProduct(ctx context.Context, input types.PatchProductInput) (*types.ProductProjection, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	DeleteProducts(ctx context.Context, ids []uuid.UUID) (int64, error)
}
