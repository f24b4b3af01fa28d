package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/products/domain"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateName = errors.New("product name already exists")
)

// Repository persists products. Name is unique.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*types.ProductProjection, error)
	// Update writes only the listed fields of product. Writing stock also re-derives status.
	// With no fields it only checks that the product exists.
	Update(ctx context.Context, product *domain.Product, fields ...types.Field) (*types.ProductProjection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.ProductProjection, error)
	List(ctx context.Context, filter types.ListProductsFilter) ([]*types.ProductProjection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
}
