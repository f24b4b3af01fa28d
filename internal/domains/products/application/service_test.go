package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	productmemory "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/memory"
	"github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/products/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/products/ports"
)

func newTestService() *Service {
	return NewService(productmemory.NewRepository())
}

func ptr[T any](v T) *T { return &v }

func TestCreateProduct_DerivesStatusAndDefaultsSold(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateProduct(context.Background(), types.CreateProductInput{
		Name:  "iPhone 15",
		Price: decimal.RequireFromString("999.00"),
		Stock: 0,
		Specs: types.SpecsInput{Brand: ptr(" Apple "), Storage: ptr("256GB")},
	})
	require.NoError(t, err)
	require.False(t, created.Entity.Status)
	require.Zero(t, created.Entity.Sold)
	require.Equal(t, "Apple", created.Entity.Specs.Brand)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateProduct(context.Background(), types.CreateProductInput{
		Name:  "iPhone 15",
		Price: decimal.NewFromInt(-1),
		Stock: 1,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	_, err = svc.CreateProduct(context.Background(), types.CreateProductInput{
		Name:  "iPhone 15",
		Price: decimal.NewFromInt(1),
		Stock: 1,
		Sold:  ptr(int64(-3)),
	})
	require.ErrorIs(t, err, domain.ErrNegativeSold)
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, types.CreateProductInput{Name: "Pixel 8", Price: decimal.NewFromInt(599), Stock: 3})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, types.CreateProductInput{Name: "PIXEL 8", Price: decimal.NewFromInt(599), Stock: 3})
	require.ErrorIs(t, err, ports.ErrDuplicateName)
}

func TestPatchProduct_RederivesStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, types.CreateProductInput{Name: "Pixel 8", Price: decimal.NewFromInt(599), Stock: 3})
	require.NoError(t, err)
	require.True(t, created.Entity.Status)

	patched, err := svc.PatchProduct(ctx, types.PatchProductInput{ID: created.Entity.ID, Stock: ptr(int64(0)), Name: ptr("Pixel 8 Pro")})
	require.NoError(t, err)
	require.False(t, patched.Entity.Status)
	require.Equal(t, "Pixel 8 Pro", patched.Entity.Name)
	require.True(t, patched.Entity.Price.Equal(decimal.NewFromInt(599)))

	_, err = svc.PatchProduct(ctx, types.PatchProductInput{ID: uuid.New(), Stock: ptr(int64(1))})
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.PatchProduct(ctx, types.PatchProductInput{ID: created.Entity.ID, Stock: ptr(int64(-1))})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteProducts(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.CreateProduct(ctx, types.CreateProductInput{Name: "A", Price: decimal.NewFromInt(1), Stock: 1})
	require.NoError(t, err)
	b, err := svc.CreateProduct(ctx, types.CreateProductInput{Name: "B", Price: decimal.NewFromInt(1), Stock: 1})
	require.NoError(t, err)

	_, err = svc.DeleteProducts(ctx, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	deleted, err := svc.DeleteProducts(ctx, []uuid.UUID{a.Entity.ID, b.Entity.ID, uuid.New()})
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)

	require.ErrorIs(t, svc.DeleteProduct(ctx, a.Entity.ID), ports.ErrNotFound)

	list, err := svc.ListProducts(ctx, types.ListProductsFilter{})
	require.NoError(t, err)
	require.Empty(t, list)
}
