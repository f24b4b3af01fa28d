package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/products/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/products/ports"
	"github.com/Apurer/cell-tech-api/internal/platform/sqlite"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.OpenInMemory(context.Background(), strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newPhone(t *testing.T, name, brand string, stock int64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, decimal.RequireFromString("499.99"), stock, domain.Specs{
		Brand:    brand,
		Storage:  "128GB",
		Features: map[string]string{"camera": "50MP"},
	})
	require.NoError(t, err)
	return p
}

func TestRepository_CreateGetRoundTrip(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newPhone(t, "Galaxy S24", "Samsung", 5))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.Entity.ID)
	require.True(t, created.Entity.Price.Equal(decimal.RequireFromString("499.99")))
	require.Equal(t, "50MP", created.Entity.Specs.Features["camera"])
	require.True(t, created.Entity.Status)
	require.False(t, created.Metadata.CreatedAt.IsZero())

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DuplicateNameIsCaseInsensitive(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, newPhone(t, "Galaxy S24", "Samsung", 5))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPhone(t, "galaxy s24", "Samsung", 1))
	require.ErrorIs(t, err, ports.ErrDuplicateName)
}

func TestRepository_UpdatePersistsZeroStock(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newPhone(t, "Pixel 8", "Google", 5))
	require.NoError(t, err)

	product := created.Entity
	require.NoError(t, product.SetStock(0))
	updated, err := repo.Update(ctx, product, types.FieldStock)
	require.NoError(t, err)
	require.Zero(t, updated.Entity.Stock)
	require.False(t, updated.Entity.Status)

	ghost := newPhone(t, "Ghost", "None", 1)
	ghost.ID = uuid.New()
	_, err = repo.Update(ctx, ghost, types.FieldName)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateWritesOnlyListedFields(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newPhone(t, "Pixel 8", "Google", 10))
	require.NoError(t, err)
	stale, err := repo.GetByID(ctx, created.Entity.ID)
	require.NoError(t, err)

	// a sale lands between the read and the write
	require.NoError(t, db.Exec("UPDATE products SET stock = stock - 4, sold = sold + 4 WHERE id = ?", created.Entity.ID).Error)

	product := stale.Entity
	require.NoError(t, product.Rename("Pixel 8 Pro"))
	updated, err := repo.Update(ctx, product, types.FieldName)
	require.NoError(t, err)
	require.Equal(t, "Pixel 8 Pro", updated.Entity.Name)
	require.Equal(t, int64(6), updated.Entity.Stock)
	require.Equal(t, int64(4), updated.Entity.Sold)
	require.True(t, updated.Entity.Status)

	_, err = repo.Create(ctx, newPhone(t, "pixel 8", "Google", 1))
	require.NoError(t, err, "the old name is free again")
}

func TestRepository_ListFilters(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	for _, p := range []*domain.Product{
		newPhone(t, "Pixel 8", "Google", 5),
		newPhone(t, "Pixel 7a", "Google", 0),
		newPhone(t, "Galaxy S24", "Samsung", 2),
	} {
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, types.ListProductsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Galaxy S24", all[0].Entity.Name)

	google, err := repo.List(ctx, types.ListProductsFilter{Brand: "google", InStock: true})
	require.NoError(t, err)
	require.Len(t, google, 1)
	require.Equal(t, "Pixel 8", google[0].Entity.Name)

	search, err := repo.List(ctx, types.ListProductsFilter{Search: "PIXEL"})
	require.NoError(t, err)
	require.Len(t, search, 2)
}

func TestRepository_DeleteAndDeleteMany(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	a, err := repo.Create(ctx, newPhone(t, "A", "X", 1))
	require.NoError(t, err)
	b, err := repo.Create(ctx, newPhone(t, "B", "X", 1))
	require.NoError(t, err)
	c, err := repo.Create(ctx, newPhone(t, "C", "X", 1))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, a.Entity.ID))
	require.ErrorIs(t, repo.Delete(ctx, a.Entity.ID), ports.ErrNotFound)

	deleted, err := repo.DeleteMany(ctx, []uuid.UUID{a.Entity.ID, b.Entity.ID, c.Entity.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)
}
