package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/products/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/products/ports"
	"github.com/Apurer/cell-tech-api/internal/shared/projection"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

var _ ports.Repository = (*Repository)(nil)

type entry struct {
	product   *domain.Product
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory catalogue. Stock moves happen under the write lock,
// which makes WithdrawStock an atomic decrement-if-sufficient.
type Repository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*entry
	byName   map[string]uuid.UUID
	now      func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		products: map[uuid.UUID]*entry{},
		byName:   map[string]uuid.UUID{},
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source, mainly for tests.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	if now != nil {
		r.now = now
	}
	return r
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*types.ProductProjection, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := product.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := nameKey(clone.Name)
	if _, taken := r.byName[key]; taken {
		return nil, ports.ErrDuplicateName
	}
	if clone.ID == uuid.Nil {
		clone.ID = ref.New()
	}
	now := r.now().UTC()
	e := &entry{product: clone, createdAt: now, updatedAt: now}
	r.products[clone.ID] = e
	r.byName[key] = clone.ID
	return e.project(), nil
}

// Update copies only the listed fields onto the stored product under the lock,
// so a concurrent WithdrawStock is never undone by a stale copy.
func (r *Repository) Update(_ context.Context, product *domain.Product, fields ...types.Field) (*types.ProductProjection, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	patch := product.Clone()
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[patch.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if len(fields) == 0 {
		return existing.project(), nil
	}
	merged := existing.product.Clone()
	for _, field := range fields {
		if err := mergeField(merged, patch, field); err != nil {
			return nil, err
		}
	}
	key := nameKey(merged.Name)
	if owner, taken := r.byName[key]; taken && owner != merged.ID {
		return nil, ports.ErrDuplicateName
	}
	delete(r.byName, nameKey(existing.product.Name))
	existing.product = merged
	existing.updatedAt = r.now().UTC()
	r.byName[key] = merged.ID
	return existing.project(), nil
}

func mergeField(dst, src *domain.Product, field types.Field) error {
	switch field {
	case types.FieldName:
		dst.Name = src.Name
	case types.FieldPrice:
		dst.Price = src.Price
	case types.FieldStock:
		return dst.SetStock(src.Stock)
	case types.FieldSold:
		dst.Sold = src.Sold
	case types.FieldBrand:
		dst.Specs.Brand = src.Specs.Brand
	case types.FieldModel:
		dst.Specs.Model = src.Specs.Model
	case types.FieldOperatingSystem:
		dst.Specs.OperatingSystem = src.Specs.OperatingSystem
	case types.FieldStorage:
		dst.Specs.Storage = src.Specs.Storage
	case types.FieldReleaseDate:
		dst.Specs.ReleaseDate = src.Specs.ReleaseDate
	case types.FieldFeatures:
		dst.Specs.Features = src.Specs.Features
	default:
		return fmt.Errorf("unknown product field %q", field)
	}
	return nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*types.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return e.project(), nil
}

// List returns matching products ordered by name.
func (r *Repository) List(_ context.Context, filter types.ListProductsFilter) ([]*types.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(filter.Search)
	list := make([]*types.ProductProjection, 0, len(r.products))
	for _, e := range r.products {
		p := e.product
		if filter.Brand != "" && !strings.EqualFold(p.Specs.Brand, filter.Brand) {
			continue
		}
		if filter.InStock && !p.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		list = append(list, e.project())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.Name < list[j].Entity.Name })
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byName, nameKey(e.product.Name))
	delete(r.products, id)
	return nil
}

func (r *Repository) DeleteMany(_ context.Context, ids []uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		e, ok := r.products[id]
		if !ok {
			continue
		}
		delete(r.byName, nameKey(e.product.Name))
		delete(r.products, id)
		deleted++
	}
	return deleted, nil
}

// WithdrawStock decrements stock and increments sold only if enough stock is available.
func (r *Repository) WithdrawStock(_ context.Context, id uuid.UUID, qty int64) (*types.ProductProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := e.product.Withdraw(qty); err != nil {
		return nil, err
	}
	e.updatedAt = r.now().UTC()
	return e.project(), nil
}

// RestoreStock compensates a previous WithdrawStock.
func (r *Repository) RestoreStock(_ context.Context, id uuid.UUID, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	if err := e.product.Restore(qty); err != nil {
		return err
	}
	e.updatedAt = r.now().UTC()
	return nil
}

func (e *entry) project() *types.ProductProjection {
	return projection.Of(e.product.Clone(), e.createdAt, e.updatedAt)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
