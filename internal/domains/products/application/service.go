package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/products/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/products/ports"
)

// Service orchestrates catalogue use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the products service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct validates and stores a new catalogue entry.
func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	product, err := domain.NewProduct(input.Name, input.Price, input.Stock, domain.Specs{})
	if err != nil {
		return nil, mapError(err)
	}
	applySpecs(&product.Specs, input.Specs)
	if input.Sold != nil {
		if err := product.SetSold(*input.Sold); err != nil {
			return nil, mapError(err)
		}
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*types.ProductProjection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filter types.ListProductsFilter) ([]*types.ProductProjection, error) {
	filter.Brand = strings.TrimSpace(filter.Brand)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

// PatchProduct applies the provided fields and re-derives status from stock.
// Only the provided fields are written back.
func (s *Service) PatchProduct(ctx context.Context, input types.PatchProductInput) (*types.ProductProjection, error) {
	current, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	product := current.Entity
	var fields []types.Field
	if input.Name != nil {
		if err := product.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
		fields = append(fields, types.FieldName)
	}
	if input.Price != nil {
		if err := product.Reprice(*input.Price); err != nil {
			return nil, mapError(err)
		}
		fields = append(fields, types.FieldPrice)
	}
	if input.Stock != nil {
		if err := product.SetStock(*input.Stock); err != nil {
			return nil, mapError(err)
		}
		fields = append(fields, types.FieldStock)
	}
	if input.Sold != nil {
		if err := product.SetSold(*input.Sold); err != nil {
			return nil, mapError(err)
		}
		fields = append(fields, types.FieldSold)
	}
	fields = append(fields, applySpecs(&product.Specs, input.Specs)...)
	return s.repo.Update(ctx, product, fields...)
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// DeleteProducts removes every listed product and reports how many existed.
func (s *Service) DeleteProducts(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no product ids given", ErrInvalidInput)
	}
	return s.repo.DeleteMany(ctx, ids)
}

func applySpecs(specs *domain.Specs, input types.SpecsInput) []types.Field {
	var fields []types.Field
	if input.Brand != nil {
		specs.Brand = strings.TrimSpace(*input.Brand)
		fields = append(fields, types.FieldBrand)
	}
	if input.Model != nil {
		specs.Model = strings.TrimSpace(*input.Model)
		fields = append(fields, types.FieldModel)
	}
	if input.OperatingSystem != nil {
		specs.OperatingSystem = strings.TrimSpace(*input.OperatingSystem)
		fields = append(fields, types.FieldOperatingSystem)
	}
	if input.Storage != nil {
		specs.Storage = strings.TrimSpace(*input.Storage)
		fields = append(fields, types.FieldStorage)
	}
	if input.ReleaseDate != nil {
		date := input.ReleaseDate.UTC()
		specs.ReleaseDate = &date
		fields = append(fields, types.FieldReleaseDate)
	}
	if input.Features != nil {
		specs.Features = make(map[string]string, len(input.Features))
		for k, v := range input.Features {
			specs.Features[k] = v
		}
		fields = append(fields, types.FieldFeatures)
	}
	return fields
}

var _ ports.Service = (*Service)(nil)
