package mapper

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
	"github.com/Apurer/cell-tech-api/internal/shared/calendar"
	"github.com/Apurer/cell-tech-api/internal/shared/money"
)

// Product is the catalogue entry returned to the dashboard.
type Product struct {
	ID              string            `json:"_id"`
	Name            string            `json:"name"`
	Price           money.Amount      `json:"price"`
	Stock           int64             `json:"stock"`
	Sold            int64             `json:"sold"`
	Status          bool              `json:"status"`
	Brand           string            `json:"brand,omitempty"`
	Model           string            `json:"model,omitempty"`
	OperatingSystem string            `json:"operatingSystem,omitempty"`
	Storage         string            `json:"storage,omitempty"`
	ReleaseDate     *time.Time        `json:"releaseDate,omitempty"`
	Features        map[string]string `json:"features,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// SpecsRequest holds the optional phone attributes shared by create and patch.
type SpecsRequest struct {
	Brand           *string           `json:"brand"`
	Model           *string           `json:"model"`
	OperatingSystem *string           `json:"operatingSystem"`
	Storage         *string           `json:"storage"`
	ReleaseDate     *string           `json:"releaseDate"`
	Features        map[string]string `json:"features"`
}

// CreateProductRequest is the body of POST /product. A client supplied status is ignored.
type CreateProductRequest struct {
	Name  string        `json:"name" binding:"required"`
	Price *money.Amount `json:"price" binding:"required"`
	Stock *int64        `json:"stock" binding:"required"`
	Sold  *int64        `json:"sold"`
	SpecsRequest
}

// PatchProductRequest is the body of PATCH /product/:id.
type PatchProductRequest struct {
	Name  *string       `json:"name"`
	Price *money.Amount `json:"price"`
	Stock *int64        `json:"stock"`
	Sold  *int64        `json:"sold"`
	SpecsRequest
}

// DeleteProductsResult reports a bulk delete.
type DeleteProductsResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

func ToCreateInput(req CreateProductRequest) (types.CreateProductInput, error) {
	specs, err := toSpecsInput(req.SpecsRequest)
	if err != nil {
		return types.CreateProductInput{}, err
	}
	input := types.CreateProductInput{
		Name:  req.Name,
		Sold:  req.Sold,
		Specs: specs,
	}
	if req.Price != nil {
		input.Price = req.Price.Decimal()
	}
	if req.Stock != nil {
		input.Stock = *req.Stock
	}
	return input, nil
}

func ToPatchInput(id uuid.UUID, req PatchProductRequest) (types.PatchProductInput, error) {
	specs, err := toSpecsInput(req.SpecsRequest)
	if err != nil {
		return types.PatchProductInput{}, err
	}
	input := types.PatchProductInput{
		ID:    id,
		Name:  req.Name,
		Stock: req.Stock,
		Sold:  req.Sold,
		Specs: specs,
	}
	if req.Price != nil {
		price := req.Price.Decimal()
		input.Price = &price
	}
	return input, nil
}

func toSpecsInput(req SpecsRequest) (types.SpecsInput, error) {
	specs := types.SpecsInput{
		Brand:           req.Brand,
		Model:           req.Model,
		OperatingSystem: req.OperatingSystem,
		Storage:         req.Storage,
		Features:        req.Features,
	}
	if req.ReleaseDate != nil && *req.ReleaseDate != "" {
		date, err := calendar.ParseDate(*req.ReleaseDate)
		if err != nil {
			return types.SpecsInput{}, err
		}
		specs.ReleaseDate = &date
	}
	return specs, nil
}

// FromProjection converts a stored product to the transport representation.
func FromProjection(p *types.ProductProjection) Product {
	if p == nil || p.Entity == nil {
		return Product{}
	}
	entity := p.Entity
	return Product{
		ID:              entity.ID.String(),
		Name:            entity.Name,
		Price:           money.FromDecimal(entity.Price),
		Stock:           entity.Stock,
		Sold:            entity.Sold,
		Status:          entity.Status,
		Brand:           entity.Specs.Brand,
		Model:           entity.Specs.Model,
		OperatingSystem: entity.Specs.OperatingSystem,
		Storage:         entity.Specs.Storage,
		ReleaseDate:     entity.Specs.ReleaseDate,
		Features:        entity.Specs.Features,
		CreatedAt:       p.Metadata.CreatedAt,
		UpdatedAt:       p.Metadata.UpdatedAt,
	}
}

func FromProjections(list []*types.ProductProjection) []Product {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}

// ListProductsParams are the optional filters of GET /products.
type ListProductsParams struct {
	Brand  *string `json:"brand,omitempty"`
	Status *string `json:"status,omitempty"`
	Search *string `json:"search,omitempty"`
}

// ToListFilter keeps only in-stock products when status is true, 1 or yes.
func ToListFilter(params ListProductsParams) types.ListProductsFilter {
	filter := types.ListProductsFilter{}
	if params.Brand != nil {
		filter.Brand = strings.TrimSpace(*params.Brand)
	}
	if params.Search != nil {
		filter.Search = strings.TrimSpace(*params.Search)
	}
	if params.Status != nil {
		switch strings.ToLower(strings.TrimSpace(*params.Status)) {
		case "true", "1", "yes":
			filter.InStock = true
		}
	}
	return filter
}
