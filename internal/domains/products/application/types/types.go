package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/cell-tech-api/internal/domains/products/domain"
	"github.com/Apurer/cell-tech-api/internal/shared/projection"
)

// ProductProjection pairs a product with its persistence timestamps.
type ProductProjection = projection.Projection[*domain.Product]

// SpecsInput carries optional phone attributes.
type SpecsInput struct {
	Brand           *string
	Model           *string
	OperatingSystem *string
	Storage         *string
	ReleaseDate     *time.Time
	Features        map[string]string
}

// CreateProductInput is the catalogue entry to add.
type CreateProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock int64
	Sold  *int64
	Specs SpecsInput
}

// PatchProductInput applies only non-nil fields. Status is always derived.
type PatchProductInput struct {
	ID    uuid.UUID
	Name  *string
	Price *decimal.Decimal
	Stock *int64
	Sold  *int64
	Specs SpecsInput
}

// ListProductsFilter narrows the catalogue. Zero value lists everything.
type ListProductsFilter struct {
	Brand   string
	InStock bool
	Search  string
}

// Field names a mutable product attribute. Update writes only the fields it is given,
// so stock moved by a concurrent sale is never overwritten by an unrelated patch.
type Field string

const (
	FieldName            Field = "name"
	FieldPrice           Field = "price"
	FieldStock           Field = "stock"
	FieldSold            Field = "sold"
	FieldBrand           Field = "brand"
	FieldModel           Field = "model"
	FieldOperatingSystem Field = "operatingSystem"
	FieldStorage         Field = "storage"
	FieldReleaseDate     Field = "releaseDate"
	FieldFeatures        Field = "features"
)
