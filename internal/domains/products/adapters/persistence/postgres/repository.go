package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/products/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/products/ports"
	"github.com/Apurer/cell-tech-api/internal/shared/projection"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the catalogue through GORM on PostgreSQL or SQLite.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the tables owned by this adapter, for migrations.
func Models() []any {
	return []any{&productRecord{}}
}

// productRecord maps the product aggregate to a relational table.
// NameKey is the lower-cased name and carries the uniqueness constraint.
type productRecord struct {
	ID              uuid.UUID         `gorm:"primaryKey;column:id;type:uuid"`
	Name            string            `gorm:"column:name;not null"`
	NameKey         string            `gorm:"column:name_key;not null;uniqueIndex:idx_products_name_key"`
	Price           decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	Stock           int64             `gorm:"column:stock;not null;check:chk_products_stock,stock >= 0"`
	Sold            int64             `gorm:"column:sold;not null;default:0"`
	Status          bool              `gorm:"column:status;not null;index"`
	Brand           string            `gorm:"column:brand;index"`
	Model           string            `gorm:"column:model"`
	OperatingSystem string            `gorm:"column:operating_system"`
	Storage         string            `gorm:"column:storage"`
	ReleaseDate     *time.Time        `gorm:"column:release_date"`
	Features        map[string]string `gorm:"column:features;serializer:json"`
	CreatedAt       time.Time         `gorm:"column:created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// fieldColumns maps patchable fields to their columns. Stock carries status so
// both are written by the same statement.
var fieldColumns = map[types.Field][]string{
	types.FieldName:            {"name", "name_key"},
	types.FieldPrice:           {"price"},
	types.FieldStock:           {"stock", "status"},
	types.FieldSold:            {"sold"},
	types.FieldBrand:           {"brand"},
	types.FieldModel:           {"model"},
	types.FieldOperatingSystem: {"operating_system"},
	types.FieldStorage:         {"storage"},
	types.FieldReleaseDate:     {"release_date"},
	types.FieldFeatures:        {"features"},
}

func columnsFor(fields []types.Field) ([]string, error) {
	columns := make([]string, 0, 2*len(fields)+1)
	for _, field := range fields {
		cols, ok := fieldColumns[field]
		if !ok {
			return nil, fmt.Errorf("unknown product field %q", field)
		}
		columns = append(columns, cols...)
	}
	return append(columns, "updated_at"), nil
}

// Create inserts a product, assigning an identifier when absent.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if record.ID == uuid.Nil {
		record.ID = ref.New()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateName
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// Update writes only the columns behind fields, including zero values.
// Columns a concurrent sale moves (stock, sold, status) stay untouched unless listed.
func (r *Repository) Update(ctx context.Context, product *domain.Product, fields ...types.Field) (*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return r.GetByID(ctx, product.ID)
	}
	columns, err := columnsFor(fields)
	if err != nil {
		return nil, err
	}
	record := toRecord(product)
	record.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&productRecord{ID: record.ID}).Select(columns).Updates(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateName
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// List returns matching products ordered by name.
func (r *Repository) List(ctx context.Context, filter types.ListProductsFilter) ([]*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if filter.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(filter.Brand))
	}
	if filter.InStock {
		query = query.Where("status = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("name_key LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	var records []productRecord
	if err := query.Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*types.ProductProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

// Delete removes a product by identifier.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&productRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// DeleteMany removes the listed products and returns how many rows went away.
func (r *Repository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&productRecord{})
	return result.RowsAffected, result.Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("product repository not configured")
	}
	return nil
}

func toRecord(p *domain.Product) productRecord {
	rec := productRecord{
		ID:              p.ID,
		Name:            p.Name,
		NameKey:         strings.ToLower(p.Name),
		Price:           p.Price,
		Stock:           p.Stock,
		Sold:            p.Sold,
		Status:          p.Status,
		Brand:           p.Specs.Brand,
		Model:           p.Specs.Model,
		OperatingSystem: p.Specs.OperatingSystem,
		Storage:         p.Specs.Storage,
		Features:        p.Specs.Features,
	}
	if p.Specs.ReleaseDate != nil {
		date := p.Specs.ReleaseDate.UTC()
		rec.ReleaseDate = &date
	}
	return rec
}

func (r productRecord) toProjection() *types.ProductProjection {
	product := &domain.Product{
		ID:     r.ID,
		Name:   r.Name,
		Price:  r.Price,
		Stock:  r.Stock,
		Sold:   r.Sold,
		Status: r.Status,
		Specs: domain.Specs{
			Brand:           r.Brand,
			Model:           r.Model,
			OperatingSystem: r.OperatingSystem,
			Storage:         r.Storage,
			Features:        r.Features,
		},
	}
	if r.ReleaseDate != nil {
		date := r.ReleaseDate.UTC()
		product.Specs.ReleaseDate = &date
	}
	return projection.Of(product, r.CreatedAt, r.UpdatedAt)
}
