package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository stores sales next to the products and users tables it joins against.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed sales ledger. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the tables owned by this adapter, for migrations.
func Models() []any {
	return []any{&saleRecord{}}
}

type saleRecord struct {
	ID           uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	SellerID     uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;index"`
	QuantitySold int64           `gorm:"column:quantity_sold;not null"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null"`
	DateSold     time.Time       `gorm:"column:date_sold;not null;index"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
}

func (saleRecord) TableName() string { return "sales" }

// Record runs the conditional stock decrement and the sale insert in one transaction.
// A replayed sale id returns the stored row with created false.
func (r *Repository) Record(ctx context.Context, sale *domain.Sale) (*domain.Sale, bool, error) {
	if err := r.ensureDB(); err != nil {
		return nil, false, err
	}
	if sale == nil {
		return nil, false, errors.New("sale is nil")
	}
	if err := sale.Validate(); err != nil {
		return nil, false, err
	}
	var (
		stored  *domain.Sale
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findSale(tx, sale.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			stored = existing
			return nil
		}
		if err := withdrawStock(tx, sale.ProductID, sale.QuantitySold); err != nil {
			return err
		}
		record := toRecord(sale)
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		stored, created = record.toDomain(), true
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent attempt with the same id committed first.
		existing, findErr := findSale(r.db.WithContext(ctx), sale.ID)
		if findErr == nil && existing != nil {
			return existing, false, nil
		}
	}
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func findSale(tx *gorm.DB, id uuid.UUID) (*domain.Sale, error) {
	var records []saleRecord
	if err := tx.Where("id = ?", id).Limit(1).Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0].toDomain(), nil
}

// withdrawStock decrements only when enough units remain. The right-hand
// side of every assignment sees the pre-update stock.
func withdrawStock(tx *gorm.DB, productID uuid.UUID, qty int64) error {
	result := tx.Table("products").
		Where("id = ? AND stock >= ?", productID, qty).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock - ?", qty),
			"sold":       gorm.Expr("sold + ?", qty),
			"status":     gorm.Expr("stock - ? > 0", qty),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := tx.Table("products").Where("id = ?", productID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrProductNotFound
	}
	return ports.ErrInsufficientStock
}

// saleRow is one joined listing row. Product columns are null when the product was deleted.
type saleRow struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	SellerID      uuid.UUID
	QuantitySold  int64
	TotalAmount   decimal.Decimal
	DateSold      time.Time
	ProductRefID  uuid.NullUUID
	ProductName   *string
	ProductPrice  decimal.NullDecimal
	ProductStock  *int64
	ProductSold   *int64
	ProductStatus *bool
	ProductBrand  *string
	ProductModel  *string
	SellerName    string
	SellerEmail   string
	SellerRole    string
	SellerStatus  string
}

const listColumns = `sales.id, sales.product_id, sales.seller_id, sales.quantity_sold, sales.total_amount, sales.date_sold,
products.id AS product_ref_id, products.name AS product_name, products.price AS product_price,
products.stock AS product_stock, products.sold AS product_sold, products.status AS product_status,
products.brand AS product_brand, products.model AS product_model,
users.name AS seller_name, users.email AS seller_email, users.role AS seller_role, users.status AS seller_status`

// List joins each sale with its product and seller, newest first. The seller's
// password hash is never selected.
func (r *Repository) List(ctx context.Context, filter domain.Filter) ([]domain.SaleDetails, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).
		Table("sales").
		Select(listColumns).
		Joins("LEFT JOIN products ON products.id = sales.product_id").
		Joins("JOIN users ON users.id = sales.seller_id")
	query = applyFilter(query, filter)

	var rows []saleRow
	if err := query.Order("sales.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.SaleDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDetails())
	}
	return out, nil
}

// DailyTotals groups on the UTC calendar day inside the database.
func (r *Repository) DailyTotals(ctx context.Context, filter domain.Filter) (map[string]decimal.Decimal, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	day := r.dayExpression()
	query := r.db.WithContext(ctx).
		Table("sales").
		Select(day + " AS day, SUM(sales.total_amount) AS total")
	query = applyFilter(query, filter)

	var rows []struct {
		Day   string
		Total decimal.Decimal
	}
	if err := query.Group(day).Scan(&rows).Error; err != nil {
		return nil, err
	}
	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Day] = row.Total
	}
	return totals, nil
}

func (r *Repository) dayExpression() string {
	if r.db.Dialector != nil && r.db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m-%d', sales.date_sold)"
	}
	return "to_char(sales.date_sold AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
}

func applyFilter(query *gorm.DB, filter domain.Filter) *gorm.DB {
	if !filter.Since.IsZero() {
		query = query.Where("sales.date_sold >= ?", filter.Since.UTC())
	}
	if filter.SellerID != nil {
		query = query.Where("sales.seller_id = ?", *filter.SellerID)
	}
	return query
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("sales repository not configured")
	}
	return nil
}

func toRecord(s *domain.Sale) saleRecord {
	return saleRecord{
		ID:           s.ID,
		ProductID:    s.ProductID,
		SellerID:     s.SellerID,
		QuantitySold: s.QuantitySold,
		TotalAmount:  s.TotalAmount,
		DateSold:     s.DateSold.UTC(),
	}
}

func (r saleRecord) toDomain() *domain.Sale {
	return &domain.Sale{
		ID:           r.ID,
		ProductID:    r.ProductID,
		SellerID:     r.SellerID,
		QuantitySold: r.QuantitySold,
		TotalAmount:  r.TotalAmount,
		DateSold:     r.DateSold.UTC(),
	}
}

func (row saleRow) toDetails() domain.SaleDetails {
	details := domain.SaleDetails{
		Sale: &domain.Sale{
			ID:           row.ID,
			ProductID:    row.ProductID,
			SellerID:     row.SellerID,
			QuantitySold: row.QuantitySold,
			TotalAmount:  row.TotalAmount,
			DateSold:     row.DateSold.UTC(),
		},
		Seller: domain.SellerSummary{
			ID:     row.SellerID,
			Name:   row.SellerName,
			Email:  row.SellerEmail,
			Role:   row.SellerRole,
			Status: row.SellerStatus,
		},
	}
	if row.ProductRefID.Valid {
		details.Product = &domain.ProductSummary{
			ID:     row.ProductRefID.UUID,
			Name:   deref(row.ProductName),
			Price:  row.ProductPrice.Decimal,
			Stock:  deref(row.ProductStock),
			Sold:   deref(row.ProductSold),
			Status: deref(row.ProductStatus),
			Brand:  deref(row.ProductBrand),
			Model:  deref(row.ProductModel),
		}
	}
	return details
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
