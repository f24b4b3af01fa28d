package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
)

// RecordSaleInput is a sale to record. SaleID is assigned by the caller so
// retries of the same request can be recognized.
type RecordSaleInput struct {
	SaleID       uuid.UUID
	ProductID    uuid.UUID
	SellerID     uuid.UUID
	QuantitySold int64
	TotalAmount  decimal.Decimal
	DateSold     *time.Time
}

// SalesQuery is the window selection shared by listing and statistics.
type SalesQuery struct {
	Window   domain.WindowQuery
	SellerID *uuid.UUID
}

// SaleRecordedEvent is published once a sale has been committed.
type SaleRecordedEvent struct {
	SaleID       uuid.UUID       `json:"saleId"`
	ProductID    uuid.UUID       `json:"productId"`
	SellerID     uuid.UUID       `json:"sellerId"`
	QuantitySold int64           `json:"quantitySold"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	DateSold     time.Time       `json:"dateSold"`
	RecordedAt   time.Time       `json:"recordedAt"`
}

// NewSaleRecordedEvent builds the event for a stored sale.
func NewSaleRecordedEvent(sale *domain.Sale, recordedAt time.Time) SaleRecordedEvent {
	return SaleRecordedEvent{
		SaleID:       sale.ID,
		ProductID:    sale.ProductID,
		SellerID:     sale.SellerID,
		QuantitySold: sale.QuantitySold,
		TotalAmount:  sale.TotalAmount,
		DateSold:     sale.DateSold,
		RecordedAt:   recordedAt.UTC(),
	}
}
