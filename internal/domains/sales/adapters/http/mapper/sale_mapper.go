package mapper

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	"github.com/Apurer/cell-tech-api/internal/shared/calendar"
	"github.com/Apurer/cell-tech-api/internal/shared/money"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

// RecordSaleRequest is the body of POST /sale. SellerID defaults to the caller.
type RecordSaleRequest struct {
	ProductID    string        `json:"productId" binding:"required"`
	SellerID     string        `json:"sellerId"`
	QuantitySold int64         `json:"quantitySold" binding:"required"`
	TotalAmount  *money.Amount `json:"totalAmount" binding:"required"`
	DateSold     string        `json:"dateSold"`
}

// WindowParams are the query parameters shared by listing and statistics.
type WindowParams struct {
	Days         *string `json:"days,omitempty"`
	CurrentYear  *string `json:"currentYear,omitempty"`
	CurrentMonth *string `json:"currentMonth,omitempty"`
	CurrentWeek  *string `json:"currentWeek,omitempty"`
	UserID       *string `json:"userId,omitempty"`
}

// Sale is the stored sale returned after recording.
type Sale struct {
	ID           string       `json:"_id"`
	ProductID    string       `json:"productId"`
	SellerID     string       `json:"sellerId"`
	QuantitySold int64        `json:"quantitySold"`
	TotalAmount  money.Amount `json:"totalAmount"`
	DateSold     time.Time    `json:"dateSold"`
}

// SaleProduct is the joined product. Absent when the product was deleted.
type SaleProduct struct {
	ID     string       `json:"_id"`
	Name   string       `json:"name"`
	Price  money.Amount `json:"price"`
	Stock  int64        `json:"stock"`
	Sold   int64        `json:"sold"`
	Status bool         `json:"status"`
	Brand  string       `json:"brand,omitempty"`
	Model  string       `json:"model,omitempty"`
}

// SaleSeller is the joined seller. There is no password field.
type SaleSeller struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// SaleDetails is one row of GET /sales.
type SaleDetails struct {
	Sale
	Product *SaleProduct `json:"product,omitempty"`
	Seller  SaleSeller   `json:"seller"`
}

// DailyTotal is one point of GET /statistics/sales.
type DailyTotal struct {
	Date            string       `json:"date"`
	Day             string       `json:"day"`
	TotalAmountSold money.Amount `json:"totalAmountSold"`
}

// StatisticsSummary rolls the series up.
type StatisticsSummary struct {
	WindowSizeInDays int          `json:"windowSizeInDays"`
	TotalAmountSold  money.Amount `json:"totalAmountSold"`
}

// ToRecordSaleInput parses references and the optional date. callerID fills a missing seller.
func ToRecordSaleInput(req RecordSaleRequest, callerID uuid.UUID, saleID uuid.UUID) (types.RecordSaleInput, error) {
	productID, err := ref.Parse(req.ProductID)
	if err != nil {
		return types.RecordSaleInput{}, err
	}
	sellerID := callerID
	if strings.TrimSpace(req.SellerID) != "" {
		if sellerID, err = ref.Parse(req.SellerID); err != nil {
			return types.RecordSaleInput{}, err
		}
	}
	input := types.RecordSaleInput{
		SaleID:       saleID,
		ProductID:    productID,
		SellerID:     sellerID,
		QuantitySold: req.QuantitySold,
	}
	if req.TotalAmount != nil {
		input.TotalAmount = req.TotalAmount.Decimal()
	}
	if strings.TrimSpace(req.DateSold) != "" {
		date, err := calendar.ParseDate(req.DateSold)
		if err != nil {
			return types.RecordSaleInput{}, err
		}
		input.DateSold = &date
	}
	return input, nil
}

// ToSalesQuery converts window params. A malformed userId is an error.
func ToSalesQuery(params WindowParams) (types.SalesQuery, error) {
	query := types.SalesQuery{
		Window: domain.WindowQuery{
			Days:         deref(params.Days),
			CurrentYear:  deref(params.CurrentYear),
			CurrentMonth: deref(params.CurrentMonth),
			CurrentWeek:  deref(params.CurrentWeek),
		},
	}
	if raw := strings.TrimSpace(deref(params.UserID)); raw != "" {
		id, err := ref.Parse(raw)
		if err != nil {
			return types.SalesQuery{}, err
		}
		query.SellerID = &id
	}
	return query, nil
}

func FromDomainSale(s *domain.Sale) Sale {
	if s == nil {
		return Sale{}
	}
	return Sale{
		ID:           s.ID.String(),
		ProductID:    s.ProductID.String(),
		SellerID:     s.SellerID.String(),
		QuantitySold: s.QuantitySold,
		TotalAmount:  money.FromDecimal(s.TotalAmount),
		DateSold:     s.DateSold.UTC(),
	}
}

func FromSaleDetails(list []domain.SaleDetails) []SaleDetails {
	out := make([]SaleDetails, 0, len(list))
	for _, d := range list {
		row := SaleDetails{
			Sale: FromDomainSale(d.Sale),
			Seller: SaleSeller{
				ID:     d.Seller.ID.String(),
				Name:   d.Seller.Name,
				Email:  d.Seller.Email,
				Role:   d.Seller.Role,
				Status: d.Seller.Status,
			},
		}
		if d.Product != nil {
			row.Product = &SaleProduct{
				ID:     d.Product.ID.String(),
				Name:   d.Product.Name,
				Price:  money.FromDecimal(d.Product.Price),
				Stock:  d.Product.Stock,
				Sold:   d.Product.Sold,
				Status: d.Product.Status,
				Brand:  d.Product.Brand,
				Model:  d.Product.Model,
			}
		}
		out = append(out, row)
	}
	return out
}

// FromStatistics returns the dense series and its summary.
func FromStatistics(stats *domain.Statistics) ([]DailyTotal, StatisticsSummary) {
	if stats == nil {
		return []DailyTotal{}, StatisticsSummary{}
	}
	series := make([]DailyTotal, 0, len(stats.Series))
	for _, point := range stats.Series {
		series = append(series, DailyTotal{
			Date:            point.Date,
			Day:             point.Day,
			TotalAmountSold: money.FromDecimal(point.TotalAmountSold),
		})
	}
	return series, StatisticsSummary{
		WindowSizeInDays: stats.WindowDays,
		TotalAmountSold:  money.FromDecimal(stats.TotalAmountSold),
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
