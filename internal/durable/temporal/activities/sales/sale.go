package sales

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	salesapp "github.com/Apurer/cell-tech-api/internal/domains/sales/application"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	salesports "github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
)

const (
	// RecordSaleActivityName records one sale against the store.
	RecordSaleActivityName = "sales.activities.RecordSale"

	// Application error types that retrying cannot fix.
	ErrTypeProductNotFound   = "sales.ProductNotFound"
	ErrTypeInsufficientStock = "sales.InsufficientStock"
	ErrTypeInvalidInput      = "sales.InvalidInput"
)

// NonRetryableErrorTypes lists the business failures a retry policy should give up on.
var NonRetryableErrorTypes = []string{ErrTypeProductNotFound, ErrTypeInsufficientStock, ErrTypeInvalidInput}

// Activities groups activities that operate on the sales bounded context.
type Activities struct {
	service salesports.Service
}

// NewActivities wires the sales service into the Temporal activities bundle.
// The service must be the core one, not a workflow orchestrator, or the activity would recurse.
func NewActivities(service salesports.Service) *Activities {
	return &Activities{service: service}
}

// RecordSale stores the sale. Retries are safe because recording is idempotent on the sale id.
func (a *Activities) RecordSale(ctx context.Context, input types.RecordSaleInput) (*domain.Sale, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("sale record activity not initialized", "saleId", input.SaleID)
		return nil, errors.New("sale record activity not initialized")
	}
	logger.Info("RecordSale activity started", "saleId", input.SaleID, "productId", input.ProductID, "attempt", activity.GetInfo(ctx).Attempt)
	sale, err := a.service.RecordSale(ctx, input)
	if err != nil {
		logger.Error("RecordSale activity failed", "saleId", input.SaleID, "productId", input.ProductID, "error", err)
		return nil, toApplicationError(err)
	}
	logger.Info("RecordSale activity completed", "saleId", sale.ID)
	return sale, nil
}

func toApplicationError(err error) error {
	switch {
	case errors.Is(err, salesports.ErrProductNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeProductNotFound, err)
	case errors.Is(err, salesports.ErrInsufficientStock):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, err)
	case errors.Is(err, salesapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	default:
		return err
	}
}
