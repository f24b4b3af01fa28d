package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	saleactivities "github.com/Apurer/cell-tech-api/internal/durable/temporal/activities/sales"
)

// RunSaleRecordingSequence executes the activities needed to record a sale.
func RunSaleRecordingSequence(ctx workflow.Context, input types.RecordSaleInput) (*domain.Sale, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("sale recording sequence started", "saleId", input.SaleID, "productId", input.ProductID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: saleactivities.NonRetryableErrorTypes,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var sale domain.Sale
	if err := workflow.ExecuteActivity(ctx, saleactivities.RecordSaleActivityName, input).Get(ctx, &sale); err != nil {
		logger.Error("sale recording sequence failed", "saleId", input.SaleID, "error", err)
		return nil, err
	}
	logger.Info("sale recording sequence completed", "saleId", sale.ID)
	return &sale, nil
}
