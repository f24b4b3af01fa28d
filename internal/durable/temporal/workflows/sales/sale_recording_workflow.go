package sales

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	"github.com/Apurer/cell-tech-api/internal/durable/temporal/sequences"
)

const (
	// RecordingWorkflowName is the public identifier for registering the workflow.
	RecordingWorkflowName = "sales.workflows.Recording"
	// RecordingTaskQueue is the queue consumed by the worker processing sale workflows.
	RecordingTaskQueue = "SALE_RECORDING"
)

// RecordingWorkflowInput carries the sale to record and the caller's trace id.
type RecordingWorkflowInput struct {
	Command types.RecordSaleInput
	TraceID string
}

// RecordingWorkflow records a sale durably.
func RecordingWorkflow(ctx workflow.Context, input RecordingWorkflowInput) (*domain.Sale, error) {
	logger := workflow.GetLogger(ctx)
	saleID := input.Command.SaleID
	logger.Info("RecordingWorkflow started", withTraceID(input.TraceID, "saleId", saleID)...)
	sale, err := sequences.RunSaleRecordingSequence(ctx, input.Command)
	if err != nil {
		logger.Error("RecordingWorkflow failed", withTraceID(input.TraceID, "saleId", saleID, "error", err)...)
		return nil, err
	}
	logger.Info("RecordingWorkflow completed", withTraceID(input.TraceID, "saleId", sale.ID)...)
	return sale, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
