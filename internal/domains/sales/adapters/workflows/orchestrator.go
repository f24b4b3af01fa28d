package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	salesapp "github.com/Apurer/cell-tech-api/internal/domains/sales/application"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
	saleactivities "github.com/Apurer/cell-tech-api/internal/durable/temporal/activities/sales"
	saleworkflows "github.com/Apurer/cell-tech-api/internal/durable/temporal/workflows/sales"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalSaleWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineSaleWorkflows)(nil)
)

// TemporalSaleWorkflows records sales through a Temporal workflow.
type TemporalSaleWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalSaleWorkflows wires a Temporal client into the orchestrator.
func NewTemporalSaleWorkflows(c client.Client) *TemporalSaleWorkflows {
	return &TemporalSaleWorkflows{client: c, taskQueue: saleworkflows.RecordingTaskQueue}
}

// RecordSale starts (or joins) the recording workflow for the sale id and waits for its result.
func (o *TemporalSaleWorkflows) RecordSale(ctx context.Context, input types.RecordSaleInput) (*domain.Sale, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal sale workflows not configured")
	}
	if input.SaleID == uuid.Nil {
		input.SaleID = ref.New()
	}
	workflowID := BuildRecordingWorkflowID(input.SaleID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		saleworkflows.RecordingWorkflowName,
		saleworkflows.RecordingWorkflowInput{Command: input, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var sale domain.Sale
	if err := run.Get(ctx, &sale); err != nil {
		return nil, MapWorkflowError(err)
	}
	return &sale, nil
}

// InlineSaleWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineSaleWorkflows struct {
	service ports.Service
}

// NewInlineSaleWorkflows wraps the sales service for synchronous execution.
func NewInlineSaleWorkflows(service ports.Service) *InlineSaleWorkflows {
	return &InlineSaleWorkflows{service: service}
}

func (o *InlineSaleWorkflows) RecordSale(ctx context.Context, input types.RecordSaleInput) (*domain.Sale, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline sale workflows not configured")
	}
	return o.service.RecordSale(ctx, input)
}

// BuildRecordingWorkflowID derives the workflow id from the sale id so a
// retried request joins the first run.
func BuildRecordingWorkflowID(saleID uuid.UUID) string {
	return fmt.Sprintf("sale-recording-%s", saleID)
}

// MapWorkflowError turns the activity's application error types back into sales errors.
func MapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case saleactivities.ErrTypeProductNotFound:
		return ports.ErrProductNotFound
	case saleactivities.ErrTypeInsufficientStock:
		return ports.ErrInsufficientStock
	case saleactivities.ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", salesapp.ErrInvalidInput, appErr.Error())
	default:
		return err
	}
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
