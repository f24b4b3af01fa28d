package sales

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	salesports "github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
	saleactivities "github.com/Apurer/cell-tech-api/internal/durable/temporal/activities/sales"
)

type scriptedService struct {
	calls atomic.Int32
	errs  []error
}

func (s *scriptedService) RecordSale(_ context.Context, input types.RecordSaleInput) (*domain.Sale, error) {
	n := int(s.calls.Add(1)) - 1
	if n < len(s.errs) && s.errs[n] != nil {
		return nil, s.errs[n]
	}
	return &domain.Sale{
		ID:           input.SaleID,
		ProductID:    input.ProductID,
		SellerID:     input.SellerID,
		QuantitySold: input.QuantitySold,
		TotalAmount:  input.TotalAmount,
		DateSold:     time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (s *scriptedService) ListSales(context.Context, types.SalesQuery) ([]domain.SaleDetails, error) {
	return nil, nil
}

func (s *scriptedService) SalesStatistics(context.Context, types.SalesQuery) (*domain.Statistics, error) {
	return nil, nil
}

func newEnv(t *testing.T, svc *scriptedService) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(RecordingWorkflow, workflow.RegisterOptions{Name: RecordingWorkflowName})
	acts := saleactivities.NewActivities(svc)
	env.RegisterActivityWithOptions(acts.RecordSale, activity.RegisterOptions{Name: saleactivities.RecordSaleActivityName})
	return env
}

func input() RecordingWorkflowInput {
	return RecordingWorkflowInput{
		Command: types.RecordSaleInput{
			SaleID:       uuid.New(),
			ProductID:    uuid.New(),
			SellerID:     uuid.New(),
			QuantitySold: 2,
			TotalAmount:  decimal.NewFromInt(20),
		},
		TraceID: "trace-1",
	}
}

func TestRecordingWorkflow_Completes(t *testing.T) {
	svc := &scriptedService{}
	env := newEnv(t, svc)
	in := input()

	env.ExecuteWorkflow(RecordingWorkflowName, in)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var sale domain.Sale
	require.NoError(t, env.GetWorkflowResult(&sale))
	assert.Equal(t, in.Command.SaleID, sale.ID)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(20)))
}

func TestRecordingWorkflow_RetriesTransientFailures(t *testing.T) {
	svc := &scriptedService{errs: []error{errors.New("connection reset")}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(RecordingWorkflowName, input())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	assert.Equal(t, int32(2), svc.calls.Load())
}

func TestRecordingWorkflow_InsufficientStockIsNotRetried(t *testing.T) {
	svc := &scriptedService{errs: []error{salesports.ErrInsufficientStock}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(RecordingWorkflowName, input())

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, saleactivities.ErrTypeInsufficientStock, appErr.Type())
	assert.Equal(t, int32(1), svc.calls.Load())
}
