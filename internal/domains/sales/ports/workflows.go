package ports

import (
	"context"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
)

// WorkflowOrchestrator runs sale recording either inline or as a durable workflow.
type WorkflowOrchestrator interface {
	RecordSale(ctx context.Context, input types.RecordSaleInput) (*domain.Sale, error)
}
