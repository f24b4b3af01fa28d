package ports

import (
	"context"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
)

// EventPublisher announces committed sales to downstream consumers.
type EventPublisher interface {
	PublishSaleRecorded(ctx context.Context, event types.SaleRecordedEvent) error
}

type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishSaleRecorded(context.Context, types.SaleRecordedEvent) error {
	return nil
}
