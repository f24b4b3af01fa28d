package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
)

// StatisticsKey identifies one cached series.
type StatisticsKey struct {
	Today    time.Time
	Days     int
	SellerID *uuid.UUID
}

// StatisticsCache memoizes dense series until the next sale is recorded.
// Get reports the generation it read under. Set stores under that generation,
// so a series computed before an Invalidate is never served after it.
type StatisticsCache interface {
	Get(ctx context.Context, key StatisticsKey) (stats *domain.Statistics, generation int64, ok bool, err error)
	Set(ctx context.Context, key StatisticsKey, generation int64, stats *domain.Statistics) error
	Invalidate(ctx context.Context) error
}

// NoopStatisticsCache never hits.
type NoopStatisticsCache struct{}

func (NoopStatisticsCache) Get(context.Context, StatisticsKey) (*domain.Statistics, int64, bool, error) {
	return nil, 0, false, nil
}

func (NoopStatisticsCache) Set(context.Context, StatisticsKey, int64, *domain.Statistics) error {
	return nil
}

func (NoopStatisticsCache) Invalidate(context.Context) error { return nil }
