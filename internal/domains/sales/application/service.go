package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

// SaleMetrics counts sales the first time they are stored.
type SaleMetrics interface {
	RecordSale(quantity int64, amount decimal.Decimal)
}

// Service records sales and aggregates them into windowed statistics.
type Service struct {
	repo      ports.Repository
	cache     ports.StatisticsCache
	publisher ports.EventPublisher
	metrics   SaleMetrics
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithStatisticsCache(cache ports.StatisticsCache) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

func WithSaleMetrics(metrics SaleMetrics) Option {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithLogger sets the logger used for best-effort side effects that must not fail a sale.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		cache:     ports.NoopStatisticsCache{},
		publisher: ports.NoopEventPublisher{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// RecordSale withdraws stock and stores the sale atomically, then
// invalidates cached statistics and announces the sale. A replayed sale id
// returns the stored sale without repeating any of that.
func (s *Service) RecordSale(ctx context.Context, input types.RecordSaleInput) (*domain.Sale, error) {
	id := input.SaleID
	if id == uuid.Nil {
		id = ref.New()
	}
	dateSold := s.now()
	if input.DateSold != nil {
		dateSold = *input.DateSold
	}
	sale, err := domain.NewSale(id, input.ProductID, input.SellerID, input.QuantitySold, input.TotalAmount, dateSold)
	if err != nil {
		return nil, mapError(err)
	}
	stored, created, err := s.repo.Record(ctx, sale)
	if err != nil {
		return nil, mapError(err)
	}
	if !created {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "sale already recorded", slog.String("sale.id", stored.ID.String()))
		return stored, nil
	}
	s.afterRecord(ctx, stored)
	return stored, nil
}

// ListSales returns joined sales inside the requested window.
func (s *Service) ListSales(ctx context.Context, query types.SalesQuery) ([]domain.SaleDetails, error) {
	window, err := domain.ComputeWindow(query.Window, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.List(ctx, domain.Filter{Since: window.Since, SellerID: query.SellerID})
}

// SalesStatistics returns the zero-filled daily series for the requested window.
func (s *Service) SalesStatistics(ctx context.Context, query types.SalesQuery) (*domain.Statistics, error) {
	window, err := domain.ComputeWindow(query.Window, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	key := ports.StatisticsKey{Today: window.Today, Days: window.Days, SellerID: query.SellerID}

	// The generation is read before the query so a sale committed while it
	// runs orphans the entry written below.
	cached, generation, ok, cacheErr := s.cache.Get(ctx, key)
	if cacheErr != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "statistics cache read failed", slog.String("error", cacheErr.Error()))
	} else if ok {
		return cached, nil
	}

	sparse, err := s.repo.DailyTotals(ctx, domain.Filter{Since: window.Since, SellerID: query.SellerID})
	if err != nil {
		return nil, err
	}
	stats := domain.MergeSeries(window, sparse)
	if cacheErr != nil {
		return &stats, nil
	}
	if err := s.cache.Set(ctx, key, generation, &stats); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "statistics cache write failed", slog.String("error", err.Error()))
	}
	return &stats, nil
}

func (s *Service) afterRecord(ctx context.Context, sale *domain.Sale) {
	if s.metrics != nil {
		s.metrics.RecordSale(sale.QuantitySold, sale.TotalAmount)
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "statistics cache invalidation failed",
			slog.String("sale.id", sale.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	if err := s.publisher.PublishSaleRecorded(ctx, types.NewSaleRecordedEvent(sale, s.now())); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "sale event publish failed",
			slog.String("sale.id", sale.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

var _ ports.Service = (*Service)(nil)
