package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	salesapp "github.com/Apurer/cell-tech-api/internal/domains/sales/application"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	salesports "github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
)

const tracerName = "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/observability/service"

// FailureMetrics receives rejected sales by reason, typically the Prometheus collectors.
// Successful sales are counted by the application service, which knows whether a sale is new.
type FailureMetrics interface {
	RecordSaleFailure(reason string)
}

// Service decorates the sales service with tracing, logging, and metrics.
type Service struct {
	inner    salesports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	metrics  serviceMetrics
	failures FailureMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

func WithFailureMetrics(m FailureMetrics) Option {
	return func(s *Service) {
		s.failures = m
	}
}

// New wraps the core sales service.
func New(inner salesports.Service, opts ...Option) salesports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) RecordSale(ctx context.Context, input types.RecordSaleInput) (*domain.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.RecordSale", trace.WithAttributes(
		attribute.String("product.id", input.ProductID.String()),
		attribute.String("seller.id", input.SellerID.String()),
		attribute.Int64("sale.quantity", input.QuantitySold),
	))
	defer span.End()

	sale, err := s.inner.RecordSale(ctx, input)
	if err != nil {
		reason := FailureReason(err)
		s.metrics.recordSale(ctx, reason)
		if s.failures != nil {
			s.failures.RecordSaleFailure(reason)
		}
		return nil, s.handleError(ctx, span, err, "failed to record sale",
			slog.String("product.id", input.ProductID.String()),
			slog.String("seller.id", input.SellerID.String()),
			slog.Int64("sale.quantity", input.QuantitySold),
			slog.String("reason", reason),
		)
	}
	span.SetAttributes(attribute.String("sale.id", sale.ID.String()))
	s.metrics.recordSale(ctx, "ok")
	s.logInfo(ctx, "sale recorded",
		slog.String("sale.id", sale.ID.String()),
		slog.String("product.id", sale.ProductID.String()),
		slog.Int64("sale.quantity", sale.QuantitySold),
		slog.String("sale.total", sale.TotalAmount.String()),
	)
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context, query types.SalesQuery) ([]domain.SaleDetails, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.ListSales")
	defer span.End()

	list, err := s.inner.ListSales(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list sales")
	}
	span.SetAttributes(attribute.Int("sales.count", len(list)))
	return list, nil
}

func (s *Service) SalesStatistics(ctx context.Context, query types.SalesQuery) (*domain.Statistics, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.SalesStatistics")
	defer span.End()

	stats, err := s.inner.SalesStatistics(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute sales statistics")
	}
	span.SetAttributes(
		attribute.Int("window.days", stats.WindowDays),
		attribute.String("sales.total", stats.TotalAmountSold.String()),
	)
	s.logInfo(ctx, "sales statistics computed", slog.Int("window.days", stats.WindowDays))
	return stats, nil
}

// FailureReason buckets a sale error into a low-cardinality label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, salesports.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, salesports.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, salesapp.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	sales metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	sales, _ := m.Int64Counter("sales.service.recorded", metric.WithDescription("Sale attempts by outcome"))
	return serviceMetrics{sales: sales}
}

func (m serviceMetrics) recordSale(ctx context.Context, outcome string) {
	if m.sales != nil {
		m.sales.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

var _ salesports.Service = (*Service)(nil)
