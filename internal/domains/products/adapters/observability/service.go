package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/cell-tech-api/internal/domains/products/application/types"
	productports "github.com/Apurer/cell-tech-api/internal/domains/products/ports"
)

const tracerName = "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/observability/service"

// Service decorates the catalogue service with tracing, logging, and metrics.
type Service struct {
	inner   productports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
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

// New wraps the core products service.
func New(inner productports.Service, opts ...Option) productports.Service {
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

func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.name", input.Name))
	product, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	span.SetAttributes(attribute.String("product.id", product.Entity.ID.String()))
	s.metrics.recordMutation(ctx, "create")
	s.logInfo(ctx, "product created", slog.String("product.id", product.Entity.ID.String()), slog.Int64("product.stock", product.Entity.Stock))
	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProduct", trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()

	product, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get product", slog.String("product.id", id.String()))
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, filter types.ListProductsFilter) ([]*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts", trace.WithAttributes(
		attribute.String("filter.brand", filter.Brand),
		attribute.Bool("filter.in_stock", filter.InStock),
	))
	defer span.End()

	products, err := s.inner.ListProducts(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

func (s *Service) PatchProduct(ctx context.Context, input types.PatchProductInput) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.PatchProduct", trace.WithAttributes(attribute.String("product.id", input.ID.String())))
	defer span.End()

	product, err := s.inner.PatchProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to patch product", slog.String("product.id", input.ID.String()))
	}
	s.metrics.recordMutation(ctx, "patch")
	s.logInfo(ctx, "product patched",
		slog.String("product.id", product.Entity.ID.String()),
		slog.Int64("product.stock", product.Entity.Stock),
		slog.Bool("product.status", product.Entity.Status),
	)
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()

	if err := s.inner.DeleteProduct(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.String("product.id", id.String()))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "product deleted", slog.String("product.id", id.String()))
	return nil
}

func (s *Service) DeleteProducts(ctx context.Context, ids []uuid.UUID) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProducts", trace.WithAttributes(attribute.Int("products.requested", len(ids))))
	defer span.End()

	deleted, err := s.inner.DeleteProducts(ctx, ids)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to delete products", slog.Int("products.requested", len(ids)))
	}
	span.SetAttributes(attribute.Int64("products.deleted", deleted))
	s.metrics.recordMutation(ctx, "delete_many")
	s.logInfo(ctx, "products deleted", slog.Int("products.requested", len(ids)), slog.Int64("products.deleted", deleted))
	return deleted, nil
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
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("products.service.mutations", metric.WithDescription("Catalogue changes by operation"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ productports.Service = (*Service)(nil)
