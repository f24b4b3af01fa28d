package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/cell-tech-api/internal/domains/users/application/types"
	userdomain "github.com/Apurer/cell-tech-api/internal/domains/users/domain"
	userports "github.com/Apurer/cell-tech-api/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/observability/service"

// Service decorates the users service with tracing, logging, and metrics.
// Emails are logged, passwords and tokens never are.
type Service struct {
	inner   userports.Service
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

// New wraps the core users service.
func New(inner userports.Service, opts ...Option) userports.Service {
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

func (s *Service) Register(ctx context.Context, input types.RegisterInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register")
	defer span.End()

	s.logInfo(ctx, "registering user", slog.String("user.email", input.Email))
	user, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user", slog.String("user.email", input.Email))
	}
	span.SetAttributes(attribute.String("user.id", user.ID.String()))
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "user registered", slog.String("user.id", user.ID.String()))
	return user, nil
}

func (s *Service) Login(ctx context.Context, input types.LoginInput) (*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()

	session, err := s.inner.Login(ctx, input)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login rejected", slog.String("user.email", input.Email))
	}
	span.SetAttributes(attribute.String("user.id", session.User.ID.String()))
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "user logged in", slog.String("user.id", session.User.ID.String()))
	return session, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.ListUsers")
	defer span.End()

	users, err := s.inner.ListUsers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("users.count", len(users)))
	return users, nil
}

func (s *Service) PatchUser(ctx context.Context, input types.PatchUserInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.PatchUser", trace.WithAttributes(attribute.String("user.id", input.ID.String())))
	defer span.End()

	s.logInfo(ctx, "patching user", slog.String("user.id", input.ID.String()))
	user, err := s.inner.PatchUser(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to patch user", slog.String("user.id", input.ID.String()))
	}
	s.logInfo(ctx, "user patched", slog.String("user.id", user.ID.String()), slog.String("role", string(user.Role)), slog.String("status", string(user.Status)))
	return user, nil
}

func (s *Service) PromoteToAdmin(ctx context.Context, email string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.PromoteToAdmin")
	defer span.End()

	user, err := s.inner.PromoteToAdmin(ctx, email)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to promote user", slog.String("user.email", email))
	}
	s.logInfo(ctx, "user promoted to admin", slog.String("user.id", user.ID.String()))
	return user, nil
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
	registered metric.Int64Counter
	logins     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("users.service.registered", metric.WithDescription("Number of accounts registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Login attempts by outcome"))
	return serviceMetrics{registered: registered, logins: logins}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.registered != nil {
		m.registered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.success", ok)))
	}
}

var _ userports.Service = (*Service)(nil)
