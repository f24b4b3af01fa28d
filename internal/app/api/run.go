package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	celltechserver "github.com/Apurer/cell-tech-api/go"
	salesworkflows "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/workflows"
	salesports "github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
	platformobservability "github.com/Apurer/cell-tech-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/cell-tech-api/internal/platform/temporal"
)

const serviceName = "cell-tech-api"

// Run boots the Cell Tech HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Warn("failed to release resources", slog.String("error", err.Error()))
		}
	}()

	var saleWorkflows salesports.WorkflowOrchestrator = salesworkflows.NewInlineSaleWorkflows(services.Sales)
	if temporalClient, err := platformtemporal.Dial(cfg.Temporal(), logger, instruments.Tracer("temporal-client")); err != nil {
		logger.Warn("Temporal workflows unavailable, recording sales inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		saleWorkflows = salesworkflows.NewTemporalSaleWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal().Namespace))
	}

	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := NewHandler(cfg, services, saleWorkflows, logger)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Cell Tech API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Cell Tech API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down Cell Tech API")
	return server.Shutdown(shutdownCtx)
}

// NewHandler assembles the gin engine with tracing, request metrics and /metrics.
func NewHandler(cfg Config, services *Services, saleWorkflows salesports.WorkflowOrchestrator, logger *slog.Logger) *gin.Engine {
	responder := celltechserver.NewResponder(logger)
	handlers := celltechserver.ApiHandleFunctions{
		AuthAPI:     celltechserver.NewAuthAPI(services.Users, responder),
		UsersAPI:    celltechserver.NewUsersAPI(services.Users, responder),
		ProductsAPI: celltechserver.NewProductsAPI(services.Products, responder),
		SalesAPI:    celltechserver.NewSalesAPI(services.Sales, saleWorkflows, responder),
	}
	return celltechserver.NewRouter(handlers, celltechserver.RouterOptions{
		Verifier:       services.Tokens,
		Responder:      responder,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Middleware: []gin.HandlerFunc{
			otelgin.Middleware(serviceName),
			services.Metrics.Middleware(),
		},
		Extra: []celltechserver.Route{
			{Name: "Metrics", Method: http.MethodGet, Pattern: "/metrics", Public: true, HandlerFunc: gin.WrapH(services.Metrics.Handler())},
		},
	})
}
