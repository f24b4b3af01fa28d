package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/cell-tech-api/internal/app/api"
	saleactivities "github.com/Apurer/cell-tech-api/internal/durable/temporal/activities/sales"
	saleworkflows "github.com/Apurer/cell-tech-api/internal/durable/temporal/workflows/sales"
	platformobservability "github.com/Apurer/cell-tech-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/cell-tech-api/internal/platform/temporal"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("cell tech worker: %v", err)
	}
}

// run owns every resource the worker acquires so their deferred closes
// finish before main exits.
func run(ctx context.Context) error {
	const serviceName = "cell-tech-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, err := api.BuildServices(ctx, cfg, instruments)
	if err != nil {
		logger.Error("failed to build services", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Warn("failed to release resources", slog.String("error", err.Error()))
		}
	}()
	if services.DB == nil {
		logger.Warn("worker is using in-memory repositories; sales recorded here are invisible to the API")
	}

	temporalClient, err := platformtemporal.Dial(cfg.Temporal(), logger, instruments.Tracer("temporal-worker"))
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		return err
	}
	defer temporalClient.Close()

	activities := saleactivities.NewActivities(services.Sales)
	w := worker.New(temporalClient, saleworkflows.RecordingTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(saleworkflows.RecordingWorkflow, workflow.RegisterOptions{Name: saleworkflows.RecordingWorkflowName})
	w.RegisterActivityWithOptions(activities.RecordSale, activity.RegisterOptions{Name: saleactivities.RecordSaleActivityName})

	logger.Info("worker listening", slog.String("taskQueue", saleworkflows.RecordingTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}
