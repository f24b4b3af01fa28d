// Package temporal dials the Temporal frontend shared by the API and the worker.
package temporal

import (
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ErrDisabled is returned by Dial when Temporal is switched off.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// Settings addresses a Temporal namespace.
type Settings struct {
	Address   string
	Namespace string
	Disabled  bool
}

// Options builds client options with the tracing interceptor and the process logger.
func (s Settings) Options(logger *slog.Logger, tracer trace.Tracer) (client.Options, error) {
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
	if err != nil {
		return client.Options{}, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	options := client.Options{
		HostPort:  orDefault(s.Address, client.DefaultHostPort),
		Namespace: orDefault(s.Namespace, client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return options, nil
}

// Dial connects to Temporal, or returns ErrDisabled.
func Dial(settings Settings, logger *slog.Logger, tracer trace.Tracer) (client.Client, error) {
	if settings.Disabled {
		return nil, ErrDisabled
	}
	options, err := settings.Options(logger, tracer)
	if err != nil {
		return nil, err
	}
	return client.Dial(options)
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
