package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	platformtemporal "github.com/Apurer/cell-tech-api/internal/platform/temporal"
)

func TestRun_ReturnsDialErrorAfterAcquiringServices(t *testing.T) {
	for _, key := range []string{"POSTGRES_DSN", "JWT_SECRET", "REDIS_ADDR", "KAFKA_BROKERS", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("ENVIRONMENT", "local")
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("BCRYPT_SALT_ROUNDS", "4")
	t.Setenv("TEMPORAL_DISABLED", "true")

	err := run(context.Background())
	require.ErrorIs(t, err, platformtemporal.ErrDisabled)
}
