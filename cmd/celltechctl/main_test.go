package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMemoryStore(t *testing.T) {
	t.Helper()
	for _, key := range []string{"POSTGRES_DSN", "JWT_SECRET", "REDIS_ADDR", "KAFKA_BROKERS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("ENVIRONMENT", "local")
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("BCRYPT_SALT_ROUNDS", "4")
}

func TestCreateAdmin_PrintsPromotedUser(t *testing.T) {
	useMemoryStore(t)
	var out bytes.Buffer

	err := newApp(&out).Run([]string{"celltechctl", "create-admin", "--email", "root@celltech.io", "--password", "secret123"})
	require.NoError(t, err)

	var user map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &user))
	assert.Equal(t, "admin", user["role"])
	assert.Equal(t, "root@celltech.io", user["email"])
	assert.NotContains(t, user, "password")
}

func TestStats_PrintsDenseSeries(t *testing.T) {
	useMemoryStore(t)
	var out bytes.Buffer

	require.NoError(t, newApp(&out).Run([]string{"celltechctl", "stats", "--days", "4"}))

	var payload struct {
		Series  []map[string]any `json:"series"`
		Summary map[string]any   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.Len(t, payload.Series, 4)
	assert.EqualValues(t, 4, payload.Summary["windowSizeInDays"])
}

func TestMigrate_RequiresDatabase(t *testing.T) {
	useMemoryStore(t)
	err := newApp(&bytes.Buffer{}).Run([]string{"celltechctl", "migrate"})
	assert.ErrorContains(t, err, "no database configured")
}

func TestStats_RejectsMalformedUser(t *testing.T) {
	useMemoryStore(t)
	err := newApp(&bytes.Buffer{}).Run([]string{"celltechctl", "stats", "--user", "42"})
	assert.Error(t, err)
}
