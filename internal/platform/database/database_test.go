package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDriver(t *testing.T) {
	cases := []struct {
		name     string
		settings Settings
		want     string
		wantErr  bool
	}{
		{name: "dsn implies postgres", settings: Settings{PostgresDSN: "postgres://localhost/celltech"}, want: DriverPostgres},
		{name: "nothing configured", settings: Settings{}, want: DriverMemory},
		{name: "explicit sqlite", settings: Settings{Driver: " SQLite "}, want: DriverSQLite},
		{name: "explicit memory wins over dsn", settings: Settings{Driver: "memory", PostgresDSN: "postgres://x"}, want: DriverMemory},
		{name: "unknown", settings: Settings{Driver: "mongo"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.settings.ResolveDriver()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOpen_MemoryYieldsNilDB(t *testing.T) {
	db, err := Open(context.Background(), Settings{Driver: DriverMemory})
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.NoError(t, Close(db))
}

func TestOpen_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "celltech.db")
	db, err := Open(context.Background(), Settings{Driver: DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.NoError(t, Close(db))
}
