// Package database selects the gorm store the processes run against.
package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Apurer/cell-tech-api/internal/platform/postgres"
	"github.com/Apurer/cell-tech-api/internal/platform/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Settings picks a driver. An empty Driver resolves to postgres when a DSN is present, memory otherwise.
type Settings struct {
	Driver      string
	PostgresDSN string
	SQLitePath  string
}

// ResolveDriver applies the default driver rule and validates the name.
func (s Settings) ResolveDriver() (string, error) {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	switch driver {
	case "":
		if strings.TrimSpace(s.PostgresDSN) != "" {
			return DriverPostgres, nil
		}
		return DriverMemory, nil
	case DriverPostgres, DriverSQLite, DriverMemory:
		return driver, nil
	default:
		return "", fmt.Errorf("unknown database driver %q", s.Driver)
	}
}

// Open connects to the selected store. The memory driver yields a nil *gorm.DB.
func Open(ctx context.Context, settings Settings) (*gorm.DB, error) {
	driver, err := settings.ResolveDriver()
	if err != nil {
		return nil, err
	}
	switch driver {
	case DriverPostgres:
		return postgres.Connect(ctx, settings.PostgresDSN)
	case DriverSQLite:
		return sqlite.Open(ctx, settings.SQLitePath)
	default:
		return nil, nil
	}
}

// Close releases the pool behind db. A nil db is a no-op.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
