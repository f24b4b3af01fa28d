// Package migrations owns the schema of every bounded context.
package migrations

import (
	"gorm.io/gorm"

	productpostgres "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/persistence/postgres"
	salespostgres "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/persistence/postgres"
	userpostgres "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/persistence/postgres"
)

// Models lists the records in dependency order: sales reference users and products.
func Models() []any {
	models := make([]any, 0, 3)
	models = append(models, userpostgres.Models()...)
	models = append(models, productpostgres.Models()...)
	models = append(models, salespostgres.Models()...)
	return models
}

// Run applies the schema. A nil db (memory driver) has nothing to migrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(Models()...)
}
