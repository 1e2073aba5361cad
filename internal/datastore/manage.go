package datastore

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore/entities"
	"github.com/cosmiccatalog/cosmic-catalog/internal/logger"
)

// models lists every table managed by the catalog, in creation order.
func models() []any {
	return []any{
		&entities.TargetEntity{},
		&entities.ObservationEntity{},
		&entities.ImportBatchEntity{},
	}
}

// performAutoMigration brings the schema up to date and logs what changed.
func performAutoMigration(db *gorm.DB, dbType string, log logger.Logger) error {
	start := time.Now()
	migrator := db.Migrator()

	for _, model := range models() {
		existed := migrator.HasTable(model)
		if err := db.AutoMigrate(model); err != nil {
			return dbError(fmt.Errorf("failed to migrate %T: %w", model, err), "auto_migrate", "",
				"db_type", dbType)
		}
		if !existed {
			log.Debug("table created", logger.String("model", fmt.Sprintf("%T", model)))
		}
	}

	log.Info("database schema ready",
		logger.String("db_type", dbType),
		logger.Duration("duration", time.Since(start)))
	return nil
}

// closeDB closes the underlying sql.DB pool.
func closeDB(db *gorm.DB, dbType string) error {
	if db == nil {
		return connectionError(fmt.Errorf("database connection is not initialized"), "close", dbType)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return connectionError(err, "close", dbType)
	}
	if err := sqlDB.Close(); err != nil {
		return connectionError(err, "close", dbType)
	}
	return nil
}
