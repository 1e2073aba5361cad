package datastore

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cosmiccatalog/cosmic-catalog/internal/logger"
)

// pool describes connection pool limits applied after opening.
type pool struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// openWith connects through dialector, applies the pool limits and migrates
// the schema. location is logged and must not contain credentials.
func (ds *DataStore) openWith(dialector gorm.Dialector, location string, slowQuery time.Duration, p pool) error {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLoggerAdapter(ds.log(), slowQuery),
	})
	if err != nil {
		return connectionError(fmt.Errorf("failed to open %s database: %w", ds.dbType, err), "open", ds.dbType)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return connectionError(fmt.Errorf("failed to get underlying database: %w", err), "open", ds.dbType)
	}
	if p.maxOpen > 0 {
		sqlDB.SetMaxOpenConns(p.maxOpen)
	}
	if p.maxIdle > 0 {
		sqlDB.SetMaxIdleConns(p.maxIdle)
	}
	if p.maxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(p.maxLifetime)
	}

	ds.DB = db
	ds.log().Info("database opened",
		logger.String("db_type", ds.dbType),
		logger.String("location", location))

	return performAutoMigration(db, ds.dbType, ds.log())
}
