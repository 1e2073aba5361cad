package datastore

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"

	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
)

// PostgresStore implements DataStore for PostgreSQL
type PostgresStore struct {
	DataStore
	Settings *conf.Settings
}

// Open connects to the PostgreSQL server and migrates the schema.
func (store *PostgresStore) Open() error {
	cfg := store.Settings.Database.Postgres
	if err := validateServerConfig("database.postgres", &cfg); err != nil {
		return err
	}

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, sslMode)
	location := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	return store.openWith(postgres.Open(dsn), location, store.Settings.Database.SlowQuery,
		pool{maxOpen: 50, maxIdle: 10, maxLifetime: time.Hour})
}
