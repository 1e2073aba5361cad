package datastore

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"

	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
)

// MySQLStore implements DataStore for MySQL
type MySQLStore struct {
	DataStore
	Settings *conf.Settings
}

func validateServerConfig(prefix string, s *conf.ServerSettings) error {
	switch {
	case s.Host == "":
		return validationError("database host must not be empty", prefix+".host", s.Host)
	case s.Database == "":
		return validationError("database name must not be empty", prefix+".database", s.Database)
	}
	return nil
}

// Open connects to the MySQL server and migrates the schema.
func (store *MySQLStore) Open() error {
	cfg := store.Settings.Database.MySQL
	if err := validateServerConfig("database.mysql", &cfg); err != nil {
		return err
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	location := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	return store.openWith(mysql.Open(dsn), location, store.Settings.Database.SlowQuery,
		pool{maxOpen: 50, maxIdle: 10, maxLifetime: time.Hour})
}
