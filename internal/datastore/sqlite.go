package datastore

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Pure Go driver, registered as "sqlite"
	_ "modernc.org/sqlite"

	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
)

// modernDriverName is the database/sql name registered by modernc.org/sqlite.
const modernDriverName = "sqlite"

// SQLiteStore implements DataStore for SQLite
type SQLiteStore struct {
	DataStore
	Settings *conf.Settings
}

// Open creates the database file if needed and connects to it.
func (store *SQLiteStore) Open() error {
	cfg := store.Settings.Database.SQLite
	if cfg.Path == "" {
		return validationError("sqlite path must not be empty", "database.sqlite.path", cfg.Path)
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(fmt.Errorf("failed to create database directory: %w", err)).
				Component("datastore").
				Category(errors.CategoryFileIO).
				Context("path", dir).
				Build()
		}
	}

	dialector, err := sqliteDialector(cfg)
	if err != nil {
		return err
	}

	// A single connection serializes writers so transactions never hit
	// SQLITE_BUSY on lock upgrade.
	return store.openWith(dialector, cfg.Path, store.Settings.Database.SlowQuery, pool{maxOpen: 1})
}

// sqliteDialector builds the GORM dialector for the configured driver.
func sqliteDialector(cfg conf.SQLiteSettings) (gorm.Dialector, error) {
	switch cfg.Driver {
	case conf.SQLiteDriverCGO, "":
		dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", cfg.Path)
		return sqlite.Open(dsn), nil
	case conf.SQLiteDriverModern:
		dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", cfg.Path)
		return sqlite.New(sqlite.Config{DriverName: modernDriverName, DSN: dsn}), nil
	default:
		return nil, validationError(fmt.Sprintf("unknown sqlite driver %q", cfg.Driver), "database.sqlite.driver", cfg.Driver)
	}
}
