// config.go: settings struct for the catalog and the functions that load it.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// AppName is used for config directories and the env prefix.
const AppName = "cosmic-catalog"

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabaseMySQL    = "mysql"
	DatabasePostgres = "postgres"
)

// SQLite driver names
const (
	SQLiteDriverCGO    = "sqlite3"
	SQLiteDriverModern = "modernc"
)

// LogSettings controls the logger output.
type LogSettings struct {
	Level  string // trace, debug, info, warn, error
	Format string // json, console, or empty to pick by terminal
}

// SQLiteSettings contains settings for the embedded database.
type SQLiteSettings struct {
	Path   string // path to the database file
	Driver string // sqlite3 (cgo) or modernc (pure Go)
}

// ServerSettings holds connection settings shared by MySQL and PostgreSQL.
type ServerSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string // postgres only
}

// DatabaseSettings selects and configures the observation store.
type DatabaseSettings struct {
	Type      string        // sqlite, mysql or postgres
	SlowQuery time.Duration // queries slower than this are logged as warnings
	SQLite    SQLiteSettings
	MySQL     ServerSettings
	Postgres  ServerSettings
}

// FeaturedSettings configures the featured observations view.
type FeaturedSettings struct {
	CacheTTL     time.Duration // how long a featured list is served from cache
	DefaultLimit int           // limit used when the caller passes none
}

// ImportSettings configures batch imports.
type ImportSettings struct {
	LockFile       string  // lock file guarding concurrent imports, empty derives one from the database
	RateLimit      float64 // records per second, 0 disables throttling
	ValidateSchema bool    // validate JSON input against the observation schema
}

// MetricsSettings configures metrics export.
type MetricsSettings struct {
	TextFile string // node_exporter textfile path, empty disables export
}

// TelemetrySettings configures error reporting.
type TelemetrySettings struct {
	Enabled bool
	DSN     string
}

// Settings contains all configuration options for the catalog.
type Settings struct {
	Debug bool

	Main struct {
		Name     string
		TimeZone string
	}

	Log       LogSettings
	Database  DatabaseSettings
	Featured  FeaturedSettings
	Import    ImportSettings
	Metrics   MetricsSettings
	Telemetry TelemetrySettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
// An empty configFile searches the default config paths; a missing file
// there is not an error and leaves the defaults in place.
func Load(configFile string) (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	if err := initViper(configFile); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper sets defaults, binds the environment and reads the config file.
func initViper(configFile string) error {
	setDefaultConfig()

	viper.SetEnvPrefix("CATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	for _, path := range GetDefaultConfigPaths() {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the directories searched for config.yaml,
// in priority order.
func GetDefaultConfigPaths() []string {
	paths := []string{"."}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", AppName))
	}
	return append(paths, filepath.Join("/etc", AppName))
}

// GetSettings returns the settings loaded by the last successful Load.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Location resolves the configured time zone, falling back to local time.
func (s *Settings) Location() *time.Location {
	if s.Main.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Main.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
