// conf/validate.go

package conf

import (
	"fmt"
	"slices"
	"strings"
)

// MaxFeaturedLimit bounds the featured list size.
const MaxFeaturedLimit = 100

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	ve.Errors = append(ve.Errors, validateLogSettings(&settings.Log)...)
	ve.Errors = append(ve.Errors, validateDatabaseSettings(&settings.Database)...)
	ve.Errors = append(ve.Errors, validateFeaturedSettings(&settings.Featured)...)

	if settings.Import.RateLimit < 0 {
		ve.Errors = append(ve.Errors, "import.ratelimit must not be negative")
	}

	if settings.Telemetry.Enabled && settings.Telemetry.DSN == "" {
		ve.Errors = append(ve.Errors, "telemetry.dsn is required when telemetry is enabled")
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateLogSettings(s *LogSettings) []string {
	var errs []string
	if !slices.Contains([]string{"trace", "debug", "info", "warn", "error"}, strings.ToLower(s.Level)) {
		errs = append(errs, fmt.Sprintf("log.level %q is not one of trace, debug, info, warn, error", s.Level))
	}
	if s.Format != "" && s.Format != "json" && s.Format != "console" {
		errs = append(errs, fmt.Sprintf("log.format %q must be json, console or empty for auto-detection", s.Format))
	}
	return errs
}

func validateDatabaseSettings(s *DatabaseSettings) []string {
	var errs []string

	switch s.Type {
	case DatabaseSQLite:
		if s.SQLite.Path == "" {
			errs = append(errs, "database.sqlite.path is required")
		}
		if s.SQLite.Driver != SQLiteDriverCGO && s.SQLite.Driver != SQLiteDriverModern {
			errs = append(errs, fmt.Sprintf("database.sqlite.driver %q must be %s or %s",
				s.SQLite.Driver, SQLiteDriverCGO, SQLiteDriverModern))
		}
	case DatabaseMySQL:
		errs = append(errs, validateServerSettings("database.mysql", &s.MySQL)...)
	case DatabasePostgres:
		errs = append(errs, validateServerSettings("database.postgres", &s.Postgres)...)
	default:
		errs = append(errs, fmt.Sprintf("database.type %q must be sqlite, mysql or postgres", s.Type))
	}

	if s.SlowQuery < 0 {
		errs = append(errs, "database.slowquery must not be negative")
	}
	return errs
}

func validateServerSettings(prefix string, s *ServerSettings) []string {
	var errs []string
	if s.Host == "" {
		errs = append(errs, prefix+".host is required")
	}
	if s.Port <= 0 || s.Port > 65535 {
		errs = append(errs, fmt.Sprintf("%s.port %d is out of range", prefix, s.Port))
	}
	if s.Database == "" {
		errs = append(errs, prefix+".database is required")
	}
	return errs
}

func validateFeaturedSettings(s *FeaturedSettings) []string {
	var errs []string
	if s.DefaultLimit < 1 || s.DefaultLimit > MaxFeaturedLimit {
		errs = append(errs, fmt.Sprintf("featured.defaultlimit must be between 1 and %d", MaxFeaturedLimit))
	}
	if s.CacheTTL < 0 {
		errs = append(errs, "featured.cachettl must not be negative")
	}
	return errs
}
