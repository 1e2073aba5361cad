// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "Cosmic Catalog")
	viper.SetDefault("main.timezone", "")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "")

	viper.SetDefault("database.type", DatabaseSQLite)
	viper.SetDefault("database.slowquery", 200*time.Millisecond)
	viper.SetDefault("database.sqlite.path", "catalog.db")
	viper.SetDefault("database.sqlite.driver", SQLiteDriverCGO)

	viper.SetDefault("database.mysql.host", "localhost")
	viper.SetDefault("database.mysql.port", 3306)
	viper.SetDefault("database.mysql.username", "")
	viper.SetDefault("database.mysql.password", "")
	viper.SetDefault("database.mysql.database", "catalog")

	viper.SetDefault("database.postgres.host", "localhost")
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("database.postgres.username", "")
	viper.SetDefault("database.postgres.password", "")
	viper.SetDefault("database.postgres.database", "catalog")
	viper.SetDefault("database.postgres.sslmode", "disable")

	viper.SetDefault("featured.cachettl", 5*time.Minute)
	viper.SetDefault("featured.defaultlimit", 10)

	viper.SetDefault("import.lockfile", "")
	viper.SetDefault("import.ratelimit", 0.0)
	viper.SetDefault("import.validateschema", true)

	viper.SetDefault("metrics.textfile", "")

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.dsn", "")
}
