// interfaces.go: this code defines the interface for the catalog's database operations
package datastore

import (
	"context"

	"gorm.io/gorm"

	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/logger"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// Interface abstracts the underlying database implementation.
type Interface interface {
	Open() error
	Close() error

	// Observations
	GetObservation(ctx context.Context, id uint) (*observation.Observation, error)
	FindCandidates(ctx context.Context, telescope, targetName, filters string) ([]*observation.Observation, error)
	CreateObservation(ctx context.Context, o *observation.Observation) error
	SaveObservation(ctx context.Context, o *observation.Observation) error
	ListObservations(ctx context.Context, opts ListOptions) (*ListResult, error)
	FeaturedObservations(ctx context.Context, limit int) ([]*observation.Observation, error)
	CountObservations(ctx context.Context) (int64, error)

	// Targets
	CountTargets(ctx context.Context) (int64, error)

	// Import ledger
	SaveImportBatch(ctx context.Context, b *observation.ImportBatch) error
	LatestCompletedBatch(ctx context.Context) (*observation.ImportBatch, error)
	RecentImportBatches(ctx context.Context, limit int) ([]*observation.ImportBatch, error)
}

// DataStore implements Interface using a GORM database. The engine
// specific stores embed it and only differ in how they open the connection.
type DataStore struct {
	DB     *gorm.DB
	Logger logger.Logger
	dbType string
}

// New creates the store selected by settings.Database.Type. The returned
// store is not connected until Open is called.
func New(settings *conf.Settings, log logger.Logger) (Interface, error) {
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	log = log.Module("datastore")

	switch settings.Database.Type {
	case conf.DatabaseSQLite, "":
		return &SQLiteStore{DataStore: DataStore{Logger: log, dbType: conf.DatabaseSQLite}, Settings: settings}, nil
	case conf.DatabaseMySQL:
		return &MySQLStore{DataStore: DataStore{Logger: log, dbType: conf.DatabaseMySQL}, Settings: settings}, nil
	case conf.DatabasePostgres:
		return &PostgresStore{DataStore: DataStore{Logger: log, dbType: conf.DatabasePostgres}, Settings: settings}, nil
	default:
		return nil, errors.Newf("unsupported database type %q", settings.Database.Type).
			Component("datastore").
			Category(errors.CategoryConfiguration).
			Context("db_type", settings.Database.Type).
			Build()
	}
}

// Close releases the connection pool.
func (ds *DataStore) Close() error {
	if err := closeDB(ds.DB, ds.dbType); err != nil {
		return err
	}
	ds.log().Debug("database closed", logger.String("db_type", ds.dbType))
	return nil
}

// log returns the store logger, never nil.
func (ds *DataStore) log() logger.Logger {
	if ds.Logger == nil {
		return logger.NewDiscardLogger()
	}
	return ds.Logger
}
