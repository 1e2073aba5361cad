// Package app wires the catalog components from settings.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/cosmiccatalog/cosmic-catalog/internal/approval"
	"github.com/cosmiccatalog/cosmic-catalog/internal/buildinfo"
	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/featured"
	"github.com/cosmiccatalog/cosmic-catalog/internal/health"
	"github.com/cosmiccatalog/cosmic-catalog/internal/importer"
	"github.com/cosmiccatalog/cosmic-catalog/internal/logger"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observability"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
	"github.com/cosmiccatalog/cosmic-catalog/internal/scoring"
)

const sentryFlushTimeout = 2 * time.Second

// App holds the wired components of one catalog process.
type App struct {
	Settings *conf.Settings
	Logger   logger.Logger
	Build    *buildinfo.Context

	Store    datastore.Interface
	Engine   *scoring.Engine
	Featured *featured.Service
	Gate     *approval.Gate
	Importer *importer.Orchestrator
	Loader   *importer.Loader
	Health   *health.Reporter
	Metrics  *observability.Metrics

	telemetry bool
}

// New opens the configured store and builds every component on top of it.
func New(settings *conf.Settings, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	build := buildinfo.Current()

	a := &App{
		Settings: settings,
		Logger:   log,
		Build:    build,
		Engine:   scoring.NewEngine(time.Now),
		Loader:   &importer.Loader{ValidateSchema: settings.Import.ValidateSchema},
	}

	if settings.Telemetry.Enabled && settings.Telemetry.DSN != "" {
		if err := errors.InitSentry(settings.Telemetry.DSN, build.GetVersion()); err != nil {
			log.Warn("telemetry disabled", logger.Error(err))
		} else {
			a.telemetry = true
		}
	}

	m, err := observability.NewMetrics()
	if err != nil {
		return nil, err
	}
	a.Metrics = m

	store, err := datastore.New(settings, log)
	if err != nil {
		return nil, err
	}
	if err := store.Open(); err != nil {
		return nil, err
	}
	a.Store = store

	a.Featured = featured.NewService(store, featured.Config{
		CacheTTL:     settings.Featured.CacheTTL,
		DefaultLimit: settings.Featured.DefaultLimit,
	}, m.Catalog, log)
	a.Gate = approval.NewGate(store, a.Engine, a.Featured, m.Catalog, log)
	a.Importer = importer.NewOrchestrator(store, a.Engine, importer.Options{
		RateLimit: settings.Import.RateLimit,
		Metrics:   m.Catalog,
		Logger:    log,
	})
	a.Health = health.NewReporter(store, build)

	return a, nil
}

// LockPath returns the import lock file for the configured database.
func (a *App) LockPath() string {
	if a.Settings.Import.LockFile != "" {
		return a.Settings.Import.LockFile
	}
	if a.Settings.Database.Type == conf.DatabaseSQLite || a.Settings.Database.Type == "" {
		return importer.LockPathFor(a.Settings.Database.SQLite.Path)
	}
	return importer.LockPathFor(filepath.Join(os.TempDir(), conf.AppName))
}

// Import loads each source and imports it as its own batch while holding
// the import lock. The bundled data sets are addressed by their source
// names. Batches are recorded under the file name of their source.
// Summaries of completed batches are returned even when a later source
// fails.
func (a *App) Import(ctx context.Context, sources ...string) ([]*observation.Summary, error) {
	lock := importer.NewLock(a.LockPath())
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			a.Logger.Warn("failed to release import lock", logger.Error(err), logger.String("path", lock.Path()))
		}
	}()

	summaries := make([]*observation.Summary, 0, len(sources))
	for _, source := range sources {
		records, err := a.load(source)
		if err != nil {
			return summaries, err
		}
		summary, err := a.Importer.ImportBatch(ctx, filepath.Base(source), records)
		if err != nil {
			return summaries, fmt.Errorf("import %s: %w", source, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (a *App) load(source string) ([]*observation.Observation, error) {
	switch source {
	case importer.SampleSource, importer.RealisticSource:
		return a.Loader.LoadBundled(source)
	default:
		return a.Loader.LoadFile(source)
	}
}

// Close writes the metrics textfile and closes the store.
func (a *App) Close() error {
	var errs []error
	if a.Metrics != nil {
		if err := a.Metrics.Flush(a.Settings.Metrics.TextFile); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.telemetry {
		sentry.Flush(sentryFlushTimeout)
	}
	if err := a.Logger.Flush(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
