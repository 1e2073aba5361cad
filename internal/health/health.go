// Package health reports the catalog's version and content counts.
package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cosmiccatalog/cosmic-catalog/internal/buildinfo"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// Store provides the counts and ledger queries used by the report.
type Store interface {
	CountObservations(ctx context.Context) (int64, error)
	CountTargets(ctx context.Context) (int64, error)
	LatestCompletedBatch(ctx context.Context) (*observation.ImportBatch, error)
}

// Counts holds the sizes of the catalog tables.
type Counts struct {
	Observations int64 `json:"observations"`
	Targets      int64 `json:"targets"`
}

// Info is a point-in-time health report.
type Info struct {
	Version    string     `json:"version"`
	Counts     Counts     `json:"counts"`
	LastImport *time.Time `json:"lastImport"`
}

// Reporter builds health reports.
type Reporter struct {
	store Store
	build buildinfo.BuildInfo
}

// NewReporter creates a reporter.
func NewReporter(store Store, build buildinfo.BuildInfo) *Reporter {
	return &Reporter{store: store, build: build}
}

// Report queries the store. LastImport is nil when nothing was imported.
func (r *Reporter) Report(ctx context.Context) (*Info, error) {
	info := &Info{Version: r.build.GetVersion()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.store.CountObservations(gctx)
		info.Counts.Observations = n
		return err
	})
	g.Go(func() error {
		n, err := r.store.CountTargets(gctx)
		info.Counts.Targets = n
		return err
	})
	g.Go(func() error {
		batch, err := r.store.LatestCompletedBatch(gctx)
		if err != nil || batch == nil || batch.CompletedAt.IsZero() {
			return err
		}
		completed := batch.CompletedAt
		info.LastImport = &completed
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return info, nil
}
