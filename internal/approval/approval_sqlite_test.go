package approval

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/featured"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observability/metrics"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

func openStore(t *testing.T) datastore.Interface {
	t.Helper()
	settings := &conf.Settings{Database: conf.DatabaseSettings{
		Type:   conf.DatabaseSQLite,
		SQLite: conf.SQLiteSettings{Path: filepath.Join(t.TempDir(), "catalog.db"), Driver: conf.SQLiteDriverCGO},
	}}
	store, err := datastore.New(settings, nil)
	require.NoError(t, err)
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestApproveUpdatesFeaturedList(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	svc := featured.NewService(store, featured.Config{CacheTTL: time.Hour}, nil, nil)
	t.Cleanup(svc.Invalidate)
	gate := NewGate(store, fixedEngine(), svc, nil, nil)

	o := pending(0)
	o.ID = 0
	require.NoError(t, store.CreateObservation(ctx, o))

	before, err := svc.Featured(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, before)

	_, err = gate.Approve(ctx, o.ID, intPtr(0))
	require.NoError(t, err)

	after, err := svc.Featured(ctx, 5)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, 90, after[0].Score)
	assert.Equal(t, 1, after[0].Version)
}

func TestConcurrentApprovalsOneWins(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	m, err := metrics.NewCatalogMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	gate := NewGate(store, fixedEngine(), nil, m, nil)

	o := pending(0)
	o.ID = 0
	require.NoError(t, store.CreateObservation(ctx, o))

	const callers = 6
	var wins, conflicts atomic.Int32
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			_, err := gate.Approve(ctx, o.ID, intPtr(0))
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, observation.ErrVersionConflict):
				conflicts.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(callers-1), conflicts.Load())

	stored, err := store.GetObservation(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, observation.StatusApproved, stored.Status)

	assert.Equal(t, 2, testutil.CollectAndCount(m, "catalog_approvals_total"))
}

func TestSecondApprovalWithOldVersionConflicts(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	gate := NewGate(store, fixedEngine(), nil, nil, nil)

	o := pending(0)
	o.ID = 0
	require.NoError(t, store.CreateObservation(ctx, o))

	_, err := gate.Approve(ctx, o.ID, intPtr(0))
	require.NoError(t, err)
	before, err := store.GetObservation(ctx, o.ID)
	require.NoError(t, err)

	_, err = gate.Approve(ctx, o.ID, intPtr(0))
	var conflict *observation.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 0, conflict.Expected)
	assert.Equal(t, 1, conflict.Actual)

	after, err := store.GetObservation(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a rejected approval must leave the row untouched")
	assert.Equal(t, before.Score, after.Score)
	assert.True(t, before.ObsDate.Equal(after.ObsDate))

	again, err := gate.Approve(ctx, o.ID, intPtr(1))
	require.NoError(t, err)
	assert.Equal(t, 2, again.Version)
}
