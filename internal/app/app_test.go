package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore"
	"github.com/cosmiccatalog/cosmic-catalog/internal/importer"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

func testSettings(t *testing.T) *conf.Settings {
	t.Helper()
	dir := t.TempDir()
	s := &conf.Settings{}
	s.Database.Type = conf.DatabaseSQLite
	s.Database.SQLite = conf.SQLiteSettings{Path: filepath.Join(dir, "catalog.db"), Driver: conf.SQLiteDriverCGO}
	s.Featured = conf.FeaturedSettings{CacheTTL: time.Minute, DefaultLimit: 10}
	s.Import.ValidateSchema = true
	s.Metrics.TextFile = filepath.Join(dir, "catalog.prom")
	return s
}

func TestEndToEndWorkflow(t *testing.T) {
	ctx := context.Background()
	settings := testSettings(t)
	a, err := New(settings, nil)
	require.NoError(t, err)
	t.Cleanup(a.Featured.Invalidate)

	summaries, err := a.Import(ctx, importer.SampleSource, importer.RealisticSource)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 6, summaries[0].Imported)
	assert.Equal(t, "jwst_sample.json", summaries[0].Source)
	assert.Equal(t, 12, summaries[1].Imported)

	page, err := a.Store.ListObservations(ctx, datastore.ListOptions{Size: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	first := page.Items[0]

	approved, err := a.Gate.Approve(ctx, first.ID, &first.Version)
	require.NoError(t, err)
	assert.Equal(t, observation.StatusApproved, approved.Status)

	top, err := a.Featured.Featured(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, first.ID, top[0].ID)

	info, err := a.Health.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(18), info.Counts.Observations)
	assert.NotNil(t, info.LastImport)

	require.NoError(t, a.Close())

	body, err := os.ReadFile(settings.Metrics.TextFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `catalog_approvals_total{result="approved"} 1`))
}

func TestImportLockHeldElsewhere(t *testing.T) {
	ctx := context.Background()
	a, err := New(testSettings(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	other := importer.NewLock(a.LockPath())
	require.NoError(t, other.Acquire())
	defer other.Release()

	_, err = a.Import(ctx, importer.SampleSource)
	assert.ErrorIs(t, err, importer.ErrImportRunning)
}

func TestImportStopsAtFirstBadSource(t *testing.T) {
	ctx := context.Background()
	a, err := New(testSettings(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	summaries, err := a.Import(ctx, importer.SampleSource, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Len(t, summaries, 1)
}

func TestLockPath(t *testing.T) {
	s := testSettings(t)
	a := &App{Settings: s}
	assert.Equal(t, s.Database.SQLite.Path+".import.lock", a.LockPath())

	s.Import.LockFile = "/run/catalog/import.lock"
	assert.Equal(t, "/run/catalog/import.lock", a.LockPath())
}
