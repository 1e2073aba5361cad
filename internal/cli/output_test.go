package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore"
	"github.com/cosmiccatalog/cosmic-catalog/internal/health"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

func sample() []*observation.Observation {
	return []*observation.Observation{
		{ID: 1, Telescope: "JWST", TargetName: "SMACS 0723", Instrument: "NIRCam", Filters: "F200W",
			ObsDate: time.Date(2022, 6, 7, 9, 13, 0, 0, time.UTC), Score: 42, Status: observation.StatusApproved, Version: 1},
		{ID: 2, Telescope: "HST", TargetName: "M51", Score: 10, Status: observation.StatusPending},
	}
}

func TestObservationsJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, true, time.UTC).Observations(sample()))

	var views []ObservationView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &views))
	require.Len(t, views, 2)
	assert.True(t, views[0].HasDontPanicBadge)
	assert.False(t, views[1].HasDontPanicBadge)
	assert.Equal(t, "APPROVED", views[0].Status)
	assert.Contains(t, buf.String(), `"targetName": "SMACS 0723"`)
}

func TestObservationsTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false, time.UTC).Observations(sample()))

	out := buf.String()
	assert.Contains(t, out, "SMACS 0723")
	assert.Contains(t, out, "2022-06-07")
	assert.Contains(t, out, badgeText)
	assert.Contains(t, out, "PENDING")
}

func TestPageCaption(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	result := &datastore.ListResult{Items: sample(), Total: 1234, Page: 1, Size: 2}
	require.NoError(t, NewPrinter(&buf, false, time.UTC).Page(result))
	assert.Contains(t, buf.String(), "page 2 of 617, 1,234 observations")
}

func TestHealthTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, time.UTC)
	last := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return last.Add(3 * time.Hour) }

	require.NoError(t, p.Health(&health.Info{
		Version:    "v1.0.0",
		Counts:     health.Counts{Observations: 12345, Targets: 12},
		LastImport: &last,
	}))
	out := buf.String()
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "3 hours ago")
	assert.Contains(t, out, "2025-01-01 10:00:00")
}

func TestHealthNeverImported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false, time.UTC).Health(&health.Info{Version: "unknown"}))
	assert.Contains(t, buf.String(), "never")
}

func TestSummariesJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	summaries := []*observation.Summary{{Source: "jwst_sample.json", TotalProcessed: 8, Imported: 6, DuplicatesFound: 2,
		Status: observation.BatchSucceeded, Notes: "Imported 6 records, skipped 2 duplicates"}}
	require.NoError(t, NewPrinter(&buf, true, time.UTC).Summaries(summaries))
	assert.Contains(t, buf.String(), `"duplicatesFound": 2`)
}

func TestMessage(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false, time.UTC).Message("rows", int64(4321)))
	assert.Equal(t, "rows: 4,321\n", buf.String())
}

func TestNewLoggerFormats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	settings := &conf.Settings{Log: conf.LogSettings{Level: "info", Format: "json"}}
	NewLogger(settings, &buf).Info("hello")
	assert.Contains(t, buf.String(), `"module":"catalog"`)

	buf.Reset()
	settings.Log.Format = ""
	NewLogger(settings, &buf).Info("not a terminal")
	assert.Contains(t, buf.String(), `"msg":"not a terminal"`)

	buf.Reset()
	settings.Log.Level = "error"
	settings.Debug = true
	NewLogger(settings, &buf).Debug("debug overrides level")
	assert.Contains(t, buf.String(), "debug overrides level")
}
