package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cosmiccatalog/cosmic-catalog/internal/cli"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// runCommand executes one CLI invocation against dbPath and returns stdout.
func runCommand(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	ctx := &cli.Context{Out: &out, ErrOut: &bytes.Buffer{}}
	root := RootCommand(ctx)
	root.SetArgs(append([]string{"--json", "--sqlite-path", dbPath, "--config", writeConfig(t)}, args...))

	err := root.ExecuteContext(context.Background())
	require.NoError(t, ctx.Close())
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "log:\n  level: error\n  format: json\nfeatured:\n  cachettl: 1m\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestImportApproveFeaturedFlow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	out, err := runCommand(t, db, "import", "--sample")
	require.NoError(t, err)
	var summaries []observation.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Imported 6 records, skipped 2 duplicates", summaries[0].Notes)

	out, err = runCommand(t, db, "approve", "1", "--expected-version", "0")
	require.NoError(t, err)
	var approved cli.ObservationView
	require.NoError(t, json.Unmarshal([]byte(out), &approved))
	assert.Equal(t, "APPROVED", approved.Status)
	assert.Equal(t, 1, approved.Version)

	_, err = runCommand(t, db, "approve", "1", "--expected-version", "0")
	var conflict *observation.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.Actual)

	out, err = runCommand(t, db, "featured", "--limit", "5")
	require.NoError(t, err)
	var featured []cli.ObservationView
	require.NoError(t, json.Unmarshal([]byte(out), &featured))
	require.Len(t, featured, 1)
	assert.Equal(t, uint(1), featured[0].ID)

	out, err = runCommand(t, db, "list", "--status", "pending", "--size", "2")
	require.NoError(t, err)
	var page struct {
		Items []cli.ObservationView `json:"items"`
		Total int64                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Items, 2)

	out, err = runCommand(t, db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, `"observations": 6`)
}

func TestApproveUnknownID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")
	_, err := runCommand(t, db, "approve", "404")
	assert.ErrorIs(t, err, observation.ErrNotFound)

	_, err = runCommand(t, db, "approve", "abc")
	assert.Error(t, err)
}

func TestImportRequiresInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")
	_, err := runCommand(t, db, "import")
	assert.Error(t, err)
}

func TestExportWorkbook(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")
	_, err := runCommand(t, db, "import", "--realistic")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "obs.xlsx")
	_, err = runCommand(t, db, "export", "--output", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Observations")
	require.NoError(t, err)
	assert.Len(t, rows, 13)
}
