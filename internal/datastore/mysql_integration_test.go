//go:build integration

package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

func TestMySQLStoreVersionedWrites(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctr, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("catalog"),
		tcmysql.WithUsername("catalog"),
		tcmysql.WithPassword("catalog"),
	)
	defer func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	settings := &conf.Settings{Database: conf.DatabaseSettings{
		Type: conf.DatabaseMySQL,
		MySQL: conf.ServerSettings{
			Host:     host,
			Port:     port.Int(),
			Username: "catalog",
			Password: "catalog",
			Database: "catalog",
		},
	}}
	store, err := New(settings, nil)
	require.NoError(t, err)
	require.NoError(t, store.Open())
	defer store.Close()

	o := sampleObservation("Stephan's Quintet", 339.0, 33.96)
	require.NoError(t, store.CreateObservation(ctx, o))

	stale := *o
	o.Status = observation.StatusApproved
	require.NoError(t, store.SaveObservation(ctx, o))
	assert.Equal(t, 1, o.Version)

	err = store.SaveObservation(ctx, &stale)
	var conflict *observation.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.Actual)

	candidates, err := store.FindCandidates(ctx, o.Telescope, o.TargetName, o.Filters)
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}
