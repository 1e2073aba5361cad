// Package approval moves observations to the APPROVED state under
// optimistic concurrency control.
package approval

import (
	"context"

	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/logger"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observability/metrics"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// Store is the storage the gate reads from and writes to.
type Store interface {
	GetObservation(ctx context.Context, id uint) (*observation.Observation, error)
	// SaveObservation writes status and score only if the stored version
	// still equals o.Version, incrementing it on success.
	SaveObservation(ctx context.Context, o *observation.Observation) error
}

// Scorer recomputes an observation's score against its own clock.
type Scorer interface {
	Score(o *observation.Observation) int
}

// Invalidator is notified after every successful approval.
type Invalidator interface {
	Invalidate()
}

// Gate approves observations.
type Gate struct {
	store    Store
	scorer   Scorer
	featured Invalidator
	metrics  *metrics.CatalogMetrics
	log      logger.Logger
}

// NewGate creates an approval gate. featured, m and log may be nil.
func NewGate(store Store, scorer Scorer, featured Invalidator, m *metrics.CatalogMetrics, log logger.Logger) *Gate {
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	return &Gate{
		store:    store,
		scorer:   scorer,
		featured: featured,
		metrics:  m,
		log:      log.Module("approval"),
	}
}

// Approve marks observation id as APPROVED and recomputes its score.
//
// When expectedVersion is non-nil it must equal the stored version, or a
// *observation.VersionConflictError is returned and nothing is written. A
// nil expectedVersion skips that check, but the write is still conditional
// on the version just read, so a concurrent writer can still cause a
// conflict.
func (g *Gate) Approve(ctx context.Context, id uint, expectedVersion *int) (*observation.Observation, error) {
	log := g.log.WithContext(ctx).With(logger.Uint("observation_id", id))

	obs, err := g.store.GetObservation(ctx, id)
	if err != nil {
		g.recordFailure(err)
		return nil, err
	}

	if expectedVersion != nil && *expectedVersion != obs.Version {
		g.metrics.RecordApproval(metrics.ApprovalConflict)
		log.Info("approval rejected, stale version",
			logger.Int("expected_version", *expectedVersion),
			logger.Int("actual_version", obs.Version))
		return nil, &observation.VersionConflictError{ID: id, Expected: *expectedVersion, Actual: obs.Version}
	}

	previous := obs.Score
	obs.Status = observation.StatusApproved
	obs.Score = g.scorer.Score(obs)

	if err := g.store.SaveObservation(ctx, obs); err != nil {
		g.recordFailure(err)
		if errors.Is(err, observation.ErrVersionConflict) {
			log.Info("approval lost to a concurrent update", logger.Error(err))
		}
		return nil, err
	}

	if g.featured != nil {
		g.featured.Invalidate()
	}
	g.metrics.RecordApproval(metrics.ApprovalApproved)
	log.Info("observation approved",
		logger.Int("version", obs.Version),
		logger.Int("score", obs.Score),
		logger.Int("previous_score", previous))

	return obs, nil
}

func (g *Gate) recordFailure(err error) {
	switch {
	case errors.Is(err, observation.ErrVersionConflict):
		g.metrics.RecordApproval(metrics.ApprovalConflict)
	case errors.Is(err, observation.ErrNotFound):
		g.metrics.RecordApproval(metrics.ApprovalNotFound)
	default:
		g.metrics.RecordApproval(metrics.ApprovalError)
	}
}
