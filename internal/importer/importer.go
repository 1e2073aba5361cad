// Package importer loads observation files and runs import batches:
// every record is checked for a stored duplicate, scored and inserted,
// and the run is recorded in the import ledger.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/cosmiccatalog/cosmic-catalog/internal/dedup"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/logger"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observability/metrics"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// Store is the storage used by an import run.
type Store interface {
	dedup.CandidateFinder
	CreateObservation(ctx context.Context, o *observation.Observation) error
	SaveImportBatch(ctx context.Context, b *observation.ImportBatch) error
}

// Scorer scores observations against its own clock.
type Scorer interface {
	Score(o *observation.Observation) int
	Now() time.Time
}

// Options tune an Orchestrator.
type Options struct {
	// RateLimit caps processed records per second. Zero disables it.
	RateLimit float64
	Metrics   *metrics.CatalogMetrics
	Logger    logger.Logger
}

// Orchestrator runs import batches.
type Orchestrator struct {
	store   Store
	matcher *dedup.Matcher
	scorer  Scorer
	limiter *rate.Limiter
	metrics *metrics.CatalogMetrics
	log     logger.Logger
}

// NewOrchestrator creates an orchestrator writing to store.
func NewOrchestrator(store Store, scorer Scorer, opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = logger.NewDiscardLogger()
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Orchestrator{
		store:   store,
		matcher: dedup.NewMatcher(store),
		scorer:  scorer,
		limiter: limiter,
		metrics: opts.Metrics,
		log:     log.Module("import"),
	}
}

// ImportBatch imports records in order. Records are processed one at a
// time, so a record inserted earlier in the batch is seen by the
// duplicate check of every later record. Any storage error aborts the run;
// observations inserted before the failure are kept and no ledger row is
// written.
func (o *Orchestrator) ImportBatch(ctx context.Context, source string, records []*observation.Observation) (*observation.Summary, error) {
	batch := &observation.ImportBatch{
		RunID:     uuid.NewString(),
		Source:    source,
		StartedAt: o.scorer.Now(),
		TotalRows: len(records),
	}

	ctx = logger.WithTraceID(ctx, batch.RunID)
	log := o.log.WithContext(ctx).With(logger.String("source", source))
	log.Info("import started", logger.Int("records", len(records)))

	if err := o.process(ctx, log, batch, records); err != nil {
		elapsed := o.scorer.Now().Sub(batch.StartedAt)
		o.metrics.RecordImportBatch(string(observation.BatchFailed), elapsed.Seconds())
		log.Error("import aborted",
			logger.Error(err),
			logger.Int("imported", batch.ImportedCount),
			logger.Int("duplicates", batch.DuplicateCount))
		return nil, errors.New(err).
			Component("importer").
			Timing("import_batch", elapsed).
			Context("source", source).
			Context("run_id", batch.RunID).
			Context("imported", batch.ImportedCount).
			Build()
	}

	batch.CompletedAt = o.scorer.Now()
	batch.Status = observation.BatchSucceeded
	if err := o.store.SaveImportBatch(ctx, batch); err != nil {
		o.metrics.RecordImportBatch(string(observation.BatchFailed), batch.CompletedAt.Sub(batch.StartedAt).Seconds())
		return nil, err
	}

	elapsed := batch.CompletedAt.Sub(batch.StartedAt)
	o.metrics.RecordImportBatch(string(batch.Status), elapsed.Seconds())
	log.Info("import completed",
		logger.Int("imported", batch.ImportedCount),
		logger.Int("duplicates", batch.DuplicateCount),
		logger.Duration("elapsed", elapsed))

	return observation.SummaryFromBatch(batch), nil
}

func (o *Orchestrator) process(ctx context.Context, log logger.Logger, batch *observation.ImportBatch, records []*observation.Observation) error {
	for i, rec := range records {
		if o.limiter != nil {
			if err := o.limiter.Wait(ctx); err != nil {
				return errors.New(err).
					Component("importer").
					Category(errors.CategoryCancellation).
					Context("record", i+1).
					Build()
			}
		}

		dup, err := o.matcher.FindDuplicate(ctx, rec)
		if err != nil {
			return fmt.Errorf("duplicate check for record %d: %w", i+1, err)
		}
		if dup != nil {
			batch.DuplicateCount++
			o.metrics.RecordImportRecord(metrics.OutcomeDuplicate)
			log.Debug("skipping duplicate observation",
				logger.Int("record", i+1),
				logger.String("program_id", rec.ProgramID),
				logger.Uint("existing_id", dup.ID))
			continue
		}

		fresh := *rec
		fresh.ID = 0
		fresh.Status = observation.StatusPending
		fresh.Version = 0
		fresh.Score = o.scorer.Score(&fresh)

		if err := o.store.CreateObservation(ctx, &fresh); err != nil {
			return fmt.Errorf("insert record %d: %w", i+1, err)
		}
		batch.ImportedCount++
		o.metrics.RecordImportRecord(metrics.OutcomeImported)
		log.Trace("observation imported",
			logger.Uint("observation_id", fresh.ID),
			logger.Int("score", fresh.Score))
	}
	return nil
}
