// Package mapper provides conversion functions between domain models and database entities.
package mapper

import (
	"time"

	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore/entities"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// ObservationToEntity converts a domain Observation to a database entity.
// An unset status is stored as PENDING.
func ObservationToEntity(o *observation.Observation) *entities.ObservationEntity {
	status := o.Status
	if status == "" {
		status = observation.StatusPending
	}
	return &entities.ObservationEntity{
		ID:          o.ID,
		Telescope:   o.Telescope,
		ProgramID:   o.ProgramID,
		TargetName:  o.TargetName,
		RA:          o.RA,
		Dec:         o.Dec,
		ObsDate:     timePtr(o.ObsDate),
		Instrument:  o.Instrument,
		Filters:     o.Filters,
		ExposureSec: o.ExposureSec,
		ImageURL:    o.ImageURL,
		Score:       o.Score,
		Status:      string(status),
		Version:     o.Version,
	}
}

// EntityToObservation converts a database entity to a domain Observation.
func EntityToObservation(e *entities.ObservationEntity) *observation.Observation {
	return &observation.Observation{
		ID:          e.ID,
		Telescope:   e.Telescope,
		ProgramID:   e.ProgramID,
		TargetName:  e.TargetName,
		RA:          e.RA,
		Dec:         e.Dec,
		ObsDate:     timeValue(e.ObsDate),
		Instrument:  e.Instrument,
		Filters:     e.Filters,
		ExposureSec: e.ExposureSec,
		ImageURL:    e.ImageURL,
		Score:       e.Score,
		Status:      observation.Status(e.Status),
		Version:     e.Version,
	}
}

// EntitiesToObservations converts a slice of entities.
func EntitiesToObservations(es []entities.ObservationEntity) []*observation.Observation {
	out := make([]*observation.Observation, 0, len(es))
	for i := range es {
		out = append(out, EntityToObservation(&es[i]))
	}
	return out
}

// BatchToEntity converts a domain ImportBatch to a database entity.
func BatchToEntity(b *observation.ImportBatch) *entities.ImportBatchEntity {
	return &entities.ImportBatchEntity{
		ID:             b.ID,
		RunID:          b.RunID,
		Source:         b.Source,
		StartedAt:      b.StartedAt,
		CompletedAt:    timePtr(b.CompletedAt),
		TotalRows:      b.TotalRows,
		DuplicateCount: b.DuplicateCount,
		ImportedCount:  b.ImportedCount,
		Status:         string(b.Status),
	}
}

// EntityToBatch converts a database entity to a domain ImportBatch.
func EntityToBatch(e *entities.ImportBatchEntity) *observation.ImportBatch {
	return &observation.ImportBatch{
		ID:             e.ID,
		RunID:          e.RunID,
		Source:         e.Source,
		StartedAt:      e.StartedAt,
		CompletedAt:    timeValue(e.CompletedAt),
		TotalRows:      e.TotalRows,
		DuplicateCount: e.DuplicateCount,
		ImportedCount:  e.ImportedCount,
		Status:         observation.BatchStatus(e.Status),
	}
}

// timePtr stores the zero time as NULL.
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
