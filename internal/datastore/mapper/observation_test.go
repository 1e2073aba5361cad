package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore/entities"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

func TestObservationToEntityDefaultsStatus(t *testing.T) {
	t.Parallel()

	e := ObservationToEntity(&observation.Observation{Telescope: "HST"})

	assert.Equal(t, string(observation.StatusPending), e.Status)
	assert.Nil(t, e.ObsDate, "zero date is stored as NULL")
}

func TestObservationMappingKeepsFields(t *testing.T) {
	t.Parallel()

	obsDate := time.Date(2024, 7, 12, 3, 4, 5, 0, time.UTC)
	o := &observation.Observation{
		ID:          5,
		Telescope:   "JWST",
		ProgramID:   "GO-2731",
		TargetName:  "NGC 3324",
		RA:          159.2,
		Dec:         -58.6,
		ObsDate:     obsDate,
		Instrument:  "NIRCam",
		Filters:     "F200W",
		ExposureSec: 1288,
		ImageURL:    "https://example.org/ngc3324.png",
		Score:       95,
		Status:      observation.StatusApproved,
		Version:     3,
	}

	back := EntityToObservation(ObservationToEntity(o))

	assert.Equal(t, o, back)
}

func TestEntitiesToObservations(t *testing.T) {
	t.Parallel()

	es := []entities.ObservationEntity{{ID: 1, Status: "PENDING"}, {ID: 2, Status: "APPROVED"}}
	out := EntitiesToObservations(es)

	assert.Len(t, out, 2)
	assert.Equal(t, uint(2), out[1].ID)
	assert.Equal(t, observation.StatusApproved, out[1].Status)
	assert.True(t, out[0].ObsDate.IsZero())
}

func TestBatchMapping(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	b := &observation.ImportBatch{
		RunID:          "run-1",
		Source:         "realistic_jwst.json",
		StartedAt:      start,
		CompletedAt:    start.Add(2 * time.Second),
		TotalRows:      4,
		DuplicateCount: 1,
		ImportedCount:  3,
		Status:         observation.BatchSucceeded,
	}

	e := BatchToEntity(b)
	assert.NotNil(t, e.CompletedAt)
	assert.Equal(t, b, EntityToBatch(e))
}
