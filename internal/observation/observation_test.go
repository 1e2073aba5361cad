package observation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	s, ok := ParseStatus(" approved ")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, s)

	_, ok = ParseStatus("archived")
	assert.False(t, ok)
}

func TestNewStartsPending(t *testing.T) {
	t.Parallel()

	o := New()
	assert.Equal(t, StatusPending, o.Status)
	assert.Zero(t, o.Version)
}

func TestDontPanicBadge(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Observation{Score: 42}).HasDontPanicBadge())
	assert.False(t, (&Observation{Score: 43}).HasDontPanicBadge())
}

func TestSummaryFromBatch(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	batch := &ImportBatch{
		Source:         "jwst_sample.json",
		StartedAt:      start,
		CompletedAt:    start.Add(time.Second),
		TotalRows:      5,
		DuplicateCount: 2,
		ImportedCount:  3,
		Status:         BatchSucceeded,
	}

	summary := SummaryFromBatch(batch)

	assert.True(t, batch.Balanced())
	assert.Equal(t, "jwst_sample.json", summary.Source)
	assert.Equal(t, 5, summary.TotalProcessed)
	assert.Equal(t, 2, summary.DuplicatesFound)
	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, BatchSucceeded, summary.Status)
	assert.Equal(t, "Imported 3 records, skipped 2 duplicates", summary.Notes)
}

func TestVersionConflictError(t *testing.T) {
	t.Parallel()

	var err error = &VersionConflictError{ID: 3, Expected: 1, Actual: 2}
	wrapped := fmt.Errorf("approve: %w", err)

	assert.ErrorIs(t, wrapped, ErrVersionConflict)
	assert.Equal(t, "version conflict on observation 3: expected 1, but was 2", err.Error())

	var conflict *VersionConflictError
	require.ErrorAs(t, wrapped, &conflict)
	assert.Equal(t, 2, conflict.Actual)

	enhanced := errors.New(err).Build()
	assert.True(t, errors.IsConflict(enhanced))
}

func TestNotFoundError(t *testing.T) {
	t.Parallel()

	err := NotFoundError("approval", 99)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "observation 99")
}
