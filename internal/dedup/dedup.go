// Package dedup detects near-duplicate observations before they are imported.
package dedup

import (
	"context"
	"math"

	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// ThresholdArcsec is the per-axis separation below which two observations
// of the same target, telescope and filter set are considered the same.
const ThresholdArcsec = 5.0

const arcsecPerDegree = 3600.0

// microArcsecPerArcsec sets the resolution separations are compared at.
// An offset of exactly ThresholdArcsec then compares equal to the
// threshold instead of landing a few ulps below it.
const microArcsecPerArcsec = 1e6

// CandidateFinder returns stored observations sharing the exact
// (telescope, target name, filters) key.
type CandidateFinder interface {
	FindCandidates(ctx context.Context, telescope, targetName, filters string) ([]*observation.Observation, error)
}

// Matcher finds stored duplicates of incoming observations.
type Matcher struct {
	finder CandidateFinder
}

// NewMatcher returns a matcher backed by finder.
func NewMatcher(finder CandidateFinder) *Matcher {
	return &Matcher{finder: finder}
}

// FindDuplicate returns the first stored observation that duplicates
// candidate, or nil when there is none. The only error source is the
// candidate query itself.
func (m *Matcher) FindDuplicate(ctx context.Context, candidate *observation.Observation) (*observation.Observation, error) {
	existing, err := m.finder.FindCandidates(ctx, candidate.Telescope, candidate.TargetName, candidate.Filters)
	if err != nil {
		return nil, err
	}

	for _, e := range existing {
		if IsDuplicate(e, candidate) {
			return e, nil
		}
	}
	return nil, nil
}

// IsDuplicate reports whether fresh lies within ThresholdArcsec of existing
// on both the right ascension and the declination axis. The identity key is
// assumed to have been matched by the caller.
func IsDuplicate(existing, fresh *observation.Observation) bool {
	raDiff, decDiff := SeparationArcsec(existing, fresh)
	limit := microArcsec(ThresholdArcsec)
	return microArcsec(raDiff) < limit && microArcsec(decDiff) < limit
}

// SeparationArcsec returns the absolute per-axis differences in arcseconds.
func SeparationArcsec(a, b *observation.Observation) (raDiff, decDiff float64) {
	raDiff = math.Abs(a.RA-b.RA) * arcsecPerDegree
	decDiff = math.Abs(a.Dec-b.Dec) * arcsecPerDegree
	return raDiff, decDiff
}

// microArcsec rounds an arcsecond value to whole micro-arcseconds.
func microArcsec(arcsec float64) int64 {
	return int64(math.Round(arcsec * microArcsecPerArcsec))
}
