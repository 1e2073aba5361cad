package scoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

var refNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return refNow.Add(-time.Duration(d) * 24 * time.Hour)
}

func TestScoreScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		obs  observation.Observation
		want int
	}{
		{
			name: "recent long WFC3 wide filter",
			obs:  observation.Observation{ExposureSec: 700, ObsDate: daysAgo(10), Instrument: "WFC3", Filters: "F200W"},
			want: 90,
		},
		{
			name: "old short ACS no filter",
			obs:  observation.Observation{ExposureSec: 50, ObsDate: daysAgo(6 * 365), Instrument: "ACS", Filters: "none"},
			want: 10,
		},
		{
			name: "highest reachable score",
			obs:  observation.Observation{ExposureSec: 1200, ObsDate: daysAgo(1), Instrument: "NIRCam", Filters: "F444W"},
			want: 95,
		},
		{
			name: "unfiltered WFC3 thirty days",
			obs:  observation.Observation{ExposureSec: 700, ObsDate: daysAgo(30), Instrument: "WFC3", Filters: "none"},
			want: 75,
		},
		{
			name: "filter only",
			obs:  observation.Observation{ObsDate: daysAgo(10 * 365), Instrument: "none", Filters: "F200W"},
			want: 15,
		},
		{
			name: "empty observation",
			obs:  observation.Observation{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Score(&tt.obs, refNow))
		})
	}
}

func TestBreakdownTotalClamps(t *testing.T) {
	t.Parallel()

	b := Breakdown{Exposure: 30, Recency: 20, Instrument: 30, Filter: 15}
	assert.Equal(t, 95, b.Sum())
	assert.Equal(t, 95, b.Total())

	b = Breakdown{Exposure: 60, Recency: 40, Instrument: 30, Filter: 15}
	assert.Equal(t, MaxScore, b.Total())
}

func TestExposureThresholds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, exposureScore(0))
	assert.Equal(t, 0, exposureScore(300))
	assert.Equal(t, 15, exposureScore(301))
	assert.Equal(t, 15, exposureScore(600))
	assert.Equal(t, 30, exposureScore(601))
	assert.Equal(t, 0, exposureScore(-5))
}

func TestRecencyThresholds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 20, recencyScore(daysAgo(0), refNow))
	assert.Equal(t, 20, recencyScore(daysAgo(364), refNow))
	assert.Equal(t, 10, recencyScore(daysAgo(365), refNow))
	assert.Equal(t, 10, recencyScore(daysAgo(1824), refNow))
	assert.Equal(t, 0, recencyScore(daysAgo(1825), refNow))
	assert.Equal(t, 0, recencyScore(time.Time{}, refNow))
	assert.Equal(t, 20, recencyScore(refNow.Add(48*time.Hour), refNow), "future dates count as recent")
}

func TestInstrumentPriority(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 30, instrumentScore("NIRCam"))
	assert.Equal(t, 30, instrumentScore("nircam/grism"))
	assert.Equal(t, 25, instrumentScore("WFC3/UVIS"))
	assert.Equal(t, 10, instrumentScore("acs/wfc"))
	assert.Equal(t, 30, instrumentScore("NIRCAM+ACS"), "first matching rule wins")
	assert.Equal(t, 0, instrumentScore("MIRI"))
	assert.Equal(t, 0, instrumentScore(""))
}

func TestFilterPattern(t *testing.T) {
	t.Parallel()

	for _, f := range []string{"F200W", "F150W+F444W", "f335m", "CLEAR;F410M"} {
		assert.Equal(t, 15, filterScore(f), f)
	}
	for _, f := range []string{"none", "", "F1000W", "F560X", "F500W", "F099W", "CLEAR"} {
		assert.Equal(t, 0, filterScore(f), f)
	}
}

func TestSubScoresAreIndependent(t *testing.T) {
	t.Parallel()

	base := observation.Observation{ExposureSec: 100, ObsDate: daysAgo(400), Instrument: "ACS", Filters: "none"}
	before := Explain(&base, refNow)

	changed := base
	changed.ExposureSec = 700
	after := Explain(&changed, refNow)

	assert.Equal(t, before.Recency, after.Recency)
	assert.Equal(t, before.Instrument, after.Instrument)
	assert.Equal(t, before.Filter, after.Filter)
	assert.Equal(t, 30, after.Exposure-before.Exposure)
}

func TestScoreIsDeterministicAndConcurrentSafe(t *testing.T) {
	t.Parallel()

	obs := observation.Observation{ExposureSec: 400, ObsDate: daysAgo(100), Instrument: "NIRCam", Filters: "F277W"}
	want := Score(&obs, refNow)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Score(&obs, refNow))
		}()
	}
	wg.Wait()
}

func TestScoreNil(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, Score(nil, refNow))
}

func TestEngineUsesClock(t *testing.T) {
	t.Parallel()

	obs := observation.Observation{ObsDate: daysAgo(300)}
	engine := NewEngine(func() time.Time { return refNow })
	assert.Equal(t, 20, engine.Score(&obs))

	later := NewEngine(func() time.Time { return refNow.Add(100 * 24 * time.Hour) })
	assert.Equal(t, 10, later.Score(&obs))
	assert.Equal(t, refNow, engine.Now())
}
