// Package scoring computes an observation's relevance score.
//
// The score is the sum of four independent sub-scores (exposure, recency,
// instrument and filter) clamped to 100. Scoring is a pure function of the
// observation and the reference time; missing attributes contribute zero.
package scoring

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// MaxScore is the upper bound of every score.
const MaxScore = 100

const (
	longExposureSec   = 600
	mediumExposureSec = 300

	recentDays = 365
	olderDays  = 1825

	hoursPerDay = 24
)

// instrumentRules are evaluated in order; the first match wins.
var instrumentRules = []struct {
	token  string
	points int
}{
	{"NIRCAM", 30},
	{"WFC3", 25},
	{"ACS", 10},
}

// broadOrMediumFilter matches wide (W) and medium (M) band filter names in
// the F100-F499 range, e.g. F200W or F335M.
var broadOrMediumFilter = regexp.MustCompile(`F[1-4][0-9]{2}[WM]`)

// Breakdown holds the individual sub-scores of one observation.
type Breakdown struct {
	Exposure   int
	Recency    int
	Instrument int
	Filter     int
}

// Sum returns the unclamped total.
func (b Breakdown) Sum() int {
	return b.Exposure + b.Recency + b.Instrument + b.Filter
}

// Total returns the clamped score.
func (b Breakdown) Total() int {
	return min(MaxScore, b.Sum())
}

// Score returns the relevance score of o relative to now, in [0, 100].
func Score(o *observation.Observation, now time.Time) int {
	return Explain(o, now).Total()
}

// Explain returns the sub-scores behind Score.
func Explain(o *observation.Observation, now time.Time) Breakdown {
	if o == nil {
		return Breakdown{}
	}
	return Breakdown{
		Exposure:   exposureScore(o.ExposureSec),
		Recency:    recencyScore(o.ObsDate, now),
		Instrument: instrumentScore(o.Instrument),
		Filter:     filterScore(o.Filters),
	}
}

func exposureScore(exposureSec int) int {
	switch {
	case exposureSec > longExposureSec:
		return 30
	case exposureSec > mediumExposureSec:
		return 15
	default:
		return 0
	}
}

// recencyScore counts whole days between obsDate and now. A zero obsDate
// means the date is unknown and scores nothing.
func recencyScore(obsDate, now time.Time) int {
	if obsDate.IsZero() {
		return 0
	}
	days := int(now.Sub(obsDate).Hours() / hoursPerDay)
	switch {
	case days < recentDays:
		return 20
	case days < olderDays:
		return 10
	default:
		return 0
	}
}

func instrumentScore(instrument string) int {
	if instrument == "" {
		return 0
	}
	// A Caser holds state, so each call gets its own.
	upper := cases.Upper(language.Und).String(instrument)
	for _, rule := range instrumentRules {
		if strings.Contains(upper, rule.token) {
			return rule.points
		}
	}
	return 0
}

func filterScore(filters string) int {
	if broadOrMediumFilter.MatchString(strings.ToUpper(filters)) {
		return 15
	}
	return 0
}

// Engine scores observations against a clock. Services use it so that
// tests can pin the reference time.
type Engine struct {
	now func() time.Time
}

// NewEngine returns an engine reading the given clock; nil uses time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Score scores o at the engine's current time.
func (e *Engine) Score(o *observation.Observation) int {
	return Score(o, e.now())
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}
