package importer

import (
	"strings"
	"time"

	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// Record is one observation as it appears in an import file. Absent
// fields keep their zero value.
type Record struct {
	Telescope   string  `json:"telescope" yaml:"telescope" toml:"telescope"`
	ProgramID   string  `json:"programId" yaml:"programId" toml:"programId"`
	TargetName  string  `json:"targetName" yaml:"targetName" toml:"targetName"`
	RA          float64 `json:"ra" yaml:"ra" toml:"ra"`
	Dec         float64 `json:"dec" yaml:"dec" toml:"dec"`
	ObsDate     string  `json:"obsDate" yaml:"obsDate" toml:"obsDate"`
	Instrument  string  `json:"instrument" yaml:"instrument" toml:"instrument"`
	Filters     string  `json:"filters" yaml:"filters" toml:"filters"`
	ExposureSec int     `json:"exposureSec" yaml:"exposureSec" toml:"exposureSec"`
	ImageURL    string  `json:"imageUrl" yaml:"imageUrl" toml:"imageUrl"`
}

// obsDateLayouts are tried in order. Values without a zone are UTC.
var obsDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Observation converts the record into a pending observation.
func (r *Record) Observation() (*observation.Observation, error) {
	obsDate, err := parseObsDate(r.ObsDate)
	if err != nil {
		return nil, err
	}

	o := observation.New()
	o.Telescope = strings.TrimSpace(r.Telescope)
	o.ProgramID = strings.TrimSpace(r.ProgramID)
	o.TargetName = strings.TrimSpace(r.TargetName)
	o.RA = r.RA
	o.Dec = r.Dec
	o.ObsDate = obsDate
	o.Instrument = strings.TrimSpace(r.Instrument)
	o.Filters = strings.TrimSpace(r.Filters)
	o.ExposureSec = r.ExposureSec
	o.ImageURL = strings.TrimSpace(r.ImageURL)
	return o, nil
}

func parseObsDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range obsDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Newf("unrecognized obsDate %q", value).
		Component("importer").
		Category(errors.CategoryValidation).
		Context("field", "obsDate").
		Build()
}
