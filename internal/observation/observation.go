// Package observation defines the catalog's domain model: telescope
// observations, the targets they point at and the ledger of import runs.
// Persistence is handled by the datastore package through its own entities.
package observation

import (
	"strings"
	"time"
)

// Status is the review state of an observation.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus converts user input to a Status, case-insensitively.
func ParseStatus(s string) (Status, bool) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	return status, status.Valid()
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// dontPanicScore earns an observation the "Don't Panic" badge.
const dontPanicScore = 42

// Observation is one recorded telescope exposure of a target.
type Observation struct {
	// Identity, assigned by storage on insert
	ID uint

	Telescope   string
	ProgramID   string
	TargetName  string
	RA          float64 // right ascension, degrees
	Dec         float64 // declination, degrees
	ObsDate     time.Time
	Instrument  string
	Filters     string
	ExposureSec int
	ImageURL    string

	Score  int
	Status Status

	// Version is the optimistic concurrency counter. It starts at 0 and
	// grows by exactly one per successful mutation.
	Version int
}

// New returns an observation in its initial state.
func New() *Observation {
	return &Observation{Status: StatusPending}
}

// HasDontPanicBadge reports whether the score is exactly 42.
// It is a presentation flag only.
func (o *Observation) HasDontPanicBadge() bool {
	return o.Score == dontPanicScore
}

// Target is reference data for an observed object.
type Target struct {
	ID   uint
	Name string
}
