package observation

import (
	"fmt"
	"time"
)

// BatchStatus is the terminal state of an import run.
type BatchStatus string

const (
	BatchSucceeded BatchStatus = "SUCCEEDED"
	BatchFailed    BatchStatus = "FAILED"
	BatchPartial   BatchStatus = "PARTIAL"
)

// ImportBatch is the audit record of one import run. It is written once,
// when the run completes, and never modified afterwards.
type ImportBatch struct {
	ID             uint
	RunID          string // correlates the ledger row with the run's log lines
	Source         string
	StartedAt      time.Time
	CompletedAt    time.Time
	TotalRows      int
	DuplicateCount int
	ImportedCount  int
	Status         BatchStatus
}

// Balanced reports whether every row was either imported or skipped.
func (b *ImportBatch) Balanced() bool {
	return b.DuplicateCount+b.ImportedCount == b.TotalRows
}

// Summary is the caller-facing outcome of an import run.
type Summary struct {
	Source          string      `json:"source"`
	StartedAt       time.Time   `json:"startedAt"`
	CompletedAt     time.Time   `json:"completedAt"`
	TotalProcessed  int         `json:"totalProcessed"`
	DuplicatesFound int         `json:"duplicatesFound"`
	Imported        int         `json:"imported"`
	Status          BatchStatus `json:"status"`
	Notes           string      `json:"notes"`
}

// SummaryFromBatch mirrors a ledger row into a Summary.
func SummaryFromBatch(b *ImportBatch) *Summary {
	return &Summary{
		Source:          b.Source,
		StartedAt:       b.StartedAt,
		CompletedAt:     b.CompletedAt,
		TotalProcessed:  b.TotalRows,
		DuplicatesFound: b.DuplicateCount,
		Imported:        b.ImportedCount,
		Status:          b.Status,
		Notes:           fmt.Sprintf("Imported %d records, skipped %d duplicates", b.ImportedCount, b.DuplicateCount),
	}
}
