// Package metrics provides the Prometheus metrics of the catalog.
package metrics

// Label values shared by recorders and callers.
const (
	OutcomeImported  = "imported"
	OutcomeDuplicate = "duplicate"

	ApprovalApproved = "approved"
	ApprovalConflict = "conflict"
	ApprovalNotFound = "not_found"
	ApprovalError    = "error"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Histogram bucket parameters for import durations.
const (
	BucketStart10ms = 0.01
	BucketFactor2   = 2
	BucketCount14   = 14 // 10ms to ~82s
)
