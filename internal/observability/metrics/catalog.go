package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics contains Prometheus metrics for imports, approvals and the
// featured cache. All recording methods are safe on a nil receiver so
// components can run without metrics.
type CatalogMetrics struct {
	importRecordsTotal *prometheus.CounterVec
	importBatchesTotal *prometheus.CounterVec
	importDuration     prometheus.Histogram

	approvalsTotal *prometheus.CounterVec

	featuredCacheTotal *prometheus.CounterVec

	// collectors is a slice of all collectors for easier iteration
	collectors []prometheus.Collector
}

// NewCatalogMetrics creates and registers new catalog metrics
func NewCatalogMetrics(registry *prometheus.Registry) (*CatalogMetrics, error) {
	m := &CatalogMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// initMetrics initializes all Prometheus metrics
func (m *CatalogMetrics) initMetrics() {
	m.importRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_import_records_total",
			Help: "Total number of imported records by outcome",
		},
		[]string{"outcome"}, // imported, duplicate
	)

	m.importBatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_import_batches_total",
			Help: "Total number of import runs by final status",
		},
		[]string{"status"},
	)

	m.importDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_import_duration_seconds",
			Help:    "Time taken by import runs",
			Buckets: prometheus.ExponentialBuckets(BucketStart10ms, BucketFactor2, BucketCount14),
		},
	)

	m.approvalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_approvals_total",
			Help: "Total number of approval attempts by result",
		},
		[]string{"result"}, // approved, conflict, not_found, error
	)

	m.featuredCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_featured_cache_total",
			Help: "Featured list cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	m.collectors = []prometheus.Collector{
		m.importRecordsTotal,
		m.importBatchesTotal,
		m.importDuration,
		m.approvalsTotal,
		m.featuredCacheTotal,
	}
}

// Describe implements the Collector interface
func (m *CatalogMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *CatalogMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordImportRecord counts one processed import record.
func (m *CatalogMetrics) RecordImportRecord(outcome string) {
	if m == nil {
		return
	}
	m.importRecordsTotal.WithLabelValues(outcome).Inc()
}

// RecordImportBatch counts a finished import run and its duration.
func (m *CatalogMetrics) RecordImportBatch(status string, seconds float64) {
	if m == nil {
		return
	}
	m.importBatchesTotal.WithLabelValues(status).Inc()
	m.importDuration.Observe(seconds)
}

// RecordApproval counts one approval attempt.
func (m *CatalogMetrics) RecordApproval(result string) {
	if m == nil {
		return
	}
	m.approvalsTotal.WithLabelValues(result).Inc()
}

// RecordFeaturedCache counts one featured cache lookup.
func (m *CatalogMetrics) RecordFeaturedCache(result string) {
	if m == nil {
		return
	}
	m.featuredCacheTotal.WithLabelValues(result).Inc()
}
