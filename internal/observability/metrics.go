// Package observability wires the catalog's Prometheus metrics.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cosmiccatalog/cosmic-catalog/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry *prometheus.Registry
	Catalog  *metrics.CatalogMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all metric collectors.
// It returns an error if any metric collector fails to initialize.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register Go collector: %w", err)
	}

	catalogMetrics, err := metrics.NewCatalogMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create Catalog metrics: %w", err)
	}

	return &Metrics{
		registry: registry,
		Catalog:  catalogMetrics,
	}, nil
}

// Registry returns the registry backing all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Flush writes the registry to path. An empty path is a no-op.
func (m *Metrics) Flush(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
