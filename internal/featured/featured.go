// Package featured serves the highest scoring approved observations from a
// short-lived cache.
package featured

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/logger"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observability/metrics"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// Limits accepted by Featured.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Source loads the featured list from storage.
type Source interface {
	FeaturedObservations(ctx context.Context, limit int) ([]*observation.Observation, error)
}

// Config configures the service.
type Config struct {
	CacheTTL     time.Duration
	DefaultLimit int
}

// Service caches featured lists per limit.
type Service struct {
	source       Source
	cache        *cache.Cache
	defaultLimit int
	metrics      *metrics.CatalogMetrics
	log          logger.Logger

	// generation is bumped by Invalidate. A load that started under an
	// older generation is not cached.
	mu         sync.Mutex
	generation uint64
}

// NewService creates a featured service. A zero CacheTTL disables caching.
func NewService(source Source, cfg Config, m *metrics.CatalogMetrics, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 || defaultLimit > MaxLimit {
		defaultLimit = DefaultLimit
	}

	var c *cache.Cache
	if cfg.CacheTTL > 0 {
		c = cache.New(cfg.CacheTTL, cfg.CacheTTL*2)
	}

	return &Service{
		source:       source,
		cache:        c,
		defaultLimit: defaultLimit,
		metrics:      m,
		log:          log.Module("featured"),
	}
}

// Featured returns up to limit approved observations ordered by score,
// highest first. A limit of 0 selects the configured default.
func (s *Service) Featured(ctx context.Context, limit int) ([]*observation.Observation, error) {
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, errors.Newf("limit must be between 1 and %d, got %d", MaxLimit, limit).
			Component("featured").
			Category(errors.CategoryValidation).
			Context("limit", limit).
			Build()
	}

	key := strconv.Itoa(limit)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			s.metrics.RecordFeaturedCache(metrics.CacheHit)
			return cloneList(cached.([]*observation.Observation)), nil
		}
	}
	s.metrics.RecordFeaturedCache(metrics.CacheMiss)

	generation := s.currentGeneration()
	list, err := s.source.FeaturedObservations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("loading featured observations: %w", err)
	}

	if s.cache != nil {
		s.store(key, generation, list)
	}
	s.log.Debug("featured list loaded", logger.Int("limit", limit), logger.Int("count", len(list)))
	return list, nil
}

// Invalidate drops every cached list. Loads still in flight when it is
// called are returned to their callers but not cached.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.generation++
	if s.cache != nil {
		s.cache.Flush()
	}
	s.mu.Unlock()
	s.log.Debug("featured cache invalidated")
}

func (s *Service) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// store caches list unless the cache was invalidated after the load began.
func (s *Service) store(key string, generation uint64, list []*observation.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		s.log.Debug("discarding featured list loaded before invalidation", logger.String("limit", key))
		return
	}
	s.cache.Set(key, cloneList(list), cache.DefaultExpiration)
}

// cloneList copies the observations so callers cannot mutate cached entries.
func cloneList(list []*observation.Observation) []*observation.Observation {
	out := make([]*observation.Observation, len(list))
	for i, o := range list {
		c := *o
		out[i] = &c
	}
	return out
}
