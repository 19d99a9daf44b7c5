package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ozscout/scoutql/internal/model"
)

// Service wraps the pure engine with per-process conveniences: response
// memoization (evaluation is deterministic, so identical normalized text
// always yields the identical response) and per-evaluation IDs for batch
// reports and presentation layers.
type Service struct {
	engine *Engine
	cache  *gocache.Cache // Nil when caching is disabled
	ttl    time.Duration
}

// NewService creates a service around an engine
func NewService(eng *Engine, cfg model.CacheConfig) *Service {
	s := &Service{engine: eng, ttl: cfg.TTL}
	if cfg.Enabled {
		s.cache = gocache.New(cfg.TTL, 2*cfg.TTL)
	}
	return s
}

// Engine returns the wrapped engine
func (s *Service) Engine() *Engine {
	return s.engine
}

// EvaluateQuery evaluates one query, serving repeats from the memoizer
func (s *Service) EvaluateQuery(query string) model.QueryResult {
	start := time.Now()
	result := model.QueryResult{
		ID:    uuid.NewString(),
		Query: query,
	}

	key := cacheKey(query)
	if s.cache != nil {
		if hit, found := s.cache.Get(key); found {
			result.Response = hit.(model.Response)
			result.Cached = true
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Response = s.engine.Evaluate(query)
	if s.cache != nil {
		s.cache.Set(key, result.Response, s.ttl)
	}
	result.Duration = time.Since(start)
	return result
}

// cacheKey collapses whitespace and case so trivially reworded repeats hit
func cacheKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
