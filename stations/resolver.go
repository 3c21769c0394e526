package stations

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/commute-monitor/provider"
	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// cacheTTL bounds how long a resolved query is served from memory.
const cacheTTL = 30 * time.Minute

type cacheEntry struct {
	stops     []transit.StopArea
	fetchedAt time.Time
}

// Resolver resolves station queries through a StationProvider with
// caching, ranking and an outage fallback. Safe for concurrent use.
type Resolver struct {
	upstream provider.StationProvider
	fallback []transit.StopArea
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewResolver creates a Resolver. fallback is the curated set served with
// LowConfidence set when the upstream is unreachable; it may be nil.
func NewResolver(upstream provider.StationProvider, fallback []transit.StopArea) *Resolver {
	return &Resolver{
		upstream: upstream,
		fallback: fallback,
		now:      time.Now,
		cache:    map[string]cacheEntry{},
	}
}

// Resolve resolves a free-text query to ranked stop areas. On upstream
// failure it returns the fallback set flagged LowConfidence rather than an
// error; callers must treat flagged results as non-authoritative.
func (r *Resolver) Resolve(ctx context.Context, query string) []transit.StopArea {
	key := normalizeQuery(query)

	if stops, ok := r.cached(key); ok {
		return stops
	}

	stops, err := r.upstream.Search(ctx, query)
	if err != nil {
		log.Printf("stations: upstream search %q failed, serving fallback set: %v", query, err)
		return r.fallbackSet()
	}

	rankStops(stops)
	r.store(key, stops)
	return stops
}

// ResolveByID looks up a single stop by its canonical identifier. Unlike
// Resolve, a miss here is an error: an unknown ID in a saved route is a
// configuration problem, not a transient outage.
func (r *Resolver) ResolveByID(ctx context.Context, id string) (*transit.StopArea, error) {
	stops, err := r.upstream.Search(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolving stop %s: %w", id, err)
	}
	for i := range stops {
		if stops[i].ID == id {
			return &stops[i], nil
		}
	}
	return nil, fmt.Errorf("resolving stop %s: %w", id, transit.ErrStopNotFound)
}

func (r *Resolver) cached(key string) ([]transit.StopArea, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.cache[key]
	if !ok {
		return nil, false
	}
	if r.now().Sub(entry.fetchedAt) > cacheTTL {
		delete(r.cache, key)
		return nil, false
	}
	return entry.stops, true
}

func (r *Resolver) store(key string, stops []transit.StopArea) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = cacheEntry{stops: stops, fetchedAt: r.now()}
}

func (r *Resolver) fallbackSet() []transit.StopArea {
	out := make([]transit.StopArea, len(r.fallback))
	copy(out, r.fallback)
	for i := range out {
		out[i].LowConfidence = true
	}
	rankStops(out)
	return out
}

// rankStops orders by category priority (rail first), then name.
func rankStops(stops []transit.StopArea) {
	sort.SliceStable(stops, func(i, j int) bool {
		if stops[i].Category != stops[j].Category {
			return stops[i].Category > stops[j].Category
		}
		return stops[i].Name < stops[j].Name
	})
}

// normalizeQuery lowercases and collapses whitespace so cache keys are
// stable across cosmetic input differences.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
