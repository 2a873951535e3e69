// Package cache holds the in-memory search-result cache. Entries live
// for the process lifetime; there is no TTL and no eviction.
package cache

import (
	"strconv"
	"strings"
	"sync"

	"github.com/vibematch/backend/internal/core/domain"
)

// SearchCache memoizes search results keyed by normalized query and
// requested result count. A single coarse lock guards both paths so the
// check-miss-populate sequence stays atomic under concurrent requests.
type SearchCache struct {
	mu      sync.Mutex
	entries map[string][]domain.SearchResult
}

// NewSearchCache constructs an empty cache. One instance is created at
// service startup and injected wherever search results are needed.
func NewSearchCache() *SearchCache {
	return &SearchCache{entries: make(map[string][]domain.SearchResult)}
}

// Lookup returns the memoized results for the query, if any.
func (c *SearchCache) Lookup(query string, limit int) ([]domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	results, ok := c.entries[cacheKey(query, limit)]
	return results, ok
}

// Store memoizes the results for the query.
func (c *SearchCache) Store(query string, limit int, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(query, limit)] = results
}

// GetOrFill returns the cached results or invokes fill to populate the
// entry. The lock is held across fill so that concurrent callers racing
// on the same key trigger at most one upstream call.
func (c *SearchCache) GetOrFill(query string, limit int, fill func() ([]domain.SearchResult, error)) ([]domain.SearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(query, limit)
	if results, ok := c.entries[key]; ok {
		return results, nil
	}

	results, err := fill()
	if err != nil {
		return nil, err
	}
	c.entries[key] = results
	return results, nil
}

// Len reports the number of memoized entries.
func (c *SearchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(query string, limit int) string {
	return strings.ToLower(strings.TrimSpace(query)) + "|" + strconv.Itoa(limit)
}
