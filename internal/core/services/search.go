package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vibematch/backend/internal/cache"
	"github.com/vibematch/backend/internal/core/domain"
	"github.com/vibematch/backend/internal/core/ports"
)

const defaultSearchLimit = 5

// SearchService answers track searches through the in-memory cache and
// manages the caller's saved tracks.
type SearchService struct {
	cache    *cache.SearchCache
	provider ports.SearchProvider
	repo     ports.TrackRepository
}

// NewSearchService constructs a SearchService. repo may be nil when
// saved tracks are not wired.
func NewSearchService(c *cache.SearchCache, provider ports.SearchProvider, repo ports.TrackRepository) *SearchService {
	return &SearchService{cache: c, provider: provider, repo: repo}
}

// Search consults the cache first and only calls the upstream backend on
// a miss. Identical queries within a process lifetime hit upstream once.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("service: search query cannot be empty")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	return s.cache.GetOrFill(query, limit, func() ([]domain.SearchResult, error) {
		return s.provider.Search(ctx, query, limit)
	})
}

// SaveTrack persists one search result to the caller's library.
func (s *SearchService) SaveTrack(ctx context.Context, track domain.SearchResult) error {
	if s.repo == nil {
		return fmt.Errorf("service: saved tracks not configured")
	}
	if track.ID == "" {
		return fmt.Errorf("service: track id cannot be empty")
	}
	if err := s.repo.SaveTrack(ctx, track); err != nil {
		return fmt.Errorf("service: save track: %w", err)
	}
	return nil
}

// ListSaved returns the caller's saved tracks, most recent first.
func (s *SearchService) ListSaved(ctx context.Context) ([]domain.SearchResult, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("service: saved tracks not configured")
	}
	tracks, err := s.repo.ListSaved(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list saved tracks: %w", err)
	}
	return tracks, nil
}
