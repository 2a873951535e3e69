package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vibematch/backend/internal/cache"
	"github.com/vibematch/backend/internal/core/domain"
)

type mockSearchProvider struct {
	results []domain.SearchResult
	err     error
	calls   int
}

func (m *mockSearchProvider) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

type mockTrackRepo struct {
	saved []domain.SearchResult
}

func (m *mockTrackRepo) SaveTrack(ctx context.Context, track domain.SearchResult) error {
	m.saved = append(m.saved, track)
	return nil
}

func (m *mockTrackRepo) ListSaved(ctx context.Context) ([]domain.SearchResult, error) {
	return m.saved, nil
}

func TestSearchService_CachesResults(t *testing.T) {
	provider := &mockSearchProvider{
		results: []domain.SearchResult{{ID: "v1", Title: "Lofi Mix", Channel: "ChillBeats"}},
	}
	svc := NewSearchService(cache.NewSearchCache(), provider, nil)

	first, err := svc.Search(context.Background(), "lofi mix", 5)
	if err != nil {
		t.Fatalf("first search: %v", err)
	}
	second, err := svc.Search(context.Background(), "  LOFI MIX  ", 5)
	if err != nil {
		t.Fatalf("second search: %v", err)
	}

	if provider.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", provider.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached results differ: %v vs %v", first, second)
	}
}

func TestSearchService_DistinctLimitsAreDistinctEntries(t *testing.T) {
	provider := &mockSearchProvider{results: []domain.SearchResult{{ID: "v1"}}}
	svc := NewSearchService(cache.NewSearchCache(), provider, nil)

	if _, err := svc.Search(context.Background(), "beats", 5); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Search(context.Background(), "beats", 10); err != nil {
		t.Fatal(err)
	}

	if provider.calls != 2 {
		t.Fatalf("expected 2 upstream calls for different limits, got %d", provider.calls)
	}
}

func TestSearchService_UpstreamErrorNotCached(t *testing.T) {
	provider := &mockSearchProvider{err: errors.New("quota exceeded")}
	svc := NewSearchService(cache.NewSearchCache(), provider, nil)

	if _, err := svc.Search(context.Background(), "beats", 5); err == nil {
		t.Fatal("expected error")
	}

	provider.err = nil
	provider.results = []domain.SearchResult{{ID: "v2"}}
	results, err := svc.Search(context.Background(), "beats", 5)
	if err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if len(results) != 1 || provider.calls != 2 {
		t.Fatalf("failure should not have been cached: calls=%d", provider.calls)
	}
}

func TestSearchService_EmptyQueryRejected(t *testing.T) {
	svc := NewSearchService(cache.NewSearchCache(), &mockSearchProvider{}, nil)
	if _, err := svc.Search(context.Background(), "   ", 5); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchService_SavedTracks(t *testing.T) {
	repo := &mockTrackRepo{}
	svc := NewSearchService(cache.NewSearchCache(), &mockSearchProvider{}, repo)

	track := domain.SearchResult{ID: "v9", Title: "Night Drive", Channel: "Synthwave FM"}
	if err := svc.SaveTrack(context.Background(), track); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.SaveTrack(context.Background(), domain.SearchResult{}); err == nil {
		t.Fatal("expected error for missing id")
	}

	saved, err := svc.ListSaved(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(saved) != 1 || saved[0].ID != "v9" {
		t.Fatalf("saved = %v", saved)
	}
}
