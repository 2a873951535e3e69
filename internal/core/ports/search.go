package ports

import (
	"context"

	"github.com/vibematch/backend/internal/core/domain"
)

// SearchProvider is the external track search backend.
type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

// MediaFetcher resolves the audio stream for an external media id and
// returns its bytes together with the container extension.
type MediaFetcher interface {
	FetchAudio(ctx context.Context, mediaID string) (data []byte, extension string, err error)
}

// PreferenceSource derives a personal PreferenceSet from a caller's
// listening history.
type PreferenceSource interface {
	PreferencesFromToken(ctx context.Context, accessToken string, limit int) (domain.PreferenceSet, error)
}

// TrackRepository persists the caller's saved tracks.
type TrackRepository interface {
	SaveTrack(ctx context.Context, track domain.SearchResult) error
	ListSaved(ctx context.Context) ([]domain.SearchResult, error)
}
