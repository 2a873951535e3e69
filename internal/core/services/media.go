package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vibematch/backend/internal/assets"
	"github.com/vibematch/backend/internal/core/ports"
)

// MediaService resolves audio for external media ids, serving from the
// on-disk cache and downloading on a miss. Concurrent misses for the
// same id may both download; the deterministic file name makes that a
// last-writer-wins race over identical content.
type MediaService struct {
	store   *assets.Store
	fetcher ports.MediaFetcher
}

// NewMediaService constructs a MediaService.
func NewMediaService(store *assets.Store, fetcher ports.MediaFetcher) *MediaService {
	return &MediaService{store: store, fetcher: fetcher}
}

// Resolve returns the local path and MIME type of the audio for the
// media id, downloading and persisting it first when not yet cached.
func (s *MediaService) Resolve(ctx context.Context, mediaID string) (string, string, error) {
	if mediaID == "" {
		return "", "", fmt.Errorf("service: media id cannot be empty")
	}

	if path, mimeType, ok := s.store.ResolveByExternalID(mediaID); ok {
		return path, mimeType, nil
	}

	data, extension, err := s.fetcher.FetchAudio(ctx, mediaID)
	if err != nil {
		var upstream *ports.UpstreamError
		if errors.As(err, &upstream) {
			return "", "", upstream
		}
		return "", "", &ports.UpstreamError{Backend: "media", Message: err.Error()}
	}

	path, err := s.store.PersistFetched(mediaID, data, extension)
	if err != nil {
		return "", "", fmt.Errorf("service: persist media %s: %w", mediaID, err)
	}
	return path, assets.MimeType(extension), nil
}
