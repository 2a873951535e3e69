// Package spotify provides the thin preference fetcher: it turns a
// caller's Spotify top tracks into a PreferenceSet. No orchestration
// logic lives here.
package spotify

import (
	"context"
	"fmt"

	spotifyapi "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"

	"github.com/vibematch/backend/internal/core/domain"
	"github.com/vibematch/backend/internal/core/ports"
)

const defaultTopTracksLimit = 10

// Client implements ports.PreferenceSource with the caller's own access
// token; this adapter holds no credentials of its own.
type Client struct{}

var _ ports.PreferenceSource = (*Client)(nil)

// NewClient constructs a Client.
func NewClient() *Client {
	return &Client{}
}

// PreferencesFromToken fetches the user's top tracks and derives a
// deduplicated PreferenceSet from their artists and titles.
func (c *Client) PreferencesFromToken(ctx context.Context, accessToken string, limit int) (domain.PreferenceSet, error) {
	if accessToken == "" {
		return domain.PreferenceSet{}, fmt.Errorf("spotify adapter: access token is required")
	}
	if limit <= 0 {
		limit = defaultTopTracksLimit
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	api := spotifyapi.New(httpClient)

	page, err := api.CurrentUsersTopTracks(ctx, spotifyapi.Limit(limit))
	if err != nil {
		return domain.PreferenceSet{}, fmt.Errorf("spotify adapter: top tracks: %w", err)
	}

	var artists, tracks []string
	for _, track := range page.Tracks {
		tracks = append(tracks, track.Name)
		for _, artist := range track.Artists {
			artists = append(artists, artist.Name)
		}
	}

	return domain.NewPreferenceSet(nil, artists, tracks), nil
}
