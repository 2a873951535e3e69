// Package youtube provides the search-backend adapter (Data API v3) and
// audio fetching for individual videos.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vibematch/backend/internal/core/domain"
	"github.com/vibematch/backend/internal/core/ports"
)

const defaultSearchBaseURL = "https://www.googleapis.com/youtube/v3"

// SearchClient implements ports.SearchProvider against the Data API.
type SearchClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

var _ ports.SearchProvider = (*SearchClient)(nil)

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// NewSearchClient constructs a search client. baseURL falls back to the
// public Data API endpoint when empty.
func NewSearchClient(apiKey, baseURL string) *SearchClient {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultSearchBaseURL
	}
	return &SearchClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 2),
	}
}

// Search queries the video search endpoint and maps each item to a
// domain.SearchResult. Results come back in backend order.
func (c *SearchClient) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("youtube: rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ports.UpstreamError{
			Backend: "youtube",
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("youtube: decode response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			Channel:      item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
		})
	}
	return results, nil
}
