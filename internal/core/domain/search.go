package domain

// SearchResult is one entry returned by the external search backend.
type SearchResult struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	ThumbnailURL string `json:"thumbnailUrl"`
}
