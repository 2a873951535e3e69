package suno

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vibematch/backend/internal/core/ports"
)

// Downloader implements ports.ArtifactFetcher for generated streams.
// Artifacts can be large, hence the generous client timeout.
type Downloader struct {
	httpClient *http.Client
}

var _ ports.ArtifactFetcher = (*Downloader)(nil)

// NewDownloader constructs a Downloader with a 120s timeout.
func NewDownloader() *Downloader {
	return &Downloader{httpClient: &http.Client{Timeout: 120 * time.Second}}
}

// Fetch downloads the artifact bytes at url.
func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("suno: build download request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suno: download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suno: download status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("suno: read download: %w", err)
	}
	return data, nil
}
