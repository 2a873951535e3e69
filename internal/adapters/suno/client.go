// Package suno provides the adapter for the asynchronous music
// generation backend and the downloader for its stream artifacts.
package suno

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vibematch/backend/internal/core/ports"
)

// Client implements ports.GenerationBackend over HTTP. Submit and poll
// calls share one rate limiter so bursts of caller-driven polling stay
// within the backend's request budget.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

var _ ports.GenerationBackend = (*Client)(nil)

type submitRequest struct {
	Prompt string `json:"prompt"`
}

type pollRequest struct {
	RequestID string `json:"request_id"`
}

// generateResponse mirrors the backend's wire shape for both submit and
// poll. On complete, data.data[0].stream_audio_url locates the artifact.
type generateResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
	Details   string `json:"details"`
	Data      struct {
		Data []struct {
			StreamAudioURL string `json:"stream_audio_url"`
		} `json:"data"`
	} `json:"data"`
}

// NewClient constructs a generation client against baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		// 2 requests per second keeps caller-driven polling polite.
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// Submit asks the backend to generate audio for the prompt.
func (c *Client) Submit(ctx context.Context, prompt string) (ports.GenerationResponse, error) {
	return c.do(ctx, "/generate", submitRequest{Prompt: prompt})
}

// Poll re-queries the backend for the state of an earlier submission.
func (c *Client) Poll(ctx context.Context, requestID string) (ports.GenerationResponse, error) {
	return c.do(ctx, "/status", pollRequest{RequestID: requestID})
}

func (c *Client) do(ctx context.Context, path string, payload any) (ports.GenerationResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("suno: rate limit wait: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("suno: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("suno: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("suno: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.GenerationResponse{}, &ports.UpstreamError{
			Backend: "suno",
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("suno: decode response: %w", err)
	}

	out := ports.GenerationResponse{
		Status:    parsed.Status,
		RequestID: parsed.RequestID,
		Details:   parsed.Details,
	}
	if len(parsed.Data.Data) > 0 {
		out.AudioURL = parsed.Data.Data[0].StreamAudioURL
	}
	return out, nil
}
