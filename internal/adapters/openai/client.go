// Package openai provides the completion-backend adapter. It speaks the
// chat-completions wire protocol in two flavors, plain OpenAI and Azure
// OpenAI; which one backs a Client is fixed at construction time and
// invisible to callers.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vibematch/backend/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
)

// Client implements ports.CompletionProvider over HTTP.
//
// The underlying http.Client carries no timeout of its own: the
// recommendation orchestrator owns a single shared deadline across its
// concurrent calls, so per-request cancellation comes from the context.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	headers    map[string]string
}

var _ ports.CompletionProvider = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model,omitempty"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClient constructs a plain OpenAI client. baseURL and model fall
// back to the public API and gpt-4o when empty.
func NewClient(apiKey, model, baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		httpClient: &http.Client{},
		endpoint:   baseURL + "/chat/completions",
		model:      model,
		headers:    map[string]string{"Authorization": "Bearer " + apiKey},
	}
}

// NewAzureClient constructs an Azure OpenAI client for a deployment.
func NewAzureClient(endpoint, apiKey, deployment, apiVersion string) *Client {
	endpoint = strings.TrimRight(endpoint, "/")
	return &Client{
		httpClient: &http.Client{},
		endpoint: fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			endpoint, url.PathEscape(deployment), url.QueryEscape(apiVersion)),
		headers: map[string]string{"api-key": apiKey},
	}
}

// Complete sends the prompt as a single user message and returns the raw
// reply text. The free-form reply is interpreted downstream; Complete
// itself makes no assumptions about its shape.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ports.UpstreamError{Backend: "openai", Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", &ports.UpstreamError{Backend: "openai", Message: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", &ports.UpstreamError{Backend: "openai", Message: "empty completion"}
	}

	return parsed.Choices[0].Message.Content, nil
}
