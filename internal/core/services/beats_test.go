package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/vibematch/backend/internal/assets"
	"github.com/vibematch/backend/internal/core/domain"
	"github.com/vibematch/backend/internal/core/ports"
)

// --- Mocks ---

type mockGeneration struct {
	submitResp ports.GenerationResponse
	pollResp   ports.GenerationResponse
	err        error

	polledID string
}

func (m *mockGeneration) Submit(ctx context.Context, prompt string) (ports.GenerationResponse, error) {
	return m.submitResp, m.err
}

func (m *mockGeneration) Poll(ctx context.Context, requestID string) (ports.GenerationResponse, error) {
	m.polledID = requestID
	return m.pollResp, m.err
}

type mockFetcher struct {
	data    []byte
	err     error
	fetched []string
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.fetched = append(m.fetched, url)
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

func newTestStore(t *testing.T) *assets.Store {
	t.Helper()
	store, err := assets.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return store
}

// --- Tests ---

func TestBeatService_Submit_Complete(t *testing.T) {
	backend := &mockGeneration{
		submitResp: ports.GenerationResponse{
			Status:    ports.GenerationComplete,
			RequestID: "req-1",
			AudioURL:  "https://cdn.example/stream/req-1",
		},
	}
	fetcher := &mockFetcher{data: []byte("audio-bytes")}
	store := newTestStore(t)

	svc := NewBeatService(backend, fetcher, store, nil)
	job, err := svc.Submit(context.Background(), "lofi beat, 90bpm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.State != domain.JobComplete {
		t.Fatalf("state = %s, want complete", job.State)
	}
	if job.Prompt != "lofi beat, 90bpm" {
		t.Fatalf("prompt = %q", job.Prompt)
	}
	if !strings.HasPrefix(job.AudioURL, store.Dir()) {
		t.Fatalf("audio url %q not under cache dir %q", job.AudioURL, store.Dir())
	}

	data, err := os.ReadFile(job.AudioURL)
	if err != nil {
		t.Fatalf("artifact not on disk: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("artifact content = %q", data)
	}
	if len(fetcher.fetched) != 1 || fetcher.fetched[0] != "https://cdn.example/stream/req-1" {
		t.Fatalf("fetched urls = %v", fetcher.fetched)
	}
}

func TestBeatService_Submit_Pending(t *testing.T) {
	backend := &mockGeneration{
		submitResp: ports.GenerationResponse{Status: ports.GenerationPending, RequestID: "req-2"},
	}
	fetcher := &mockFetcher{}

	svc := NewBeatService(backend, fetcher, newTestStore(t), nil)
	job, err := svc.Submit(context.Background(), "trap beat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.State != domain.JobPending || job.ID != "req-2" {
		t.Fatalf("job = %+v", job)
	}
	if job.AudioURL != "" {
		t.Fatal("pending job must not carry an audio url")
	}
	if len(fetcher.fetched) != 0 {
		t.Fatal("pending job must not trigger a fetch")
	}
}

func TestBeatService_Submit_Failed(t *testing.T) {
	backend := &mockGeneration{
		submitResp: ports.GenerationResponse{
			Status:    ports.GenerationFailed,
			RequestID: "req-3",
			Details:   "content policy",
		},
	}

	svc := NewBeatService(backend, &mockFetcher{}, newTestStore(t), nil)
	job, err := svc.Submit(context.Background(), "bad prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.State != domain.JobFailed || job.Error != "content policy" {
		t.Fatalf("job = %+v", job)
	}
}

func TestBeatService_Submit_UnrecognizedStatus(t *testing.T) {
	backend := &mockGeneration{
		submitResp: ports.GenerationResponse{Status: "melting", RequestID: "req-4"},
	}

	svc := NewBeatService(backend, &mockFetcher{}, newTestStore(t), nil)
	_, err := svc.Submit(context.Background(), "beat")
	if !errors.Is(err, ports.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestBeatService_DownloadFailureIsFailedState(t *testing.T) {
	backend := &mockGeneration{
		submitResp: ports.GenerationResponse{
			Status:    ports.GenerationComplete,
			RequestID: "req-5",
			AudioURL:  "https://cdn.example/stream/req-5",
		},
	}
	fetcher := &mockFetcher{err: errors.New("connection reset")}

	svc := NewBeatService(backend, fetcher, newTestStore(t), nil)
	job, err := svc.Submit(context.Background(), "beat")
	if err != nil {
		t.Fatalf("download failure must not surface as an error: %v", err)
	}
	if job.State != domain.JobFailed {
		t.Fatalf("state = %s, want failed", job.State)
	}
	if !strings.HasPrefix(job.Error, "download failed") {
		t.Fatalf("error %q should be a distinct download failure", job.Error)
	}
}

func TestBeatService_Poll_RedownloadsOnComplete(t *testing.T) {
	backend := &mockGeneration{
		pollResp: ports.GenerationResponse{
			Status:    ports.GenerationComplete,
			RequestID: "req-6",
			AudioURL:  "https://cdn.example/stream/req-6",
		},
	}
	fetcher := &mockFetcher{data: []byte("take")}

	svc := NewBeatService(backend, fetcher, newTestStore(t), nil)

	first, err := svc.Poll(context.Background(), "req-6")
	if err != nil {
		t.Fatalf("first poll: %v", err)
	}
	second, err := svc.Poll(context.Background(), "req-6")
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}

	if backend.polledID != "req-6" {
		t.Fatalf("polled id = %q", backend.polledID)
	}
	// Every completed poll fetches and persists afresh; the two
	// snapshots point at distinct files.
	if len(fetcher.fetched) != 2 {
		t.Fatalf("expected 2 fetches, got %d", len(fetcher.fetched))
	}
	if first.AudioURL == second.AudioURL {
		t.Fatalf("expected distinct artifact paths, both %q", first.AudioURL)
	}
}
