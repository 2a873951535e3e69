package ports

import "context"

// Status values reported by the generation backend. Anything else is an
// unrecognized status and surfaces as an UpstreamError.
const (
	GenerationPending  = "pending"
	GenerationComplete = "complete"
	GenerationFailed   = "failed"
)

// GenerationResponse is the backend's view of a job after a submit or a
// poll. AudioURL is the remote stream location and is only set when the
// backend reports complete.
type GenerationResponse struct {
	Status    string
	RequestID string
	AudioURL  string
	Details   string
}

// GenerationBackend is the asynchronous music-generation service.
type GenerationBackend interface {
	Submit(ctx context.Context, prompt string) (GenerationResponse, error)
	Poll(ctx context.Context, requestID string) (GenerationResponse, error)
}

// ArtifactFetcher downloads raw bytes from a URL reported by the
// generation backend.
type ArtifactFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
