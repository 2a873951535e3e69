package services

import (
	"context"
	"fmt"

	"github.com/vibematch/backend/internal/assets"
	"github.com/vibematch/backend/internal/core/domain"
	"github.com/vibematch/backend/internal/core/ports"
	"github.com/vibematch/backend/internal/worker"
)

// BeatService drives the submit/poll state machine against the music
// generation backend and persists completed artifacts on disk. The state
// machine advances only on explicit caller-driven calls; there are no
// internal retries and no background timers.
type BeatService struct {
	backend ports.GenerationBackend
	fetcher ports.ArtifactFetcher
	store   *assets.Store
	pool    *worker.Pool // optional post-persist analysis
}

// NewBeatService constructs a BeatService. pool may be nil when no
// background analysis is wanted.
func NewBeatService(backend ports.GenerationBackend, fetcher ports.ArtifactFetcher, store *assets.Store, pool *worker.Pool) *BeatService {
	return &BeatService{backend: backend, fetcher: fetcher, store: store, pool: pool}
}

// Submit sends the prompt to the generation backend and interprets the
// response. A job may land directly in a terminal state without ever
// being observed as pending.
func (s *BeatService) Submit(ctx context.Context, prompt string) (domain.GenerationJob, error) {
	resp, err := s.backend.Submit(ctx, prompt)
	if err != nil {
		return domain.GenerationJob{}, err
	}
	return s.interpret(ctx, prompt, resp)
}

// Poll re-queries the backend for the job and interprets the response
// the same three-way as Submit. A poll that observes complete performs a
// fresh fetch-and-persist even if an earlier poll already stored the
// artifact.
func (s *BeatService) Poll(ctx context.Context, requestID string) (domain.GenerationJob, error) {
	resp, err := s.backend.Poll(ctx, requestID)
	if err != nil {
		return domain.GenerationJob{}, err
	}
	return s.interpret(ctx, "", resp)
}

func (s *BeatService) interpret(ctx context.Context, prompt string, resp ports.GenerationResponse) (domain.GenerationJob, error) {
	job := domain.GenerationJob{ID: resp.RequestID, Prompt: prompt}

	switch resp.Status {
	case ports.GenerationPending:
		job.State = domain.JobPending
		return job, nil

	case ports.GenerationFailed:
		job.State = domain.JobFailed
		job.Error = resp.Details
		return job, nil

	case ports.GenerationComplete:
		if resp.AudioURL == "" {
			return domain.GenerationJob{}, &ports.UpstreamError{
				Backend: "generation",
				Message: "complete response carries no stream url",
			}
		}
		// The job is only truly complete once the audio is stored
		// locally; a fetch or write failure is reported as Failed,
		// distinct from a backend-reported failure.
		data, err := s.fetcher.Fetch(ctx, resp.AudioURL)
		if err != nil {
			job.State = domain.JobFailed
			job.Error = fmt.Sprintf("download failed: %v", err)
			return job, nil
		}
		path, err := s.store.PersistGenerated(data, "mp3")
		if err != nil {
			job.State = domain.JobFailed
			job.Error = fmt.Sprintf("download failed: %v", err)
			return job, nil
		}
		job.State = domain.JobComplete
		job.AudioURL = path
		if s.pool != nil {
			s.pool.Submit(worker.Job{AssetPath: path})
		}
		return job, nil

	default:
		return domain.GenerationJob{}, &ports.UpstreamError{
			Backend: "generation",
			Message: fmt.Sprintf("unrecognized status %q", resp.Status),
		}
	}
}
