package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibematch/backend/internal/core/domain"
	"github.com/vibematch/backend/internal/core/ports"
)

const (
	defaultRecommendTimeout = 60 * time.Second
	defaultTrackCount       = 5
	recommendMaxTokens      = 800
	chatMaxTokens           = 300
	chatTimeout             = 30 * time.Second
)

// Recommender fans out two concurrent completion calls per request, one
// for the global taste profile and one for the caller's personal
// profile, joined under a single shared deadline.
type Recommender struct {
	ai      ports.CompletionProvider
	timeout time.Duration
}

// NewRecommender constructs a Recommender. A non-positive timeout falls
// back to the 60s default.
func NewRecommender(ai ports.CompletionProvider, timeout time.Duration) *Recommender {
	if timeout <= 0 {
		timeout = defaultRecommendTimeout
	}
	return &Recommender{ai: ai, timeout: timeout}
}

type completionOutcome struct {
	result domain.RecommendationResult
	err    error
}

// Recommend produces the (global, personal) recommendation pair for the
// mood. When the personal preference set is empty the global set stands
// in for it; there is no empty-personal state. If either completion call
// has not finished by the shared deadline the whole call fails with
// domain.ErrTimeout and no partial result is surfaced.
func (r *Recommender) Recommend(ctx context.Context, mood domain.MoodAnalysis, personal, global domain.PreferenceSet, n int) (domain.RecommendationPair, error) {
	if n <= 0 {
		n = defaultTrackCount
	}
	if personal.IsEmpty() {
		personal = global
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	globalCh := r.complete(ctx, mood, global, n)
	personalCh := r.complete(ctx, mood, personal, n)

	var pair domain.RecommendationPair
	for pending := 2; pending > 0; pending-- {
		select {
		case <-ctx.Done():
			return domain.RecommendationPair{}, timeoutOrCanceled(ctx.Err())
		case out := <-globalCh:
			globalCh = nil
			if out.err != nil {
				return domain.RecommendationPair{}, asRecommendError(out.err)
			}
			pair.Global = clampTracks(out.result, n)
		case out := <-personalCh:
			personalCh = nil
			if out.err != nil {
				return domain.RecommendationPair{}, asRecommendError(out.err)
			}
			pair.Personal = clampTracks(out.result, n)
		}
	}
	return pair, nil
}

// Chat answers a free-form music question, optionally grounded in a
// prior mood analysis. Replies are returned as raw text.
func (r *Recommender) Chat(ctx context.Context, message string, mood *domain.MoodAnalysis) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	reply, err := r.ai.Complete(ctx, buildChatPrompt(message, mood), chatMaxTokens)
	if err != nil {
		return "", asRecommendError(err)
	}
	return reply, nil
}

func (r *Recommender) complete(ctx context.Context, mood domain.MoodAnalysis, prefs domain.PreferenceSet, n int) <-chan completionOutcome {
	ch := make(chan completionOutcome, 1)
	go func() {
		raw, err := r.ai.Complete(ctx, buildRecommendPrompt(mood, prefs, n), recommendMaxTokens)
		if err != nil {
			ch <- completionOutcome{err: err}
			return
		}
		ch <- completionOutcome{result: Normalize(raw)}
	}()
	return ch
}

func buildRecommendPrompt(mood domain.MoodAnalysis, prefs domain.PreferenceSet, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the mood %q and the emotions [%s], suggest %d music tracks.\n\n",
		mood.Mood, strings.Join(mood.Emotions, ", "), n)
	if mood.Description != "" {
		fmt.Fprintf(&b, "Mood description: %s\n\n", mood.Description)
	}
	fmt.Fprintf(&b, "Listener preferences — genres: [%s], artists: [%s], favourite tracks: [%s].\n\n",
		strings.Join(prefs.Genres, ", "),
		strings.Join(prefs.Artists, ", "),
		strings.Join(prefs.Tracks, ", "))
	b.WriteString(`Respond in JSON:
{
    "recommended_tracks": [
        {"name": "track name", "artist": "artist", "reason": "why it fits"}
    ],
    "explanation": "short explanation",
    "alternative_genres": ["genre1", "genre2"]
}`)
	return b.String()
}

func buildChatPrompt(message string, mood *domain.MoodAnalysis) string {
	var b strings.Builder
	b.WriteString("You are a friendly music expert helping people find music that fits their mood.\n\n")
	fmt.Fprintf(&b, "The user wrote: %q\n", message)
	if mood != nil {
		fmt.Fprintf(&b, "\nMood analysis context:\n- Mood: %s\n- Description: %s\n- Emotions: [%s]\n",
			mood.Mood, mood.Description, strings.Join(mood.Emotions, ", "))
	}
	b.WriteString("\nAnswer helpfully; you can suggest genres, artists, or discuss musical taste.")
	return b.String()
}

func clampTracks(result domain.RecommendationResult, n int) domain.RecommendationResult {
	if len(result.Tracks) > n {
		result.Tracks = result.Tracks[:n]
	}
	return result
}

// asRecommendError maps a completion failure to the core taxonomy: a
// deadline hit anywhere is a timeout, everything else surfaces as an
// upstream failure with the backend's message.
func asRecommendError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	var upstream *ports.UpstreamError
	if errors.As(err, &upstream) {
		return upstream
	}
	return &ports.UpstreamError{Backend: "completion", Message: err.Error()}
}

func timeoutOrCanceled(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	return fmt.Errorf("service: recommendation canceled: %w", err)
}
