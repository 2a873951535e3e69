package ports

import "context"

// CompletionProvider is the AI text-completion backend. Which provider
// backs it (primary or fallback) is a construction-time choice; callers
// never branch on it.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
