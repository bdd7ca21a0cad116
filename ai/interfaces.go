package ai

import "context"

// Completer performs a single-turn text completion against a
// language-generation service. Implementations must be thread-safe for
// concurrent use.
type Completer interface {
	// Complete sends one prompt and returns the raw response text.
	// The call is bounded by the configured timeout; callers treat a
	// failure as recoverable and fall back, never as fatal.
	Complete(ctx context.Context, prompt string) (string, error)
}
