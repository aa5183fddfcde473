package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers in the future.
type LLMProvider interface {
	// Complete sends a single prompt and returns the raw reply text.
	// The reply is not validated; callers parse it themselves.
	Complete(ctx context.Context, prompt string) (string, error)
}
