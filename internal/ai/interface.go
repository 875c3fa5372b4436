package ai

import (
	"context"
)

// TextGenerator defines the contract for interacting with text-generation models.
// This interface allows swapping providers (Gemini, OpenAI-compatible) without touching the planner.
type TextGenerator interface {
	// Generate sends a single prompt and returns the generated text.
	// An empty completion is reported as an error.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider in logs, metrics and the health endpoint.
	Name() string
}
