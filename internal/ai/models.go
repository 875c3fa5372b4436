package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is returned when the selected provider has no credential configured.
var ErrMissingAPIKey = errors.New("ai: missing api key")

// ErrEmptyResponse is returned when the provider answered without any text.
var ErrEmptyResponse = errors.New("ai: empty response")

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config selects and configures a provider.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string // OpenAI-compatible endpoints only
	Temperature float32
}

// NewGenerator constructs the provider named by cfg.Provider.
// It returns ErrMissingAPIKey when no credential is set so callers can keep running unconfigured.
func NewGenerator(ctx context.Context, cfg Config) (TextGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	switch cfg.Provider {
	case ProviderGemini, "":
		p, err := NewGeminiProvider(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("ai: unsupported provider %q", cfg.Provider)
	}
}
