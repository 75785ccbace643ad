package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
)

// Config is everything a backend needs. It is read once by NewClient.
type Config struct {
	Provider  string
	Model     string
	MaxTokens int
	APIKey    string
	// BaseURL overrides the provider endpoint, mostly for tests.
	BaseURL string
	// Timeout bounds a single request. Zero leaves it to the caller's context.
	Timeout time.Duration
}

// StructuredClient sends one prompt to a model and returns the JSON payload
// conforming to schema. Every call is exactly one request, never retried.
type StructuredClient interface {
	Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error)
	Name() string
}

func NewClient(cfg Config) (StructuredClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key for provider %q", ErrConfiguration, cfg.Provider)
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be positive, got %d", ErrConfiguration, cfg.MaxTokens)
	}

	switch cfg.Provider {
	case ProviderAnthropic, "":
		return NewAnthropicClient(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	case ProviderGemini:
		return NewGeminiClient(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrConfiguration, cfg.Provider)
	}
}
