package llm

import (
	"context"
	"fmt"

	"jobmaster-backend/internal/llm/anthropic"
	"jobmaster-backend/internal/llm/gemini"
	"jobmaster-backend/internal/llm/openai"
)

// Client abstracts a text-generation provider. One client is built per
// request with the key resolved for the calling user.
type Client interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// New builds a client for the given provider.
func New(provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		return openai.NewClient(apiKey)
	case ProviderAnthropic:
		return anthropic.NewClient(apiKey)
	case ProviderGemini:
		return gemini.NewClient(apiKey)
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// DefaultModel returns the model used when a request does not name one.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return ""
	}
}

// Catalog lists models across providers. It satisfies the key
// management service's model lister.
type Catalog struct{}

func (Catalog) ListModels(ctx context.Context, provider, apiKey string) ([]string, error) {
	client, err := New(provider, apiKey)
	if err != nil {
		return nil, err
	}
	return client.ListModels(ctx)
}

var (
	_ Client = (*openai.Client)(nil)
	_ Client = (*anthropic.Client)(nil)
	_ Client = (*gemini.Client)(nil)
)
