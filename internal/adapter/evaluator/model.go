package evaluator

import (
	"context"
	"fmt"
	"net/http"

	"design-dojo/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModel builds the langchaingo model for the configured provider.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "googleai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("googleai provider requires an API key")
		}
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return llm, nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		llm, err := openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return llm, nil
	case "ollama":
		httpClient := &http.Client{Timeout: cfg.Timeout}
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
