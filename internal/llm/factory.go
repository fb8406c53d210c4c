package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/promptner/promptner/internal/config"
)

// NewClient resolves a model binding to a callable backend. An unknown
// provider fails here, at assembly time, so per-document processing never
// discovers a missing backend.
func NewClient(ctx context.Context, cfg config.ModelConfig) (Client, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "ollama":
		// Ollama speaks the OpenAI chat API under /v1.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = strings.TrimRight(baseURL, "/") + "/v1"
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // required by the client config, ignored by the server
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedModel, cfg.Provider)
	}
}
