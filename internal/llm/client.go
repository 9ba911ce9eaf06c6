package llm

import (
	"context"
	"fmt"
)

// Client is a single-turn completion client; the digest is the only caller.
type Client interface {
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Config struct {
	Provider       string // anthropic, openai, ollama
	AnthropicKey   string // API key (X-Api-Key header)
	AnthropicToken string // OAuth token (Authorization: Bearer header)
	OpenAIKey      string
	Model          string
	OllamaBaseURL  string
}

// NewClient picks the provider implementation and the credentials that go
// with it.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicClient(cfg.AnthropicKey, cfg.AnthropicToken, cfg.Model), nil
	case "openai":
		return NewOpenAIClient(cfg.OpenAIKey, cfg.Model, ""), nil
	case "ollama":
		model := cfg.Model
		if model == "" {
			model = "llama3.1"
		}
		return NewOpenAIClient("ollama", model, cfg.OllamaBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
