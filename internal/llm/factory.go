package llm

import "fmt"

// NewClient creates a client for the configured provider. Supported
// providers are "ollama" (default) and "openai". A positive
// RequestsPerMinute wraps the client in a rate limiter.
func NewClient(cfg Config) (Client, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "ollama"
	}

	var (
		client Client
		err    error
	)
	switch provider {
	case "ollama":
		client, err = newOllamaClient(cfg)
	case "openai":
		client, err = newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", provider, err)
	}

	if cfg.RequestsPerMinute > 0 {
		return newRateLimitedClient(client, cfg.RequestsPerMinute), nil
	}
	return client, nil
}
