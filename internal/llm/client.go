// Package llm provides chat-completion clients for the model providers the
// analysis pipeline can run against.
package llm

import "context"

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tunes a single completion request. Zero values fall back to the
// client's configured defaults.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Client is a chat-completion backend.
type Client interface {
	// Complete sends a conversation and returns the assistant's reply.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
	// Provider returns the backend name, e.g. "ollama".
	Provider() string
}

// ModelLister is implemented by clients that can enumerate the models
// available on their backend.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Config holds the settings needed to create a client.
type Config struct {
	Provider          string
	Model             string
	BaseURL           string
	APIKey            string
	Temperature       float64
	MaxTokens         int
	RequestsPerMinute int
}

// SystemUser is a convenience builder for the common two-message prompt.
func SystemUser(system, user string) []Message {
	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
}
