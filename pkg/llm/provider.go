package llm

import (
	"context"

	"portfolio-ai-be/internal/entity"
)

const (
	// FallbackResponse is returned when a provider answers 2xx without the expected text
	FallbackResponse = "Sorry, I couldn't generate a response."

	MaxOutputTokens = 500
	Temperature     = 0.7

	// PingMaxTokens bounds the completion used to verify a key during a connection test
	PingMaxTokens = 10
	PingMessage   = "Hi"
)

// Provider defines the contract for a chat-completion backend
type Provider interface {
	Name() entity.ProviderId

	// Send performs exactly one completion call and returns the normalized reply text
	Send(ctx context.Context, apiKey, model, userMessage, systemInstruction string) (string, error)

	// ListModels verifies the key and returns the models usable with it
	ListModels(ctx context.Context, apiKey string) ([]string, error)
}

// Registry maps every configured provider id to its adapter
type Registry map[entity.ProviderId]Provider

// Get returns the adapter for id, or false when none is registered
func (r Registry) Get(id entity.ProviderId) (Provider, bool) {
	p, ok := r[id]
	return p, ok
}

// FirstNonEmpty returns text, or FallbackResponse when the provider returned nothing usable
func FirstNonEmpty(text string) string {
	if text == "" {
		return FallbackResponse
	}
	return text
}
