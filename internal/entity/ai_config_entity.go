package entity

import (
	"time"
)

// ProviderId identifies a third-party chat-completion provider
type ProviderId string

const (
	ProviderOpenAI     ProviderId = "openai"
	ProviderGemini     ProviderId = "gemini"
	ProviderAnthropic  ProviderId = "anthropic"
	ProviderPerplexity ProviderId = "perplexity"
)

// Providers lists every provider the gateway knows, in display order
var Providers = []ProviderId{
	ProviderOpenAI,
	ProviderGemini,
	ProviderAnthropic,
	ProviderPerplexity,
}

// Valid reports whether p is one of the known providers
func (p ProviderId) Valid() bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// AiConfig is the singleton chatbot configuration.
// Key fields hold ciphertext produced by the vault, or nil when not set.
type AiConfig struct {
	Id                   uint
	Enabled              bool
	Provider             ProviderId
	OpenAIKey            *string
	GeminiKey            *string
	AnthropicKey         *string
	PerplexityKey        *string
	SelectedModel        string
	UseCustomInstruction bool
	CustomInstruction    *string
	SaveConversations    bool

	// Appearance (opaque to the gateway)
	ChatTitle       string
	WelcomeMessage  string
	PlaceholderText string
	PrimaryColor    string
	Position        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AiConfigSingletonId is the fixed primary key of the only configuration row
const AiConfigSingletonId uint = 1

// KeyFor returns the stored ciphertext for the given provider
func (c *AiConfig) KeyFor(provider ProviderId) *string {
	switch provider {
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderGemini:
		return c.GeminiKey
	case ProviderAnthropic:
		return c.AnthropicKey
	case ProviderPerplexity:
		return c.PerplexityKey
	}
	return nil
}

// SetKeyFor replaces the stored ciphertext for the given provider
func (c *AiConfig) SetKeyFor(provider ProviderId, value *string) {
	switch provider {
	case ProviderOpenAI:
		c.OpenAIKey = value
	case ProviderGemini:
		c.GeminiKey = value
	case ProviderAnthropic:
		c.AnthropicKey = value
	case ProviderPerplexity:
		c.PerplexityKey = value
	}
}

// NewDefaultAiConfig returns the configuration synthesized when no row exists yet
func NewDefaultAiConfig() *AiConfig {
	return &AiConfig{
		Id:                AiConfigSingletonId,
		Enabled:           false,
		Provider:          ProviderOpenAI,
		SaveConversations: true,
		ChatTitle:         "AI Assistant",
		WelcomeMessage:    "Hi! Ask me anything about my work and experience.",
		PlaceholderText:   "Type your message...",
		PrimaryColor:      "#3b82f6",
		Position:          "bottom-right",
	}
}
