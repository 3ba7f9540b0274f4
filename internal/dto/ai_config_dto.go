package dto

import (
	"time"

	"portfolio-ai-be/pkg/vault"
)

// AiConfigResponse is the admin view of the configuration.
// Stored keys are never returned; a present key is shown as the masked sentinel.
type AiConfigResponse struct {
	Enabled              bool      `json:"enabled"`
	Provider             string    `json:"provider"`
	OpenAIKey            *string   `json:"openai_key"`
	GeminiKey            *string   `json:"gemini_key"`
	AnthropicKey         *string   `json:"anthropic_key"`
	PerplexityKey        *string   `json:"perplexity_key"`
	HasOpenAIKey         bool      `json:"has_openai_key"`
	HasGeminiKey         bool      `json:"has_gemini_key"`
	HasAnthropicKey      bool      `json:"has_anthropic_key"`
	HasPerplexityKey     bool      `json:"has_perplexity_key"`
	SelectedModel        string    `json:"selected_model"`
	UseCustomInstruction bool      `json:"use_custom_instruction"`
	CustomInstruction    *string   `json:"custom_instruction"`
	SaveConversations    bool      `json:"save_conversations"`
	ChatTitle            string    `json:"chat_title"`
	WelcomeMessage       string    `json:"welcome_message"`
	PlaceholderText      string    `json:"placeholder_text"`
	PrimaryColor         string    `json:"primary_color"`
	Position             string    `json:"position"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UpdateAiConfigRequest is a partial update: nil fields and absent keys are left untouched
type UpdateAiConfigRequest struct {
	Enabled              *bool              `json:"enabled"`
	Provider             *string            `json:"provider" validate:"omitempty,oneof=openai gemini anthropic perplexity"`
	OpenAIKey            vault.SecretUpdate `json:"openai_key"`
	GeminiKey            vault.SecretUpdate `json:"gemini_key"`
	AnthropicKey         vault.SecretUpdate `json:"anthropic_key"`
	PerplexityKey        vault.SecretUpdate `json:"perplexity_key"`
	SelectedModel        *string            `json:"selected_model" validate:"omitempty,max=100"`
	UseCustomInstruction *bool              `json:"use_custom_instruction"`
	CustomInstruction    *string            `json:"custom_instruction" validate:"omitempty,max=10000"`
	SaveConversations    *bool              `json:"save_conversations"`
	ChatTitle            *string            `json:"chat_title" validate:"omitempty,max=100"`
	WelcomeMessage       *string            `json:"welcome_message" validate:"omitempty,max=500"`
	PlaceholderText      *string            `json:"placeholder_text" validate:"omitempty,max=100"`
	PrimaryColor         *string            `json:"primary_color" validate:"omitempty,hexcolor"`
	Position             *string            `json:"position" validate:"omitempty,oneof=bottom-right bottom-left"`
}

type TestConnectionRequest struct {
	Provider string  `json:"provider" validate:"required,oneof=openai gemini anthropic perplexity"`
	ApiKey   *string `json:"api_key"`
}

type TestConnectionResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Models  []string `json:"models"`
}
