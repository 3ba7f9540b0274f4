package mapper

import (
	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/model"
)

type AiConfigMapper struct{}

func NewAiConfigMapper() *AiConfigMapper {
	return &AiConfigMapper{}
}

func (m *AiConfigMapper) ToEntity(c *model.AiConfig) *entity.AiConfig {
	if c == nil {
		return nil
	}

	return &entity.AiConfig{
		Id:                   c.Id,
		Enabled:              c.Enabled,
		Provider:             entity.ProviderId(c.Provider),
		OpenAIKey:            c.OpenAIKey,
		GeminiKey:            c.GeminiKey,
		AnthropicKey:         c.AnthropicKey,
		PerplexityKey:        c.PerplexityKey,
		SelectedModel:        c.SelectedModel,
		UseCustomInstruction: c.UseCustomInstruction,
		CustomInstruction:    c.CustomInstruction,
		SaveConversations:    c.SaveConversations,
		ChatTitle:            c.ChatTitle,
		WelcomeMessage:       c.WelcomeMessage,
		PlaceholderText:      c.PlaceholderText,
		PrimaryColor:         c.PrimaryColor,
		Position:             c.Position,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func (m *AiConfigMapper) ToModel(c *entity.AiConfig) *model.AiConfig {
	if c == nil {
		return nil
	}

	return &model.AiConfig{
		Id:                   c.Id,
		Enabled:              c.Enabled,
		Provider:             string(c.Provider),
		OpenAIKey:            c.OpenAIKey,
		GeminiKey:            c.GeminiKey,
		AnthropicKey:         c.AnthropicKey,
		PerplexityKey:        c.PerplexityKey,
		SelectedModel:        c.SelectedModel,
		UseCustomInstruction: c.UseCustomInstruction,
		CustomInstruction:    c.CustomInstruction,
		SaveConversations:    c.SaveConversations,
		ChatTitle:            c.ChatTitle,
		WelcomeMessage:       c.WelcomeMessage,
		PlaceholderText:      c.PlaceholderText,
		PrimaryColor:         c.PrimaryColor,
		Position:             c.Position,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}
