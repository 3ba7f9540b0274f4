package aiconfig

import (
	"context"
	"fmt"

	"portfolio-ai-be/internal/dto"
	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/repository/unitofwork"
	"portfolio-ai-be/pkg/vault"
)

// Manager handles the admin side of the AI configuration
type Manager struct {
	codec vault.Codec
}

// NewManager creates a new AI config manager
func NewManager(codec vault.Codec) *Manager {
	return &Manager{codec: codec}
}

// GetConfig returns the masked configuration, creating the default row on first read
func (m *Manager) GetConfig(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.AiConfigResponse, error) {
	config, err := uow.AiConfigRepository().FindOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}
	return ToResponse(config), nil
}

// UpdateConfig applies a partial update inside a transaction.
// It returns the masked result and the providers whose stored key changed.
func (m *Manager) UpdateConfig(ctx context.Context, uow unitofwork.UnitOfWork, req dto.UpdateAiConfigRequest) (*dto.AiConfigResponse, []string, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer uow.Rollback()

	config, err := uow.AiConfigRepository().FindForUpdate(ctx)
	if err != nil {
		return nil, nil, err
	}

	changedKeys, err := m.applyUpdate(config, req)
	if err != nil {
		return nil, nil, err
	}

	if err := uow.AiConfigRepository().Update(ctx, config); err != nil {
		return nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	return ToResponse(config), changedKeys, nil
}

// ResolveTestKey returns the plaintext key a connection test should use.
// An explicit key other than the masked sentinel wins over the stored one.
func (m *Manager) ResolveTestKey(ctx context.Context, uow unitofwork.UnitOfWork, provider entity.ProviderId, explicit *string) (*string, error) {
	if explicit != nil && *explicit != "" && *explicit != vault.MaskedSentinel {
		return explicit, nil
	}

	config, err := uow.AiConfigRepository().FindOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}
	return m.codec.Decrypt(config.KeyFor(provider)), nil
}

func (m *Manager) applyUpdate(config *entity.AiConfig, req dto.UpdateAiConfigRequest) ([]string, error) {
	if req.Enabled != nil {
		config.Enabled = *req.Enabled
	}
	if req.Provider != nil {
		provider := entity.ProviderId(*req.Provider)
		if !provider.Valid() {
			return nil, fmt.Errorf("unknown provider %q", *req.Provider)
		}
		config.Provider = provider
	}
	if req.SelectedModel != nil {
		config.SelectedModel = *req.SelectedModel
	}
	if req.UseCustomInstruction != nil {
		config.UseCustomInstruction = *req.UseCustomInstruction
	}
	if req.CustomInstruction != nil {
		if *req.CustomInstruction == "" {
			config.CustomInstruction = nil
		} else {
			instruction := *req.CustomInstruction
			config.CustomInstruction = &instruction
		}
	}
	if req.SaveConversations != nil {
		config.SaveConversations = *req.SaveConversations
	}
	if req.ChatTitle != nil {
		config.ChatTitle = *req.ChatTitle
	}
	if req.WelcomeMessage != nil {
		config.WelcomeMessage = *req.WelcomeMessage
	}
	if req.PlaceholderText != nil {
		config.PlaceholderText = *req.PlaceholderText
	}
	if req.PrimaryColor != nil {
		config.PrimaryColor = *req.PrimaryColor
	}
	if req.Position != nil {
		config.Position = *req.Position
	}

	updates := map[entity.ProviderId]vault.SecretUpdate{
		entity.ProviderOpenAI:     req.OpenAIKey,
		entity.ProviderGemini:     req.GeminiKey,
		entity.ProviderAnthropic:  req.AnthropicKey,
		entity.ProviderPerplexity: req.PerplexityKey,
	}

	var changed []string
	for _, provider := range entity.Providers {
		update := updates[provider]
		if update.Action == vault.SecretUnchanged {
			continue
		}
		next, err := update.Apply(m.codec, config.KeyFor(provider))
		if err != nil {
			return nil, fmt.Errorf("encrypt %s key: %w", provider, err)
		}
		config.SetKeyFor(provider, next)
		changed = append(changed, string(provider))
	}

	return changed, nil
}

// ToResponse masks every stored key
func ToResponse(c *entity.AiConfig) *dto.AiConfigResponse {
	return &dto.AiConfigResponse{
		Enabled:              c.Enabled,
		Provider:             string(c.Provider),
		OpenAIKey:            vault.Mask(c.OpenAIKey),
		GeminiKey:            vault.Mask(c.GeminiKey),
		AnthropicKey:         vault.Mask(c.AnthropicKey),
		PerplexityKey:        vault.Mask(c.PerplexityKey),
		HasOpenAIKey:         vault.Mask(c.OpenAIKey) != nil,
		HasGeminiKey:         vault.Mask(c.GeminiKey) != nil,
		HasAnthropicKey:      vault.Mask(c.AnthropicKey) != nil,
		HasPerplexityKey:     vault.Mask(c.PerplexityKey) != nil,
		SelectedModel:        c.SelectedModel,
		UseCustomInstruction: c.UseCustomInstruction,
		CustomInstruction:    c.CustomInstruction,
		SaveConversations:    c.SaveConversations,
		ChatTitle:            c.ChatTitle,
		WelcomeMessage:       c.WelcomeMessage,
		PlaceholderText:      c.PlaceholderText,
		PrimaryColor:         c.PrimaryColor,
		Position:             c.Position,
		UpdatedAt:            c.UpdatedAt,
	}
}

// ToPublic keeps only what the chat widget renders
func ToPublic(c *entity.AiConfig) *dto.PublicChatConfigResponse {
	return &dto.PublicChatConfigResponse{
		Enabled:         c.Enabled,
		Provider:        string(c.Provider),
		ChatTitle:       c.ChatTitle,
		WelcomeMessage:  c.WelcomeMessage,
		PlaceholderText: c.PlaceholderText,
		PrimaryColor:    c.PrimaryColor,
		Position:        c.Position,
	}
}
