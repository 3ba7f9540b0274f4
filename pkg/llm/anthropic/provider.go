package anthropic

import (
	"context"
	"net/http"
	"strings"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/pkg/llm"
)

const (
	DefaultBaseURL = "https://api.anthropic.com"
	APIVersion     = "2023-06-01"
)

type AnthropicProvider struct {
	BaseURL string
	Client  *http.Client
}

var _ llm.Provider = &AnthropicProvider{}

func NewAnthropicProvider(baseURL string, client *http.Client) *AnthropicProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &AnthropicProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

// --- Request/Response structs ---

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (a *AnthropicProvider) headers(apiKey string) map[string]string {
	return map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": APIVersion,
	}
}

// --- Interface Implementation ---

func (a *AnthropicProvider) Name() entity.ProviderId {
	return entity.ProviderAnthropic
}

func (a *AnthropicProvider) Send(ctx context.Context, apiKey, model, userMessage, systemInstruction string) (string, error) {
	body := messagesRequest{
		Model:     model,
		MaxTokens: llm.MaxOutputTokens,
		System:    systemInstruction,
		Messages:  []anthropicMessage{{Role: "user", Content: userMessage}},
	}

	resp, err := llm.PostJSON[messagesResponse](ctx, a.Client, a.BaseURL+"/v1/messages", a.headers(apiKey), body)
	if err != nil {
		return "", err
	}

	if len(resp.Content) == 0 {
		return llm.FallbackResponse, nil
	}
	return llm.FirstNonEmpty(resp.Content[0].Text), nil
}

// ListModels pings the messages endpoint with a tiny completion, then returns the static catalog.
func (a *AnthropicProvider) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	body := messagesRequest{
		Model:     llm.DefaultModel(entity.ProviderAnthropic),
		MaxTokens: llm.PingMaxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: llm.PingMessage}},
	}

	if _, err := llm.PostJSON[messagesResponse](ctx, a.Client, a.BaseURL+"/v1/messages", a.headers(apiKey), body); err != nil {
		return nil, err
	}
	return llm.CatalogModels(entity.ProviderAnthropic), nil
}
