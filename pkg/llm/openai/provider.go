package openai

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/pkg/llm"
)

const DefaultBaseURL = "https://api.openai.com"

type OpenAIProvider struct {
	BaseURL string
	Client  *http.Client
}

var _ llm.Provider = &OpenAIProvider{}

func NewOpenAIProvider(baseURL string, client *http.Client) *OpenAIProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenAIProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

// --- Wire types, shared with OpenAI-compatible providers ---

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Text extracts choices[0].message.content
func (r *ChatResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

type modelList struct {
	Data []struct {
		Id string `json:"id"`
	} `json:"data"`
}

// NewChatRequest builds the system + user message pair every OpenAI-style call uses
func NewChatRequest(model, userMessage, systemInstruction string, maxTokens int) ChatRequest {
	return ChatRequest{
		Model: model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   maxTokens,
		Temperature: llm.Temperature,
	}
}

// --- Interface Implementation ---

func (p *OpenAIProvider) Name() entity.ProviderId {
	return entity.ProviderOpenAI
}

func (p *OpenAIProvider) Send(ctx context.Context, apiKey, model, userMessage, systemInstruction string) (string, error) {
	body := NewChatRequest(model, userMessage, systemInstruction, llm.MaxOutputTokens)

	resp, err := llm.PostJSON[ChatResponse](ctx, p.Client, p.BaseURL+"/v1/chat/completions", llm.BearerAuth(apiKey), body)
	if err != nil {
		return "", err
	}

	return llm.FirstNonEmpty(resp.Text()), nil
}

// ListModels returns the sorted chat model ids visible to the key,
// or the static catalog when the key sees none.
func (p *OpenAIProvider) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	resp, err := llm.GetJSON[modelList](ctx, p.Client, p.BaseURL+"/v1/models", llm.BearerAuth(apiKey))
	if err != nil {
		return nil, err
	}

	models := make([]string, 0, len(resp.Data))
	for _, m := range resp.Data {
		if strings.Contains(m.Id, "gpt") {
			models = append(models, m.Id)
		}
	}
	if len(models) == 0 {
		return llm.CatalogModels(entity.ProviderOpenAI), nil
	}

	sort.Strings(models)
	return models, nil
}
