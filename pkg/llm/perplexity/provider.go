package perplexity

import (
	"context"
	"net/http"
	"strings"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/pkg/llm"
	"portfolio-ai-be/pkg/llm/openai"
)

const DefaultBaseURL = "https://api.perplexity.ai"

// PerplexityProvider speaks the OpenAI chat-completions dialect without the /v1 prefix
type PerplexityProvider struct {
	BaseURL string
	Client  *http.Client
}

var _ llm.Provider = &PerplexityProvider{}

func NewPerplexityProvider(baseURL string, client *http.Client) *PerplexityProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PerplexityProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

func (p *PerplexityProvider) Name() entity.ProviderId {
	return entity.ProviderPerplexity
}

func (p *PerplexityProvider) Send(ctx context.Context, apiKey, model, userMessage, systemInstruction string) (string, error) {
	body := openai.NewChatRequest(model, userMessage, systemInstruction, llm.MaxOutputTokens)

	resp, err := p.complete(ctx, apiKey, body)
	if err != nil {
		return "", err
	}
	return llm.FirstNonEmpty(resp.Text()), nil
}

// ListModels has no remote listing; a short completion proves the key works.
func (p *PerplexityProvider) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	model := llm.DefaultModel(entity.ProviderPerplexity)
	body := openai.NewChatRequest(model, llm.PingMessage, "Reply briefly.", llm.PingMaxTokens)

	if _, err := p.complete(ctx, apiKey, body); err != nil {
		return nil, err
	}
	return llm.CatalogModels(entity.ProviderPerplexity), nil
}

func (p *PerplexityProvider) complete(ctx context.Context, apiKey string, body openai.ChatRequest) (*openai.ChatResponse, error) {
	return llm.PostJSON[openai.ChatResponse](ctx, p.Client, p.BaseURL+"/chat/completions", llm.BearerAuth(apiKey), body)
}
