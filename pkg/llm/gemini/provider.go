package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/pkg/logger"
	"portfolio-ai-be/pkg/llm"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com"

type GeminiProvider struct {
	BaseURL string
	Client  *http.Client
	Logger  logger.ILogger
}

var _ llm.Provider = &GeminiProvider{}

func NewGeminiProvider(baseURL string, client *http.Client, log logger.ILogger) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		Logger:  log,
	}
}

// --- Request/Response structs ---

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type modelList struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

// Gemini has no system role on this endpoint; the instruction is folded into the single user part.
func composePrompt(userMessage, systemInstruction string) string {
	return systemInstruction + "\n\nUser: " + userMessage
}

// --- Interface Implementation ---

func (g *GeminiProvider) Name() entity.ProviderId {
	return entity.ProviderGemini
}

func (g *GeminiProvider) Send(ctx context.Context, apiKey, model, userMessage, systemInstruction string) (string, error) {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: composePrompt(userMessage, systemInstruction)}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: llm.MaxOutputTokens,
			Temperature:     llm.Temperature,
		},
	}

	endpoint := g.BaseURL + "/v1beta/models/" + url.PathEscape(model) + ":generateContent?key=" + url.QueryEscape(apiKey)

	resp, err := llm.PostJSON[generateResponse](ctx, g.Client, endpoint, nil, body)
	if err != nil {
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			g.logAvailableModels(ctx, apiKey, model)
		}
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return llm.FallbackResponse, nil
	}
	return llm.FirstNonEmpty(resp.Candidates[0].Content.Parts[0].Text), nil
}

// ListModels returns model names without the "models/" prefix that support generateContent.
// Falls back to the catalog when none do.
func (g *GeminiProvider) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	endpoint := g.BaseURL + "/v1beta/models?key=" + url.QueryEscape(apiKey)

	resp, err := llm.GetJSON[modelList](ctx, g.Client, endpoint, nil)
	if err != nil {
		return nil, err
	}

	models := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		if !supports(m.SupportedGenerationMethods, "generateContent") {
			continue
		}
		models = append(models, strings.TrimPrefix(m.Name, "models/"))
	}
	if len(models) == 0 {
		return llm.CatalogModels(entity.ProviderGemini), nil
	}
	return models, nil
}

// logAvailableModels is a diagnostic for an unknown model; its outcome never changes the caller's error.
func (g *GeminiProvider) logAvailableModels(ctx context.Context, apiKey, model string) {
	if g.Logger == nil {
		return
	}

	models, err := g.ListModels(ctx, apiKey)
	if err != nil {
		g.Logger.Warn("GEMINI", "Model not found and model listing failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return
	}

	g.Logger.Warn("GEMINI", "Model not found", map[string]interface{}{
		"model":     model,
		"available": models,
	})
}

func supports(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}
