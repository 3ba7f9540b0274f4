package factory

import (
	"fmt"
	"net/http"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/pkg/logger"
	"portfolio-ai-be/pkg/llm"
	"portfolio-ai-be/pkg/llm/anthropic"
	"portfolio-ai-be/pkg/llm/gemini"
	"portfolio-ai-be/pkg/llm/openai"
	"portfolio-ai-be/pkg/llm/perplexity"
)

// BaseURLs overrides provider endpoints; empty values use the public APIs
type BaseURLs struct {
	OpenAI     string
	Gemini     string
	Anthropic  string
	Perplexity string
}

func NewLLMProvider(providerType entity.ProviderId, urls BaseURLs, client *http.Client, log logger.ILogger) (llm.Provider, error) {
	switch providerType {
	case entity.ProviderOpenAI:
		return openai.NewOpenAIProvider(urls.OpenAI, client), nil
	case entity.ProviderGemini:
		return gemini.NewGeminiProvider(urls.Gemini, client, log), nil
	case entity.ProviderAnthropic:
		return anthropic.NewAnthropicProvider(urls.Anthropic, client), nil
	case entity.ProviderPerplexity:
		return perplexity.NewPerplexityProvider(urls.Perplexity, client), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// NewRegistry builds one adapter per known provider, all sharing client
func NewRegistry(urls BaseURLs, client *http.Client, log logger.ILogger) (llm.Registry, error) {
	registry := make(llm.Registry, len(entity.Providers))
	for _, id := range entity.Providers {
		p, err := NewLLMProvider(id, urls, client, log)
		if err != nil {
			return nil, err
		}
		registry[id] = p
	}
	return registry, nil
}
