package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/pkg/logger"
	"portfolio-ai-be/pkg/llm"
)

func TestSend_RequestShape(t *testing.T) {
	var captured generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.URL.Query().Get("key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Gemini reply"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, srv.Client(), logger.NewNop())
	reply, err := p.Send(context.Background(), "g-key", "gemini-1.5-flash", "What do you do?", "Instruction")

	require.NoError(t, err)
	assert.Equal(t, "Gemini reply", reply)
	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 1)
	assert.Equal(t, "Instruction\n\nUser: What do you do?", captured.Contents[0].Parts[0].Text)
	assert.Equal(t, 500, captured.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, 0.7, captured.GenerationConfig.Temperature)
}

func TestSend_NoCandidatesFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	reply, err := NewGeminiProvider(srv.URL, srv.Client(), logger.NewNop()).Send(context.Background(), "k", "m", "Hi", "sys")

	require.NoError(t, err)
	assert.Equal(t, llm.FallbackResponse, reply)
}

func TestSend_NotFoundListsModelsAndReturnsOriginalError(t *testing.T) {
	listed := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ":generateContent") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404}}`))
			return
		}
		listed++
		_, _ = w.Write([]byte(`{"models":[{"name":"models/gemini-1.5-pro","supportedGenerationMethods":["generateContent"]}]}`))
	}))
	defer srv.Close()

	_, err := NewGeminiProvider(srv.URL, srv.Client(), logger.NewNop()).Send(context.Background(), "k", "gemini-unknown", "Hi", "sys")

	var statusErr *llm.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, 1, listed)
}

func TestListModels_FiltersGenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1beta/models", r.URL.Path)
		assert.Equal(t, "g-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"models":[
			{"name":"models/gemini-1.5-flash","supportedGenerationMethods":["generateContent","countTokens"]},
			{"name":"models/embedding-001","supportedGenerationMethods":["embedContent"]},
			{"name":"models/gemini-1.5-pro","supportedGenerationMethods":["generateContent"]}
		]}`))
	}))
	defer srv.Close()

	models, err := NewGeminiProvider(srv.URL, srv.Client(), logger.NewNop()).ListModels(context.Background(), "g-key")

	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-1.5-flash", "gemini-1.5-pro"}, models)
}

func TestListModels_NoGenerateContentUsesCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"models":[{"name":"models/embedding-001","supportedGenerationMethods":["embedContent"]}]}`))
	}))
	defer srv.Close()

	models, err := NewGeminiProvider(srv.URL, srv.Client(), logger.NewNop()).ListModels(context.Background(), "g-key")

	require.NoError(t, err)
	assert.NotEmpty(t, models)
	assert.Equal(t, llm.CatalogModels(entity.ProviderGemini), models)
}

func TestSend_TransportErrorDoesNotLeakKey(t *testing.T) {
	const key = "AIzaSECRETKEY123"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	p := NewGeminiProvider(baseURL, http.DefaultClient, logger.NewNop())

	_, err := p.Send(context.Background(), key, "gemini-1.5-flash", "Hi", "sys")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)
	assert.Contains(t, err.Error(), ":generateContent")

	_, err = p.ListModels(context.Background(), key)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)
}
