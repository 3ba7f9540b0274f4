package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"portfolio-ai-be/internal/apperror"
	"portfolio-ai-be/internal/dto"
	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/pkg/logger"
	"portfolio-ai-be/internal/repository/memory"
	"portfolio-ai-be/pkg/admin/aiconfig"
	"portfolio-ai-be/pkg/llm/factory"
	"portfolio-ai-be/pkg/ratelimit"
	"portfolio-ai-be/pkg/vault"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const clientIP = "203.0.113.7"

type chatFixture struct {
	svc      IChatbotService
	uow      *mockUow
	limiter  *mockLimiter
	settings *mockLimiter
	events   *mockPublisher
	vault    *vault.Vault

	calls       int32
	lastRequest map[string]interface{}
	lastAuth    string
	lastApiKey  string
	lastPath    string
	lastQuery   string
	handler     func(w http.ResponseWriter, r *http.Request)
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	f := &chatFixture{
		uow:      newMockUow(),
		limiter:  &mockLimiter{},
		settings: &mockLimiter{},
		events:   &mockPublisher{},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		f.lastAuth = r.Header.Get("Authorization")
		f.lastApiKey = r.Header.Get("x-api-key")
		f.lastPath = r.URL.Path
		f.lastQuery = r.URL.RawQuery
		if r.Method == http.MethodPost {
			var body map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.lastRequest = body
		}
		f.handler(w, r)
	}))
	t.Cleanup(srv.Close)

	f.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Hello from OpenAI"}}]}`))
	}

	v, err := vault.New("service-test-key")
	require.NoError(t, err)
	f.vault = v

	registry, err := factory.NewRegistry(factory.BaseURLs{
		OpenAI:     srv.URL,
		Gemini:     srv.URL,
		Anthropic:  srv.URL,
		Perplexity: srv.URL,
	}, srv.Client(), logger.NewNop())
	require.NoError(t, err)

	f.svc = NewChatbotService(
		&mockFactory{uow: f.uow},
		registry,
		v,
		f.limiter,
		f.settings,
		aiconfig.NewManager(v),
		memory.NewPublicConfigCache(0),
		f.events,
		logger.NewNop(),
	)
	return f
}

func (f *chatFixture) allowAll() {
	f.limiter.On("Allow", mock.Anything, clientIP).Return(ratelimit.Result{Allowed: true, Remaining: 9}, nil)
	f.settings.On("Allow", mock.Anything, clientIP).Return(ratelimit.Result{Allowed: true, Remaining: 9}, nil)
}

func (f *chatFixture) enabledConfig(t *testing.T) *entity.AiConfig {
	t.Helper()
	key, err := f.vault.Encrypt("sk-test")
	require.NoError(t, err)

	cfg := entity.NewDefaultAiConfig()
	cfg.Enabled = true
	cfg.Provider = entity.ProviderOpenAI
	cfg.OpenAIKey = &key
	cfg.SelectedModel = "gpt-4o-mini"
	return cfg
}

func (f *chatFixture) providerCalls() int {
	return int(atomic.LoadInt32(&f.calls))
}

func validRequest() dto.SendChatMessageRequest {
	return dto.SendChatMessageRequest{
		Message:   "What do you work on?",
		SessionId: uuid.NewString(),
		Language:  "en",
	}
}

func testProfile() *entity.AdminProfile {
	return &entity.AdminProfile{Name: "Jane Doe", Position: "Backend Engineer", Skills: []string{"Go", "SQL"}}
}

func systemMessage(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	messages, ok := body["messages"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, messages)
	first := messages[0].(map[string]interface{})
	require.Equal(t, "system", first["role"])
	return first["content"].(string)
}

func TestSendChatMessage_HappyPath(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(f.enabledConfig(t), nil)
	f.uow.profiles.On("FindFirst", mock.Anything).Return(testProfile(), nil)

	req := validRequest()
	f.uow.conversations.On("AppendTurn", mock.Anything, req.SessionId,
		mock.MatchedBy(func(messages []entity.Message) bool {
			return len(messages) == 2 &&
				messages[0].Role == entity.MessageRoleUser &&
				messages[0].Content == "What do you work on?" &&
				messages[1].Role == entity.MessageRoleAssistant &&
				messages[1].Content == "Hello from OpenAI"
		}), "en").Return(nil)

	res, err := f.svc.SendChatMessage(context.Background(), clientIP, req)

	require.NoError(t, err)
	assert.Equal(t, "Hello from OpenAI", res.Response)
	assert.Equal(t, 1, f.providerCalls())
	assert.Equal(t, "Bearer sk-test", f.lastAuth)
	assert.Equal(t, "gpt-4o-mini", f.lastRequest["model"])
	assert.Contains(t, systemMessage(t, f.lastRequest), "Name: Jane Doe")
	f.uow.conversations.AssertNumberOfCalls(t, "AppendTurn", 1)
}

func TestSendChatMessage_DispatchesToConfiguredProvider(t *testing.T) {
	tests := []struct {
		name      string
		provider  entity.ProviderId
		model     string
		path      string
		reply     string
		wantKey   func(f *chatFixture) string
		checkBody func(t *testing.T, body map[string]interface{})
	}{
		{
			name:     "gemini",
			provider: entity.ProviderGemini,
			model:    "gemini-1.5-flash",
			path:     "/v1beta/models/gemini-1.5-flash:generateContent",
			reply:    `{"candidates":[{"content":{"parts":[{"text":"Hello from Gemini"}]}}]}`,
			wantKey:  func(f *chatFixture) string { return f.lastQuery },
			checkBody: func(t *testing.T, body map[string]interface{}) {
				contents, ok := body["contents"].([]interface{})
				require.True(t, ok)
				require.Len(t, contents, 1)
				assert.NotContains(t, body, "messages")
				assert.Contains(t, body, "generationConfig")
			},
		},
		{
			name:     "anthropic",
			provider: entity.ProviderAnthropic,
			model:    "claude-3-5-haiku-20241022",
			path:     "/v1/messages",
			reply:    `{"content":[{"type":"text","text":"Hello from Anthropic"}]}`,
			wantKey:  func(f *chatFixture) string { return f.lastApiKey },
			checkBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "claude-3-5-haiku-20241022", body["model"])
				assert.EqualValues(t, 500, body["max_tokens"])
				assert.Contains(t, body["system"], "Name: Jane Doe")
				messages := body["messages"].([]interface{})
				require.Len(t, messages, 1)
				assert.Equal(t, "user", messages[0].(map[string]interface{})["role"])
			},
		},
		{
			name:     "perplexity",
			provider: entity.ProviderPerplexity,
			model:    "sonar",
			path:     "/chat/completions",
			reply:    `{"choices":[{"message":{"content":"Hello from Perplexity"}}]}`,
			wantKey:  func(f *chatFixture) string { return f.lastAuth },
			checkBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "sonar", body["model"])
				assert.Contains(t, systemMessage(t, body), "Name: Jane Doe")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t)
			f.allowAll()
			f.handler = func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.reply))
			}

			cfg := entity.NewDefaultAiConfig()
			cfg.Enabled = true
			cfg.Provider = tt.provider
			cfg.SelectedModel = tt.model
			cfg.SaveConversations = false
			for _, id := range entity.Providers {
				ciphertext, err := f.vault.Encrypt("key-" + string(id))
				require.NoError(t, err)
				cfg.SetKeyFor(id, &ciphertext)
			}
			f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(cfg, nil)
			f.uow.profiles.On("FindFirst", mock.Anything).Return(testProfile(), nil)

			res, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(res.Response, "Hello from "))
			assert.Equal(t, 1, f.providerCalls())
			assert.Equal(t, tt.path, f.lastPath)

			used := tt.wantKey(f)
			assert.Contains(t, used, "key-"+string(tt.provider))
			for _, id := range entity.Providers {
				if id == tt.provider {
					continue
				}
				assert.NotContains(t, f.lastAuth+f.lastApiKey+f.lastQuery, "key-"+string(id))
			}
			tt.checkBody(t, f.lastRequest)
		})
	}
}

func TestSendChatMessage_RateLimited(t *testing.T) {
	f := newChatFixture(t)
	f.limiter.On("Allow", mock.Anything, clientIP).Return(ratelimit.Result{Allowed: false}, nil)

	_, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

	assert.Equal(t, apperror.KindRateLimit, apperror.KindOf(err))
	assert.EqualError(t, err, apperror.MsgRateLimited)
	assert.Equal(t, 0, f.providerCalls())
	f.uow.aiConfig.AssertNotCalled(t, "FindOrCreateDefault", mock.Anything)
}

func TestSendChatMessage_LimiterErrorFailsClosed(t *testing.T) {
	f := newChatFixture(t)
	f.limiter.On("Allow", mock.Anything, clientIP).Return(ratelimit.Result{}, errors.New("redis: connection refused"))
	f.events.On("PublishRateLimiterUnavailable", "chat").Return()

	_, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

	assert.Equal(t, apperror.KindRateLimit, apperror.KindOf(err))
	assert.Equal(t, 0, f.providerCalls())
	f.events.AssertCalled(t, "PublishRateLimiterUnavailable", "chat")
	f.uow.aiConfig.AssertNotCalled(t, "FindOrCreateDefault", mock.Anything)
}

func TestSendChatMessage_OversizedMessageMakesNoCalls(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()

	req := validRequest()
	req.Message = strings.Repeat("a", MaxMessageLength+1)

	_, err := f.svc.SendChatMessage(context.Background(), clientIP, req)

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.True(t, errors.Is(err, apperror.Validation(nil)))
	assert.Equal(t, 0, f.providerCalls())
	f.uow.aiConfig.AssertNotCalled(t, "FindOrCreateDefault", mock.Anything)
	f.uow.conversations.AssertNotCalled(t, "AppendTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendChatMessage_LimitAppliesAfterTrim(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	cfg := f.enabledConfig(t)
	cfg.SaveConversations = false
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(cfg, nil)
	f.uow.profiles.On("FindFirst", mock.Anything).Return(nil, nil)

	req := validRequest()
	req.Message = "   " + strings.Repeat("é", MaxMessageLength) + "\n"

	_, err := f.svc.SendChatMessage(context.Background(), clientIP, req)

	require.NoError(t, err)
	assert.Equal(t, 1, f.providerCalls())
}

func TestSendChatMessage_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.SendChatMessageRequest)
	}{
		{name: "empty message", mutate: func(r *dto.SendChatMessageRequest) { r.Message = "  \t " }},
		{name: "bad session id", mutate: func(r *dto.SendChatMessageRequest) { r.SessionId = "session-123" }},
		{name: "missing session id", mutate: func(r *dto.SendChatMessageRequest) { r.SessionId = "" }},
		{name: "bad language", mutate: func(r *dto.SendChatMessageRequest) { r.Language = "english" }},
		{name: "numeric language", mutate: func(r *dto.SendChatMessageRequest) { r.Language = "12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t)
			f.allowAll()

			req := validRequest()
			tt.mutate(&req)
			_, err := f.svc.SendChatMessage(context.Background(), clientIP, req)

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Equal(t, apperror.MsgInvalidFormat, appErr.Message)
			assert.Equal(t, 0, f.providerCalls())
		})
	}
}

func TestSendChatMessage_DisabledMakesNoCalls(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	cfg := f.enabledConfig(t)
	cfg.Enabled = false
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(cfg, nil)

	_, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.MsgDisabled, appErr.Message)
	assert.Equal(t, 0, f.providerCalls())
	f.uow.conversations.AssertNotCalled(t, "AppendTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendChatMessage_ConfigLoadErrorIsDisabled(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

	assert.True(t, errors.Is(err, apperror.Disabled(nil)))
	assert.Equal(t, 0, f.providerCalls())
}

func TestSendChatMessage_Unconfigured(t *testing.T) {
	garbage := "not-ciphertext"

	tests := []struct {
		name string
		key  *string
	}{
		{name: "no key", key: nil},
		{name: "undecryptable key", key: &garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t)
			f.allowAll()
			cfg := f.enabledConfig(t)
			cfg.OpenAIKey = tt.key
			f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(cfg, nil)

			_, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

			assert.True(t, errors.Is(err, apperror.Unconfigured(nil)))
			assert.Equal(t, 0, f.providerCalls())
		})
	}
}

func TestSendChatMessage_ProviderFailureIsNotPersisted(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(f.enabledConfig(t), nil)
	f.uow.profiles.On("FindFirst", mock.Anything).Return(testProfile(), nil)
	f.events.On("PublishProviderCallFailed", "openai", "gpt-4o-mini", http.StatusInternalServerError).Return()
	f.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"internal secret detail"}}`))
	}

	res, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

	assert.Nil(t, res)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindProvider, appErr.Kind)
	assert.Equal(t, "Failed to get AI response", appErr.Message)
	assert.NotContains(t, appErr.Message, "secret")
	assert.Equal(t, 1, f.providerCalls())
	f.uow.conversations.AssertNotCalled(t, "AppendTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.events.AssertCalled(t, "PublishProviderCallFailed", "openai", "gpt-4o-mini", http.StatusInternalServerError)
}

func TestSendChatMessage_PersistFailureStillResponds(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(f.enabledConfig(t), nil)
	f.uow.profiles.On("FindFirst", mock.Anything).Return(testProfile(), nil)

	req := validRequest()
	f.uow.conversations.On("AppendTurn", mock.Anything, req.SessionId, mock.Anything, "en").Return(errors.New("deadlock"))
	f.events.On("PublishConversationPersistFailed", req.SessionId).Return()

	res, err := f.svc.SendChatMessage(context.Background(), clientIP, req)

	require.NoError(t, err)
	assert.Equal(t, "Hello from OpenAI", res.Response)
	f.events.AssertCalled(t, "PublishConversationPersistFailed", req.SessionId)
}

func TestSendChatMessage_SaveConversationsOff(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	cfg := f.enabledConfig(t)
	cfg.SaveConversations = false
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(cfg, nil)
	f.uow.profiles.On("FindFirst", mock.Anything).Return(testProfile(), nil)

	_, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

	require.NoError(t, err)
	f.uow.conversations.AssertNotCalled(t, "AppendTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendChatMessage_CustomInstructionSkipsProfile(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	custom := "You are Jane's assistant."
	cfg := f.enabledConfig(t)
	cfg.UseCustomInstruction = true
	cfg.CustomInstruction = &custom
	cfg.SaveConversations = false
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(cfg, nil)

	req := validRequest()
	req.Language = "DE"
	_, err := f.svc.SendChatMessage(context.Background(), clientIP, req)

	require.NoError(t, err)
	f.uow.profiles.AssertNotCalled(t, "FindFirst", mock.Anything)
	instruction := systemMessage(t, f.lastRequest)
	assert.True(t, strings.HasPrefix(instruction, custom))
	assert.True(t, strings.HasSuffix(instruction, "ISO 639-1 code: de"))
}

func TestSendChatMessage_ProfileErrorUsesFallback(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	cfg := f.enabledConfig(t)
	cfg.SaveConversations = false
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(cfg, nil)
	f.uow.profiles.On("FindFirst", mock.Anything).Return(nil, errors.New("timeout"))

	_, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

	require.NoError(t, err)
	assert.NotContains(t, systemMessage(t, f.lastRequest), "Name:")
}

func TestSendChatMessage_EmptySelectedModelUsesDefault(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	cfg := f.enabledConfig(t)
	cfg.SelectedModel = ""
	cfg.SaveConversations = false
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(cfg, nil)
	f.uow.profiles.On("FindFirst", mock.Anything).Return(nil, nil)

	_, err := f.svc.SendChatMessage(context.Background(), clientIP, validRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, f.lastRequest["model"])
}

func TestSendChatMessage_CanceledCallerStillCompletes(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	cfg := f.enabledConfig(t)
	cfg.SaveConversations = false
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(cfg, nil)
	f.uow.profiles.On("FindFirst", mock.Anything).Return(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	f.handler = func(w http.ResponseWriter, r *http.Request) {
		cancel()
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"still here"}}]}`))
	}

	res, err := f.svc.SendChatMessage(ctx, clientIP, validRequest())

	require.NoError(t, err)
	assert.Equal(t, "still here", res.Response)
}

func TestResolveProvider(t *testing.T) {
	f := newChatFixture(t)

	p, err := f.svc.ResolveProvider(entity.ProviderAnthropic)
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderAnthropic, p.Name())

	_, err = f.svc.ResolveProvider("mistral")
	assert.Error(t, err)
	assert.Equal(t, apperror.KindUnknown, apperror.KindOf(err))
}

func TestGetPublicConfig_Cached(t *testing.T) {
	f := newChatFixture(t)
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(f.enabledConfig(t), nil).Once()

	first, err := f.svc.GetPublicConfig(context.Background())
	require.NoError(t, err)
	second, err := f.svc.GetPublicConfig(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Enabled)
	assert.Equal(t, first, second)
	f.uow.aiConfig.AssertNumberOfCalls(t, "FindOrCreateDefault", 1)
}

func TestTestProviderConnection_ExplicitKey(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	f.events.On("PublishProviderConnectionTested", "openai", true, 2).Return()
	f.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"gpt-4o"},{"id":"gpt-4o-mini"},{"id":"tts-1"}]}`))
	}

	key := "sk-unsaved"
	res, err := f.svc.TestProviderConnection(context.Background(), clientIP, dto.TestConnectionRequest{Provider: "openai", ApiKey: &key})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini"}, res.Models)
	assert.Equal(t, "Bearer sk-unsaved", f.lastAuth)
	f.uow.aiConfig.AssertNotCalled(t, "FindOrCreateDefault", mock.Anything)
}

func TestTestProviderConnection_StoredKeyFailure(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(f.enabledConfig(t), nil)
	f.events.On("PublishProviderConnectionTested", "openai", false, 0).Return()
	f.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}

	masked := vault.MaskedSentinel
	_, err := f.svc.TestProviderConnection(context.Background(), clientIP, dto.TestConnectionRequest{Provider: "openai", ApiKey: &masked})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindProvider, appErr.Kind)
	assert.Equal(t, "Connection failed: provider returned status 401", appErr.Message)
	assert.Equal(t, "Bearer sk-test", f.lastAuth)
}

func TestTestProviderConnection_NoKey(t *testing.T) {
	f := newChatFixture(t)
	f.allowAll()
	f.uow.aiConfig.On("FindOrCreateDefault", mock.Anything).Return(entity.NewDefaultAiConfig(), nil)

	_, err := f.svc.TestProviderConnection(context.Background(), clientIP, dto.TestConnectionRequest{Provider: "gemini"})

	assert.True(t, errors.Is(err, apperror.Unconfigured(nil)))
	assert.Equal(t, 0, f.providerCalls())
}

func TestTestProviderConnection_RateLimitedFailsClosed(t *testing.T) {
	f := newChatFixture(t)
	f.settings.On("Allow", mock.Anything, clientIP).Return(ratelimit.Result{}, errors.New("redis down"))
	f.events.On("PublishRateLimiterUnavailable", "settings").Return()

	key := "sk"
	_, err := f.svc.TestProviderConnection(context.Background(), clientIP, dto.TestConnectionRequest{Provider: "openai", ApiKey: &key})

	assert.Equal(t, apperror.KindRateLimit, apperror.KindOf(err))
	assert.Equal(t, 0, f.providerCalls())
}
