package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio-ai-be/internal/apperror"
	"portfolio-ai-be/internal/dto"
	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/pkg/logger"
	"portfolio-ai-be/internal/pkg/serverutils"
	"portfolio-ai-be/internal/repository/memory"
	"portfolio-ai-be/internal/repository/unitofwork"
	"portfolio-ai-be/pkg/admin/aiconfig"
	adminEvents "portfolio-ai-be/pkg/admin/events"
	"portfolio-ai-be/pkg/llm"
	"portfolio-ai-be/pkg/prompt"
	"portfolio-ai-be/pkg/ratelimit"
	"portfolio-ai-be/pkg/vault"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	MaxMessageLength = 1000
	chatModule       = "CHATBOT"
)

// IChatbotService is the gateway entry point for visitor chat turns
type IChatbotService interface {
	SendChatMessage(ctx context.Context, clientKey string, req dto.SendChatMessageRequest) (*dto.SendChatMessageResponse, error)
	GetPublicConfig(ctx context.Context) (*dto.PublicChatConfigResponse, error)
	TestProviderConnection(ctx context.Context, clientKey string, req dto.TestConnectionRequest) (*dto.TestConnectionResponse, error)
	ResolveProvider(id entity.ProviderId) (llm.Provider, error)
}

type chatbotService struct {
	uowFactory      unitofwork.RepositoryFactory
	providers       llm.Registry
	codec           vault.Codec
	chatLimiter     ratelimit.Limiter
	settingsLimiter ratelimit.Limiter
	configManager   *aiconfig.Manager
	configCache     *memory.PublicConfigCache
	events          adminEvents.Publisher
	logger          logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	providers llm.Registry,
	codec vault.Codec,
	chatLimiter ratelimit.Limiter,
	settingsLimiter ratelimit.Limiter,
	configManager *aiconfig.Manager,
	configCache *memory.PublicConfigCache,
	events adminEvents.Publisher,
	logger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:      uowFactory,
		providers:       providers,
		codec:           codec,
		chatLimiter:     chatLimiter,
		settingsLimiter: settingsLimiter,
		configManager:   configManager,
		configCache:     configCache,
		events:          events,
		logger:          logger,
	}
}

// chatTurn is a validated request
type chatTurn struct {
	message   string
	sessionId string
	language  string
}

// SendChatMessage runs one visitor turn. Returned errors are *apperror.Error
// except for programmer errors such as a provider without an adapter.
func (cs *chatbotService) SendChatMessage(ctx context.Context, clientKey string, req dto.SendChatMessageRequest) (*dto.SendChatMessageResponse, error) {
	// 1. Rate limit before anything else
	if err := checkLimit(ctx, cs.chatLimiter, "chat", clientKey, cs.events, cs.logger); err != nil {
		return nil, err
	}

	// 2. Validate
	turn, err := validateChatRequest(req)
	if err != nil {
		cs.logger.Info(chatModule, "Rejected chat message", map[string]interface{}{
			"message_length": utf8.RuneCountInString(req.Message),
			"session_id_len": len(req.SessionId),
			"language_len":   len(req.Language),
		})
		return nil, apperror.Validation(err)
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	// 3. Load config
	config, err := uow.AiConfigRepository().FindOrCreateDefault(ctx)
	if err != nil {
		cs.logger.Error(chatModule, "Failed to load AI config", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Disabled(err)
	}
	if !config.Enabled {
		return nil, apperror.Disabled(nil)
	}

	// 4. Resolve key and adapter
	apiKey := cs.codec.Decrypt(config.KeyFor(config.Provider))
	if apiKey == nil || *apiKey == "" {
		cs.logger.Warn(chatModule, "Active provider has no usable key", map[string]interface{}{"provider": config.Provider})
		return nil, apperror.Unconfigured(nil)
	}

	provider, err := cs.ResolveProvider(config.Provider)
	if err != nil {
		return nil, err
	}

	// 5. Build instruction and call the provider
	instruction := prompt.BuildInstruction(config, cs.loadProfile(ctx, uow, config), turn.language)
	model := llm.ResolveModel(config.Provider, config.SelectedModel)

	reply, err := cs.callProvider(ctx, provider, *apiKey, model, turn.message, instruction)
	if err != nil {
		return nil, apperror.Provider(err)
	}

	// 6. Persist
	if config.SaveConversations {
		cs.persistTurn(ctx, uow, turn, reply)
	}

	// 7. Respond
	return &dto.SendChatMessageResponse{Response: reply}, nil
}

func (cs *chatbotService) ResolveProvider(id entity.ProviderId) (llm.Provider, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("unknown provider %q", id)
	}
	provider, ok := cs.providers.Get(id)
	if !ok {
		return nil, fmt.Errorf("no adapter registered for provider %q", id)
	}
	return provider, nil
}

func (cs *chatbotService) GetPublicConfig(ctx context.Context) (*dto.PublicChatConfigResponse, error) {
	if cached, ok := cs.configCache.Get(); ok {
		return cached, nil
	}

	config, err := cs.uowFactory.NewUnitOfWork(ctx).AiConfigRepository().FindOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}

	public := aiconfig.ToPublic(config)
	cs.configCache.Save(public)
	return public, nil
}

// TestProviderConnection verifies a stored or explicitly supplied key through the adapter's ListModels.
func (cs *chatbotService) TestProviderConnection(ctx context.Context, clientKey string, req dto.TestConnectionRequest) (*dto.TestConnectionResponse, error) {
	if err := checkLimit(ctx, cs.settingsLimiter, "settings", clientKey, cs.events, cs.logger); err != nil {
		return nil, err
	}

	providerId := entity.ProviderId(req.Provider)
	provider, err := cs.ResolveProvider(providerId)
	if err != nil {
		return nil, apperror.New(apperror.KindValidation, "Unknown provider", err)
	}

	apiKey, err := cs.configManager.ResolveTestKey(ctx, cs.uowFactory.NewUnitOfWork(ctx), providerId, req.ApiKey)
	if err != nil {
		return nil, err
	}
	if apiKey == nil || *apiKey == "" {
		return nil, apperror.Unconfigured(nil)
	}

	models, err := provider.ListModels(context.WithoutCancel(ctx), *apiKey)
	if err != nil {
		cs.logger.Warn(chatModule, "Provider connection test failed", providerErrorDetails(providerId, "", err))
		cs.events.PublishProviderConnectionTested(ctx, string(providerId), false, 0)
		return nil, apperror.New(apperror.KindProvider, connectionFailureMessage(err), err)
	}

	cs.events.PublishProviderConnectionTested(ctx, string(providerId), true, len(models))
	return &dto.TestConnectionResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully connected to %s", providerId),
		Models:  models,
	}, nil
}

// loadProfile returns nil when the custom instruction is used or the profile cannot be read
func (cs *chatbotService) loadProfile(ctx context.Context, uow unitofwork.UnitOfWork, config *entity.AiConfig) *entity.AdminProfile {
	if prompt.UsesCustomInstruction(config) {
		return nil
	}

	profile, err := uow.AdminProfileRepository().FindFirst(ctx)
	if err != nil {
		cs.logger.Warn(chatModule, "Admin profile unavailable, using fallback instruction", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return profile
}

// callProvider detaches from the caller's cancellation so a disconnect does not abort an in-flight call.
func (cs *chatbotService) callProvider(ctx context.Context, provider llm.Provider, apiKey, model, message, instruction string) (string, error) {
	ctx, span := otel.Tracer("chatbot-service").Start(context.WithoutCancel(ctx), "llm.Send")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", string(provider.Name())),
		attribute.String("llm.model", model),
		attribute.Int("llm.message_length", utf8.RuneCountInString(message)),
	)

	start := time.Now()
	reply, err := provider.Send(ctx, apiKey, model, message, instruction)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")

		details := providerErrorDetails(provider.Name(), model, err)
		details["duration_ms"] = time.Since(start).Milliseconds()
		cs.logger.Error(chatModule, "Provider call failed", details)

		cs.events.PublishProviderCallFailed(ctx, string(provider.Name()), model, statusCodeOf(err), err.Error())
		return "", err
	}

	cs.logger.Info(chatModule, "Provider call succeeded", map[string]interface{}{
		"provider":     provider.Name(),
		"model":        model,
		"duration_ms":  time.Since(start).Milliseconds(),
		"reply_length": utf8.RuneCountInString(reply),
	})
	return reply, nil
}

// persistTurn never fails the request; failures go to the log and the side channel.
func (cs *chatbotService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, turn *chatTurn, reply string) {
	now := time.Now().UTC()
	messages := []entity.Message{
		{Role: entity.MessageRoleUser, Content: turn.message, Timestamp: now, Language: turn.language},
		{Role: entity.MessageRoleAssistant, Content: reply, Timestamp: now, Language: turn.language},
	}

	if err := uow.ConversationRepository().AppendTurn(ctx, turn.sessionId, messages, turn.language); err != nil {
		cs.logger.Error(chatModule, "Failed to save conversation", map[string]interface{}{
			"session_id": turn.sessionId,
			"error":      err.Error(),
		})
		cs.events.PublishConversationPersistFailed(ctx, turn.sessionId, err.Error())
	}
}

func validateChatRequest(req dto.SendChatMessageRequest) (*chatTurn, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errors.New("message is empty")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}

	if err := serverutils.Validator().Var(req.SessionId, "required,uuid"); err != nil {
		return nil, errors.New("session id is not a valid UUID")
	}

	language := strings.ToLower(strings.TrimSpace(req.Language))
	if language == "" {
		language = prompt.DefaultLanguage
	}
	if err := serverutils.Validator().Var(language, "len=2,alpha"); err != nil {
		return nil, errors.New("language is not a 2-letter code")
	}

	return &chatTurn{message: message, sessionId: req.SessionId, language: language}, nil
}

// checkLimit fails closed: a limiter error denies the request.
func checkLimit(ctx context.Context, limiter ratelimit.Limiter, scope, key string, events adminEvents.Publisher, log logger.ILogger) error {
	result, err := limiter.Allow(ctx, key)
	if err != nil {
		log.Error(chatModule, "Rate limiter unavailable, denying request", map[string]interface{}{
			"scope": scope,
			"error": err.Error(),
		})
		events.PublishRateLimiterUnavailable(ctx, scope, err.Error())
		return apperror.RateLimit(err)
	}
	if !result.Allowed {
		return apperror.RateLimit(nil)
	}
	return nil
}

func statusCodeOf(err error) int {
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

func providerErrorDetails(provider entity.ProviderId, model string, err error) map[string]interface{} {
	details := map[string]interface{}{
		"provider": provider,
		"error":    err.Error(),
	}
	if model != "" {
		details["model"] = model
	}
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		details["status_code"] = statusErr.StatusCode
		details["body"] = statusErr.Body
	}
	return details
}

func connectionFailureMessage(err error) string {
	if code := statusCodeOf(err); code != 0 {
		return fmt.Sprintf("Connection failed: provider returned status %d", code)
	}
	return "Connection failed: could not reach provider"
}
