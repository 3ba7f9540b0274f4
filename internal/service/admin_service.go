package service

import (
	"context"

	"portfolio-ai-be/internal/dto"
	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/pkg/logger"
	"portfolio-ai-be/internal/repository/memory"
	"portfolio-ai-be/internal/repository/specification"
	"portfolio-ai-be/internal/repository/unitofwork"
	"portfolio-ai-be/pkg/admin/aiconfig"
	adminEvents "portfolio-ai-be/pkg/admin/events"
	"portfolio-ai-be/pkg/ratelimit"
)

const maxPageSize = 100

type IAdminService interface {
	// AI Configuration
	GetAiConfig(ctx context.Context) (*dto.AiConfigResponse, error)
	UpdateAiConfig(ctx context.Context, clientKey string, req dto.UpdateAiConfigRequest) (*dto.AiConfigResponse, error)

	// Conversations
	GetConversations(ctx context.Context, page, limit int) (*dto.ConversationListResponse, error)
	GetConversation(ctx context.Context, sessionId string) (*dto.ConversationResponse, error)

	// Logs
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
}

type adminService struct {
	uowFactory      unitofwork.RepositoryFactory
	logger          logger.ILogger
	aiConfigManager *aiconfig.Manager
	configCache     *memory.PublicConfigCache
	settingsLimiter ratelimit.Limiter
	eventPublisher  adminEvents.Publisher
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	aiConfigManager *aiconfig.Manager,
	configCache *memory.PublicConfigCache,
	settingsLimiter ratelimit.Limiter,
	eventPublisher adminEvents.Publisher,
) IAdminService {
	return &adminService{
		uowFactory:      uowFactory,
		logger:          logger,
		aiConfigManager: aiConfigManager,
		configCache:     configCache,
		settingsLimiter: settingsLimiter,
		eventPublisher:  eventPublisher,
	}
}

// ============================================================================
// AI Configuration
// ============================================================================

func (s *adminService) GetAiConfig(ctx context.Context) (*dto.AiConfigResponse, error) {
	return s.aiConfigManager.GetConfig(ctx, s.uowFactory.NewUnitOfWork(ctx))
}

func (s *adminService) UpdateAiConfig(ctx context.Context, clientKey string, req dto.UpdateAiConfigRequest) (*dto.AiConfigResponse, error) {
	if err := checkLimit(ctx, s.settingsLimiter, "settings", clientKey, s.eventPublisher, s.logger); err != nil {
		return nil, err
	}

	res, changedKeys, err := s.aiConfigManager.UpdateConfig(ctx, s.uowFactory.NewUnitOfWork(ctx), req)
	if err != nil {
		s.logger.Error("ADMIN", "Failed to update AI config", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.configCache.Invalidate()

	s.logger.Info("ADMIN", "AI config updated", map[string]interface{}{
		"provider":     res.Provider,
		"enabled":      res.Enabled,
		"changed_keys": changedKeys,
	})
	s.eventPublisher.PublishAiConfigUpdated(ctx, res.Provider, res.Enabled, changedKeys)

	return res, nil
}

// ============================================================================
// Conversations
// ============================================================================

func (s *adminService) GetConversations(ctx context.Context, page, limit int) (*dto.ConversationListResponse, error) {
	page, limit = normalizePage(page, limit)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.ConversationRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		items = append(items, *conversationToResponse(c, false))
	}

	return &dto.ConversationListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// GetConversation returns nil, nil when the session has no stored conversation
func (s *adminService) GetConversation(ctx context.Context, sessionId string) (*dto.ConversationResponse, error) {
	conversation, err := s.uowFactory.NewUnitOfWork(ctx).ConversationRepository().FindBySessionId(ctx, sessionId)
	if err != nil || conversation == nil {
		return nil, err
	}
	return conversationToResponse(conversation, true), nil
}

// ============================================================================
// Logs
// ============================================================================

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	page, limit = normalizePage(page, limit)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if level != "" {
		specs = append(specs, specification.ByLevel{Level: level})
	}

	logs, err := s.uowFactory.NewUnitOfWork(ctx).SystemLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogListResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, &dto.LogListResponse{
			Id:        l.Id.String(),
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			Details:   l.Details,
			CreatedAt: l.CreatedAt,
		})
	}
	return res, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func conversationToResponse(c *entity.Conversation, withMessages bool) *dto.ConversationResponse {
	res := &dto.ConversationResponse{
		Id:           c.Id.String(),
		SessionId:    c.SessionId,
		VisitorLang:  c.VisitorLang,
		MessageCount: len(c.Messages),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if withMessages {
		res.Messages = make([]dto.ConversationMessageResponse, 0, len(c.Messages))
		for _, m := range c.Messages {
			res.Messages = append(res.Messages, dto.ConversationMessageResponse{
				Role:      m.Role,
				Content:   m.Content,
				Timestamp: m.Timestamp,
				Language:  m.Language,
			})
		}
	}
	return res
}
