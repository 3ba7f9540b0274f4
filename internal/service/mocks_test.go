package service

import (
	"context"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/repository/contract"
	"portfolio-ai-be/internal/repository/specification"
	"portfolio-ai-be/internal/repository/unitofwork"
	"portfolio-ai-be/pkg/ratelimit"

	"github.com/stretchr/testify/mock"
)

// --- Unit of work ---

type mockFactory struct {
	uow *mockUow
}

func (f *mockFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type mockUow struct {
	aiConfig      *mockAiConfigRepo
	conversations *mockConversationRepo
	profiles      *mockProfileRepo
}

func newMockUow() *mockUow {
	return &mockUow{
		aiConfig:      &mockAiConfigRepo{},
		conversations: &mockConversationRepo{},
		profiles:      &mockProfileRepo{},
	}
}

func (u *mockUow) Begin(ctx context.Context) error { return nil }
func (u *mockUow) Commit() error                   { return nil }
func (u *mockUow) Rollback() error                 { return nil }

func (u *mockUow) AiConfigRepository() contract.AiConfigRepository         { return u.aiConfig }
func (u *mockUow) ConversationRepository() contract.ConversationRepository { return u.conversations }
func (u *mockUow) AdminProfileRepository() contract.AdminProfileRepository { return u.profiles }
func (u *mockUow) SystemLogRepository() contract.SystemLogRepository       { return nil }

// --- Repositories ---

type mockAiConfigRepo struct {
	mock.Mock
}

func (m *mockAiConfigRepo) FindOrCreateDefault(ctx context.Context) (*entity.AiConfig, error) {
	args := m.Called(ctx)
	cfg, _ := args.Get(0).(*entity.AiConfig)
	return cfg, args.Error(1)
}

func (m *mockAiConfigRepo) FindForUpdate(ctx context.Context) (*entity.AiConfig, error) {
	args := m.Called(ctx)
	cfg, _ := args.Get(0).(*entity.AiConfig)
	return cfg, args.Error(1)
}

func (m *mockAiConfigRepo) Update(ctx context.Context, config *entity.AiConfig) error {
	return m.Called(ctx, config).Error(0)
}

type mockConversationRepo struct {
	mock.Mock
}

func (m *mockConversationRepo) AppendTurn(ctx context.Context, sessionId string, messages []entity.Message, language string) error {
	return m.Called(ctx, sessionId, messages, language).Error(0)
}

func (m *mockConversationRepo) FindBySessionId(ctx context.Context, sessionId string) (*entity.Conversation, error) {
	args := m.Called(ctx, sessionId)
	c, _ := args.Get(0).(*entity.Conversation)
	return c, args.Error(1)
}

func (m *mockConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]*entity.Conversation)
	return c, args.Error(1)
}

func (m *mockConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) FindFirst(ctx context.Context) (*entity.AdminProfile, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*entity.AdminProfile)
	return p, args.Error(1)
}

func (m *mockProfileRepo) Save(ctx context.Context, profile *entity.AdminProfile) error {
	return m.Called(ctx, profile).Error(0)
}

// --- Infrastructure ---

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ratelimit.Result), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishProviderCallFailed(ctx context.Context, provider, model string, statusCode int, reason string) {
	m.Called(provider, model, statusCode)
}

func (m *mockPublisher) PublishConversationPersistFailed(ctx context.Context, sessionId, reason string) {
	m.Called(sessionId)
}

func (m *mockPublisher) PublishRateLimiterUnavailable(ctx context.Context, scope, reason string) {
	m.Called(scope)
}

func (m *mockPublisher) PublishAiConfigUpdated(ctx context.Context, provider string, enabled bool, changedKeys []string) {
	m.Called(provider, enabled, changedKeys)
}

func (m *mockPublisher) PublishProviderConnectionTested(ctx context.Context, provider string, success bool, modelCount int) {
	m.Called(provider, success, modelCount)
}
