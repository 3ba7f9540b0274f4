package unitofwork

import (
	"context"

	"portfolio-ai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AiConfigRepository() contract.AiConfigRepository
	ConversationRepository() contract.ConversationRepository
	AdminProfileRepository() contract.AdminProfileRepository
	SystemLogRepository() contract.SystemLogRepository
}
