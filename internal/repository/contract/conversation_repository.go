package contract

import (
	"context"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/repository/specification"
)

type ConversationRepository interface {
	// AppendTurn concatenates messages onto the session's conversation, creating it when missing.
	// This is a read-then-write: concurrent appends to the same session can lose one side.
	AppendTurn(ctx context.Context, sessionId string, messages []entity.Message, language string) error
	FindBySessionId(ctx context.Context, sessionId string) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
