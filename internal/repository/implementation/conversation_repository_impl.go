package implementation

import (
	"context"
	"errors"
	"time"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/mapper"
	"portfolio-ai-be/internal/model"
	"portfolio-ai-be/internal/repository/contract"
	"portfolio-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	return specification.Apply(db, specs...)
}

func (r *ConversationRepositoryImpl) AppendTurn(ctx context.Context, sessionId string, messages []entity.Message, language string) error {
	existing, err := r.FindBySessionId(ctx, sessionId)
	if err != nil {
		return err
	}

	// TODO: replace read-modify-write with an atomic JSON append (jsonb || on postgres) once ordering tolerance is agreed
	if existing != nil {
		existing.Messages = append(existing.Messages, messages...)
		existing.VisitorLang = language
		m := r.mapper.ToModel(existing)
		return r.db.WithContext(ctx).Save(m).Error
	}

	conversation := &entity.Conversation{
		Id:          uuid.New(),
		SessionId:   sessionId,
		Messages:    messages,
		VisitorLang: language,
		CreatedAt:   time.Now(),
	}
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(conversation)).Error
}

func (r *ConversationRepositoryImpl) FindBySessionId(ctx context.Context, sessionId string) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specification.BySessionId{SessionId: sessionId})
	if err := query.Order("created_at ASC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Conversation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
