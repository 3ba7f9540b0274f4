package mapper

import (
	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	messages := make([]entity.Message, len(c.Messages))
	copy(messages, c.Messages)

	return &entity.Conversation{
		Id:          c.Id,
		SessionId:   c.SessionId,
		Messages:    messages,
		VisitorLang: c.VisitorLang,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	messages := make(datatypes.JSONSlice[entity.Message], len(c.Messages))
	copy(messages, c.Messages)

	return &model.Conversation{
		Id:          c.Id,
		SessionId:   c.SessionId,
		Messages:    messages,
		VisitorLang: c.VisitorLang,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToEntities(models []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, 0, len(models))
	for _, c := range models {
		entities = append(entities, m.ToEntity(c))
	}
	return entities
}
