package model

import (
	"time"

	"portfolio-ai-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Conversation keeps the ordered visitor/assistant messages of one chat session.
// session_id is indexed but deliberately not unique.
type Conversation struct {
	Id          uuid.UUID                           `gorm:"type:char(36);primaryKey"`
	SessionId   string                              `gorm:"type:varchar(36);not null;index"`
	Messages    datatypes.JSONSlice[entity.Message] `gorm:"not null"`
	VisitorLang string                              `gorm:"type:varchar(2);not null;default:'en'"`
	CreatedAt   time.Time                           `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                           `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
