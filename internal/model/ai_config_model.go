package model

import (
	"time"
)

// AiConfig stores the chatbot configuration. Exactly one row exists (Id = 1).
// Provider keys are vault ciphertext; NULL means "not configured".
type AiConfig struct {
	Id                   uint    `gorm:"primaryKey;autoIncrement:false"`
	Enabled              bool    `gorm:"not null;default:false"`
	Provider             string  `gorm:"type:varchar(20);not null;default:'openai'"`
	OpenAIKey            *string `gorm:"column:openai_key;type:text"`
	GeminiKey            *string `gorm:"column:gemini_key;type:text"`
	AnthropicKey         *string `gorm:"column:anthropic_key;type:text"`
	PerplexityKey        *string `gorm:"column:perplexity_key;type:text"`
	SelectedModel        string  `gorm:"type:varchar(100);not null;default:''"`
	UseCustomInstruction bool    `gorm:"not null;default:false"`
	CustomInstruction    *string `gorm:"type:text"`
	SaveConversations    bool    `gorm:"not null;default:true"`

	ChatTitle       string `gorm:"type:varchar(100)"`
	WelcomeMessage  string `gorm:"type:text"`
	PlaceholderText string `gorm:"type:varchar(200)"`
	PrimaryColor    string `gorm:"type:varchar(20)"`
	Position        string `gorm:"type:varchar(20)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AiConfig) TableName() string {
	return "ai_configs"
}
