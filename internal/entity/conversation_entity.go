package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message is one immutable turn inside a conversation
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Language  string    `json:"language"`
}

// Conversation is the session-scoped, append-only record of visitor exchanges.
// SessionId is an external correlation key, not a primary key.
type Conversation struct {
	Id          uuid.UUID
	SessionId   string
	Messages    []Message
	VisitorLang string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
