package dto

import (
	"time"
)

// SendChatMessageRequest is the visitor's chat turn. It is validated by the
// chatbot service after rate limiting, so it carries no validate tags.
type SendChatMessageRequest struct {
	Message   string `json:"message"`
	SessionId string `json:"session_id"`
	Language  string `json:"language"`
}

type SendChatMessageResponse struct {
	Response string `json:"response"`
}

// PublicChatConfigResponse is what the widget needs to render; never secrets
type PublicChatConfigResponse struct {
	Enabled         bool   `json:"enabled"`
	Provider        string `json:"provider"`
	ChatTitle       string `json:"chat_title"`
	WelcomeMessage  string `json:"welcome_message"`
	PlaceholderText string `json:"placeholder_text"`
	PrimaryColor    string `json:"primary_color"`
	Position        string `json:"position"`
}

type ConversationMessageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Language  string    `json:"language"`
}

type ConversationResponse struct {
	Id           string                        `json:"id"`
	SessionId    string                        `json:"session_id"`
	VisitorLang  string                        `json:"visitor_lang"`
	MessageCount int                           `json:"message_count"`
	Messages     []ConversationMessageResponse `json:"messages,omitempty"`
	CreatedAt    time.Time                     `json:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at"`
}

type ConversationListResponse struct {
	Items []ConversationResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
