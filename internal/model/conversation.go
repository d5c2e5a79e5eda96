package model

import (
	"time"

	"leados.app/inbox/internal/domain"
)

// Conversation is a persisted inbox thread owned by one user.
// LastMessage and LastMessageAt cache the newest entry of the thread.
type Conversation struct {
	ID            int64
	UserID        int64
	LeadID        *int64
	Customer      string
	Subject       *string
	Channel       domain.Channel
	Status        domain.ConversationStatus
	LastMessage   string
	LastMessageAt *time.Time
	Thread        []Message
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Message struct {
	ID             int64
	ConversationID int64
	Type           domain.MessageType
	Content        string
	ExternalID     *string // provider message id for sent replies
	CreatedAt      time.Time
}

// ConversationSummary is the latest AI summary of a conversation.
type ConversationSummary struct {
	ConversationID  int64
	Summary         string
	Sentiment       string
	SuggestedStatus domain.ConversationStatus
	Model           string
	UpdatedAt       time.Time
}
