package store

import (
	"context"
	"time"

	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
)

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) error
}

// LeadStore reads and writes leads scoped to their owning user.
type LeadStore interface {
	GetForUser(ctx context.Context, userID, id int64) (*model.Lead, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Lead, error)
	Create(ctx context.Context, lead *model.Lead) error
	SetBookedTimestamp(ctx context.Context, userID, id int64, at time.Time) (*model.Lead, error)
}

// ConversationStore persists conversations. Thread entries live in MessageStore.
type ConversationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Conversation, error)
	GetForUser(ctx context.Context, userID, id int64) (*model.Conversation, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Conversation, error)
	Create(ctx context.Context, conv *model.Conversation) error
	UpdateStatus(ctx context.Context, userID, id int64, from, to domain.ConversationStatus) (*model.Conversation, error)
	TouchLastMessage(ctx context.Context, id int64, content string, at time.Time) error
}

// MessageStore appends to and reads conversation threads, oldest first.
type MessageStore interface {
	Create(ctx context.Context, msg *model.Message) error
	ListByConversation(ctx context.Context, conversationID int64) ([]model.Message, error)
	ListByConversations(ctx context.Context, conversationIDs []int64) (map[int64][]model.Message, error)
}

type AppointmentStore interface {
	Create(ctx context.Context, appt *model.Appointment) error
	ListByUser(ctx context.Context, userID int64) ([]model.Appointment, error)
}

type SummaryStore interface {
	Get(ctx context.Context, conversationID int64) (*model.ConversationSummary, error)
	Upsert(ctx context.Context, summary *model.ConversationSummary) error
}
