package store

import (
	"context"
	"time"

	"leados.app/inbox/core/db/sqlc"
	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
)

type conversationStore struct {
	queries *sqlc.Queries
}

func newConversationStore(queries *sqlc.Queries) ConversationStore {
	return &conversationStore{queries: queries}
}

func (s *conversationStore) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	row, err := s.queries.GetConversation(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return toConversationModel(row), nil
}

func (s *conversationStore) GetForUser(ctx context.Context, userID, id int64) (*model.Conversation, error) {
	row, err := s.queries.GetConversationForUser(ctx, sqlc.GetConversationForUserParams{ID: id, UserID: userID})
	if err != nil {
		return nil, translate(err)
	}
	return toConversationModel(row), nil
}

func (s *conversationStore) ListByUser(ctx context.Context, userID int64) ([]model.Conversation, error) {
	rows, err := s.queries.ListConversationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	convs := make([]model.Conversation, 0, len(rows))
	for _, row := range rows {
		convs = append(convs, *toConversationModel(row))
	}
	return convs, nil
}

func (s *conversationStore) Create(ctx context.Context, conv *model.Conversation) error {
	row, err := s.queries.CreateConversation(ctx, sqlc.CreateConversationParams{
		ID:       conv.ID,
		UserID:   conv.UserID,
		LeadID:   conv.LeadID,
		Customer: conv.Customer,
		Subject:  conv.Subject,
		Channel:  string(conv.Channel),
		Status:   string(conv.Status),
	})
	if err != nil {
		return err
	}
	*conv = *toConversationModel(row)
	return nil
}

// UpdateStatus writes to only while the row still holds from. A row that moved on in the
// meantime reports ErrNotFound.
func (s *conversationStore) UpdateStatus(ctx context.Context, userID, id int64, from, to domain.ConversationStatus) (*model.Conversation, error) {
	row, err := s.queries.UpdateConversationStatus(ctx, sqlc.UpdateConversationStatusParams{
		ID:             id,
		UserID:         userID,
		Status:         string(to),
		ExpectedStatus: string(from),
	})
	if err != nil {
		return nil, translate(err)
	}
	return toConversationModel(row), nil
}

func (s *conversationStore) TouchLastMessage(ctx context.Context, id int64, content string, at time.Time) error {
	return s.queries.TouchConversationLastMessage(ctx, sqlc.TouchConversationLastMessageParams{
		ID:            id,
		LastMessage:   content,
		LastMessageAt: timestamptz(at),
	})
}

func toConversationModel(row sqlc.Conversation) *model.Conversation {
	return &model.Conversation{
		ID:            row.ID,
		UserID:        row.UserID,
		LeadID:        row.LeadID,
		Customer:      row.Customer,
		Subject:       row.Subject,
		Channel:       domain.Channel(row.Channel),
		Status:        domain.ConversationStatus(row.Status),
		LastMessage:   row.LastMessage,
		LastMessageAt: timePtr(row.LastMessageAt),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
