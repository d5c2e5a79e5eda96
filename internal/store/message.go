package store

import (
	"context"

	"leados.app/inbox/core/db/sqlc"
	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
)

type messageStore struct {
	queries *sqlc.Queries
}

func newMessageStore(queries *sqlc.Queries) MessageStore {
	return &messageStore{queries: queries}
}

func (s *messageStore) Create(ctx context.Context, msg *model.Message) error {
	row, err := s.queries.CreateMessage(ctx, sqlc.CreateMessageParams{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Type:           string(msg.Type),
		Content:        msg.Content,
		ExternalID:     msg.ExternalID,
		CreatedAt:      timestamptz(msg.CreatedAt),
	})
	if err != nil {
		return err
	}
	*msg = toMessageModel(row)
	return nil
}

func (s *messageStore) ListByConversation(ctx context.Context, conversationID int64) ([]model.Message, error) {
	rows, err := s.queries.ListMessagesByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	msgs := make([]model.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, toMessageModel(row))
	}
	return msgs, nil
}

// ListByConversations loads several threads in one query, keyed by conversation id.
func (s *messageStore) ListByConversations(ctx context.Context, conversationIDs []int64) (map[int64][]model.Message, error) {
	out := make(map[int64][]model.Message, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return out, nil
	}
	rows, err := s.queries.ListMessagesByConversationIDs(ctx, conversationIDs)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ConversationID] = append(out[row.ConversationID], toMessageModel(row))
	}
	return out, nil
}

func toMessageModel(row sqlc.Message) model.Message {
	return model.Message{
		ID:             row.ID,
		ConversationID: row.ConversationID,
		Type:           domain.MessageType(row.Type),
		Content:        row.Content,
		ExternalID:     row.ExternalID,
		CreatedAt:      row.CreatedAt.Time,
	}
}
