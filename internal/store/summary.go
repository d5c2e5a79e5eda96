package store

import (
	"context"

	"leados.app/inbox/core/db/sqlc"
	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
)

type summaryStore struct {
	queries *sqlc.Queries
}

func newSummaryStore(queries *sqlc.Queries) SummaryStore {
	return &summaryStore{queries: queries}
}

func (s *summaryStore) Get(ctx context.Context, conversationID int64) (*model.ConversationSummary, error) {
	row, err := s.queries.GetConversationSummary(ctx, conversationID)
	if err != nil {
		return nil, translate(err)
	}
	return toSummaryModel(row), nil
}

func (s *summaryStore) Upsert(ctx context.Context, summary *model.ConversationSummary) error {
	row, err := s.queries.UpsertConversationSummary(ctx, sqlc.UpsertConversationSummaryParams{
		ConversationID:  summary.ConversationID,
		Summary:         summary.Summary,
		Sentiment:       summary.Sentiment,
		SuggestedStatus: string(summary.SuggestedStatus),
		Model:           summary.Model,
	})
	if err != nil {
		return err
	}
	*summary = *toSummaryModel(row)
	return nil
}

func toSummaryModel(row sqlc.ConversationSummary) *model.ConversationSummary {
	return &model.ConversationSummary{
		ConversationID:  row.ConversationID,
		Summary:         row.Summary,
		Sentiment:       row.Sentiment,
		SuggestedStatus: domain.ConversationStatus(row.SuggestedStatus),
		Model:           row.Model,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}
