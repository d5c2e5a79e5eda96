package store

import (
	"context"
	"time"

	"leados.app/inbox/core/db/sqlc"
	"leados.app/inbox/internal/model"
)

type leadStore struct {
	queries *sqlc.Queries
}

func newLeadStore(queries *sqlc.Queries) LeadStore {
	return &leadStore{queries: queries}
}

func (s *leadStore) GetForUser(ctx context.Context, userID, id int64) (*model.Lead, error) {
	row, err := s.queries.GetLeadForUser(ctx, sqlc.GetLeadForUserParams{ID: id, UserID: userID})
	if err != nil {
		return nil, translate(err)
	}
	return toLeadModel(row), nil
}

func (s *leadStore) ListByUser(ctx context.Context, userID int64) ([]model.Lead, error) {
	rows, err := s.queries.ListLeadsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	leads := make([]model.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, *toLeadModel(row))
	}
	return leads, nil
}

func (s *leadStore) Create(ctx context.Context, lead *model.Lead) error {
	row, err := s.queries.CreateLead(ctx, sqlc.CreateLeadParams{
		ID:          lead.ID,
		UserID:      lead.UserID,
		Name:        lead.Name,
		PhoneNumber: lead.PhoneNumber,
		Email:       lead.Email,
		HasWhatsapp: lead.HasWhatsApp,
		InstagramID: lead.InstagramID,
		FacebookID:  lead.FacebookID,
	})
	if err != nil {
		return err
	}
	*lead = *toLeadModel(row)
	return nil
}

func (s *leadStore) SetBookedTimestamp(ctx context.Context, userID, id int64, at time.Time) (*model.Lead, error) {
	row, err := s.queries.SetLeadBookedTimestamp(ctx, sqlc.SetLeadBookedTimestampParams{
		ID:              id,
		UserID:          userID,
		BookedTimestamp: timestamptz(at),
	})
	if err != nil {
		return nil, translate(err)
	}
	return toLeadModel(row), nil
}

func toLeadModel(row sqlc.Lead) *model.Lead {
	return &model.Lead{
		ID:              row.ID,
		UserID:          row.UserID,
		Name:            row.Name,
		PhoneNumber:     row.PhoneNumber,
		Email:           row.Email,
		HasWhatsApp:     row.HasWhatsapp,
		InstagramID:     row.InstagramID,
		FacebookID:      row.FacebookID,
		BookedTimestamp: timePtr(row.BookedTimestamp),
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}
