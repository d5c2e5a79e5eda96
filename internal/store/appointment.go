package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"leados.app/inbox/core/db/sqlc"
	"leados.app/inbox/internal/model"
)

type appointmentStore struct {
	queries *sqlc.Queries
}

func newAppointmentStore(queries *sqlc.Queries) AppointmentStore {
	return &appointmentStore{queries: queries}
}

func (s *appointmentStore) Create(ctx context.Context, appt *model.Appointment) error {
	row, err := s.queries.CreateAppointment(ctx, sqlc.CreateAppointmentParams{
		ID:             appt.ID,
		UserID:         appt.UserID,
		LeadID:         appt.LeadID,
		WithName:       appt.With,
		ConversationID: appt.ConversationID,
		Date:           pgtype.Date{Time: appt.Date, Valid: !appt.Date.IsZero()},
		TimeSlot:       appt.TimeSlot,
		ScheduledAt:    timestamptz(appt.ScheduledAt),
	})
	if err != nil {
		return err
	}
	*appt = toAppointmentModel(row)
	return nil
}

// ListByUser returns appointments ordered by date, then time of day.
func (s *appointmentStore) ListByUser(ctx context.Context, userID int64) ([]model.Appointment, error) {
	rows, err := s.queries.ListAppointmentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	appts := make([]model.Appointment, 0, len(rows))
	for _, row := range rows {
		appts = append(appts, toAppointmentModel(row))
	}
	return appts, nil
}

func toAppointmentModel(row sqlc.Appointment) model.Appointment {
	return model.Appointment{
		ID:             row.ID,
		UserID:         row.UserID,
		LeadID:         row.LeadID,
		With:           row.WithName,
		ConversationID: row.ConversationID,
		Date:           time.Date(row.Date.Time.Year(), row.Date.Time.Month(), row.Date.Time.Day(), 0, 0, 0, 0, time.UTC),
		TimeSlot:       row.TimeSlot,
		ScheduledAt:    row.ScheduledAt.Time,
		CreatedAt:      row.CreatedAt.Time,
	}
}
