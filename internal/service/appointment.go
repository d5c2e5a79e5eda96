package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"leados.app/inbox/common/id"
	"leados.app/inbox/common/logger"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/schedule"
	"leados.app/inbox/internal/store"
)

type CreateAppointmentParams struct {
	Date           string // YYYY-MM-DD
	Time           string // 12-hour slot label, e.g. "10:30 AM"
	LeadID         string
	With           string
	ConversationID *int64
}

type AppointmentService interface {
	Create(ctx context.Context, userID int64, params CreateAppointmentParams) (*model.Appointment, error)
	List(ctx context.Context, userID int64) ([]model.Appointment, error)
}

type appointmentService struct {
	appointments store.AppointmentStore
	txRunner     TxRunner
	loc          *time.Location
}

// NewAppointmentService interprets time slots in loc (UTC when nil).
func NewAppointmentService(appointments store.AppointmentStore, txRunner TxRunner, loc *time.Location) AppointmentService {
	if loc == nil {
		loc = time.UTC
	}
	return &appointmentService{
		appointments: appointments,
		txRunner:     txRunner,
		loc:          loc,
	}
}

func (s *appointmentService) Create(ctx context.Context, userID int64, params CreateAppointmentParams) (*model.Appointment, error) {
	date := strings.TrimSpace(params.Date)
	slot := strings.TrimSpace(params.Time)
	leadRef := strings.TrimSpace(params.LeadID)
	with := strings.TrimSpace(params.With)
	if date == "" || slot == "" || leadRef == "" || with == "" {
		return nil, ErrMissingFields
	}

	leadID, err := id.Parse(leadRef)
	if err != nil {
		return nil, ErrLeadNotFound
	}

	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	parsedSlot, err := schedule.ParseSlot(slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	scheduledAt := parsedSlot.On(day, s.loc)

	ctx = logger.WithLogFields(ctx, logger.LogFields{LeadID: &leadID, ConversationID: params.ConversationID})

	appt := &model.Appointment{
		ID:             id.New(),
		UserID:         userID,
		LeadID:         leadID,
		With:           with,
		ConversationID: params.ConversationID,
		Date:           day,
		TimeSlot:       parsedSlot.Label(),
		ScheduledAt:    scheduledAt,
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if _, err := sp.Leads().GetForUser(ctx, userID, leadID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrLeadNotFound
			}
			return fmt.Errorf("getting lead: %w", err)
		}
		if appt.ConversationID != nil {
			if _, err := sp.Conversations().GetForUser(ctx, userID, *appt.ConversationID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrConversationNotFound
				}
				return fmt.Errorf("getting conversation: %w", err)
			}
		}
		if err := sp.Appointments().Create(ctx, appt); err != nil {
			return fmt.Errorf("creating appointment: %w", err)
		}
		if _, err := sp.Leads().SetBookedTimestamp(ctx, userID, leadID, scheduledAt); err != nil {
			return fmt.Errorf("stamping lead booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "appointment booked", "appointment_id", appt.ID, "scheduled_at", scheduledAt)
	return appt, nil
}

func (s *appointmentService) List(ctx context.Context, userID int64) ([]model.Appointment, error) {
	appts, err := s.appointments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appts, nil
}
