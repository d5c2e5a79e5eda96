package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"leados.app/inbox/common/id"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/store"
)

type CreateLeadParams struct {
	Name        string
	PhoneNumber string
	Email       string
	HasWhatsApp bool
	InstagramID *string
	FacebookID  *string
}

type LeadService interface {
	List(ctx context.Context, userID int64) ([]model.Lead, error)
	Get(ctx context.Context, userID, leadID int64) (*model.Lead, error)
	Create(ctx context.Context, userID int64, params CreateLeadParams) (*model.Lead, error)
	SetBooking(ctx context.Context, userID, leadID int64, at time.Time) (*model.Lead, error)
}

type leadService struct {
	leads store.LeadStore
}

func NewLeadService(leads store.LeadStore) LeadService {
	return &leadService{leads: leads}
}

func (s *leadService) List(ctx context.Context, userID int64) ([]model.Lead, error) {
	leads, err := s.leads.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	return leads, nil
}

func (s *leadService) Get(ctx context.Context, userID, leadID int64) (*model.Lead, error) {
	lead, err := s.leads.GetForUser(ctx, userID, leadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("getting lead: %w", err)
	}
	return lead, nil
}

func (s *leadService) Create(ctx context.Context, userID int64, params CreateLeadParams) (*model.Lead, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrMissingFields
	}

	lead := &model.Lead{
		ID:          id.New(),
		UserID:      userID,
		Name:        name,
		PhoneNumber: strings.TrimSpace(params.PhoneNumber),
		Email:       strings.TrimSpace(params.Email),
		HasWhatsApp: params.HasWhatsApp,
		InstagramID: trimmedOrNil(params.InstagramID),
		FacebookID:  trimmedOrNil(params.FacebookID),
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("creating lead: %w", err)
	}

	slog.InfoContext(ctx, "lead created", "lead_id", lead.ID)
	return lead, nil
}

func (s *leadService) SetBooking(ctx context.Context, userID, leadID int64, at time.Time) (*model.Lead, error) {
	if at.IsZero() {
		return nil, ErrMissingFields
	}

	lead, err := s.leads.SetBookedTimestamp(ctx, userID, leadID, at)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("setting booked timestamp: %w", err)
	}

	slog.InfoContext(ctx, "lead booking set", "lead_id", leadID, "booked_timestamp", at)
	return lead, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
