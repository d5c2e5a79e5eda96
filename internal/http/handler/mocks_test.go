package handler_test

import (
	"context"
	"time"

	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/service"
)

type mockConversationService struct {
	listFn           func(ctx context.Context, userID int64) ([]model.Conversation, error)
	getFn            func(ctx context.Context, userID, id int64) (*model.Conversation, error)
	createFn         func(ctx context.Context, userID int64, p service.CreateConversationParams) (*model.Conversation, error)
	updateStatusFn   func(ctx context.Context, userID, id int64, status domain.ConversationStatus) (*model.Conversation, error)
	summaryFn        func(ctx context.Context, userID, id int64) (*model.ConversationSummary, error)
	requestSummaryFn func(ctx context.Context, userID, id int64) error
}

func (m *mockConversationService) List(ctx context.Context, userID int64) ([]model.Conversation, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockConversationService) Get(ctx context.Context, userID, id int64) (*model.Conversation, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, service.ErrConversationNotFound
}

func (m *mockConversationService) Create(ctx context.Context, userID int64, p service.CreateConversationParams) (*model.Conversation, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, p)
	}
	return &model.Conversation{ID: 1, UserID: userID}, nil
}

func (m *mockConversationService) UpdateStatus(ctx context.Context, userID, id int64, status domain.ConversationStatus) (*model.Conversation, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, userID, id, status)
	}
	return &model.Conversation{ID: id, UserID: userID, Status: status}, nil
}

func (m *mockConversationService) Summary(ctx context.Context, userID, id int64) (*model.ConversationSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, userID, id)
	}
	return nil, service.ErrSummaryNotFound
}

func (m *mockConversationService) RequestSummary(ctx context.Context, userID, id int64) error {
	if m.requestSummaryFn != nil {
		return m.requestSummaryFn(ctx, userID, id)
	}
	return nil
}

type mockLeadService struct {
	listFn       func(ctx context.Context, userID int64) ([]model.Lead, error)
	getFn        func(ctx context.Context, userID, id int64) (*model.Lead, error)
	createFn     func(ctx context.Context, userID int64, p service.CreateLeadParams) (*model.Lead, error)
	setBookingFn func(ctx context.Context, userID, id int64, at time.Time) (*model.Lead, error)
}

func (m *mockLeadService) List(ctx context.Context, userID int64) ([]model.Lead, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockLeadService) Get(ctx context.Context, userID, id int64) (*model.Lead, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, service.ErrLeadNotFound
}

func (m *mockLeadService) Create(ctx context.Context, userID int64, p service.CreateLeadParams) (*model.Lead, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, p)
	}
	return &model.Lead{ID: 1, UserID: userID, Name: p.Name}, nil
}

func (m *mockLeadService) SetBooking(ctx context.Context, userID, id int64, at time.Time) (*model.Lead, error) {
	if m.setBookingFn != nil {
		return m.setBookingFn(ctx, userID, id, at)
	}
	return &model.Lead{ID: id, UserID: userID, BookedTimestamp: &at}, nil
}

type mockMessageService struct {
	sendFn func(ctx context.Context, p service.SendMessageParams) (*service.SendMessageResult, error)
	calls  int
}

func (m *mockMessageService) Send(ctx context.Context, p service.SendMessageParams) (*service.SendMessageResult, error) {
	m.calls++
	if m.sendFn != nil {
		return m.sendFn(ctx, p)
	}
	return &service.SendMessageResult{ProviderMessageID: "wamid.1"}, nil
}

type mockAppointmentService struct {
	createFn    func(ctx context.Context, userID int64, p service.CreateAppointmentParams) (*model.Appointment, error)
	listFn      func(ctx context.Context, userID int64) ([]model.Appointment, error)
	createCalls int
}

func (m *mockAppointmentService) Create(ctx context.Context, userID int64, p service.CreateAppointmentParams) (*model.Appointment, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, userID, p)
	}
	return &model.Appointment{ID: 1, UserID: userID, With: p.With}, nil
}

func (m *mockAppointmentService) List(ctx context.Context, userID int64) ([]model.Appointment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}
