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
	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/queue"
	"leados.app/inbox/internal/store"
)

type SeedMessage struct {
	Type    domain.MessageType
	Content string
}

type CreateConversationParams struct {
	Customer string
	Subject  *string
	Channel  string
	Status   string // defaults to Needs Attention
	LeadID   *int64
	Thread   []SeedMessage
}

type ConversationService interface {
	// List returns the user's conversations with their threads, most recently active first.
	List(ctx context.Context, userID int64) ([]model.Conversation, error)
	Get(ctx context.Context, userID, conversationID int64) (*model.Conversation, error)
	Create(ctx context.Context, userID int64, params CreateConversationParams) (*model.Conversation, error)
	UpdateStatus(ctx context.Context, userID, conversationID int64, status domain.ConversationStatus) (*model.Conversation, error)
	Summary(ctx context.Context, userID, conversationID int64) (*model.ConversationSummary, error)
	RequestSummary(ctx context.Context, userID, conversationID int64) error
}

type conversationService struct {
	conversations store.ConversationStore
	messages      store.MessageStore
	summaries     store.SummaryStore
	txRunner      TxRunner
	producer      queue.Producer // nil when no queue is configured
}

func NewConversationService(
	conversations store.ConversationStore,
	messages store.MessageStore,
	summaries store.SummaryStore,
	txRunner TxRunner,
	producer queue.Producer,
) ConversationService {
	return &conversationService{
		conversations: conversations,
		messages:      messages,
		summaries:     summaries,
		txRunner:      txRunner,
		producer:      producer,
	}
}

func (s *conversationService) List(ctx context.Context, userID int64) ([]model.Conversation, error) {
	convs, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}

	ids := make([]int64, len(convs))
	for i, c := range convs {
		ids[i] = c.ID
	}

	threads, err := s.messages.ListByConversations(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	for i := range convs {
		convs[i].Thread = threads[convs[i].ID]
	}

	return convs, nil
}

func (s *conversationService) Get(ctx context.Context, userID, conversationID int64) (*model.Conversation, error) {
	conv, err := s.conversations.GetForUser(ctx, userID, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("getting conversation: %w", err)
	}

	conv.Thread, err = s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("listing thread: %w", err)
	}
	return conv, nil
}

func (s *conversationService) Create(ctx context.Context, userID int64, params CreateConversationParams) (*model.Conversation, error) {
	customer := strings.TrimSpace(params.Customer)
	if customer == "" || params.Channel == "" {
		return nil, ErrMissingFields
	}

	channel, ok := domain.ParseChannel(params.Channel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, params.Channel)
	}

	status := domain.StatusNeedsAttention
	if params.Status != "" {
		if status, ok = domain.ParseStatus(params.Status); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, params.Status)
		}
	}

	for _, m := range params.Thread {
		if !m.Type.IsValid() || strings.TrimSpace(m.Content) == "" {
			return nil, ErrMissingFields
		}
	}

	conv := &model.Conversation{
		ID:       id.New(),
		UserID:   userID,
		LeadID:   params.LeadID,
		Customer: customer,
		Subject:  trimmedOrNil(params.Subject),
		Channel:  channel,
		Status:   status,
	}

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if conv.LeadID != nil {
			if _, err := sp.Leads().GetForUser(ctx, userID, *conv.LeadID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrLeadNotFound
				}
				return fmt.Errorf("checking lead: %w", err)
			}
		}

		if err := sp.Conversations().Create(ctx, conv); err != nil {
			return fmt.Errorf("creating conversation: %w", err)
		}

		now := time.Now().UTC()
		for i, seed := range params.Thread {
			msg := &model.Message{
				ID:             id.New(),
				ConversationID: conv.ID,
				Type:           seed.Type,
				Content:        seed.Content,
				CreatedAt:      now.Add(time.Duration(i) * time.Millisecond),
			}
			if err := sp.Messages().Create(ctx, msg); err != nil {
				return fmt.Errorf("creating message: %w", err)
			}
			conv.Thread = append(conv.Thread, *msg)
		}

		if n := len(conv.Thread); n > 0 {
			last := conv.Thread[n-1]
			if err := sp.Conversations().TouchLastMessage(ctx, conv.ID, last.Content, last.CreatedAt); err != nil {
				return fmt.Errorf("updating last message: %w", err)
			}
			conv.LastMessage = last.Content
			conv.LastMessageAt = &last.CreatedAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "conversation created",
		"conversation_id", conv.ID,
		"channel", conv.Channel,
		"messages", len(conv.Thread))
	return conv, nil
}

func (s *conversationService) UpdateStatus(ctx context.Context, userID, conversationID int64, status domain.ConversationStatus) (*model.Conversation, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{ConversationID: &conversationID})

	current, err := s.conversations.GetForUser(ctx, userID, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("getting conversation: %w", err)
	}

	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, status)
	}
	if current.Status == status {
		return current, nil
	}

	updated, err := s.conversations.UpdateStatus(ctx, userID, conversationID, current.Status, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Another request changed the status after it was read.
			return nil, fmt.Errorf("%w: %s changed concurrently", ErrInvalidTransition, current.Status)
		}
		return nil, fmt.Errorf("updating status: %w", err)
	}

	slog.InfoContext(ctx, "conversation status updated",
		"from", current.Status,
		"to", status)
	return updated, nil
}

func (s *conversationService) Summary(ctx context.Context, userID, conversationID int64) (*model.ConversationSummary, error) {
	if _, err := s.conversations.GetForUser(ctx, userID, conversationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("getting conversation: %w", err)
	}

	summary, err := s.summaries.Get(ctx, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("getting summary: %w", err)
	}
	return summary, nil
}

func (s *conversationService) RequestSummary(ctx context.Context, userID, conversationID int64) error {
	if s.producer == nil {
		return ErrQueueUnavailable
	}

	if _, err := s.conversations.GetForUser(ctx, userID, conversationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrConversationNotFound
		}
		return fmt.Errorf("getting conversation: %w", err)
	}

	return enqueueSummary(ctx, s.producer, userID, conversationID, queue.SummaryReasonRequested)
}

func enqueueSummary(ctx context.Context, producer queue.Producer, userID, conversationID int64, reason queue.SummaryReason) error {
	task := queue.Task{
		TaskType:       queue.TaskTypeConversationSummary,
		ConversationID: conversationID,
		UserID:         userID,
		Reason:         reason,
	}
	if traceID := logger.TraceID(ctx); traceID != "" {
		task.TraceID = &traceID
	}
	if err := producer.Enqueue(ctx, task); err != nil {
		return fmt.Errorf("enqueueing summary: %w", err)
	}
	return nil
}
