package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"leados.app/inbox/common/id"
	"leados.app/inbox/common/logger"
	"leados.app/inbox/internal/channel"
	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/queue"
	"leados.app/inbox/internal/store"
)

// SenderRegistry resolves the outbound sender for an endpoint.
type SenderRegistry interface {
	Get(endpoint domain.Endpoint) (channel.Sender, error)
}

type SendMessageParams struct {
	Endpoint       domain.Endpoint
	SessionUserID  int64
	UserID         string // as sent by the client; must name the session user
	To             string
	Message        string
	ConversationID *int64
}

type SendMessageResult struct {
	ProviderMessageID string
	Message           *model.Message // set when the reply was recorded on a conversation
}

type MessageService interface {
	Send(ctx context.Context, params SendMessageParams) (*SendMessageResult, error)
}

type messageService struct {
	conversations store.ConversationStore
	senders       SenderRegistry
	txRunner      TxRunner
	producer      queue.Producer // optional
}

func NewMessageService(
	conversations store.ConversationStore,
	senders SenderRegistry,
	txRunner TxRunner,
	producer queue.Producer,
) MessageService {
	return &messageService{
		conversations: conversations,
		senders:       senders,
		txRunner:      txRunner,
		producer:      producer,
	}
}

func (s *messageService) Send(ctx context.Context, params SendMessageParams) (*SendMessageResult, error) {
	text := strings.TrimSpace(params.Message)
	to := strings.TrimSpace(params.To)
	if params.UserID == "" || to == "" || text == "" {
		return nil, ErrMissingFields
	}
	if params.UserID != id.Format(params.SessionUserID) {
		return nil, ErrForbidden
	}

	ch := string(params.Endpoint)
	ctx = logger.WithLogFields(ctx, logger.LogFields{Channel: &ch, ConversationID: params.ConversationID})

	if params.ConversationID != nil {
		conv, err := s.conversations.GetForUser(ctx, params.SessionUserID, *params.ConversationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrConversationNotFound
			}
			return nil, fmt.Errorf("getting conversation: %w", err)
		}
		if conv.Channel != params.Endpoint.Channel() {
			return nil, fmt.Errorf("%w: %s", ErrChannelMismatch, conv.Channel)
		}
	}

	sender, err := s.senders.Get(params.Endpoint)
	if err != nil {
		if errors.Is(err, channel.ErrNotConfigured) {
			return nil, ErrChannelUnavailable
		}
		return nil, err
	}

	sc := logger.StartSpan(ctx, "channel.send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("messaging.system", ch)))
	providerID, err := sender.Send(sc.Context(), to, text)
	if err != nil {
		sc.RecordError(err)
		sc.End()
		slog.WarnContext(ctx, "outbound message rejected", "error", err)
		return nil, err
	}
	sc.End()

	result := &SendMessageResult{ProviderMessageID: providerID}
	slog.InfoContext(ctx, "outbound message sent", "provider_message_id", providerID)

	if params.ConversationID == nil {
		return result, nil
	}

	msg := &model.Message{
		ID:             id.New(),
		ConversationID: *params.ConversationID,
		Type:           domain.MessageTypeSDR,
		Content:        text,
		CreatedAt:      time.Now().UTC(),
	}
	if providerID != "" {
		msg.ExternalID = &providerID
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Messages().Create(ctx, msg); err != nil {
			return fmt.Errorf("recording message: %w", err)
		}
		if err := sp.Conversations().TouchLastMessage(ctx, msg.ConversationID, msg.Content, msg.CreatedAt); err != nil {
			return fmt.Errorf("updating last message: %w", err)
		}
		return nil
	})
	if err != nil {
		// Delivered already, so the caller still gets a success; the thread catches up on next send.
		slog.ErrorContext(ctx, "failed to record sent message", "error", err)
		return result, nil
	}
	result.Message = msg

	if s.producer != nil {
		if err := enqueueSummary(ctx, s.producer, params.SessionUserID, msg.ConversationID, queue.SummaryReasonReplySent); err != nil {
			slog.WarnContext(ctx, "failed to enqueue summary refresh", "error", err)
		}
	}

	return result, nil
}
