package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"leados.app/inbox/common/llm"
	"leados.app/inbox/internal/queue"
	"leados.app/inbox/internal/store"
	"leados.app/inbox/internal/summary"
)

// PermanentError marks a failure that retrying cannot fix.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func isPermanent(err error) bool {
	var perm *PermanentError
	return errors.As(err, &perm)
}

// SummaryProcessor regenerates the stored summary of one conversation.
type SummaryProcessor struct {
	conversations store.ConversationStore
	messages      store.MessageStore
	summaries     store.SummaryStore
	summarizer    Summarizer
}

func NewSummaryProcessor(
	conversations store.ConversationStore,
	messages store.MessageStore,
	summaries store.SummaryStore,
	summarizer Summarizer,
) *SummaryProcessor {
	return &SummaryProcessor{
		conversations: conversations,
		messages:      messages,
		summaries:     summaries,
		summarizer:    summarizer,
	}
}

func (p *SummaryProcessor) Process(ctx context.Context, msg queue.Message) error {
	conv, err := p.conversations.GetForUser(ctx, msg.UserID, msg.ConversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.InfoContext(ctx, "conversation gone, skipping summary")
			return nil
		}
		return fmt.Errorf("loading conversation: %w", err)
	}

	conv.Thread, err = p.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return fmt.Errorf("loading thread: %w", err)
	}

	s, err := p.summarizer.Summarize(ctx, conv)
	if err != nil {
		if errors.Is(err, summary.ErrEmptyThread) {
			slog.InfoContext(ctx, "empty thread, skipping summary")
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		if !llm.IsRetryable(ctx, err) {
			return &PermanentError{Err: err}
		}
		return err
	}

	if err := p.summaries.Upsert(ctx, s); err != nil {
		return fmt.Errorf("saving summary: %w", err)
	}

	slog.InfoContext(ctx, "conversation summary updated",
		"sentiment", s.Sentiment,
		"suggested_status", s.SuggestedStatus,
		"messages", len(conv.Thread))
	return nil
}
