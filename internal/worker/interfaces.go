package worker

import (
	"context"

	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Summarizer abstracts the LLM call for testability.
type Summarizer interface {
	Summarize(ctx context.Context, conv *model.Conversation) (*model.ConversationSummary, error)
}
