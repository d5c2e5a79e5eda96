package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"leados.app/inbox/common/logger"
	"leados.app/inbox/internal/queue"
)

type Config struct {
	MaxAttempts int
}

type Worker struct {
	consumer  Consumer
	processor queue.MessageProcessor
	cfg       Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, processor queue.MessageProcessor, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &Worker{
		consumer:  consumer,
		processor: processor,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "inbox.worker.summary",
	})
	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
				case <-time.After(time.Second):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		w.Handle(ctx, msg)
	}

	return nil
}

// Handle processes one message and settles it: ack on success, requeue or
// dead-letter on failure. The reclaimer shares it.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) {
	msgID := msg.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID:      &msgID,
		ConversationID: &msg.ConversationID,
		UserID:         &msg.UserID,
	})
	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.summary")
	defer sc.End()
	ctx = sc.Context()

	slog.InfoContext(ctx, "processing message",
		"reason", msg.Reason,
		"attempt", msg.Attempt)

	start := time.Now()
	if err := w.processSafe(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "message processing failed", "error", err)
		w.handleFailedMessage(ctx, msg, err)
		return
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// The reclaimer will pick it up again; regenerating a summary is idempotent.
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}

	slog.InfoContext(ctx, "message processed", "duration_ms", time.Since(start).Milliseconds())
}

func (w *Worker) processSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.processor(ctx, msg)
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if ctx.Err() != nil {
		slog.WarnContext(ctx, "shutting down, leaving message pending for reclaim")
		return
	}

	if isPermanent(err) || msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "sending message to DLQ",
			"attempts", msg.Attempt,
			"permanent", isPermanent(err))
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message", "attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
