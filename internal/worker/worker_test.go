package worker_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/queue"
	"leados.app/inbox/internal/store"
	"leados.app/inbox/internal/summary"
	"leados.app/inbox/internal/worker"
)

type fakeConsumer struct {
	mu       sync.Mutex
	batches  [][]queue.Message
	acked    []string
	requeued []string
	dlq      []string
}

func (f *fakeConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.batches) == 0 {
		return nil, nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b, nil
}

func (f *fakeConsumer) Ack(_ context.Context, msg queue.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, msg.ID)
	return nil
}

func (f *fakeConsumer) Requeue(_ context.Context, msg queue.Message, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requeued = append(f.requeued, msg.ID)
	return nil
}

func (f *fakeConsumer) SendDLQ(_ context.Context, msg queue.Message, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dlq = append(f.dlq, msg.ID)
	return nil
}

func (f *fakeConsumer) ackedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.acked...)
}

var _ = Describe("Worker", func() {
	var consumer *fakeConsumer

	BeforeEach(func() {
		consumer = &fakeConsumer{}
	})

	msg := func(id string, attempt int) queue.Message {
		return queue.Message{ID: id, ConversationID: 1, UserID: 2, Attempt: attempt}
	}

	It("acks a processed message", func() {
		w := worker.New(consumer, func(context.Context, queue.Message) error { return nil }, worker.Config{MaxAttempts: 3})

		w.Handle(context.Background(), msg("1-0", 1))

		Expect(consumer.acked).To(ConsistOf("1-0"))
		Expect(consumer.requeued).To(BeEmpty())
	})

	It("requeues a failure below the attempt limit", func() {
		w := worker.New(consumer, func(context.Context, queue.Message) error { return errors.New("db down") }, worker.Config{MaxAttempts: 3})

		w.Handle(context.Background(), msg("1-0", 2))

		Expect(consumer.requeued).To(ConsistOf("1-0"))
		Expect(consumer.acked).To(BeEmpty())
		Expect(consumer.dlq).To(BeEmpty())
	})

	It("dead-letters once the attempt limit is reached", func() {
		w := worker.New(consumer, func(context.Context, queue.Message) error { return errors.New("db down") }, worker.Config{MaxAttempts: 3})

		w.Handle(context.Background(), msg("1-0", 3))

		Expect(consumer.dlq).To(ConsistOf("1-0"))
		Expect(consumer.requeued).To(BeEmpty())
	})

	It("dead-letters permanent failures immediately", func() {
		w := worker.New(consumer, func(context.Context, queue.Message) error {
			return &worker.PermanentError{Err: errors.New("invalid request")}
		}, worker.Config{MaxAttempts: 3})

		w.Handle(context.Background(), msg("1-0", 1))

		Expect(consumer.dlq).To(ConsistOf("1-0"))
	})

	It("recovers from a panicking processor", func() {
		w := worker.New(consumer, func(context.Context, queue.Message) error { panic("nil map") }, worker.Config{MaxAttempts: 3})

		Expect(func() { w.Handle(context.Background(), msg("1-0", 1)) }).NotTo(Panic())
		Expect(consumer.requeued).To(ConsistOf("1-0"))
	})

	It("leaves a message pending when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		w := worker.New(consumer, func(ctx context.Context, _ queue.Message) error {
			cancel()
			return ctx.Err()
		}, worker.Config{MaxAttempts: 3})

		w.Handle(ctx, msg("1-0", 1))

		Expect(consumer.acked).To(BeEmpty())
		Expect(consumer.requeued).To(BeEmpty())
		Expect(consumer.dlq).To(BeEmpty())
	})

	It("drains batches until stopped", func() {
		consumer.batches = [][]queue.Message{{msg("1-0", 1), msg("2-0", 1)}}
		w := worker.New(consumer, func(context.Context, queue.Message) error { return nil }, worker.Config{})

		done := make(chan error, 1)
		go func() { done <- w.Run(context.Background()) }()

		Eventually(consumer.ackedIDs, time.Second).Should(ConsistOf("1-0", "2-0"))
		w.Stop()
		Eventually(done).Should(Receive(BeNil()))
	})
})

type fakeConversations struct {
	store.ConversationStore
	conv *model.Conversation
}

func (f *fakeConversations) GetForUser(_ context.Context, userID, id int64) (*model.Conversation, error) {
	if f.conv == nil || f.conv.ID != id || f.conv.UserID != userID {
		return nil, store.ErrNotFound
	}
	c := *f.conv
	return &c, nil
}

type fakeMessages struct {
	store.MessageStore
	thread []model.Message
}

func (f *fakeMessages) ListByConversation(context.Context, int64) ([]model.Message, error) {
	return f.thread, nil
}

type fakeSummaries struct {
	store.SummaryStore
	saved []*model.ConversationSummary
}

func (f *fakeSummaries) Upsert(_ context.Context, s *model.ConversationSummary) error {
	f.saved = append(f.saved, s)
	return nil
}

type summarizerFunc func(ctx context.Context, conv *model.Conversation) (*model.ConversationSummary, error)

func (f summarizerFunc) Summarize(ctx context.Context, conv *model.Conversation) (*model.ConversationSummary, error) {
	return f(ctx, conv)
}

var _ = Describe("SummaryProcessor", func() {
	var (
		convs     *fakeConversations
		msgs      *fakeMessages
		summaries *fakeSummaries
	)

	BeforeEach(func() {
		convs = &fakeConversations{conv: &model.Conversation{ID: 1, UserID: 2, Customer: "Ana", Channel: domain.ChannelWhatsApp}}
		msgs = &fakeMessages{thread: []model.Message{{Type: domain.MessageTypeUser, Content: "hi"}}}
		summaries = &fakeSummaries{}
	})

	task := queue.Message{ID: "1-0", ConversationID: 1, UserID: 2, Attempt: 1}

	It("summarizes the loaded thread and stores the result", func() {
		var seen *model.Conversation
		p := worker.NewSummaryProcessor(convs, msgs, summaries, summarizerFunc(func(_ context.Context, c *model.Conversation) (*model.ConversationSummary, error) {
			seen = c
			return &model.ConversationSummary{ConversationID: c.ID, Summary: "greeting"}, nil
		}))

		Expect(p.Process(context.Background(), task)).To(Succeed())
		Expect(seen.Thread).To(HaveLen(1))
		Expect(summaries.saved).To(HaveLen(1))
		Expect(summaries.saved[0].Summary).To(Equal("greeting"))
	})

	It("skips conversations that no longer exist", func() {
		convs.conv = nil
		p := worker.NewSummaryProcessor(convs, msgs, summaries, summarizerFunc(func(context.Context, *model.Conversation) (*model.ConversationSummary, error) {
			Fail("summarizer should not be called")
			return nil, nil
		}))

		Expect(p.Process(context.Background(), task)).To(Succeed())
		Expect(summaries.saved).To(BeEmpty())
	})

	It("skips empty threads", func() {
		p := worker.NewSummaryProcessor(convs, msgs, summaries, summarizerFunc(func(context.Context, *model.Conversation) (*model.ConversationSummary, error) {
			return nil, summary.ErrEmptyThread
		}))

		Expect(p.Process(context.Background(), task)).To(Succeed())
	})

	It("returns transient summarizer errors for retry", func() {
		p := worker.NewSummaryProcessor(convs, msgs, summaries, summarizerFunc(func(context.Context, *model.Conversation) (*model.ConversationSummary, error) {
			return nil, errors.New("connection reset")
		}))

		err := p.Process(context.Background(), task)
		Expect(err).To(HaveOccurred())
		var perm *worker.PermanentError
		Expect(errors.As(err, &perm)).To(BeFalse())
	})

	It("treats non-retryable errors as permanent", func() {
		p := worker.NewSummaryProcessor(convs, msgs, summaries, summarizerFunc(func(context.Context, *model.Conversation) (*model.ConversationSummary, error) {
			return nil, context.DeadlineExceeded
		}))

		err := p.Process(context.Background(), task)
		var perm *worker.PermanentError
		Expect(errors.As(err, &perm)).To(BeTrue())
	})
})
