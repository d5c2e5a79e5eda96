package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/queue"
	"leados.app/inbox/internal/service"
	"leados.app/inbox/internal/store"
)

var _ = Describe("ConversationService", func() {
	var (
		ctx      context.Context
		convs    *mockConversationStore
		messages *mockMessageStore
		leads    *mockLeadStore
		sums     *mockSummaryStore
		producer *mockProducer
		svc      service.ConversationService
	)

	const userID = int64(7)

	BeforeEach(func() {
		ctx = context.Background()
		convs = &mockConversationStore{}
		messages = &mockMessageStore{}
		leads = &mockLeadStore{}
		sums = &mockSummaryStore{}
		producer = &mockProducer{}
		tx := txOver(&mockStoreProvider{leads: leads, conversations: convs, messages: messages})
		svc = service.NewConversationService(convs, messages, sums, tx, producer)
	})

	Describe("List", func() {
		It("attaches each thread to its conversation", func() {
			convs.listByUserFn = func(_ context.Context, uid int64) ([]model.Conversation, error) {
				Expect(uid).To(Equal(userID))
				return []model.Conversation{{ID: 1}, {ID: 2}}, nil
			}
			messages.batchFn = func(_ context.Context, ids []int64) (map[int64][]model.Message, error) {
				Expect(ids).To(ConsistOf(int64(1), int64(2)))
				return map[int64][]model.Message{
					1: {{ID: 10, ConversationID: 1, Type: domain.MessageTypeUser, Content: "hi"}},
				}, nil
			}

			result, err := svc.List(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(2))
			Expect(result[0].Thread).To(HaveLen(1))
			Expect(result[1].Thread).To(BeEmpty())
		})
	})

	Describe("Get", func() {
		It("maps a missing row to ErrConversationNotFound", func() {
			_, err := svc.Get(ctx, userID, 99)
			Expect(err).To(MatchError(service.ErrConversationNotFound))
		})
	})

	Describe("Create", func() {
		It("requires customer and channel", func() {
			_, err := svc.Create(ctx, userID, service.CreateConversationParams{Channel: "WhatsApp"})
			Expect(err).To(MatchError(service.ErrMissingFields))
		})

		It("rejects unknown channels", func() {
			_, err := svc.Create(ctx, userID, service.CreateConversationParams{Customer: "Ana", Channel: "Telegram"})
			Expect(err).To(MatchError(service.ErrInvalidChannel))
		})

		It("rejects unknown statuses", func() {
			_, err := svc.Create(ctx, userID, service.CreateConversationParams{
				Customer: "Ana", Channel: "WhatsApp", Status: "Snoozed",
			})
			Expect(err).To(MatchError(service.ErrInvalidStatus))
		})

		It("defaults status and seeds the thread in order", func() {
			conv, err := svc.Create(ctx, userID, service.CreateConversationParams{
				Customer: "  Ana  ",
				Channel:  "whatsapp",
				Thread: []service.SeedMessage{
					{Type: domain.MessageTypeUser, Content: "Is the loft still available?"},
					{Type: domain.MessageTypeAI, Content: "It is! Want to see it?"},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(conv.Customer).To(Equal("Ana"))
			Expect(conv.Channel).To(Equal(domain.ChannelWhatsApp))
			Expect(conv.Status).To(Equal(domain.StatusNeedsAttention))
			Expect(messages.created).To(HaveLen(2))
			Expect(messages.created[0].CreatedAt.Before(messages.created[1].CreatedAt)).To(BeTrue())
			Expect(conv.LastMessage).To(Equal("It is! Want to see it?"))
			Expect(convs.touchCalls).To(Equal(1))
		})

		It("refuses a lead owned by someone else", func() {
			leads.getForUserFn = func(context.Context, int64, int64) (*model.Lead, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.Create(ctx, userID, service.CreateConversationParams{
				Customer: "Ana", Channel: "Instagram", LeadID: int64Ptr(5),
			})
			Expect(err).To(MatchError(service.ErrLeadNotFound))
		})
	})

	Describe("UpdateStatus", func() {
		current := func(status domain.ConversationStatus) {
			convs.getForUserFn = func(_ context.Context, uid, id int64) (*model.Conversation, error) {
				return &model.Conversation{ID: id, UserID: uid, Status: status}, nil
			}
		}

		It("resolves an open conversation", func() {
			current(domain.StatusNeedsAttention)
			conv, err := svc.UpdateStatus(ctx, userID, 3, domain.StatusResolved)
			Expect(err).NotTo(HaveOccurred())
			Expect(conv.Status).To(Equal(domain.StatusResolved))
			Expect(convs.updateCalls).To(Equal(1))
		})

		It("allows handing off between operator and AI", func() {
			current(domain.StatusAIHandled)
			_, err := svc.UpdateStatus(ctx, userID, 3, domain.StatusNeedsAttention)
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps Resolved terminal", func() {
			current(domain.StatusResolved)
			_, err := svc.UpdateStatus(ctx, userID, 3, domain.StatusAIHandled)
			Expect(err).To(MatchError(service.ErrInvalidTransition))
			Expect(convs.updateCalls).To(BeZero())
		})

		It("writes only over the status it read", func() {
			current(domain.StatusNeedsAttention)
			var expected domain.ConversationStatus
			convs.updateStatusFn = func(_ context.Context, uid, id int64, from, to domain.ConversationStatus) (*model.Conversation, error) {
				expected = from
				return &model.Conversation{ID: id, UserID: uid, Status: to}, nil
			}
			_, err := svc.UpdateStatus(ctx, userID, 3, domain.StatusAIHandled)
			Expect(err).NotTo(HaveOccurred())
			Expect(expected).To(Equal(domain.StatusNeedsAttention))
		})

		It("refuses when another request resolved the conversation first", func() {
			current(domain.StatusNeedsAttention)
			convs.updateStatusFn = func(context.Context, int64, int64, domain.ConversationStatus, domain.ConversationStatus) (*model.Conversation, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.UpdateStatus(ctx, userID, 3, domain.StatusAIHandled)
			Expect(err).To(MatchError(service.ErrInvalidTransition))
		})

		It("does not write when the status is unchanged", func() {
			current(domain.StatusAIHandled)
			conv, err := svc.UpdateStatus(ctx, userID, 3, domain.StatusAIHandled)
			Expect(err).NotTo(HaveOccurred())
			Expect(conv.Status).To(Equal(domain.StatusAIHandled))
			Expect(convs.updateCalls).To(BeZero())
		})
	})

	Describe("Summary", func() {
		BeforeEach(func() {
			convs.getForUserFn = func(_ context.Context, uid, id int64) (*model.Conversation, error) {
				return &model.Conversation{ID: id, UserID: uid}, nil
			}
		})

		It("returns ErrSummaryNotFound before the worker has run", func() {
			_, err := svc.Summary(ctx, userID, 3)
			Expect(err).To(MatchError(service.ErrSummaryNotFound))
		})

		It("returns the stored summary", func() {
			sums.getFn = func(_ context.Context, id int64) (*model.ConversationSummary, error) {
				return &model.ConversationSummary{ConversationID: id, Summary: "Wants a viewing", UpdatedAt: time.Now()}, nil
			}
			summary, err := svc.Summary(ctx, userID, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Summary).To(Equal("Wants a viewing"))
		})

		It("enqueues a regeneration on request", func() {
			Expect(svc.RequestSummary(ctx, userID, 3)).To(Succeed())
			Expect(producer.tasks).To(HaveLen(1))
			Expect(producer.tasks[0].ConversationID).To(Equal(int64(3)))
			Expect(producer.tasks[0].UserID).To(Equal(userID))
			Expect(producer.tasks[0].Reason).To(Equal(queue.SummaryReasonRequested))
		})

		It("surfaces enqueue failures", func() {
			producer.enqueueFn = func(context.Context, queue.Task) error { return errors.New("redis down") }
			Expect(svc.RequestSummary(ctx, userID, 3)).To(MatchError(ContainSubstring("redis down")))
		})

		It("reports a missing queue", func() {
			svc = service.NewConversationService(convs, messages, sums, &mockTxRunner{}, nil)
			Expect(svc.RequestSummary(ctx, userID, 3)).To(MatchError(service.ErrQueueUnavailable))
		})
	})
})
