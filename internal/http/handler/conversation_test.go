package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/http/handler"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/service"
)

var _ = Describe("ConversationHandler", func() {
	var (
		router *gin.Engine
		svc    *mockConversationService
	)

	BeforeEach(func() {
		router = newRouter()
		svc = &mockConversationService{}
		h := handler.NewConversationHandler(svc)
		router.GET("/api/conversations", h.List)
		router.POST("/api/conversations", h.Create)
		router.GET("/api/conversations/:id", h.Get)
		router.PATCH("/api/conversations/:id/status", h.UpdateStatus)
		router.GET("/api/conversations/:id/summary", h.Summary)
		router.POST("/api/conversations/:id/summary", h.RequestSummary)
	})

	It("lists conversations in the dashboard shape", func() {
		at := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
		leadID := int64(77)
		svc.listFn = func(_ context.Context, userID int64) ([]model.Conversation, error) {
			Expect(userID).To(Equal(testUserID))
			return []model.Conversation{{
				ID:            5,
				Customer:      "Ana",
				Channel:       domain.ChannelWhatsApp,
				Status:        domain.StatusNeedsAttention,
				LastMessage:   "Hello",
				LastMessageAt: &at,
				LeadID:        &leadID,
				Thread: []model.Message{
					{Type: domain.MessageTypeUser, Content: "Hello", CreatedAt: at},
				},
			}}, nil
		}

		w := doJSON(router, http.MethodGet, "/api/conversations", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		convs := decode(w)["conversations"].([]any)
		Expect(convs).To(HaveLen(1))
		conv := convs[0].(map[string]any)
		Expect(conv["id"]).To(Equal("5"))
		Expect(conv["channel"]).To(Equal("WhatsApp"))
		Expect(conv["status"]).To(Equal("Needs Attention"))
		Expect(conv["lastMessage"]).To(Equal("Hello"))
		Expect(conv["timestamp"]).To(Equal("2025-01-01T09:00:00Z"))
		Expect(conv["leadId"]).To(Equal("77"))
		Expect(conv["thread"]).To(HaveLen(1))
	})

	It("returns an empty array rather than null", func() {
		w := doJSON(router, http.MethodGet, "/api/conversations", nil)
		Expect(w.Body.String()).To(ContainSubstring(`"conversations":[]`))
	})

	It("returns 404 for a non-numeric id", func() {
		w := doJSON(router, http.MethodGet, "/api/conversations/abc", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	Describe("status", func() {
		It("parses the status case-insensitively", func() {
			svc.updateStatusFn = func(_ context.Context, _, id int64, status domain.ConversationStatus) (*model.Conversation, error) {
				Expect(status).To(Equal(domain.StatusResolved))
				return &model.Conversation{ID: id, Status: status}, nil
			}
			w := doJSON(router, http.MethodPatch, "/api/conversations/5/status", map[string]string{"status": "resolved"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["conversation"].(map[string]any)["status"]).To(Equal("Resolved"))
		})

		It("rejects unknown statuses", func() {
			w := doJSON(router, http.MethodPatch, "/api/conversations/5/status", map[string]string{"status": "Snoozed"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 409 when leaving Resolved", func() {
			svc.updateStatusFn = func(context.Context, int64, int64, domain.ConversationStatus) (*model.Conversation, error) {
				return nil, service.ErrInvalidTransition
			}
			w := doJSON(router, http.MethodPatch, "/api/conversations/5/status", map[string]string{"status": "AI Handled"})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("create", func() {
		It("passes seed messages through", func() {
			svc.createFn = func(_ context.Context, _ int64, p service.CreateConversationParams) (*model.Conversation, error) {
				Expect(p.Thread).To(HaveLen(1))
				Expect(p.Thread[0].Type).To(Equal(domain.MessageTypeUser))
				Expect(*p.LeadID).To(Equal(int64(8)))
				return &model.Conversation{ID: 6, Customer: p.Customer, Channel: domain.ChannelInstagram}, nil
			}
			w := doJSON(router, http.MethodPost, "/api/conversations", map[string]any{
				"customer": "Ana",
				"channel":  "Instagram",
				"leadId":   "8",
				"thread":   []map[string]string{{"type": "user", "content": "hey"}},
			})
			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("rejects an unknown message type", func() {
			w := doJSON(router, http.MethodPost, "/api/conversations", map[string]any{
				"customer": "Ana",
				"channel":  "Instagram",
				"thread":   []map[string]string{{"type": "bot", "content": "hey"}},
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("summary", func() {
		It("returns 404 until a summary exists", func() {
			w := doJSON(router, http.MethodGet, "/api/conversations/5/summary", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("accepts a regeneration request", func() {
			w := doJSON(router, http.MethodPost, "/api/conversations/5/summary", nil)
			Expect(w.Code).To(Equal(http.StatusAccepted))
		})

		It("returns 503 without a queue", func() {
			svc.requestSummaryFn = func(context.Context, int64, int64) error { return service.ErrQueueUnavailable }
			w := doJSON(router, http.MethodPost, "/api/conversations/5/summary", nil)
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
