package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"leados.app/inbox/internal/http/handler"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/service"
)

var _ = Describe("LeadHandler", func() {
	var (
		router *gin.Engine
		svc    *mockLeadService
	)

	BeforeEach(func() {
		router = newRouter()
		svc = &mockLeadService{}
		h := handler.NewLeadHandler(svc)
		router.GET("/api/leads", h.List)
		router.POST("/api/leads", h.Create)
		router.GET("/api/leads/:id", h.Get)
		router.PATCH("/api/leads/:id/booking", h.SetBooking)
	})

	It("renders channel ids under metadata", func() {
		ig := "ana.ig"
		svc.getFn = func(_ context.Context, _, id int64) (*model.Lead, error) {
			return &model.Lead{ID: id, Name: "Ana", PhoneNumber: "+1555", HasWhatsApp: true, InstagramID: &ig}, nil
		}

		w := doJSON(router, http.MethodGet, "/api/leads/12", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		lead := decode(w)["lead"].(map[string]any)
		Expect(lead["id"]).To(Equal("12"))
		Expect(lead["phone_number"]).To(Equal("+1555"))
		Expect(lead["has_whatsapp"]).To(BeTrue())
		Expect(lead["metadata"]).To(HaveKeyWithValue("instagram_id", "ana.ig"))
	})

	It("returns 404 for an unknown lead", func() {
		w := doJSON(router, http.MethodGet, "/api/leads/12", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("creates leads with metadata", func() {
		svc.createFn = func(_ context.Context, _ int64, p service.CreateLeadParams) (*model.Lead, error) {
			Expect(*p.FacebookID).To(Equal("1789"))
			return &model.Lead{ID: 3, Name: p.Name, FacebookID: p.FacebookID}, nil
		}
		w := doJSON(router, http.MethodPost, "/api/leads", map[string]any{
			"name":     "Ana",
			"metadata": map[string]string{"facebook_id": "1789"},
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
	})

	It("stores a booking timestamp", func() {
		want := time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)
		svc.setBookingFn = func(_ context.Context, _, id int64, at time.Time) (*model.Lead, error) {
			Expect(at.Equal(want)).To(BeTrue())
			return &model.Lead{ID: id, BookedTimestamp: &at}, nil
		}
		w := doJSON(router, http.MethodPatch, "/api/leads/12/booking", map[string]string{
			"booked_timestamp": "2025-01-01T10:30:00Z",
		})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["lead"]).To(HaveKeyWithValue("booked_timestamp", "2025-01-01T10:30:00Z"))
	})

	It("requires booked_timestamp", func() {
		w := doJSON(router, http.MethodPatch, "/api/leads/12/booking", map[string]string{})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
