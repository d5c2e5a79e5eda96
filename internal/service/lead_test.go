package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/service"
	"leados.app/inbox/internal/store"
)

var _ = Describe("LeadService", func() {
	var (
		ctx   context.Context
		leads *mockLeadStore
		svc   service.LeadService
	)

	BeforeEach(func() {
		ctx = context.Background()
		leads = &mockLeadStore{}
		svc = service.NewLeadService(leads)
	})

	It("requires a name", func() {
		_, err := svc.Create(ctx, 1, service.CreateLeadParams{Name: "  "})
		Expect(err).To(MatchError(service.ErrMissingFields))
	})

	It("trims fields and drops blank channel ids", func() {
		var saved *model.Lead
		leads.createFn = func(_ context.Context, lead *model.Lead) error {
			saved = lead
			return nil
		}

		lead, err := svc.Create(ctx, 1, service.CreateLeadParams{
			Name:        " Ana Ruiz ",
			PhoneNumber: " +15550100 ",
			HasWhatsApp: true,
			InstagramID: strPtr("  "),
			FacebookID:  strPtr(" 1789 "),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(saved).To(BeIdenticalTo(lead))
		Expect(lead.ID).NotTo(BeZero())
		Expect(lead.Name).To(Equal("Ana Ruiz"))
		Expect(lead.PhoneNumber).To(Equal("+15550100"))
		Expect(lead.InstagramID).To(BeNil())
		Expect(*lead.FacebookID).To(Equal("1789"))
	})

	It("maps missing leads to ErrLeadNotFound", func() {
		leads.getForUserFn = func(context.Context, int64, int64) (*model.Lead, error) {
			return nil, store.ErrNotFound
		}
		_, err := svc.Get(ctx, 1, 2)
		Expect(err).To(MatchError(service.ErrLeadNotFound))
	})

	Describe("SetBooking", func() {
		It("rejects a zero time", func() {
			_, err := svc.SetBooking(ctx, 1, 2, time.Time{})
			Expect(err).To(MatchError(service.ErrMissingFields))
			Expect(leads.setBookedCalls).To(BeZero())
		})

		It("stamps the lead", func() {
			at := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
			lead, err := svc.SetBooking(ctx, 1, 2, at)
			Expect(err).NotTo(HaveOccurred())
			Expect(*lead.BookedTimestamp).To(BeTemporally("==", at))
		})

		It("maps a missing lead", func() {
			leads.setBookedFn = func(context.Context, int64, int64, time.Time) (*model.Lead, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.SetBooking(ctx, 1, 2, time.Now())
			Expect(err).To(MatchError(service.ErrLeadNotFound))
		})
	})
})
