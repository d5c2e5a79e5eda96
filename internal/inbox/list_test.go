package inbox_test

import (
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/inbox"
)

func conv(id string, ch domain.Channel, st domain.ConversationStatus, ts string) inbox.Conversation {
	return inbox.Conversation{
		ID:        id,
		Customer:  "Customer " + id,
		Channel:   ch,
		Status:    st,
		Thread:    []inbox.Message{},
		Timestamp: ts,
	}
}

func ids(convs []inbox.Conversation) []string {
	out := make([]string, len(convs))
	for i, c := range convs {
		out[i] = c.ID
	}
	return out
}

func ptr(s string) *string { return &s }

var _ = Describe("List", func() {
	var (
		list  *inbox.List
		items []inbox.Conversation
	)

	BeforeEach(func() {
		list = inbox.NewList()
		items = []inbox.Conversation{
			conv("g1", domain.ChannelGmail, domain.StatusNeedsAttention, "2025-01-01T10:00:00Z"),
			conv("w1", domain.ChannelWhatsApp, domain.StatusAIHandled, "2025-01-01T12:00:00Z"),
			conv("w2", domain.ChannelWhatsApp, domain.StatusResolved, "2025-01-01T09:00:00Z"),
			conv("g2", domain.ChannelGmail, domain.StatusResolved, "2025-01-01T11:00:00Z"),
			conv("w3", domain.ChannelWhatsApp, domain.StatusNeedsAttention, "2025-01-01T08:00:00Z"),
		}
	})

	It("filters by channel", func() {
		list.Load(items)
		list.SetFilter(inbox.FilterUpdate{Channel: ptr("Gmail")})
		Expect(list.Filtered()).To(HaveLen(2))
	})

	It("is idempotent across identical loads", func() {
		list.Load(items)
		Expect(list.Select("w2")).To(BeTrue())
		first := list.Filtered()

		list.Load(items)
		Expect(list.Filtered()).To(Equal(first))
		Expect(list.SelectedID()).To(Equal("w2"))
	})

	DescribeTable("membership matches both filters",
		func(channel, status string, want []string) {
			list.Load(items)
			list.SetFilter(inbox.FilterUpdate{Channel: ptr(channel), Status: ptr(status)})
			Expect(ids(list.Filtered())).To(ConsistOf(want))
		},
		Entry("all/all", "All", "All", []string{"g1", "w1", "w2", "g2", "w3"}),
		Entry("whatsapp/all", "WhatsApp", "All", []string{"w1", "w2", "w3"}),
		Entry("all/resolved", "All", "Resolved", []string{"w2", "g2"}),
		Entry("whatsapp/needs attention", "WhatsApp", "Needs Attention", []string{"w3"}),
		Entry("instagram/all", "Instagram", "All", []string{}),
	)

	It("matches the query against customer, subject and last message", func() {
		items[0].Subject = "Pricing question"
		items[1].LastMessage = "Can we do TUESDAY?"
		list.Load(items)

		list.SetFilter(inbox.FilterUpdate{Query: ptr("pricing")})
		Expect(ids(list.Filtered())).To(Equal([]string{"g1"}))

		list.SetFilter(inbox.FilterUpdate{Query: ptr("tuesday")})
		Expect(ids(list.Filtered())).To(Equal([]string{"w1"}))

		list.SetFilter(inbox.FilterUpdate{Query: ptr("customer w3")})
		Expect(ids(list.Filtered())).To(Equal([]string{"w3"}))
	})

	Describe("selection", func() {
		It("selects the first of the view on the first load", func() {
			list.Load(items)
			Expect(list.SelectedID()).To(Equal("w1"))
		})

		It("moves to the first of the filtered view when the selection disappears", func() {
			list.Load(items)
			list.SetFilter(inbox.FilterUpdate{Channel: ptr("Gmail")})
			Expect(list.Select("w2")).To(BeTrue())

			list.Load(items[:2])
			Expect(list.SelectedID()).To(Equal("g1"))
		})

		It("clears when the filtered view is empty", func() {
			list.Load(items)
			list.SetFilter(inbox.FilterUpdate{Channel: ptr("Instagram")})
			list.Load(items[2:])
			Expect(list.SelectedID()).To(BeEmpty())
			_, ok := list.Selected()
			Expect(ok).To(BeFalse())
		})

		It("ignores unknown ids", func() {
			list.Load(items)
			Expect(list.Select("nope")).To(BeFalse())
			Expect(list.SelectedID()).To(Equal("w1"))
		})
	})

	Describe("sorting", func() {
		It("defaults to newest first", func() {
			list.Load(items)
			Expect(ids(list.Filtered())).To(Equal([]string{"w1", "g2", "g1", "w2", "w3"}))
		})

		It("supports oldest first", func() {
			list.Load(items)
			list.SetSort(inbox.SortOldest)
			Expect(ids(list.Filtered())).To(Equal([]string{"w3", "w2", "g1", "g2", "w1"}))
		})

		It("supports customer name", func() {
			items[0].Customer = "zed"
			items[1].Customer = "Amy"
			list.Load(items[:2])
			list.SetSort(inbox.SortCustomer)
			Expect(ids(list.Filtered())).To(Equal([]string{"w1", "g1"}))
		})
	})

	It("pages the filtered view", func() {
		list.Load(items)
		Expect(ids(list.Page(0, 2))).To(Equal([]string{"w1", "g2"}))
		Expect(ids(list.Page(4, 2))).To(Equal([]string{"w3"}))
		Expect(list.Page(10, 2)).To(BeEmpty())
	})

	It("tallies by channel and status", func() {
		list.Load(items)
		t := list.Tally()
		Expect(t.Total).To(Equal(5))
		Expect(t.ByChannel[domain.ChannelWhatsApp]).To(Equal(3))
		Expect(t.ByChannel[domain.ChannelGmail]).To(Equal(2))
		Expect(t.ByStatus[domain.StatusResolved]).To(Equal(2))
	})

	It("discards stale generations", func() {
		older := list.BeginLoad()
		newer := list.BeginLoad()

		Expect(list.LoadIfNewer(newer, items[:1])).To(BeTrue())
		Expect(list.LoadIfNewer(older, items)).To(BeFalse())
		Expect(list.Items()).To(HaveLen(1))
	})

	It("applies an older generation when the newer one never lands", func() {
		older := list.BeginLoad()
		_ = list.BeginLoad()

		Expect(list.LoadIfNewer(older, items)).To(BeTrue())
		Expect(list.Items()).To(HaveLen(len(items)))
	})

	It("returns copies", func() {
		list.Load(items)
		c, _ := list.Get("w1")
		c.Thread = append(c.Thread, inbox.Message{Content: "mutated"})
		c.Status = domain.StatusResolved

		again, _ := list.Get("w1")
		Expect(again.Thread).To(BeEmpty())
		Expect(again.Status).To(Equal(domain.StatusAIHandled))
	})

	It("is safe for concurrent readers and writers", func() {
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(2)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				list.Load(items)
				list.SetFilter(inbox.FilterUpdate{Query: ptr(fmt.Sprint(i))})
			}()
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				_ = list.Filtered()
				_ = list.Tally()
			}()
		}
		wg.Wait()
	})
})
