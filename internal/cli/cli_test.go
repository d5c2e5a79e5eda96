package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"leados.app/inbox/internal/cli"
	"leados.app/inbox/internal/gateway"
	"leados.app/inbox/internal/inbox"
)

const conversationsJSON = `{"conversations":[
	{"id":"101","customer":"Ana","subject":"Pricing","channel":"WhatsApp","status":"Needs Attention",
	 "thread":[{"type":"user","content":"How much?","timestamp":"2025-01-01T09:00:00Z"}],
	 "timestamp":"2025-01-01T09:00:00Z","leadId":"7"},
	{"id":"102","customer":"Ben","channel":"Gmail","status":"AI Handled",
	 "thread":[{"type":"ai","content":"Hello Ben","timestamp":"2025-01-02T09:00:00Z"}],
	 "timestamp":"2025-01-02T09:00:00Z","leadId":"8"},
	{"customer":"No id","channel":"Facebook"}
]}`

type rejection struct {
	status int
	text   string
}

type fakeServer struct {
	mu        sync.Mutex
	sent      []gateway.SendMessageRequest
	endpoints []string
	statuses  []string
	bookings  []string
	// sendReject, when set, answers sends with that status and error text.
	sendReject *rejection
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]string{"id": "42", "name": "Sam"}})
	})
	mux.HandleFunc("GET /api/conversations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(conversationsJSON))
	})
	mux.HandleFunc("PATCH /api/conversations/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		defer GinkgoRecover()
		var body map[string]string
		Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
		f.mu.Lock()
		f.statuses = append(f.statuses, r.PathValue("id")+"="+body["status"])
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	mux.HandleFunc("GET /api/leads", func(w http.ResponseWriter, r *http.Request) {
		booked := time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)
		writeJSON(w, http.StatusOK, map[string]any{"leads": []gateway.Lead{
			{ID: "7", Name: "Ana", PhoneNumber: "+15550100", HasWhatsApp: true, BookedTimestamp: &booked},
			{ID: "8", Name: "Ben", Email: "ben@example.com"},
		}})
	})
	mux.HandleFunc("GET /api/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Lead not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"lead": gateway.Lead{ID: "7", Name: "Ana", PhoneNumber: "+15550100"}})
	})
	mux.HandleFunc("PATCH /api/leads/{id}/booking", func(w http.ResponseWriter, r *http.Request) {
		defer GinkgoRecover()
		var body map[string]time.Time
		Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
		f.mu.Lock()
		f.bookings = append(f.bookings, body["booked_timestamp"].Format(time.RFC3339))
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	mux.HandleFunc("POST /api/messages/{endpoint}", func(w http.ResponseWriter, r *http.Request) {
		defer GinkgoRecover()
		var req gateway.SendMessageRequest
		Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
		f.mu.Lock()
		f.sent = append(f.sent, req)
		f.endpoints = append(f.endpoints, r.PathValue("endpoint"))
		reject := f.sendReject
		f.mu.Unlock()
		if reject != nil {
			writeJSON(w, reject.status, map[string]string{"error": reject.text})
			return
		}
		writeJSON(w, http.StatusOK, gateway.SendMessageResponse{Success: true, MessageID: "wamid.1"})
	})
	mux.HandleFunc("GET /api/appointments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"appointments": []gateway.Appointment{
			{ID: "900", LeadID: "7", With: "Dr. Lee", Date: "2025-01-01", Time: "10:30 AM"},
		}})
	})
	mux.HandleFunc("POST /api/appointments", func(w http.ResponseWriter, r *http.Request) {
		defer GinkgoRecover()
		var req gateway.CreateAppointmentRequest
		Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
		writeJSON(w, http.StatusCreated, map[string]any{"appointment": gateway.Appointment{
			ID: "901", LeadID: req.LeadID, With: req.With, Date: req.Date, Time: req.Time,
		}})
	})
	mux.HandleFunc("GET /api/conversations/{id}/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"summary": gateway.Summary{
			Summary: "Asked about pricing.", Sentiment: "positive", SuggestedStatus: "Needs Attention",
		}})
	})
	mux.HandleFunc("POST /api/conversations/{id}/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusAccepted, map[string]any{"queued": true})
	})
	return mux
}

var _ = Describe("inbox commands", func() {
	var (
		fake *fakeServer
		srv  *httptest.Server
		app  *cli.App
		out  *bytes.Buffer
		errs *bytes.Buffer
	)

	BeforeEach(func() {
		fake = &fakeServer{}
		srv = httptest.NewServer(fake.handler())
		DeferCleanup(srv.Close)

		client := gateway.New(srv.URL, "sess-1", srv.Client())
		app = cli.NewApp(client, inbox.NewList(), time.UTC)
		out = &bytes.Buffer{}
		errs = &bytes.Buffer{}
	})

	run := func(args ...string) error {
		cmd := cli.NewRootCmd(app)
		cmd.SetArgs(args)
		cmd.SetOut(out)
		cmd.SetErr(errs)
		return cmd.ExecuteContext(context.Background())
	}

	Describe("list", func() {
		It("prints conversations newest first and warns about dropped records", func() {
			Expect(run("list")).To(Succeed())

			text := out.String()
			Expect(errs.String()).To(ContainSubstring("skipped 1 conversations"))
			Expect(text).To(ContainSubstring("2 of 2 shown"))
			Expect(bytes.Index(out.Bytes(), []byte("Ben"))).To(BeNumerically("<", bytes.Index(out.Bytes(), []byte("Ana"))))
		})

		It("applies channel and status filters", func() {
			Expect(run("list", "--channel", "WhatsApp", "--json")).To(Succeed())

			var page []inbox.Conversation
			Expect(json.Unmarshal(out.Bytes(), &page)).To(Succeed())
			Expect(page).To(HaveLen(1))
			Expect(page[0].ID).To(Equal("101"))
		})

		It("reports an empty view", func() {
			Expect(run("list", "--query", "nothing matches this")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("No conversations found."))
		})
	})

	Describe("show", func() {
		It("prints the thread and summary", func() {
			Expect(run("show", "101", "--summary")).To(Succeed())

			Expect(out.String()).To(ContainSubstring("Ana · WhatsApp · Needs Attention"))
			Expect(out.String()).To(ContainSubstring("[lead] How much?"))
			Expect(out.String()).To(ContainSubstring("Asked about pricing."))
		})

		It("fails for an unknown conversation", func() {
			Expect(run("show", "999")).To(MatchError(inbox.ErrConversationNotFound))
		})
	})

	Describe("reply", func() {
		It("sends to the lead's phone number on WhatsApp", func() {
			Expect(run("reply", "101", "See", "you", "soon")).To(Succeed())

			Expect(fake.endpoints).To(Equal([]string{"whatsapp"}))
			Expect(fake.sent).To(HaveLen(1))
			Expect(fake.sent[0].To).To(Equal("+15550100"))
			Expect(fake.sent[0].UserID).To(Equal("42"))
			Expect(fake.sent[0].Message).To(Equal("See you soon"))
			Expect(out.String()).To(ContainSubstring("✓ Message sent"))

			conv, ok := app.List.Get("101")
			Expect(ok).To(BeTrue())
			Expect(conv.LastMessage).To(Equal("See you soon"))
		})

		It("surfaces the server's rejection and leaves the thread untouched", func() {
			fake.sendReject = &rejection{status: http.StatusBadGateway, text: "Recipient not reachable"}

			err := run("reply", "101", "hello")
			Expect(err).To(MatchError("Recipient not reachable"))
			Expect(out.String()).To(ContainSubstring("✗ Recipient not reachable"))

			conv, _ := app.List.Get("101")
			Expect(conv.Thread).To(HaveLen(1))
		})

		It("shows the server's text when it answers 404", func() {
			fake.sendReject = &rejection{status: http.StatusNotFound, text: "Conversation not found"}

			err := run("reply", "101", "hello")

			var sendErr *inbox.SendFailedError
			Expect(errors.As(err, &sendErr)).To(BeTrue())
			Expect(sendErr.Message).To(Equal("Conversation not found"))
			Expect(out.String()).To(ContainSubstring("✗ Conversation not found"))

			conv, _ := app.List.Get("101")
			Expect(conv.Thread).To(HaveLen(1))
		})

		It("refuses Gmail conversations without calling the server", func() {
			err := run("reply", "102", "hello")
			Expect(err).To(MatchError(inbox.ErrUnsupportedChannel))
			Expect(fake.sent).To(BeEmpty())
		})
	})

	Describe("status", func() {
		It("persists a valid transition", func() {
			Expect(run("status", "101", "resolved")).To(Succeed())
			Expect(fake.statuses).To(Equal([]string{"101=Resolved"}))
		})

		It("rejects an unknown status", func() {
			Expect(run("status", "101", "archived")).To(MatchError(ContainSubstring("unknown status")))
			Expect(fake.statuses).To(BeEmpty())
		})
	})

	Describe("book", func() {
		It("stores the slot as the lead's booking", func() {
			Expect(run("book", "7", "--date", "2025-01-01", "--time", "12:00 AM")).To(Succeed())
			Expect(fake.bookings).To(Equal([]string{"2025-01-01T00:00:00Z"}))
		})

		It("requires a slot", func() {
			Expect(run("book", "7", "--date", "2025-01-01")).To(MatchError(inbox.ErrSlotNotSelected))
			Expect(fake.bookings).To(BeEmpty())
		})

		It("records a full appointment when --with is given", func() {
			Expect(run("book", "7", "--date", "2025-01-01", "--time", "2 PM", "--with", "Dr. Lee")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Appointment 901 with Dr. Lee"))
		})
	})

	It("queues a summary", func() {
		Expect(run("summarize", "101")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Summary queued"))
	})

	It("lists leads and appointments", func() {
		Expect(run("leads")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("+15550100"))
		Expect(out.String()).To(ContainSubstring("2025-01-01 10:30 AM"))

		out.Reset()
		Expect(run("appointments")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Dr. Lee"))
	})

	It("reports stats gathered concurrently", func() {
		Expect(run("stats", "--json")).To(Succeed())

		var got struct {
			Conversations struct {
				Total int
			} `json:"conversations"`
			Leads  int `json:"leads"`
			Booked int `json:"booked"`
		}
		Expect(json.Unmarshal(out.Bytes(), &got)).To(Succeed())
		Expect(got.Conversations.Total).To(Equal(2))
		Expect(got.Leads).To(Equal(2))
		Expect(got.Booked).To(Equal(1))
	})
})
