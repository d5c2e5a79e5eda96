package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"leados.app/inbox/common/logger"
	"leados.app/inbox/core/config"
)

var _ = Describe("TraceHandler", func() {
	var (
		buf *bytes.Buffer
		log *slog.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		log = slog.New(logger.NewTraceHandler(slog.NewJSONHandler(buf, nil)))
	})

	decode := func() map[string]any {
		var out map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &out)).To(Succeed())
		return out
	}

	It("adds context log fields to every record", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			UserID:    logger.Ptr(int64(42)),
			Channel:   logger.Ptr("whatsapp"),
			Component: "inbox.test",
		})

		log.InfoContext(ctx, "sent")

		out := decode()
		Expect(out).To(HaveKeyWithValue("user_id", BeNumerically("==", 42)))
		Expect(out).To(HaveKeyWithValue("channel", "whatsapp"))
		Expect(out).To(HaveKeyWithValue("component", "inbox.test"))
		Expect(out).NotTo(HaveKey("trace_id"))
	})

	It("lets later fields override earlier ones", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{ConversationID: logger.Ptr(int64(1))})
		ctx = logger.WithLogFields(ctx, logger.LogFields{ConversationID: logger.Ptr(int64(2)), LeadID: logger.Ptr(int64(9))})

		log.InfoContext(ctx, "merged")

		out := decode()
		Expect(out).To(HaveKeyWithValue("conversation_id", BeNumerically("==", 2)))
		Expect(out).To(HaveKeyWithValue("lead_id", BeNumerically("==", 9)))
	})
})

var _ = Describe("NewHandler", func() {
	It("writes text in development", func() {
		buf := &bytes.Buffer{}
		h := logger.NewHandler(config.Config{Env: "development"}, buf)

		slog.New(h).Debug("hello", "k", "v")

		Expect(buf.String()).To(ContainSubstring("msg=hello"))
		Expect(buf.String()).To(ContainSubstring("k=v"))
	})

	It("writes JSON in production", func() {
		buf := &bytes.Buffer{}
		h := logger.NewHandler(config.Config{Env: "production"}, buf)

		slog.New(h).Info("hello")

		var out map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &out)).To(Succeed())
		Expect(out).To(HaveKeyWithValue("msg", "hello"))
	})
})

var _ = Describe("Truncate", func() {
	It("leaves short strings alone", func() {
		Expect(logger.Truncate("hi", 5)).To(Equal("hi"))
	})

	It("cuts long strings", func() {
		Expect(logger.Truncate("hello world", 5)).To(Equal("hello..."))
	})
})
