package channel_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"leados.app/inbox/core/config"
	"leados.app/inbox/internal/channel"
	"leados.app/inbox/internal/domain"
)

var _ = Describe("WhatsApp", func() {
	var (
		server   *httptest.Server
		lastPath string
		lastAuth string
		lastBody map[string]any
		status   int
		respond  string
	)

	BeforeEach(func() {
		status = http.StatusOK
		respond = `{"messages":[{"id":"wamid.123"}]}`
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastPath = r.URL.Path
			lastAuth = r.Header.Get("Authorization")
			lastBody = map[string]any{}
			_ = json.NewDecoder(r.Body).Decode(&lastBody)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(respond))
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	It("posts a text message to the phone number's messages edge", func() {
		wa := channel.NewWhatsApp(server.URL, "v21.0", "1001", "token", server.Client())

		id, err := wa.Send(context.Background(), "+15550001111", "Hello")

		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("wamid.123"))
		Expect(lastPath).To(Equal("/v21.0/1001/messages"))
		Expect(lastAuth).To(Equal("Bearer token"))
		Expect(lastBody).To(HaveKeyWithValue("to", "+15550001111"))
		Expect(lastBody).To(HaveKeyWithValue("messaging_product", "whatsapp"))
		Expect(lastBody["text"]).To(HaveKeyWithValue("body", "Hello"))
	})

	It("surfaces the provider error message", func() {
		status = http.StatusBadRequest
		respond = `{"error":{"message":"Recipient phone number not in allowed list","code":131030}}`
		wa := channel.NewWhatsApp(server.URL, "v21.0", "1001", "token", server.Client())

		_, err := wa.Send(context.Background(), "+1", "Hello")

		var perr *channel.ProviderError
		Expect(errors.As(err, &perr)).To(BeTrue())
		Expect(perr.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(perr.Code).To(Equal(131030))
		Expect(err).To(MatchError(ContainSubstring("Recipient phone number not in allowed list")))
	})

	It("refuses an empty recipient without calling the API", func() {
		lastPath = ""
		wa := channel.NewWhatsApp(server.URL, "v21.0", "1001", "token", server.Client())

		_, err := wa.Send(context.Background(), "", "Hello")

		Expect(err).To(MatchError(channel.ErrEmptyRecipient))
		Expect(lastPath).To(BeEmpty())
	})
})

var _ = Describe("Messenger", func() {
	It("posts to the Send API with a RESPONSE messaging type", func() {
		var body map[string]any
		var path string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&body)
			_, _ = w.Write([]byte(`{"recipient_id":"ig-1","message_id":"m_1"}`))
		}))
		defer server.Close()

		ig := channel.NewInstagram(server.URL, "v21.0", "ig-token", server.Client())
		id, err := ig.Send(context.Background(), "ig-1", "Hi")

		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("m_1"))
		Expect(path).To(Equal("/v21.0/me/messages"))
		Expect(body).To(HaveKeyWithValue("messaging_type", "RESPONSE"))
		Expect(body["recipient"]).To(HaveKeyWithValue("id", "ig-1"))
		Expect(body["message"]).To(HaveKeyWithValue("text", "Hi"))
	})
})

var _ = Describe("Registry", func() {
	It("only registers channels that have credentials", func() {
		r := channel.NewRegistryFromConfig(
			config.WhatsAppConfig{PhoneNumberID: "1", AccessToken: "t"},
			config.MetaConfig{GraphURL: "http://graph", APIVersion: "v21.0", PageAccessToken: "p"},
		)

		_, err := r.Get(domain.EndpointWhatsApp)
		Expect(err).NotTo(HaveOccurred())
		_, err = r.Get(domain.EndpointMessenger)
		Expect(err).NotTo(HaveOccurred())
		_, err = r.Get(domain.EndpointInstagram)
		Expect(err).To(MatchError(channel.ErrNotConfigured))
	})
})
