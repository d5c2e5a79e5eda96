package channel

import (
	"context"
	"net/http"
)

// WhatsApp sends text messages through the WhatsApp Cloud API.
type WhatsApp struct {
	client        *graphClient
	phoneNumberID string
}

func NewWhatsApp(graphURL, version, phoneNumberID, accessToken string, httpClient *http.Client) *WhatsApp {
	return &WhatsApp{
		client:        newGraphClient(graphURL, version, accessToken, httpClient),
		phoneNumberID: phoneNumberID,
	}
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

type whatsAppResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

func (w *WhatsApp) Send(ctx context.Context, to, text string) (string, error) {
	if to == "" {
		return "", ErrEmptyRecipient
	}

	var resp whatsAppResponse
	err := w.client.post(ctx, "whatsapp", w.phoneNumberID+"/messages", whatsAppRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             whatsAppText{Body: text},
	}, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Messages) == 0 {
		return "", nil
	}
	return resp.Messages[0].ID, nil
}
