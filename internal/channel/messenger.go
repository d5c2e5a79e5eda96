package channel

import (
	"context"
	"net/http"
)

// Messenger sends through the Graph Send API. The same contract serves
// Facebook Messenger (page token) and Instagram messaging (Instagram token).
type Messenger struct {
	client   *graphClient
	provider string
}

func NewMessenger(graphURL, version, pageAccessToken string, httpClient *http.Client) *Messenger {
	return &Messenger{
		client:   newGraphClient(graphURL, version, pageAccessToken, httpClient),
		provider: "messenger",
	}
}

func NewInstagram(graphURL, version, instagramAccessToken string, httpClient *http.Client) *Messenger {
	return &Messenger{
		client:   newGraphClient(graphURL, version, instagramAccessToken, httpClient),
		provider: "instagram",
	}
}

type sendRecipient struct {
	ID string `json:"id"`
}

type sendMessage struct {
	Text string `json:"text"`
}

type sendRequest struct {
	Recipient     sendRecipient `json:"recipient"`
	Message       sendMessage   `json:"message"`
	MessagingType string        `json:"messaging_type"`
}

type sendResponse struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}

func (m *Messenger) Send(ctx context.Context, to, text string) (string, error) {
	if to == "" {
		return "", ErrEmptyRecipient
	}

	var resp sendResponse
	err := m.client.post(ctx, m.provider, "me/messages", sendRequest{
		Recipient:     sendRecipient{ID: to},
		Message:       sendMessage{Text: text},
		MessagingType: "RESPONSE",
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.MessageID, nil
}
