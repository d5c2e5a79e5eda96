// Package inbox is the client-side core of the conversation and lead list: normalizing
// what the API returns, holding the list state, and coordinating optimistic writes.
package inbox

import (
	"errors"

	"leados.app/inbox/internal/domain"
)

var (
	ErrConversationNotFound       = errors.New("conversation not found")
	ErrLeadNotFound               = errors.New("lead not found")
	ErrUnsupportedChannel         = errors.New("unsupported channel")
	ErrMissingRecipientIdentifier = errors.New("lead has no identifier for this channel")
	ErrInvalidTransition          = errors.New("invalid status transition")
	ErrSlotNotSelected            = errors.New("date and time slot must be selected")
	ErrEmptyMessage               = errors.New("message is empty")
	ErrDuplicateID                = errors.New("duplicate conversation id")
)

// SendFailedError is a rejected reply. Message is the server's error text or a generic one.
type SendFailedError struct {
	ConversationID string
	Message        string
	Err            error
}

func (e *SendFailedError) Error() string {
	return e.Message
}

func (e *SendFailedError) Unwrap() error {
	return e.Err
}

type Message struct {
	Type      domain.MessageType `json:"type"`
	Content   string             `json:"content"`
	Timestamp string             `json:"timestamp,omitempty"`

	// set while the message is an unconfirmed optimistic append
	correlationID string
}

// Pending reports whether the message is still awaiting the server.
func (m Message) Pending() bool {
	return m.correlationID != ""
}

type Conversation struct {
	ID          string                    `json:"id"`
	Customer    string                    `json:"customer"`
	Subject     string                    `json:"subject,omitempty"`
	Channel     domain.Channel            `json:"channel"`
	Status      domain.ConversationStatus `json:"status"`
	Thread      []Message                 `json:"thread"`
	LastMessage string                    `json:"lastMessage"`
	Timestamp   string                    `json:"timestamp"`
	LeadID      string                    `json:"leadId,omitempty"`
}

func (c Conversation) clone() Conversation {
	out := c
	out.Thread = append([]Message(nil), c.Thread...)
	return out
}
