package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"leados.app/inbox/common/logger"
	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/gateway"
	"leados.app/inbox/internal/schedule"
)

const genericSendFailure = "Failed to send message"

// Gateway is the slice of the REST client the coordinator writes through.
type Gateway interface {
	ListConversations(ctx context.Context) (json.RawMessage, error)
	GetLead(ctx context.Context, leadID string) (*gateway.Lead, error)
	SendMessage(ctx context.Context, endpoint string, req gateway.SendMessageRequest) (*gateway.SendMessageResponse, error)
	UpdateStatus(ctx context.Context, conversationID, status string) error
	SetBooking(ctx context.Context, leadID string, at time.Time) error
}

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyFailure NotificationKind = "failure"
)

type Notification struct {
	Kind           NotificationKind
	ConversationID string
	Text           string
	Err            error
}

// Notifier receives user-facing outcomes of coordinator writes.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

type Option func(*Coordinator)

func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) { c.notifier = n }
}

// WithLocation sets the zone appointment slots are read in. Default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Coordinator) { c.loc = loc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// Coordinator applies optimistic local mutations to a List and reconciles them with the
// server. Sends and status changes on one conversation run one at a time.
type Coordinator struct {
	list     *List
	gw       Gateway
	userID   string
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
	locks    *keyedMutex
}

func NewCoordinator(list *List, gw Gateway, userID string, opts ...Option) *Coordinator {
	c := &Coordinator{
		list:     list,
		gw:       gw,
		userID:   userID,
		notifier: NotifierFunc(func(context.Context, Notification) {}),
		loc:      time.Local,
		now:      time.Now,
		locks:    newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type RefreshResult struct {
	Applied bool // false when a newer refresh was applied first
	Dropped int
}

// Refresh reloads the list from the server. A response that arrives after a newer
// Refresh has been applied is discarded; a newer Refresh that fails discards nothing.
func (c *Coordinator) Refresh(ctx context.Context) (RefreshResult, error) {
	gen := c.list.BeginLoad()

	raw, err := c.gw.ListConversations(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("listing conversations: %w", err)
	}
	norm, err := Normalize(raw)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("normalizing conversations: %w", err)
	}
	if norm.Dropped > 0 {
		slog.WarnContext(ctx, "dropped conversations without id", "count", norm.Dropped)
	}

	applied := c.list.LoadIfNewer(gen, norm.Conversations)
	if !applied {
		slog.DebugContext(ctx, "discarded stale conversation list", "generation", gen)
	}
	return RefreshResult{Applied: applied, Dropped: norm.Dropped}, nil
}

// SendReply delivers text on the conversation's channel to its lead. The message is shown
// immediately and removed again if the server rejects it.
func (c *Coordinator) SendReply(ctx context.Context, conversationID, text string) (Message, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "inbox.coordinator"})

	msg, err := c.sendReply(ctx, conversationID, text)
	if err != nil {
		c.notifier.Notify(ctx, Notification{Kind: NotifyFailure, ConversationID: conversationID, Text: err.Error(), Err: err})
		return Message{}, err
	}
	c.notifier.Notify(ctx, Notification{Kind: NotifySuccess, ConversationID: conversationID, Text: "Message sent"})
	return msg, nil
}

func (c *Coordinator) sendReply(ctx context.Context, conversationID, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	unlock, err := c.locks.Lock(ctx, conversationID)
	if err != nil {
		return Message{}, err
	}
	defer unlock()

	conv, ok := c.list.Get(conversationID)
	if !ok {
		return Message{}, ErrConversationNotFound
	}
	if _, ok := conv.Channel.Endpoint(); !ok {
		return Message{}, fmt.Errorf("%w: %q", ErrUnsupportedChannel, conv.Channel)
	}
	if conv.LeadID == "" {
		return Message{}, ErrLeadNotFound
	}

	lead, err := c.gw.GetLead(ctx, conv.LeadID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return Message{}, ErrLeadNotFound
		}
		return Message{}, fmt.Errorf("resolving lead: %w", err)
	}

	endpoint, to, err := Recipient(conv.Channel, lead)
	if err != nil {
		return Message{}, err
	}

	correlationID := uuid.NewString()
	msg := Message{
		Type:      domain.MessageTypeSDR,
		Content:   text,
		Timestamp: c.now().UTC().Format(time.RFC3339),
	}
	prev, ok := c.list.appendPending(conversationID, msg, correlationID)
	if !ok {
		return Message{}, ErrConversationNotFound
	}

	_, err = c.gw.SendMessage(ctx, string(endpoint), gateway.SendMessageRequest{
		UserID:         c.userID,
		To:             to,
		Message:        text,
		ConversationID: conversationID,
	})
	if err != nil {
		c.list.revertPending(conversationID, correlationID, prev)
		slog.WarnContext(ctx, "reply rejected",
			"conversation_id", conversationID,
			"endpoint", endpoint,
			"error", err)
		return Message{}, newSendFailed(conversationID, err)
	}

	c.list.confirmPending(conversationID, correlationID)
	slog.InfoContext(ctx, "reply sent", "conversation_id", conversationID, "endpoint", endpoint)
	return msg, nil
}

func newSendFailed(conversationID string, err error) *SendFailedError {
	text := genericSendFailure
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		text = apiErr.Message
	}
	return &SendFailedError{ConversationID: conversationID, Message: text, Err: err}
}

// Recipient picks the outbound endpoint and the lead identifier used on channel.
func Recipient(channel domain.Channel, lead *gateway.Lead) (domain.Endpoint, string, error) {
	endpoint, ok := channel.Endpoint()
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedChannel, channel)
	}

	var to string
	switch channel {
	case domain.ChannelWhatsApp:
		to = lead.PhoneNumber
	case domain.ChannelInstagram:
		to = lead.Metadata.InstagramID
	case domain.ChannelFacebook:
		to = lead.Metadata.FacebookID
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return "", "", fmt.Errorf("%w: %s", ErrMissingRecipientIdentifier, channel)
	}
	return endpoint, to, nil
}

// UpdateStatus sets the status locally, persists it, and restores the previous status if
// the server refuses.
func (c *Coordinator) UpdateStatus(ctx context.Context, conversationID string, status domain.ConversationStatus) error {
	unlock, err := c.locks.Lock(ctx, conversationID)
	if err != nil {
		return err
	}
	defer unlock()

	conv, ok := c.list.Get(conversationID)
	if !ok {
		return ErrConversationNotFound
	}
	if !conv.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, conv.Status, status)
	}
	if conv.Status == status {
		return nil
	}

	prev, _ := c.list.setStatus(conversationID, status)
	if err := c.gw.UpdateStatus(ctx, conversationID, string(status)); err != nil {
		c.list.restoreStatus(conversationID, status, prev)
		c.notifier.Notify(ctx, Notification{Kind: NotifyFailure, ConversationID: conversationID, Text: "Could not update status", Err: err})
		return fmt.Errorf("updating status: %w", err)
	}

	c.notifier.Notify(ctx, Notification{Kind: NotifySuccess, ConversationID: conversationID, Text: "Status updated"})
	return nil
}

// BookAppointment stores date+slot as the lead's booked_timestamp.
func (c *Coordinator) BookAppointment(ctx context.Context, leadID, date, slot string) (time.Time, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(slot) == "" {
		return time.Time{}, ErrSlotNotSelected
	}
	if strings.TrimSpace(leadID) == "" {
		return time.Time{}, ErrLeadNotFound
	}

	at, err := schedule.CombineStrings(date, slot, c.loc)
	if err != nil {
		return time.Time{}, err
	}

	if err := c.gw.SetBooking(ctx, leadID, at); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return time.Time{}, ErrLeadNotFound
		}
		c.notifier.Notify(ctx, Notification{Kind: NotifyFailure, Text: "Could not book appointment", Err: err})
		return time.Time{}, fmt.Errorf("setting booking: %w", err)
	}

	c.notifier.Notify(ctx, Notification{Kind: NotifySuccess, Text: "Appointment booked"})
	return at, nil
}

// keyedMutex serializes work per key. Waiting honours context cancellation.
type keyedMutex struct {
	mu    sync.Mutex
	slots map[string]*keySlot
}

type keySlot struct {
	ch   chan struct{}
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{slots: make(map[string]*keySlot)}
}

func (k *keyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	slot, ok := k.slots[key]
	if !ok {
		slot = &keySlot{ch: make(chan struct{}, 1)}
		k.slots[key] = slot
	}
	slot.refs++
	k.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		return func() {
			<-slot.ch
			k.release(key, slot)
		}, nil
	case <-ctx.Done():
		k.release(key, slot)
		return nil, ctx.Err()
	}
}

func (k *keyedMutex) release(key string, slot *keySlot) {
	k.mu.Lock()
	defer k.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(k.slots, key)
	}
}
