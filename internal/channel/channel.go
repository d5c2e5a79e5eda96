// Package channel delivers operator replies through the per-channel messaging APIs.
package channel

import (
	"context"
	"errors"
	"fmt"

	"leados.app/inbox/core/config"
	"leados.app/inbox/internal/domain"
)

var (
	ErrNotConfigured  = errors.New("channel not configured")
	ErrEmptyRecipient = errors.New("empty recipient")
)

// Sender delivers a text message to a recipient on one messaging surface.
type Sender interface {
	Send(ctx context.Context, to, text string) (messageID string, err error)
}

// ProviderError is a non-2xx answer from a messaging API.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Code       int
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
}

// Registry maps outbound endpoints to their senders.
type Registry struct {
	senders map[domain.Endpoint]Sender
}

func NewRegistry() *Registry {
	return &Registry{senders: make(map[domain.Endpoint]Sender)}
}

func (r *Registry) Register(endpoint domain.Endpoint, s Sender) {
	r.senders[endpoint] = s
}

func (r *Registry) Get(endpoint domain.Endpoint) (Sender, error) {
	s, ok := r.senders[endpoint]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, endpoint)
	}
	return s, nil
}

// NewRegistryFromConfig registers a sender for every channel that has credentials.
func NewRegistryFromConfig(wa config.WhatsAppConfig, meta config.MetaConfig) *Registry {
	r := NewRegistry()
	if wa.Enabled() {
		r.Register(domain.EndpointWhatsApp, NewWhatsApp(meta.GraphURL, meta.APIVersion, wa.PhoneNumberID, wa.AccessToken, nil))
	}
	if meta.PageAccessToken != "" {
		r.Register(domain.EndpointMessenger, NewMessenger(meta.GraphURL, meta.APIVersion, meta.PageAccessToken, nil))
	}
	if meta.InstagramAccessToken != "" {
		r.Register(domain.EndpointInstagram, NewInstagram(meta.GraphURL, meta.APIVersion, meta.InstagramAccessToken, nil))
	}
	return r
}
