// Package gateway is the dashboard's REST client for the inbox API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const sessionHeader = "X-Session-ID"

var (
	// ErrNotFound matches any APIError with status 404.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized matches any APIError with status 401.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is any non-2xx answer. Message is the server's {error} text when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: %s (status %d)", e.Message, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Client talks to the inbox API on behalf of one signed-in user.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

// New creates a client. A nil httpClient gets a 30s timeout.
func New(baseURL, sessionID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		sessionID:  sessionID,
		httpClient: httpClient,
	}
}

type LeadMetadata struct {
	InstagramID string `json:"instagram_id,omitempty"`
	FacebookID  string `json:"facebook_id,omitempty"`
}

type Lead struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	PhoneNumber     string       `json:"phone_number"`
	Email           string       `json:"email"`
	HasWhatsApp     bool         `json:"has_whatsapp"`
	Metadata        LeadMetadata `json:"metadata"`
	BookedTimestamp *time.Time   `json:"booked_timestamp,omitempty"`
}

type SendMessageRequest struct {
	UserID         string `json:"userId"`
	To             string `json:"to"`
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

type SendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
}

type Appointment struct {
	ID           string    `json:"id"`
	LeadID       string    `json:"leadId"`
	With         string    `json:"with"`
	Conversation string    `json:"conversation,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	ScheduledAt  time.Time `json:"scheduledAt"`
}

type CreateAppointmentRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	LeadID       string `json:"leadId"`
	With         string `json:"with"`
	Conversation string `json:"conversation,omitempty"`
}

type Summary struct {
	Summary         string    `json:"summary"`
	Sentiment       string    `json:"sentiment"`
	SuggestedStatus string    `json:"suggestedStatus"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListConversations returns the raw conversations array; shaping it is the normalizer's job.
func (c *Client) ListConversations(ctx context.Context) (json.RawMessage, error) {
	var resp struct {
		Conversations json.RawMessage `json:"conversations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Conversations) == 0 {
		return json.RawMessage("[]"), nil
	}
	return resp.Conversations, nil
}

func (c *Client) UpdateStatus(ctx context.Context, conversationID, status string) error {
	path := "/api/conversations/" + url.PathEscape(conversationID) + "/status"
	return c.do(ctx, http.MethodPatch, path, map[string]string{"status": status}, nil)
}

func (c *Client) GetSummary(ctx context.Context, conversationID string) (*Summary, error) {
	var resp struct {
		Summary Summary `json:"summary"`
	}
	path := "/api/conversations/" + url.PathEscape(conversationID) + "/summary"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Summary, nil
}

func (c *Client) RequestSummary(ctx context.Context, conversationID string) error {
	path := "/api/conversations/" + url.PathEscape(conversationID) + "/summary"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) ListLeads(ctx context.Context) ([]Lead, error) {
	var resp struct {
		Leads []Lead `json:"leads"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/leads", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Leads, nil
}

// GetLead returns ErrNotFound when the lead does not exist or belongs to someone else.
func (c *Client) GetLead(ctx context.Context, leadID string) (*Lead, error) {
	var resp struct {
		Lead *Lead `json:"lead"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/leads/"+url.PathEscape(leadID), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Lead == nil {
		return nil, ErrNotFound
	}
	return resp.Lead, nil
}

func (c *Client) SetBooking(ctx context.Context, leadID string, at time.Time) error {
	path := "/api/leads/" + url.PathEscape(leadID) + "/booking"
	return c.do(ctx, http.MethodPatch, path, map[string]time.Time{"booked_timestamp": at.UTC()}, nil)
}

// SendMessage posts to /api/messages/{endpoint}.
func (c *Client) SendMessage(ctx context.Context, endpoint string, req SendMessageRequest) (*SendMessageResponse, error) {
	var resp SendMessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/messages/"+url.PathEscape(endpoint), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var resp struct {
		Appointments []Appointment `json:"appointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/appointments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Appointments, nil
}

func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	var resp struct {
		Appointment Appointment `json:"appointment"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/appointments", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Appointment, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.sessionID != "" {
		req.Header.Set(sessionHeader, c.sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &envelope) == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
