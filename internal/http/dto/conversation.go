package dto

import (
	"time"

	"leados.app/inbox/common/id"
	"leados.app/inbox/internal/model"
)

// The dashboard reads conversations in camelCase.

type MessageResponse struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

type ConversationResponse struct {
	ID          int64             `json:"id,string"`
	Customer    string            `json:"customer"`
	Subject     *string           `json:"subject,omitempty"`
	Channel     string            `json:"channel"`
	Status      string            `json:"status"`
	Thread      []MessageResponse `json:"thread"`
	LastMessage string            `json:"lastMessage"`
	Timestamp   string            `json:"timestamp"`
	LeadID      *string           `json:"leadId,omitempty"`
}

type SeedMessageRequest struct {
	Type    string `json:"type" binding:"required,oneof=user ai sdr"`
	Content string `json:"content" binding:"required"`
}

type CreateConversationRequest struct {
	Customer string               `json:"customer" binding:"required,max=255"`
	Subject  *string              `json:"subject,omitempty" binding:"omitempty,max=500"`
	Channel  string               `json:"channel" binding:"required"`
	Status   string               `json:"status,omitempty"`
	LeadID   *string              `json:"leadId,omitempty"`
	Thread   []SeedMessageRequest `json:"thread,omitempty" binding:"omitempty,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SummaryResponse struct {
	ConversationID  int64     `json:"conversationId,string"`
	Summary         string    `json:"summary"`
	Sentiment       string    `json:"sentiment"`
	SuggestedStatus string    `json:"suggestedStatus"`
	Model           string    `json:"model"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToMessageResponse(m model.Message) MessageResponse {
	return MessageResponse{
		Type:      string(m.Type),
		Content:   m.Content,
		Timestamp: formatTime(&m.CreatedAt),
	}
}

func ToConversationResponse(c *model.Conversation) ConversationResponse {
	thread := make([]MessageResponse, 0, len(c.Thread))
	for _, m := range c.Thread {
		thread = append(thread, ToMessageResponse(m))
	}

	resp := ConversationResponse{
		ID:          c.ID,
		Customer:    c.Customer,
		Subject:     c.Subject,
		Channel:     string(c.Channel),
		Status:      string(c.Status),
		Thread:      thread,
		LastMessage: c.LastMessage,
		Timestamp:   formatTime(c.LastMessageAt),
	}
	if c.LeadID != nil {
		s := id.Format(*c.LeadID)
		resp.LeadID = &s
	}
	return resp
}

func ToConversationResponses(convs []model.Conversation) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(convs))
	for i := range convs {
		out = append(out, ToConversationResponse(&convs[i]))
	}
	return out
}

func ToSummaryResponse(s *model.ConversationSummary) SummaryResponse {
	return SummaryResponse{
		ConversationID:  s.ConversationID,
		Summary:         s.Summary,
		Sentiment:       s.Sentiment,
		SuggestedStatus: string(s.SuggestedStatus),
		Model:           s.Model,
		UpdatedAt:       s.UpdatedAt,
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
