package dto

import (
	"time"

	"leados.app/inbox/internal/model"
)

type LeadMetadata struct {
	InstagramID *string `json:"instagram_id,omitempty"`
	FacebookID  *string `json:"facebook_id,omitempty"`
}

type LeadResponse struct {
	ID              int64        `json:"id,string"`
	Name            string       `json:"name"`
	PhoneNumber     string       `json:"phone_number"`
	Email           string       `json:"email"`
	HasWhatsApp     bool         `json:"has_whatsapp"`
	Metadata        LeadMetadata `json:"metadata"`
	BookedTimestamp *time.Time   `json:"booked_timestamp,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

type CreateLeadRequest struct {
	Name        string        `json:"name" binding:"required,max=255"`
	PhoneNumber string        `json:"phone_number" binding:"omitempty,max=32"`
	Email       string        `json:"email" binding:"omitempty,email,max=255"`
	HasWhatsApp bool          `json:"has_whatsapp"`
	Metadata    *LeadMetadata `json:"metadata,omitempty"`
}

type SetBookingRequest struct {
	BookedTimestamp *time.Time `json:"booked_timestamp" binding:"required"`
}

func ToLeadResponse(l *model.Lead) LeadResponse {
	return LeadResponse{
		ID:          l.ID,
		Name:        l.Name,
		PhoneNumber: l.PhoneNumber,
		Email:       l.Email,
		HasWhatsApp: l.HasWhatsApp,
		Metadata: LeadMetadata{
			InstagramID: l.InstagramID,
			FacebookID:  l.FacebookID,
		},
		BookedTimestamp: l.BookedTimestamp,
		CreatedAt:       l.CreatedAt,
	}
}

func ToLeadResponses(leads []model.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for i := range leads {
		out = append(out, ToLeadResponse(&leads[i]))
	}
	return out
}
