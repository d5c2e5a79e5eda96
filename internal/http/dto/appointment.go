package dto

import (
	"time"

	"leados.app/inbox/common/id"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/schedule"
)

type CreateAppointmentRequest struct {
	Date         string  `json:"date" binding:"required"`
	Time         string  `json:"time" binding:"required"`
	LeadID       string  `json:"leadId" binding:"required"`
	With         string  `json:"with" binding:"required,max=255"`
	Conversation *string `json:"conversation,omitempty"`
}

type AppointmentResponse struct {
	ID             int64     `json:"id,string"`
	LeadID         int64     `json:"leadId,string"`
	With           string    `json:"with"`
	ConversationID *string   `json:"conversation,omitempty"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

func ToAppointmentResponse(a *model.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:          a.ID,
		LeadID:      a.LeadID,
		With:        a.With,
		Date:        a.Date.Format(schedule.DateLayout),
		Time:        a.TimeSlot,
		ScheduledAt: a.ScheduledAt,
		CreatedAt:   a.CreatedAt,
	}
	if a.ConversationID != nil {
		s := id.Format(*a.ConversationID)
		resp.ConversationID = &s
	}
	return resp
}

func ToAppointmentResponses(appts []model.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, ToAppointmentResponse(&appts[i]))
	}
	return out
}
