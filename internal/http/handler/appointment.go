package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leados.app/inbox/internal/http/dto"
	"leados.app/inbox/internal/service"
)

type AppointmentHandler struct {
	appointments service.AppointmentService
}

func NewAppointmentHandler(appointments service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}

	convID, err := optionalID(req.Conversation)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgConversationNotFound})
		return
	}

	appt, err := h.appointments.Create(c.Request.Context(), user.ID, service.CreateAppointmentParams{
		Date:           req.Date,
		Time:           req.Time,
		LeadID:         req.LeadID,
		With:           req.With,
		ConversationID: convID,
	})
	if err != nil {
		writeError(c, err, "create appointment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": dto.ToAppointmentResponse(appt)})
}

func (h *AppointmentHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	appts, err := h.appointments.List(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err, "list appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": dto.ToAppointmentResponses(appts)})
}
