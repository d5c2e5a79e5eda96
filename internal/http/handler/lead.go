package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leados.app/inbox/internal/http/dto"
	"leados.app/inbox/internal/service"
)

const msgLeadNotFound = "Lead not found"

type LeadHandler struct {
	leads service.LeadService
}

func NewLeadHandler(leads service.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

func (h *LeadHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	leads, err := h.leads.List(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err, "list leads")
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": dto.ToLeadResponses(leads)})
}

func (h *LeadHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	leadID, ok := pathID(c, "id", msgLeadNotFound)
	if !ok {
		return
	}

	lead, err := h.leads.Get(c.Request.Context(), user.ID, leadID)
	if err != nil {
		writeError(c, err, "get lead")
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": dto.ToLeadResponse(lead)})
}

func (h *LeadHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}

	params := service.CreateLeadParams{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		HasWhatsApp: req.HasWhatsApp,
	}
	if req.Metadata != nil {
		params.InstagramID = req.Metadata.InstagramID
		params.FacebookID = req.Metadata.FacebookID
	}

	lead, err := h.leads.Create(c.Request.Context(), user.ID, params)
	if err != nil {
		writeError(c, err, "create lead")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": dto.ToLeadResponse(lead)})
}

func (h *LeadHandler) SetBooking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	leadID, ok := pathID(c, "id", msgLeadNotFound)
	if !ok {
		return
	}

	var req dto.SetBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}

	lead, err := h.leads.SetBooking(c.Request.Context(), user.ID, leadID, *req.BookedTimestamp)
	if err != nil {
		writeError(c, err, "set booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": dto.ToLeadResponse(lead)})
}
