package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leados.app/inbox/common/logger"
	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/http/dto"
	"leados.app/inbox/internal/service"
)

const msgConversationNotFound = "Conversation not found"

type ConversationHandler struct {
	conversations service.ConversationService
}

func NewConversationHandler(conversations service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

func (h *ConversationHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	convs, err := h.conversations.List(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err, "list conversations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": dto.ToConversationResponses(convs)})
}

func (h *ConversationHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	convID, ok := pathID(c, "id", msgConversationNotFound)
	if !ok {
		return
	}

	conv, err := h.conversations.Get(c.Request.Context(), user.ID, convID)
	if err != nil {
		writeError(c, err, "get conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation": dto.ToConversationResponse(conv)})
}

func (h *ConversationHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}

	leadID, err := optionalID(req.LeadID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	params := service.CreateConversationParams{
		Customer: req.Customer,
		Subject:  req.Subject,
		Channel:  req.Channel,
		Status:   req.Status,
		LeadID:   leadID,
	}
	for _, m := range req.Thread {
		params.Thread = append(params.Thread, service.SeedMessage{
			Type:    domain.MessageType(m.Type),
			Content: m.Content,
		})
	}

	conv, err := h.conversations.Create(c.Request.Context(), user.ID, params)
	if err != nil {
		writeError(c, err, "create conversation")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"conversation": dto.ToConversationResponse(conv)})
}

func (h *ConversationHandler) UpdateStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	convID, ok := pathID(c, "id", msgConversationNotFound)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}
	status, valid := domain.ParseStatus(req.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{ConversationID: &convID})
	conv, err := h.conversations.UpdateStatus(ctx, user.ID, convID, status)
	if err != nil {
		writeError(c, err, "update status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation": dto.ToConversationResponse(conv)})
}

func (h *ConversationHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	convID, ok := pathID(c, "id", msgConversationNotFound)
	if !ok {
		return
	}

	summary, err := h.conversations.Summary(c.Request.Context(), user.ID, convID)
	if err != nil {
		writeError(c, err, "get summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": dto.ToSummaryResponse(summary)})
}

func (h *ConversationHandler) RequestSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	convID, ok := pathID(c, "id", msgConversationNotFound)
	if !ok {
		return
	}

	if err := h.conversations.RequestSummary(c.Request.Context(), user.ID, convID); err != nil {
		writeError(c, err, "request summary")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
