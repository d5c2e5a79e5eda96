package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"leados.app/inbox/internal/channel"
	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/http/dto"
	"leados.app/inbox/internal/service"
)

type MessageHandler struct {
	messages service.MessageService
}

func NewMessageHandler(messages service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send handles POST /api/messages/:endpoint for whatsapp, instagram and messenger.
func (h *MessageHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	endpoint, valid := domain.ParseEndpoint(c.Param("endpoint"))
	if !valid {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown messaging endpoint"})
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}

	convID, err := optionalID(req.ConversationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgConversationNotFound})
		return
	}

	result, err := h.messages.Send(ctx, service.SendMessageParams{
		Endpoint:       endpoint,
		SessionUserID:  user.ID,
		UserID:         req.UserID,
		To:             req.To,
		Message:        req.Message,
		ConversationID: convID,
	})
	if err != nil {
		var perr *channel.ProviderError
		if errors.As(err, &perr) {
			slog.WarnContext(ctx, "provider rejected message",
				"provider", perr.Provider,
				"status", perr.StatusCode,
				"code", perr.Code)
			msg := perr.Message
			if msg == "" {
				msg = "Failed to send message"
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": msg})
			return
		}
		writeError(c, err, "send message")
		return
	}

	c.JSON(http.StatusOK, dto.SendMessageResponse{
		Success:   true,
		MessageID: result.ProviderMessageID,
	})
}
