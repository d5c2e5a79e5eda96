package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"leados.app/inbox/common/id"
	"leados.app/inbox/internal/http/middleware"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/service"
)

const (
	msgMissingFields = "Missing required fields"
	msgInternal      = "Internal server error"
)

func currentUser(c *gin.Context) (*model.User, bool) {
	user := middleware.GetUser(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.UnauthorizedMessage})
		return nil, false
	}
	return user, true
}

// pathID parses an id path parameter; an unparseable id cannot name a row, so it is a 404.
func pathID(c *gin.Context, name, notFound string) (int64, bool) {
	v, err := id.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return 0, false
	}
	return v, true
}

func optionalID(raw *string) (*int64, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	v, err := id.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// writeError maps service errors onto the API's status codes. Anything unrecognised is logged
// and answered with a generic 500.
func writeError(c *gin.Context, err error, op string) {
	var status int
	var msg string

	switch {
	case errors.Is(err, service.ErrMissingFields):
		status, msg = http.StatusBadRequest, msgMissingFields
	case errors.Is(err, service.ErrInvalidSchedule):
		status, msg = http.StatusBadRequest, "Invalid date or time slot"
	case errors.Is(err, service.ErrInvalidChannel):
		status, msg = http.StatusBadRequest, "Invalid channel"
	case errors.Is(err, service.ErrInvalidStatus):
		status, msg = http.StatusBadRequest, "Invalid status"
	case errors.Is(err, service.ErrChannelMismatch):
		status, msg = http.StatusBadRequest, "Conversation belongs to a different channel"
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, "Forbidden"
	case errors.Is(err, service.ErrLeadNotFound):
		status, msg = http.StatusNotFound, "Lead not found"
	case errors.Is(err, service.ErrConversationNotFound):
		status, msg = http.StatusNotFound, "Conversation not found"
	case errors.Is(err, service.ErrSummaryNotFound):
		status, msg = http.StatusNotFound, "Summary not available yet"
	case errors.Is(err, service.ErrInvalidTransition):
		status, msg = http.StatusConflict, "Invalid status transition"
	case errors.Is(err, service.ErrChannelUnavailable):
		status, msg = http.StatusServiceUnavailable, "Channel is not configured"
	case errors.Is(err, service.ErrQueueUnavailable):
		status, msg = http.StatusServiceUnavailable, "Summaries are not available"
	default:
		slog.ErrorContext(c.Request.Context(), op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	slog.WarnContext(c.Request.Context(), op+" rejected", "error", err, "status", status)
	c.JSON(status, gin.H{"error": msg})
}
