package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leados.app/inbox/common/logger"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/service"
)

type contextKey string

const (
	SessionCookieName = "leados_session"
	SessionIDHeader   = "X-Session-ID"

	userContextKey      contextKey = "user"
	sessionIDContextKey contextKey = "session_id"
)

// UnauthorizedMessage is the body every /api route returns without a valid session.
const UnauthorizedMessage = "Unauthorized - Please log in"

// SessionValidator is the slice of AuthService the middleware needs.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, error)
}

// RequireAuth resolves the session from the cookie or the X-Session-ID header.
func RequireAuth(auth SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := SessionIDFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": UnauthorizedMessage})
			return
		}

		ctx := c.Request.Context()
		user, err := auth.ValidateSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				ClearSessionCookie(c, false)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": UnauthorizedMessage})
				return
			}
			slog.ErrorContext(ctx, "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx = context.WithValue(ctx, userContextKey, user)
		ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSessionID(ctx context.Context) int64 {
	sessionID, _ := ctx.Value(sessionIDContextKey).(int64)
	return sessionID
}

// WithUser attaches an authenticated user to ctx. Handler tests use it in place of RequireAuth.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func SessionIDFromRequest(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(SessionIDHeader)
	if raw == "" {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			return 0, false
		}
		raw = cookie
	}
	sessionID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || sessionID <= 0 {
		return 0, false
	}
	return sessionID, true
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}
