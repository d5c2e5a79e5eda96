package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"leados.app/inbox/common/id"
	"leados.app/inbox/common/logger"
	"leados.app/inbox/core/config"
	"leados.app/inbox/internal/model"
	"leados.app/inbox/internal/store"
)

const defaultSessionTTL = 7 * 24 * time.Hour

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error)
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, error)
	Logout(ctx context.Context, sessionID int64) error
}

// CodeExchanger trades an AuthKit callback code for the signed-in WorkOS user.
type CodeExchanger func(ctx context.Context, opts usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error)

type AuthOption func(*authService)

func WithCodeExchanger(fn CodeExchanger) AuthOption {
	return func(s *authService) { s.exchange = fn }
}

func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *authService) { s.now = now }
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	cfg          config.WorkOSConfig
	exchange     CodeExchanger
	now          func() time.Time
}

// NewAuthService signs operators in through WorkOS AuthKit. Sessions last cfg.SessionTTL,
// or a week when unset.
func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	cfg config.WorkOSConfig,
	opts ...AuthOption,
) AuthService {
	usermanagement.SetAPIKey(cfg.APIKey)
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	s := &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		cfg:          cfg,
		exchange:     usermanagement.AuthenticateWithCode,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    s.cfg.ClientID,
		RedirectURI: s.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "inbox.auth"})

	authResponse, err := s.exchange(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: s.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		slog.WarnContext(ctx, "code exchange rejected", "error", err)
		return nil, nil, ErrInvalidCode
	}

	workosUser := authResponse.User
	user := &model.User{
		ID:       id.New(),
		Name:     operatorName(workosUser),
		Email:    workosUser.Email,
		WorkOSID: &workosUser.ID,
	}
	if workosUser.ProfilePictureURL != "" {
		user.AvatarURL = &workosUser.ProfilePictureURL
	}

	if err := s.userStore.UpsertByWorkOSID(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("upserting operator %s: %w", workosUser.ID, err)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})

	// Login is the only write path for sessions, so stale rows are swept here.
	if err := s.sessionStore.DeleteExpired(ctx); err != nil {
		slog.WarnContext(ctx, "pruning expired sessions failed", "error", err)
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.cfg.SessionTTL),
	}
	if err := s.sessionStore.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	attrs := []any{"session_id", session.ID, "expires_at", session.ExpiresAt}
	if imp := authResponse.Impersonator; imp != nil {
		attrs = append(attrs, "impersonator", imp.Email, "impersonation_reason", imp.Reason)
	}
	slog.InfoContext(ctx, "operator signed in", attrs...)

	return user, session, nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, error) {
	session, err := s.sessionStore.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, sessionID int64) error {
	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	slog.InfoContext(ctx, "operator signed out", "session_id", sessionID)
	return nil
}

// operatorName is the name shown on sent replies; it falls back to the email.
func operatorName(user usermanagement.User) string {
	if name := strings.TrimSpace(user.FirstName + " " + user.LastName); name != "" {
		return name
	}
	return user.Email
}
