package service

import "errors"

var (
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrUserNotFound   = errors.New("user not found")
	ErrSessionExpired = errors.New("session expired")

	ErrLeadNotFound         = errors.New("lead not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSummaryNotFound      = errors.New("summary not found")

	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidSchedule    = errors.New("invalid date or time slot")
	ErrInvalidChannel     = errors.New("invalid channel")
	ErrChannelMismatch    = errors.New("conversation is on a different channel")
	ErrForbidden          = errors.New("forbidden")
	ErrChannelUnavailable = errors.New("channel not configured")
	ErrQueueUnavailable   = errors.New("summary queue not configured")
)
