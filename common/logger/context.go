package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Handlers and workers enrich the context once; every slog call made with that context
// then carries user_id, conversation_id, etc. without repeating them.
type LogFields struct {
	UserID         *int64  // Authenticated dashboard user
	ConversationID *int64  // Conversation being read or mutated
	LeadID         *int64  // Lead resolved for a reply or appointment
	Channel        *string // Messaging channel (e.g., "whatsapp", "instagram")
	MessageID      *string // Redis stream message ID
	Component      string  // Component name (e.g., "inbox.worker.summary")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.ConversationID != nil {
		result.ConversationID = new.ConversationID
	}
	if new.LeadID != nil {
		result.LeadID = new.LeadID
	}
	if new.Channel != nil {
		result.Channel = new.Channel
	}
	if new.MessageID != nil {
		result.MessageID = new.MessageID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{LeadID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen bytes, appending "..." if truncated.
// Message bodies are truncated before they reach the logs.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
