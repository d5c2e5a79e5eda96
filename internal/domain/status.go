package domain

import "strings"

// ConversationStatus tracks where a conversation sits in the operator workflow.
type ConversationStatus string

const (
	StatusNeedsAttention ConversationStatus = "Needs Attention"
	StatusAIHandled      ConversationStatus = "AI Handled"
	StatusResolved       ConversationStatus = "Resolved"
)

var Statuses = []ConversationStatus{StatusNeedsAttention, StatusAIHandled, StatusResolved}

// ParseStatus matches case-insensitively and accepts snake_case spellings
// such as "needs_attention".
func ParseStatus(s string) (ConversationStatus, bool) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), "_", " ")
	for _, st := range Statuses {
		if strings.EqualFold(norm, string(st)) {
			return st, true
		}
	}
	return "", false
}

func (s ConversationStatus) IsValid() bool {
	switch s {
	case StatusNeedsAttention, StatusAIHandled, StatusResolved:
		return true
	}
	return false
}

// CanTransitionTo reports whether a conversation may move from s to next.
// Resolved is terminal. Setting the current status again is allowed and has no effect.
func (s ConversationStatus) CanTransitionTo(next ConversationStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	return s != StatusResolved
}
