package dto

// SendMessageRequest binding failures all answer with the same missing-fields body.
// Whitespace-only values pass binding and are caught by the service.
type SendMessageRequest struct {
	UserID         string  `json:"userId" binding:"required"`
	To             string  `json:"to" binding:"required,max=255"`
	Message        string  `json:"message" binding:"required"`
	ConversationID *string `json:"conversationId,omitempty"`
}

type SendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
}
