package queue

type TaskType string

const (
	TaskTypeConversationSummary TaskType = "conversation_summary"
)

// SummaryReason records what triggered a summary refresh.
type SummaryReason string

const (
	SummaryReasonReplySent SummaryReason = "reply_sent"
	SummaryReasonRequested SummaryReason = "requested"
)

type Task struct {
	TaskType       TaskType
	ConversationID int64
	UserID         int64
	Reason         SummaryReason
	TraceID        *string
	Attempt        int
}
