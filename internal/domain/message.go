package domain

// MessageType identifies who authored a thread entry.
type MessageType string

const (
	MessageTypeUser MessageType = "user" // inbound from the customer
	MessageTypeAI   MessageType = "ai"
	MessageTypeSDR  MessageType = "sdr" // human operator reply
)

func (t MessageType) IsValid() bool {
	switch t {
	case MessageTypeUser, MessageTypeAI, MessageTypeSDR:
		return true
	}
	return false
}
