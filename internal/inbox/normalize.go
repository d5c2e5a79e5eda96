package inbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"leados.app/inbox/internal/domain"
)

type NormalizeResult struct {
	Conversations []Conversation
	// Dropped counts records without an id or that were not objects.
	Dropped int
}

// Every field but the envelope is decoded lazily so an odd type on an optional field
// never costs the whole record.
type rawMessage struct {
	Type      json.RawMessage `json:"type"`
	Content   json.RawMessage `json:"content"`
	Timestamp json.RawMessage `json:"timestamp"`
}

type rawConversation struct {
	ID             json.RawMessage `json:"id"`
	Customer       json.RawMessage `json:"customer"`
	Subject        json.RawMessage `json:"subject"`
	Channel        json.RawMessage `json:"channel"`
	Status         json.RawMessage `json:"status"`
	Thread         json.RawMessage `json:"thread"`
	LastMessage    json.RawMessage `json:"lastMessage"`
	LastMessageAlt json.RawMessage `json:"last_message"`
	Timestamp      json.RawMessage `json:"timestamp"`
	LeadID         json.RawMessage `json:"leadId"`
	LeadIDAlt      json.RawMessage `json:"lead_id"`
}

// Normalize turns a raw JSON array of conversation-like records into Conversations.
// Missing optional fields get defaults; records without an id are dropped and counted.
// Two records with the same id are an error.
func Normalize(raw []byte) (NormalizeResult, error) {
	var result NormalizeResult

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return result, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return result, fmt.Errorf("conversations must be a JSON array: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	result.Conversations = make([]Conversation, 0, len(records))

	for _, rec := range records {
		var rc rawConversation
		if err := json.Unmarshal(rec, &rc); err != nil {
			result.Dropped++
			continue
		}

		conv, ok := normalizeOne(rc)
		if !ok {
			result.Dropped++
			continue
		}
		if _, dup := seen[conv.ID]; dup {
			return NormalizeResult{}, fmt.Errorf("%w: %s", ErrDuplicateID, conv.ID)
		}
		seen[conv.ID] = struct{}{}
		result.Conversations = append(result.Conversations, conv)
	}

	return result, nil
}

func normalizeOne(rc rawConversation) (Conversation, bool) {
	id := scalarString(rc.ID)
	if id == "" {
		return Conversation{}, false
	}

	thread := decodeThread(rc.Thread)
	conv := Conversation{
		ID:       id,
		Customer: scalarString(rc.Customer),
		Thread:   make([]Message, 0, len(thread)),
		Status:   domain.StatusNeedsAttention,
		LeadID:   scalarString(rc.LeadID),
	}
	if conv.LeadID == "" {
		conv.LeadID = scalarString(rc.LeadIDAlt)
	}
	conv.Subject, _ = scalarText(rc.Subject)

	channel := scalarString(rc.Channel)
	if ch, ok := domain.ParseChannel(channel); ok {
		conv.Channel = ch
	} else {
		// Kept verbatim so the row still renders; sending on it fails as unsupported.
		conv.Channel = domain.Channel(channel)
	}
	if st, ok := domain.ParseStatus(scalarString(rc.Status)); ok {
		conv.Status = st
	}

	for _, m := range thread {
		content, _ := scalarText(m.Content)
		conv.Thread = append(conv.Thread, Message{
			Type:      domain.MessageType(strings.ToLower(scalarString(m.Type))),
			Content:   content,
			Timestamp: scalarString(m.Timestamp),
		})
	}

	if last, ok := scalarText(rc.LastMessage); ok {
		conv.LastMessage = last
	} else if last, ok := scalarText(rc.LastMessageAlt); ok {
		conv.LastMessage = last
	} else if len(conv.Thread) > 0 {
		conv.LastMessage = conv.Thread[len(conv.Thread)-1].Content
	}

	conv.Timestamp = scalarString(rc.Timestamp)
	if conv.Timestamp == "" && len(conv.Thread) > 0 {
		conv.Timestamp = conv.Thread[len(conv.Thread)-1].Timestamp
	}

	return conv, true
}

// decodeThread keeps the object entries of a thread array; any other shape reads as empty.
func decodeThread(raw json.RawMessage) []rawMessage {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	thread := make([]rawMessage, 0, len(entries))
	for _, e := range entries {
		var m rawMessage
		if err := json.Unmarshal(e, &m); err != nil {
			continue
		}
		thread = append(thread, m)
	}
	return thread
}

// scalarString is scalarText trimmed.
func scalarString(raw json.RawMessage) string {
	s, _ := scalarText(raw)
	return strings.TrimSpace(s)
}

// scalarText reads a JSON string or number verbatim. ok is false for absent, null or
// non-scalar values.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", false
		}
		return n.String(), true
	default:
		return "", false
	}
}
