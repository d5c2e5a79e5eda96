// Package summary asks an LLM for a short operator-facing digest of a conversation.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leados.app/inbox/common/llm"
	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/model"
)

var ErrEmptyThread = errors.New("conversation has no messages")

const systemPrompt = `You summarize customer conversations for a sales team inbox.
Messages from the customer are user turns. Automated replies and operator replies are assistant turns.
Write a two or three sentence summary of where the conversation stands and what the customer wants.
Classify the customer's sentiment as positive, neutral or negative.
Suggest a status: "Needs Attention" when a human should reply, "AI Handled" when automated replies are enough,
"Resolved" when nothing is left to do.`

// Result is the structured reply requested from the model.
type Result struct {
	Summary         string `json:"summary" jsonschema:"description=Two or three sentence summary"`
	Sentiment       string `json:"sentiment" jsonschema:"enum=positive,enum=neutral,enum=negative"`
	SuggestedStatus string `json:"suggested_status" jsonschema:"enum=Needs Attention,enum=AI Handled,enum=Resolved"`
}

type Summarizer struct {
	client    llm.Client
	maxTokens int
	schema    any
}

func New(client llm.Client, maxTokens int) *Summarizer {
	return &Summarizer{
		client:    client,
		maxTokens: maxTokens,
		schema:    llm.GenerateSchema[Result](),
	}
}

func (s *Summarizer) Model() string {
	return s.client.Model()
}

// Summarize produces a summary for the conversation and its thread.
func (s *Summarizer) Summarize(ctx context.Context, conv *model.Conversation) (*model.ConversationSummary, error) {
	if len(conv.Thread) == 0 {
		return nil, ErrEmptyThread
	}

	var out Result
	_, err := s.client.Chat(ctx, llm.Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   header(conv),
		Messages:     transcript(conv),
		SchemaName:   "conversation_summary",
		Schema:       s.schema,
		MaxTokens:    s.maxTokens,
		Temperature:  llm.Temp(0),
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("summarizing conversation %d: %w", conv.ID, err)
	}

	status, ok := domain.ParseStatus(out.SuggestedStatus)
	if !ok {
		status = domain.StatusNeedsAttention
	}

	return &model.ConversationSummary{
		ConversationID:  conv.ID,
		Summary:         strings.TrimSpace(out.Summary),
		Sentiment:       normalizeSentiment(out.Sentiment),
		SuggestedStatus: status,
		Model:           s.client.Model(),
	}, nil
}

func header(conv *model.Conversation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\nChannel: %s\nCurrent status: %s\n", conv.Customer, conv.Channel, conv.Status)
	if conv.Subject != nil && *conv.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", *conv.Subject)
	}
	b.WriteString("The transcript follows.")
	return b.String()
}

func transcript(conv *model.Conversation) []llm.Message {
	msgs := make([]llm.Message, 0, len(conv.Thread))
	for _, m := range conv.Thread {
		switch m.Type {
		case domain.MessageTypeUser:
			msgs = append(msgs, llm.Message{Role: llm.RoleUser, Name: conv.Customer, Content: m.Content})
		case domain.MessageTypeAI:
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: "[automated] " + m.Content})
		case domain.MessageTypeSDR:
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: "[operator] " + m.Content})
		}
	}
	return msgs
}

func normalizeSentiment(s string) string {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "positive", "negative", "neutral":
		return v
	default:
		return "neutral"
	}
}
