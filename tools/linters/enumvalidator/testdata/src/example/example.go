package example

type Channel string

const (
	ChannelWhatsApp Channel = "WhatsApp"
	ChannelGmail    Channel = "Gmail"
)

type ConversationStatus string

const (
	StatusNeedsAttention ConversationStatus = "Needs Attention"
	StatusResolved       ConversationStatus = "Resolved"
)

type MessageType string

const (
	MessageTypeSDR MessageType = "sdr"
)

type Message struct {
	Type MessageType
}

type Conversation struct {
	Channel Channel
	Status  ConversationStatus
}

func bad() {
	c := &Conversation{}
	c.Channel = "Telegram" // want "enum field Channel assigned string literal"
	c.Status = "Closed"    // want "enum field Status assigned string literal"

	m := Message{Type: "sdr"} // want "enum field Type assigned string literal"
	_ = m
}

func good() {
	c := &Conversation{}
	c.Channel = ChannelWhatsApp
	c.Status = StatusResolved

	m := Message{Type: MessageTypeSDR}
	_ = m
}

func alsoGood() {
	// Variable, not literal
	status := StatusNeedsAttention
	c := &Conversation{Channel: ChannelGmail, Status: status}
	_ = c
}
