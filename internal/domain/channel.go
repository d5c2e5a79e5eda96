package domain

import "strings"

// Channel is the messaging surface a conversation happens on.
type Channel string

const (
	ChannelWhatsApp  Channel = "WhatsApp"
	ChannelInstagram Channel = "Instagram"
	ChannelFacebook  Channel = "Facebook"
	ChannelGmail     Channel = "Gmail"
)

// Channels lists every known channel in display order.
var Channels = []Channel{ChannelWhatsApp, ChannelInstagram, ChannelFacebook, ChannelGmail}

// Endpoint names the outbound message route for a channel, e.g. /api/messages/{endpoint}.
type Endpoint string

const (
	EndpointWhatsApp  Endpoint = "whatsapp"
	EndpointInstagram Endpoint = "instagram"
	EndpointMessenger Endpoint = "messenger"
)

// ParseChannel matches a channel name case-insensitively.
func ParseChannel(s string) (Channel, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Channels {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	if strings.EqualFold(s, "messenger") {
		return ChannelFacebook, true
	}
	return "", false
}

func (c Channel) IsValid() bool {
	switch c {
	case ChannelWhatsApp, ChannelInstagram, ChannelFacebook, ChannelGmail:
		return true
	}
	return false
}

// Endpoint returns the outbound endpoint for replies on this channel.
// Gmail has no outbound route.
func (c Channel) Endpoint() (Endpoint, bool) {
	switch c {
	case ChannelWhatsApp:
		return EndpointWhatsApp, true
	case ChannelInstagram:
		return EndpointInstagram, true
	case ChannelFacebook:
		return EndpointMessenger, true
	default:
		return "", false
	}
}

// ParseEndpoint reads the {endpoint} path segment of a send route.
func ParseEndpoint(s string) (Endpoint, bool) {
	switch Endpoint(strings.ToLower(s)) {
	case EndpointWhatsApp:
		return EndpointWhatsApp, true
	case EndpointInstagram:
		return EndpointInstagram, true
	case EndpointMessenger:
		return EndpointMessenger, true
	}
	return "", false
}

// Channel returns the conversation channel served by this endpoint.
func (e Endpoint) Channel() Channel {
	switch e {
	case EndpointWhatsApp:
		return ChannelWhatsApp
	case EndpointInstagram:
		return ChannelInstagram
	default:
		return ChannelFacebook
	}
}
