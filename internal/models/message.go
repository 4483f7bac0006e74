// Package models defines the channel-adapter message contracts.
package models

// MessageKind distinguishes inbound message payloads.
type MessageKind string

const (
	// MessageKindText is a plain text message.
	MessageKindText MessageKind = "text"
	// MessageKindLocation is an explicit location share (lat/lon payload).
	MessageKindLocation MessageKind = "location"
)

// InboundMessage is one message from a user, as normalized by a channel
// adapter (WhatsApp, Twilio webhook, console).
type InboundMessage struct {
	SessionID string      `json:"session_id"`
	Kind      MessageKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	Latitude  float64     `json:"latitude,omitempty"`
	Longitude float64     `json:"longitude,omitempty"`
	Time      int64       `json:"time,omitempty"`
}

// Validate checks the inbound message against the boundary contract.
func (m *InboundMessage) Validate() error {
	if m.SessionID == "" {
		return ErrEmptySessionID
	}
	switch m.Kind {
	case MessageKindText:
		return nil
	case MessageKindLocation:
		if m.Latitude == 0 && m.Longitude == 0 {
			return ErrMissingCoordinates
		}
		return nil
	default:
		return ErrUnknownMessageKind
	}
}

// AttachmentKind distinguishes outbound attachment payloads.
type AttachmentKind string

const (
	// AttachmentMapPin carries coordinates for a location pin.
	AttachmentMapPin AttachmentKind = "map_pin"
	// AttachmentLink carries a URL.
	AttachmentLink AttachmentKind = "link"
)

// Attachment is a channel-agnostic outbound payload; rendering into a
// specific channel's format is the adapter's responsibility.
type Attachment struct {
	Kind      AttachmentKind `json:"kind"`
	URL       string         `json:"url,omitempty"`
	Latitude  float64        `json:"latitude,omitempty"`
	Longitude float64        `json:"longitude,omitempty"`
	Name      string         `json:"name,omitempty"`
}

// OutboundMessage is the engine's reply to one inbound message.
type OutboundMessage struct {
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments,omitempty"`
}
