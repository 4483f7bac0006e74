// Package messaging defines the pluggable delivery channels (WhatsApp via
// Whatsmeow, WhatsApp via Twilio, and an interactive console) and the
// dispatcher that connects them to the conversation engine.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// Constants for messaging service configuration
const (
	// DefaultChannelBufferSize defines the default buffer size for inbound message channels
	DefaultChannelBufferSize = 100
	// DefaultChannelTimeout defines the default timeout for non-blocking channel operations
	DefaultChannelTimeout = 1 * time.Second
)

// ErrServiceStopped is returned by send operations after Stop.
var ErrServiceStopped = errors.New("messaging service stopped")

// phoneNumberRegex strips every non-digit from a recipient identifier.
var phoneNumberRegex = regexp.MustCompile(`[^0-9]`)

// Service defines a pluggable message delivery abstraction. It supports
// sending replies and provides a channel of normalized inbound messages.
type Service interface {
	// ValidateAndCanonicalizeRecipient validates and canonicalizes a recipient
	// identifier. Each service implements its own recipient rules.
	ValidateAndCanonicalizeRecipient(recipient string) (string, error)

	// SendMessage delivers one outbound message, including attachments where
	// the channel supports them.
	SendMessage(ctx context.Context, to string, out models.OutboundMessage) error

	// Start begins any background processing (e.g., listening for events).
	Start(ctx context.Context) error

	// Stop stops background processing and cleans up resources.
	Stop() error

	// Messages returns a channel of normalized inbound user messages.
	Messages() <-chan models.InboundMessage
}

// canonicalizePhone reduces a recipient to bare digits and validates length.
// Shared by the phone-number based channels.
func canonicalizePhone(recipient string) (string, error) {
	if recipient == "" {
		return "", fmt.Errorf("recipient cannot be empty")
	}
	canonical := phoneNumberRegex.ReplaceAllString(recipient, "")
	if canonical == "" {
		return "", fmt.Errorf("invalid phone number: no digits found in recipient %q", recipient)
	}
	if len(canonical) < 6 {
		return "", fmt.Errorf("invalid phone number: %q is too short (minimum 6 digits required)", canonical)
	}
	return canonical, nil
}

// renderAttachmentsAsText flattens attachments into message text for
// channels that cannot send pins natively. Link attachments are assumed to
// already appear in the body and are skipped.
func renderAttachmentsAsText(out models.OutboundMessage) string {
	var b strings.Builder
	b.WriteString(out.Body)
	for _, att := range out.Attachments {
		if att.Kind != models.AttachmentMapPin {
			continue
		}
		fmt.Fprintf(&b, "\n\n📍 %s: %f, %f", att.Name, att.Latitude, att.Longitude)
	}
	return b.String()
}
