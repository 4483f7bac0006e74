package messaging

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mau.fi/whatsmeow/types/events"

	"github.com/hudumahub/HudumaFinder/internal/models"
	"github.com/hudumahub/HudumaFinder/internal/whatsapp"
)

// WhatsAppService implements Service using the Whatsmeow-based whatsapp
// client. Incoming text and shared-location events are normalized into
// models.InboundMessage; outbound map pins are sent as native WhatsApp
// location messages.
type WhatsAppService struct {
	client   whatsapp.Sender
	waClient *whatsapp.Client // access to underlying client for event handling
	messages chan models.InboundMessage
	done     chan struct{}
}

// NewWhatsAppService creates a new WhatsAppService wrapping the given Sender.
func NewWhatsAppService(client whatsapp.Sender) *WhatsAppService {
	service := &WhatsAppService{
		client:   client,
		messages: make(chan models.InboundMessage, DefaultChannelBufferSize),
		done:     make(chan struct{}),
	}

	// If the client is a full Client (not just an interface), store it for event handling
	if waClient, ok := client.(*whatsapp.Client); ok {
		service.waClient = waClient
		slog.Debug("WhatsAppService created with full client for event handling")
	} else {
		slog.Debug("WhatsAppService created with interface client (likely mock)")
	}

	return service
}

// ValidateAndCanonicalizeRecipient reduces a WhatsApp recipient to bare digits.
func (s *WhatsAppService) ValidateAndCanonicalizeRecipient(recipient string) (string, error) {
	return canonicalizePhone(recipient)
}

// Start begins background event processing.
func (s *WhatsAppService) Start(ctx context.Context) error {
	slog.Debug("WhatsAppService Start invoked")

	if s.waClient != nil {
		go s.handleEvents(ctx)
		slog.Debug("WhatsAppService event handler started")
	} else {
		slog.Debug("WhatsAppService no full client available, skipping event handling (likely mock)")
	}

	return nil
}

// Stop stops background processing.
func (s *WhatsAppService) Stop() error {
	slog.Info("WhatsAppService Stop invoked")
	close(s.done)
	close(s.messages)
	return nil
}

// SendMessage delivers one reply. The body goes out as a text message;
// map-pin attachments follow as native location messages so the user gets
// a tappable pin.
func (s *WhatsAppService) SendMessage(ctx context.Context, to string, out models.OutboundMessage) error {
	canonical, err := s.ValidateAndCanonicalizeRecipient(to)
	if err != nil {
		slog.Error("WhatsAppService SendMessage validation error", "error", err, "to", to)
		return err
	}

	if err := s.client.SendMessage(ctx, canonical, out.Body); err != nil {
		slog.Error("WhatsAppService SendMessage error", "error", err, "to", canonical)
		return err
	}

	for _, att := range out.Attachments {
		if att.Kind != models.AttachmentMapPin {
			continue
		}
		if err := s.client.SendLocation(ctx, canonical, att.Latitude, att.Longitude, att.Name); err != nil {
			slog.Error("WhatsAppService failed to send location pin", "error", err, "to", canonical)
			return err
		}
	}

	slog.Debug("WhatsAppService message sent", "to", canonical, "attachments", len(out.Attachments))
	return nil
}

// Messages returns the channel of normalized inbound messages.
func (s *WhatsAppService) Messages() <-chan models.InboundMessage {
	return s.messages
}

// handleEvents registers the Whatsmeow event handler and feeds inbound
// messages into the messages channel.
func (s *WhatsAppService) handleEvents(ctx context.Context) {
	if s.waClient == nil || s.waClient.GetClient() == nil {
		slog.Error("WhatsAppService handleEvents: no client available")
		return
	}

	s.waClient.GetClient().AddEventHandler(func(evt interface{}) {
		if v, ok := evt.(*events.Message); ok {
			s.handleIncomingMessage(v)
		}
	})

	slog.Debug("WhatsAppService event handler registered")

	// Keep handler running until context is cancelled
	<-ctx.Done()
	slog.Debug("WhatsAppService handleEvents stopping due to context cancellation")
}

// handleIncomingMessage normalizes one incoming WhatsApp message. Text and
// shared locations are forwarded; other payloads (images, audio) are skipped.
func (s *WhatsAppService) handleIncomingMessage(evt *events.Message) {
	if evt.Message == nil {
		return
	}

	msg := models.InboundMessage{
		SessionID: canonicalJIDNumber(evt.Info.Sender.User),
		Time:      evt.Info.Timestamp.Unix(),
	}

	switch {
	case evt.Message.Conversation != nil:
		msg.Kind = models.MessageKindText
		msg.Text = *evt.Message.Conversation
	case evt.Message.ExtendedTextMessage != nil && evt.Message.ExtendedTextMessage.Text != nil:
		msg.Kind = models.MessageKindText
		msg.Text = *evt.Message.ExtendedTextMessage.Text
	case evt.Message.LocationMessage != nil:
		loc := evt.Message.LocationMessage
		msg.Kind = models.MessageKindLocation
		msg.Latitude = loc.GetDegreesLatitude()
		msg.Longitude = loc.GetDegreesLongitude()
	default:
		slog.Debug("WhatsAppService ignoring unsupported message payload", "from", evt.Info.Sender.String())
		return
	}

	select {
	case s.messages <- msg:
		slog.Debug("WhatsAppService incoming message forwarded", "from", msg.SessionID, "kind", msg.Kind)
	case <-time.After(DefaultChannelTimeout):
		slog.Warn("WhatsAppService messages channel blocked, dropping message", "from", msg.SessionID, "timeout", DefaultChannelTimeout)
	}
}

// canonicalJIDNumber converts a JID user part to E.164-ish form.
func canonicalJIDNumber(user string) string {
	if !strings.HasPrefix(user, "+") {
		return "+" + user
	}
	return user
}
