package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hudumahub/HudumaFinder/internal/models"
	"github.com/hudumahub/HudumaFinder/internal/twiliowhatsapp"
)

// TwilioService implements the Service interface using the Twilio API.
// Inbound traffic arrives through TwilioWebhookHandler; attachments are
// flattened into text because the Twilio Go SDK has no location payload.
type TwilioService struct {
	client   twiliowhatsapp.Sender
	messages chan models.InboundMessage
	done     chan struct{}
	mu       sync.RWMutex
	stopped  bool
}

// NewTwilioService creates a new TwilioService with the given sender.
func NewTwilioService(client twiliowhatsapp.Sender) *TwilioService {
	return &TwilioService{
		client:   client,
		messages: make(chan models.InboundMessage, DefaultChannelBufferSize),
		done:     make(chan struct{}),
	}
}

// ValidateAndCanonicalizeRecipient reduces a WhatsApp phone number to bare
// digits and validates the result.
func (s *TwilioService) ValidateAndCanonicalizeRecipient(recipient string) (string, error) {
	canonical, err := canonicalPhoneLogged(recipient)
	if err != nil {
		return "", err
	}
	return canonical, nil
}

func canonicalPhoneLogged(recipient string) (string, error) {
	canonical, err := canonicalizePhone(recipient)
	if err != nil {
		return "", err
	}
	if canonical != recipient {
		slog.Debug("TwilioService canonicalized recipient", "original", recipient, "canonical", canonical)
	}
	return canonical, nil
}

// Start is a no-op for Twilio (inbound arrives via webhook).
func (s *TwilioService) Start(ctx context.Context) error {
	return nil
}

// Stop closes channels and stops the service.
func (s *TwilioService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	s.stopped = true
	close(s.done)

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(s.messages)
	}()

	return nil
}

// SendMessage sends a reply via Twilio. Map pins are appended to the body
// as coordinates.
func (s *TwilioService) SendMessage(ctx context.Context, to string, out models.OutboundMessage) error {
	s.mu.RLock()
	if s.stopped {
		s.mu.RUnlock()
		return ErrServiceStopped
	}
	s.mu.RUnlock()

	canonicalTo, err := s.ValidateAndCanonicalizeRecipient(to)
	if err != nil {
		slog.Error("TwilioService SendMessage validation error", "error", err, "to", to)
		return err
	}

	return s.client.SendMessage(ctx, "+"+canonicalTo, renderAttachmentsAsText(out))
}

// Messages returns the channel of inbound messages fed by the webhook.
func (s *TwilioService) Messages() <-chan models.InboundMessage {
	return s.messages
}

// TwilioWebhookHandler handles inbound Twilio webhook requests. Twilio
// posts Latitude/Longitude form fields for WhatsApp location shares, which
// map to a location-kind inbound message.
func (s *TwilioService) TwilioWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Error("Failed to parse Twilio webhook form", "error", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	from := r.FormValue("From")
	body := r.FormValue("Body")
	lat := r.FormValue("Latitude")
	lon := r.FormValue("Longitude")

	if from == "" || (body == "" && lat == "") {
		slog.Warn("Twilio webhook missing fields", "from", from)
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	msg := models.InboundMessage{
		SessionID: from,
		Kind:      models.MessageKindText,
		Text:      body,
		Time:      time.Now().Unix(),
	}
	if lat != "" && lon != "" {
		la, errLat := strconv.ParseFloat(lat, 64)
		lo, errLon := strconv.ParseFloat(lon, 64)
		if errLat == nil && errLon == nil {
			msg.Kind = models.MessageKindLocation
			msg.Latitude = la
			msg.Longitude = lo
		}
	}

	slog.Info("Inbound WhatsApp message from Twilio", "from", from, "kind", msg.Kind)
	s.safeEmitMessage(msg)

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// safeEmitMessage pushes an inbound message without blocking the webhook.
func (s *TwilioService) safeEmitMessage(msg models.InboundMessage) {
	s.mu.RLock()
	stopped := s.stopped
	s.mu.RUnlock()
	if stopped {
		slog.Warn("TwilioService dropping inbound message (service stopped)", "from", msg.SessionID)
		return
	}

	select {
	case s.messages <- msg:
		slog.Debug("TwilioService emitted inbound message", "from", msg.SessionID)
	case <-time.After(DefaultChannelTimeout):
		slog.Warn("TwilioService messages channel blocked, dropping message", "from", msg.SessionID)
	}
}
