package messaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

type recordingSender struct {
	mu   sync.Mutex
	to   []string
	body []string
}

func (r *recordingSender) SendMessage(ctx context.Context, to, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.to = append(r.to, to)
	r.body = append(r.body, message)
	return nil
}

func postForm(t *testing.T, svc *TwilioService, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	svc.TwilioWebhookHandler(rec, req)
	return rec
}

func TestTwilioWebhookTextMessage(t *testing.T) {
	svc := NewTwilioService(&recordingSender{})

	rec := postForm(t, svc, url.Values{
		"From": {"whatsapp:+255713777001"},
		"Body": {"Masaki"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	msg := receiveMessage(t, svc.Messages())
	if msg.SessionID != "whatsapp:+255713777001" || msg.Kind != models.MessageKindText || msg.Text != "Masaki" {
		t.Errorf("inbound message = %+v", msg)
	}
}

func TestTwilioWebhookLocationShare(t *testing.T) {
	svc := NewTwilioService(&recordingSender{})

	rec := postForm(t, svc, url.Values{
		"From":      {"whatsapp:+255713777001"},
		"Latitude":  {"-6.7333"},
		"Longitude": {"39.2833"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	msg := receiveMessage(t, svc.Messages())
	if msg.Kind != models.MessageKindLocation {
		t.Fatalf("kind = %s, want location", msg.Kind)
	}
	if msg.Latitude != -6.7333 || msg.Longitude != 39.2833 {
		t.Errorf("coordinates = (%v, %v)", msg.Latitude, msg.Longitude)
	}
}

func TestTwilioWebhookRejectsMissingFields(t *testing.T) {
	svc := NewTwilioService(&recordingSender{})

	rec := postForm(t, svc, url.Values{"Body": {"no sender"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing From status = %d, want 400", rec.Code)
	}

	rec = postForm(t, svc, url.Values{"From": {"whatsapp:+255713777001"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing Body status = %d, want 400", rec.Code)
	}
}

func TestTwilioSendMessageCanonicalizesAndFlattens(t *testing.T) {
	sender := &recordingSender{}
	svc := NewTwilioService(sender)

	err := svc.SendMessage(context.Background(), "whatsapp:+255 713 777 001", models.OutboundMessage{
		Body: "Directions below.",
		Attachments: []models.Attachment{
			{Kind: models.AttachmentMapPin, Latitude: -6.74, Longitude: 39.28, Name: "Samaki Samaki"},
		},
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.to) != 1 {
		t.Fatalf("sent %d messages", len(sender.to))
	}
	if sender.to[0] != "+255713777001" {
		t.Errorf("recipient = %q, want +255713777001", sender.to[0])
	}
	if !strings.Contains(sender.body[0], "Samaki Samaki") {
		t.Errorf("body missing flattened pin: %q", sender.body[0])
	}
}

func TestTwilioSendMessageAfterStop(t *testing.T) {
	svc := NewTwilioService(&recordingSender{})
	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	err := svc.SendMessage(context.Background(), "whatsapp:+255713777001", models.OutboundMessage{Body: "hi"})
	if err != ErrServiceStopped {
		t.Errorf("SendMessage() after Stop = %v, want ErrServiceStopped", err)
	}
}
