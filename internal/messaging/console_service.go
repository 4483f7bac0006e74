package messaging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hudumahub/HudumaFinder/internal/geo"
	"github.com/hudumahub/HudumaFinder/internal/models"
)

// ConsoleSessionID is the fixed session id for the interactive console.
const ConsoleSessionID = "console"

// ConsoleService implements Service over stdin/stdout for local testing
// without any WhatsApp account. A line of the form "pin <lat>,<lon>"
// simulates a shared location; "quit" ends the session.
type ConsoleService struct {
	in       io.Reader
	out      io.Writer
	messages chan models.InboundMessage
	done     chan struct{}
	once     sync.Once
}

// NewConsoleService creates a console channel reading from in and writing to out.
func NewConsoleService(in io.Reader, out io.Writer) *ConsoleService {
	return &ConsoleService{
		in:       in,
		out:      out,
		messages: make(chan models.InboundMessage, DefaultChannelBufferSize),
		done:     make(chan struct{}),
	}
}

// ValidateAndCanonicalizeRecipient accepts any non-empty identifier; the
// console has a single implicit user.
func (s *ConsoleService) ValidateAndCanonicalizeRecipient(recipient string) (string, error) {
	if recipient == "" {
		return "", fmt.Errorf("recipient cannot be empty")
	}
	return recipient, nil
}

// Start launches the stdin reader loop.
func (s *ConsoleService) Start(ctx context.Context) error {
	fmt.Fprintln(s.out, "🇹🇿 HudumaFinder console. Type a message, \"pin <lat>,<lon>\" to share a location, or \"quit\" to exit.")
	go s.readLoop(ctx)
	return nil
}

// Stop stops the reader loop and closes the message channel.
func (s *ConsoleService) Stop() error {
	s.once.Do(func() {
		close(s.done)
		close(s.messages)
	})
	return nil
}

// SendMessage prints the reply. Attachments render as text lines.
func (s *ConsoleService) SendMessage(ctx context.Context, to string, out models.OutboundMessage) error {
	_, err := fmt.Fprintf(s.out, "\n%s\n\n> ", renderAttachmentsAsText(out))
	return err
}

// Messages returns the channel of typed-in messages.
func (s *ConsoleService) Messages() <-chan models.InboundMessage {
	return s.messages
}

func (s *ConsoleService) readLoop(ctx context.Context) {
	// Closing the message channel on exit lets the dispatcher observe
	// "quit" and stdin EOF as a clean shutdown.
	defer s.Stop()

	fmt.Fprint(s.out, "> ")
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(s.out, "> ")
			continue
		}
		if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
			fmt.Fprintln(s.out, "Kwaheri! 👋")
			return
		}

		msg := models.InboundMessage{
			SessionID: ConsoleSessionID,
			Kind:      models.MessageKindText,
			Text:      line,
			Time:      time.Now().Unix(),
		}
		if coords, ok := strings.CutPrefix(line, "pin "); ok {
			if loc, parsed := geo.ParseCoordinates(coords); parsed {
				msg.Kind = models.MessageKindLocation
				msg.Latitude = loc.Latitude
				msg.Longitude = loc.Longitude
				msg.Text = ""
			}
		}

		select {
		case s.messages <- msg:
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("ConsoleService read error", "error", err)
	}
}
