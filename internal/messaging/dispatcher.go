package messaging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// Handler processes one inbound message into one reply. Implemented by the
// conversation engine.
type Handler interface {
	Handle(ctx context.Context, msg models.InboundMessage) (models.OutboundMessage, error)
}

// Dispatcher pumps inbound messages from a channel service through the
// handler and sends the replies back out. Messages are routed to a FIFO
// queue per session, each drained by its own worker, so messages from one
// session are applied in arrival order while different sessions never wait
// on each other.
type Dispatcher struct {
	service Service
	handler Handler

	mu      sync.Mutex
	queues  map[string]chan models.InboundMessage
	workers sync.WaitGroup
}

// NewDispatcher wires a messaging service to a handler.
func NewDispatcher(service Service, handler Handler) *Dispatcher {
	return &Dispatcher{
		service: service,
		handler: handler,
		queues:  make(map[string]chan models.InboundMessage),
	}
}

// Run consumes inbound messages until the channel closes or the context is
// cancelled, then waits for the session workers to drain. It returns nil on
// clean shutdown.
func (d *Dispatcher) Run(ctx context.Context) error {
	slog.Info("Dispatcher running")
	defer d.shutdown()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Dispatcher stopping: context cancelled")
			return nil
		case msg, ok := <-d.service.Messages():
			if !ok {
				slog.Info("Dispatcher stopping: message channel closed")
				return nil
			}
			d.enqueue(ctx, msg)
		}
	}
}

// enqueue routes a message to its session's queue, creating the queue and
// its worker on the session's first message. Runs only on the Run
// goroutine, so per-session arrival order is preserved.
func (d *Dispatcher) enqueue(ctx context.Context, msg models.InboundMessage) {
	d.mu.Lock()
	q, ok := d.queues[msg.SessionID]
	if !ok {
		q = make(chan models.InboundMessage, DefaultChannelBufferSize)
		d.queues[msg.SessionID] = q
		d.workers.Add(1)
		go d.sessionWorker(ctx, msg.SessionID, q)
	}
	d.mu.Unlock()

	select {
	case q <- msg:
	case <-time.After(DefaultChannelTimeout):
		slog.Warn("Dispatcher session queue blocked, dropping message", "session_id", msg.SessionID)
	}
}

// sessionWorker applies one session's messages strictly in queue order.
func (d *Dispatcher) sessionWorker(ctx context.Context, sessionID string, q chan models.InboundMessage) {
	defer d.workers.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-q:
			if !ok {
				return
			}
			d.handleOne(ctx, msg)
		}
	}
}

// shutdown closes the session queues and waits for in-flight messages.
func (d *Dispatcher) shutdown() {
	d.mu.Lock()
	for _, q := range d.queues {
		close(q)
	}
	d.queues = make(map[string]chan models.InboundMessage)
	d.mu.Unlock()
	d.workers.Wait()
}

func (d *Dispatcher) handleOne(ctx context.Context, msg models.InboundMessage) {
	reply, err := d.handler.Handle(ctx, msg)
	if err != nil {
		slog.Error("Dispatcher handler rejected message", "session_id", msg.SessionID, "error", err)
		return
	}
	if reply.Body == "" {
		return
	}
	if err := d.service.SendMessage(ctx, msg.SessionID, reply); err != nil {
		slog.Error("Dispatcher failed to send reply", "session_id", msg.SessionID, "error", err)
	}
}
