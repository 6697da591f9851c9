// Package eventbus fans journal domain events out to in-process
// subscribers: the log consumer, the event history, and the live
// WebSocket feed. Handlers publish after the store write succeeds;
// a single consumer goroutine serialises delivery, which also keeps
// the history store's SQLite writes single-file.
package eventbus

import (
	"context"
	"log"
	"sync"

	"github.com/marait123/gnothi/internal/event"
)

// Handler processes a domain event. Implementations must be safe for
// concurrent calls from different goroutines.
type Handler interface {
	HandleEvent(ctx context.Context, evt event.DomainEvent) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt event.DomainEvent) error

func (f HandlerFunc) HandleEvent(ctx context.Context, evt event.DomainEvent) error {
	return f(ctx, evt)
}

// Bus is the in-process event bus. Publishing never blocks a request
// handler: events land in a buffered channel and one consumer goroutine
// delivers them to every subscriber in subscription order.
//
// Lifecycle: Subscribe, then Start, then Stop. Stop (or cancelling the
// Start context) flushes whatever the buffer still holds before the
// consumer exits, so a short-lived process doesn't lose the tail of its
// history.
type Bus struct {
	mu          sync.RWMutex
	subscribers []namedHandler

	events chan event.DomainEvent
	quit   chan struct{}
	done   chan struct{}
	stop   sync.Once
}

type namedHandler struct {
	name    string
	handler Handler
}

// New creates a Bus whose buffer holds bufSize pending events.
func New(bufSize int) *Bus {
	if bufSize < 1 {
		bufSize = 256
	}
	return &Bus{
		events: make(chan event.DomainEvent, bufSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Subscribe registers a named handler. Must be called before Start.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, namedHandler{name: name, handler: h})
}

// Publish queues an event for delivery. When the buffer is full the
// event is dropped with a warning; a journal must never stall a save
// because a feed consumer fell behind.
func (b *Bus) Publish(_ context.Context, evt event.DomainEvent) {
	select {
	case b.events <- evt:
	default:
		log.Printf("eventbus: dropping %s (%s), delivery backlog full", evt.EventType, evt.ID)
	}
}

// Start launches the consumer goroutine. Delivery runs until Stop is
// called or ctx is cancelled, whichever comes first.
func (b *Bus) Start(ctx context.Context) {
	go b.consume(ctx)
}

func (b *Bus) consume(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case evt := <-b.events:
			b.deliver(ctx, evt)
		case <-b.quit:
			b.flush(ctx)
			return
		case <-ctx.Done():
			b.flush(ctx)
			return
		}
	}
}

// flush delivers every event still buffered, then returns. The parent
// context may already be cancelled at this point; delivery of the
// backlog proceeds regardless so the history record stays complete.
func (b *Bus) flush(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for {
		select {
		case evt := <-b.events:
			b.deliver(ctx, evt)
		default:
			return
		}
	}
}

// Stop flushes the buffer and waits for the consumer goroutine to exit.
// Safe to call more than once, and safe to race a context cancellation.
// Publishing after Stop doesn't panic; the events just sit in the
// buffer undelivered.
func (b *Bus) Stop() {
	b.stop.Do(func() { close(b.quit) })
	<-b.done
}

func (b *Bus) deliver(ctx context.Context, evt event.DomainEvent) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler.HandleEvent(ctx, evt); err != nil {
			log.Printf("eventbus: %s handler failed on %s: %v", s.name, evt.EventType, err)
		}
	}
}
