package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/marait123/gnothi/internal/event"
)

type countingHandler struct {
	mu   sync.Mutex
	seen []event.DomainEvent
	err  error
}

func (h *countingHandler) HandleEvent(_ context.Context, evt event.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, evt)
	return h.err
}

func (h *countingHandler) events() []event.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]event.DomainEvent(nil), h.seen...)
}

func publishN(b *Bus, n int) {
	for i := 0; i < n; i++ {
		b.Publish(context.Background(), event.DomainEvent{
			ID:        fmt.Sprintf("evt-%d", i),
			EventType: "entry_updated",
		})
	}
}

// stopWithin fails the test if Stop doesn't return inside the deadline.
func stopWithin(t *testing.T, b *Bus, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		b.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("Stop did not return")
	}
}

func TestStopReturnsWithoutContextCancel(t *testing.T) {
	h := &countingHandler{}
	b := New(16)
	b.Subscribe("count", h)
	b.Start(context.Background())

	publishN(b, 5)
	stopWithin(t, b, 2*time.Second)

	seen := h.events()
	if len(seen) != 5 {
		t.Fatalf("delivered %d events, want exactly 5", len(seen))
	}
	for i, evt := range seen {
		if evt.ID == "" {
			t.Fatalf("event %d is a zero value", i)
		}
	}
}

func TestStopFlushesBacklog(t *testing.T) {
	h := &countingHandler{}
	b := New(64)
	b.Subscribe("count", h)

	// Fill the buffer before the consumer ever runs; everything queued
	// must still be delivered by the shutdown flush.
	publishN(b, 10)
	b.Start(context.Background())
	stopWithin(t, b, 2*time.Second)

	if got := len(h.events()); got != 10 {
		t.Errorf("delivered %d events, want 10", got)
	}
}

func TestStopIdempotent(t *testing.T) {
	b := New(1)
	b.Start(context.Background())
	stopWithin(t, b, 2*time.Second)
	stopWithin(t, b, 2*time.Second)
}

func TestContextCancelStopsConsumer(t *testing.T) {
	h := &countingHandler{}
	b := New(16)
	b.Subscribe("count", h)

	ctx, cancel := context.WithCancel(context.Background())
	b.Start(ctx)
	publishN(b, 3)
	cancel()

	// Stop must not hang even though the context already ended the
	// consumer.
	stopWithin(t, b, 2*time.Second)
	if got := len(h.events()); got != 3 {
		t.Errorf("delivered %d events, want 3", got)
	}
}

func TestPublishAfterStopDoesNotPanic(t *testing.T) {
	b := New(1)
	b.Start(context.Background())
	stopWithin(t, b, 2*time.Second)

	publishN(b, 3) // one queued, two dropped; neither may panic
}

func TestHandlerErrorDoesNotBlockOthers(t *testing.T) {
	failing := &countingHandler{err: errors.New("boom")}
	healthy := &countingHandler{}
	b := New(16)
	b.Subscribe("failing", failing)
	b.Subscribe("healthy", healthy)
	b.Start(context.Background())

	publishN(b, 2)
	stopWithin(t, b, 2*time.Second)

	if got := len(healthy.events()); got != 2 {
		t.Errorf("healthy handler saw %d events, want 2", got)
	}
	if got := len(failing.events()); got != 2 {
		t.Errorf("failing handler saw %d events, want 2", got)
	}
}
