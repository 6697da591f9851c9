package event

import "context"

// Recorder accepts domain events from command handlers.
type Recorder interface {
	Record(ctx context.Context, evt DomainEvent)
}

// Publisher sends domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt DomainEvent)
}

// BusRecorder implements Recorder by publishing straight to the event bus.
// Recording is best-effort observability and must never fail a request,
// so the interface has no error return.
type BusRecorder struct {
	bus Publisher
}

// NewBusRecorder creates a Recorder backed by the given publisher.
func NewBusRecorder(bus Publisher) *BusRecorder {
	return &BusRecorder{bus: bus}
}

func (r *BusRecorder) Record(ctx context.Context, evt DomainEvent) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(ctx, evt)
}

// NopRecorder discards every event. Useful in tests.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, DomainEvent) {}
