// Package stream serves the live journal event feed over WebSocket.
// The hub subscribes to the in-process event bus and fans each domain
// event out to every connected client.
package stream

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/marait123/gnothi/internal/event"
)

// ServerMessage is the wire envelope pushed to feed clients.
type ServerMessage struct {
	Type  string             `json:"type"` // "hello" or "event"
	Event *event.DomainEvent `json:"event,omitempty"`
}

// Hub tracks connected feed clients and broadcasts events to them.
type Hub struct {
	mu      sync.Mutex
	nextID  int
	clients map[int]chan event.DomainEvent
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[int]chan event.DomainEvent)}
}

// HandleEvent implements eventbus.Handler. Slow clients drop events
// rather than stalling the bus.
func (h *Hub) HandleEvent(_ context.Context, evt event.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.clients {
		select {
		case ch <- evt:
		default:
			log.Printf("stream: client %d lagging, dropping event %s", id, evt.EventType)
		}
	}
	return nil
}

func (h *Hub) add() (int, chan event.DomainEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	ch := make(chan event.DomainEvent, 64)
	h.clients[h.nextID] = ch
	return h.nextID, ch
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// ServeHTTP upgrades to WebSocket and streams events until the client
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("stream: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	id, ch := h.add()
	defer h.remove(id)

	ctx := r.Context()
	if err := wsjson.Write(ctx, conn, ServerMessage{Type: "hello"}); err != nil {
		return
	}

	for {
		select {
		case evt := <-ch:
			if err := wsjson.Write(ctx, conn, ServerMessage{Type: "event", Event: &evt}); err != nil {
				if websocket.CloseStatus(err) != -1 {
					log.Printf("stream: client %d closed: %v", id, websocket.CloseStatus(err))
				}
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
