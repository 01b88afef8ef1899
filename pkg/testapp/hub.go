package testapp

import (
	"encoding/json"
	"sync"
)

// Event is one update on the render feed, delivered to WebSocket and SSE
// subscribers alike.
type Event struct {
	Event    string `json:"event"`
	Progress int    `json:"progress"`
	Stage    string `json:"stage,omitempty"`
	RenderID string `json:"render_id,omitempty"`
	URL      string `json:"url,omitempty"`
}

// JSON serializes the event for the wire.
func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Hub manages render feed subscriptions and broadcasts events.
// thread-safe for concurrent subscribe/unsubscribe/broadcast operations.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan Event]struct{})}
}

// Subscribe adds a client channel to receive events.
// the returned channel is buffered (256) to absorb burst progress updates.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 256)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	return ch
}

// Unsubscribe removes a client channel and closes it.
// safe to call multiple times with the same channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

// Broadcast sends an event to all subscribed clients.
// non-blocking: events are dropped for clients with full buffers so a slow
// consumer cannot stall the render feed.
func (h *Hub) Broadcast(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients {
		select {
		case ch <- e:
		default:
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close unsubscribes all clients and closes their channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		close(ch)
		delete(h.clients, ch)
	}
}
