package services

import (
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"
)

// EventType identifies a live draw event
type EventType string

const (
	EventDrawOpened    EventType = "draw_opened"
	EventDrawReopened  EventType = "draw_reopened"
	EventTicketClaimed EventType = "ticket_claimed"
	EventWinnerPicked  EventType = "winner_picked"
)

// Event is one message pushed to connected clients
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

// Broadcaster fans draw events out to websocket subscribers. A nil-safe
// Publish lets services fire events without caring whether anyone listens.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Subscribe registers a connection for event delivery
func (b *Broadcaster) Subscribe(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[conn] = struct{}{}
}

// Unsubscribe removes a connection and closes it
func (b *Broadcaster) Unsubscribe(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[conn]; ok {
		delete(b.clients, conn)
		conn.Close()
	}
}

// Publish sends the event to every subscriber. Connections that fail to
// accept the write are dropped.
func (b *Broadcaster) Publish(event Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.clients {
		if err := conn.WriteJSON(event); err != nil {
			slog.Warn("dropping websocket client", "error", err)
			delete(b.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount reports the number of connected subscribers
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
