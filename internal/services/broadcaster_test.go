package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		b.Subscribe(conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Subscription happens on the server side of the handshake.
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	b.Publish(Event{Type: EventWinnerPicked, Payload: map[string]string{"ticketCode": "XPOT-AAAA2222"}})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if got.Type != EventWinnerPicked {
		t.Errorf("expected %s, got %s", EventWinnerPicked, got.Type)
	}
}

func TestBroadcasterNilPublish(t *testing.T) {
	var b *Broadcaster
	// Must not panic.
	b.Publish(Event{Type: EventDrawOpened})
}

func TestBroadcasterDropsDeadClients(t *testing.T) {
	b := NewBroadcaster()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		b.Subscribe(conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	var serverConn *websocket.Conn
	b.mu.Lock()
	for c := range b.clients {
		serverConn = c
	}
	b.mu.Unlock()
	conn.Close()
	serverConn.Close()

	// The write fails on the closed connection and the client is removed.
	b.Publish(Event{Type: EventDrawOpened})
	if b.ClientCount() != 0 {
		t.Errorf("expected dead client to be dropped, count = %d", b.ClientCount())
	}
}
