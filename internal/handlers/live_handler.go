package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xpotdraw/xpot-backend/internal/services"
	"golang.org/x/exp/slog"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler upgrades clients onto the draw event stream
type LiveHandler struct {
	events *services.Broadcaster
}

// NewLiveHandler creates a new LiveHandler
func NewLiveHandler(events *services.Broadcaster) *LiveHandler {
	return &LiveHandler{
		events: events,
	}
}

// Subscribe handles GET /ws. The connection receives draw_opened,
// ticket_claimed, winner_picked and draw_reopened events until it closes.
func (h *LiveHandler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.events.Subscribe(conn)

	// Drain reads so close frames are processed; clients never send data.
	go func() {
		defer h.events.Unsubscribe(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
