package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/services"
)

// DrawHandler handles public draw reads
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
	}
}

// GetToday handles GET /draw/today. The draw is created lazily; a null draw
// means the prior round is still pending resolution.
func (h *DrawHandler) GetToday(c *gin.Context) {
	draw, err := h.drawService.EnsureTodayDraw(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"draw": draw})
}

// GetTodayTickets handles GET /tickets/today
func (h *DrawHandler) GetTodayTickets(c *gin.Context) {
	draw, err := h.drawService.EnsureTodayDraw(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	if draw == nil {
		respondOK(c, gin.H{"draw": nil, "tickets": []TicketView{}})
		return
	}

	tickets, err := h.drawService.TicketsForDraw(c.Request.Context(), draw.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"draw": draw, "tickets": toTicketViews(tickets)})
}
