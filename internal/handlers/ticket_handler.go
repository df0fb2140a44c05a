package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/services"
)

// TicketHandler handles the daily claim flow and its side records
type TicketHandler struct {
	ticketService services.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// Claim handles POST /tickets/claim. The wallet comes from the session, not
// the request body.
func (h *TicketHandler) Claim(c *gin.Context) {
	wallet := c.GetString("walletAddress")
	if wallet == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": models.ErrCodeUnauthorized})
		return
	}

	ticket, err := h.ticketService.ClaimTicket(c.Request.Context(), wallet, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	streak, err := h.ticketService.StreakForWallet(c.Request.Context(), wallet)
	if err != nil {
		// Claim succeeded; report it without the streak.
		respondOK(c, gin.H{"ticket": ticket})
		return
	}
	respondOK(c, gin.H{"ticket": ticket, "streak": streak})
}

// GetMissionToday handles GET /mission/today
func (h *TicketHandler) GetMissionToday(c *gin.Context) {
	mission, err := h.ticketService.MissionOfTheDay(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"mission": mission})
}
