package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/services"
	"github.com/xpotdraw/xpot-backend/internal/utils"
)

const defaultWinnersLimit = 20

// WinnerHandler handles public winner reads
type WinnerHandler struct {
	drawService services.DrawService
	cfg         *config.Config
}

// NewWinnerHandler creates a new WinnerHandler
func NewWinnerHandler(drawService services.DrawService, cfg *config.Config) *WinnerHandler {
	return &WinnerHandler{
		drawService: drawService,
		cfg:         cfg,
	}
}

// GetRecent handles GET /public/winners. The limit parameter is clamped to
// the configured page maximum; oversized requests never return unbounded rows.
func (h *WinnerHandler) GetRecent(c *gin.Context) {
	requested, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	limit := utils.ClampLimit(requested, defaultWinnersLimit, h.cfg.Draw.WinnersPageMax)

	winners, err := h.drawService.RecentWinners(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"winners": toWinnerViews(winners), "limit": limit})
}
