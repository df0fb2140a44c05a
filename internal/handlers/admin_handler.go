package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler handles operator endpoints for draw control
type AdminHandler struct {
	drawService services.DrawService
	cfg         *config.Config
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(drawService services.DrawService, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		drawService: drawService,
		cfg:         cfg,
	}
}

// PickWinnerRequest is the body for POST /admin/pick-winner
type PickWinnerRequest struct {
	DrawID string `json:"drawId" binding:"required"`
}

// PickBonusWinnerRequest is the body for POST /admin/pick-bonus-winner
type PickBonusWinnerRequest struct {
	DrawID     string  `json:"drawId" binding:"required"`
	Label      string  `json:"label" binding:"required"`
	AmountXpot float64 `json:"amountXpot" binding:"required"`
}

// ReopenRequest is the body for POST /admin/draw/reopen
type ReopenRequest struct {
	DrawID string `json:"drawId" binding:"required"`
}

// PayoutRequest is the body for POST /admin/winners/:id/payout
type PayoutRequest struct {
	TxURL string `json:"txUrl" binding:"required"`
}

// PickWinner handles POST /admin/pick-winner: the main daily resolution
func (h *AdminHandler) PickWinner(c *gin.Context) {
	var req PickWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c)
		return
	}
	drawID, err := primitive.ObjectIDFromHex(req.DrawID)
	if err != nil {
		respondValidation(c)
		return
	}

	winner, err := h.drawService.PickWinner(c.Request.Context(), drawID, models.WinnerKindMain, "Daily jackpot", 0)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	respondOK(c, gin.H{"winner": winner})
}

// PickBonusWinner handles POST /admin/pick-bonus-winner
func (h *AdminHandler) PickBonusWinner(c *gin.Context) {
	var req PickBonusWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c)
		return
	}
	drawID, err := primitive.ObjectIDFromHex(req.DrawID)
	if err != nil {
		respondValidation(c)
		return
	}

	winner, err := h.drawService.PickWinner(c.Request.Context(), drawID, models.WinnerKindBonus, req.Label, req.AmountXpot)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	respondOK(c, gin.H{"winner": winner})
}

// ReopenDraw handles POST /admin/draw/reopen
func (h *AdminHandler) ReopenDraw(c *gin.Context) {
	var req ReopenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c)
		return
	}
	drawID, err := primitive.ObjectIDFromHex(req.DrawID)
	if err != nil {
		respondValidation(c)
		return
	}

	draw, err := h.drawService.ReopenDraw(c.Request.Context(), drawID)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	respondOK(c, gin.H{"draw": draw})
}

// MarkPayout handles POST /admin/winners/:id/payout
func (h *AdminHandler) MarkPayout(c *gin.Context) {
	winnerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondValidation(c)
		return
	}
	var req PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c)
		return
	}

	winner, err := h.drawService.MarkPaidOut(c.Request.Context(), winnerID, req.TxURL)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	respondOK(c, gin.H{"winner": winner})
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.drawService.Dashboard(c.Request.Context(), time.Now())
	if err != nil {
		respondAdminError(c, err)
		return
	}
	respondOK(c, gin.H{"dashboard": stats})
}

// RecentDraws handles GET /admin/draws
func (h *AdminHandler) RecentDraws(c *gin.Context) {
	draws, err := h.drawService.RecentDraws(c.Request.Context(), h.cfg.Draw.DashboardPageMax)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	respondOK(c, gin.H{"draws": draws})
}
