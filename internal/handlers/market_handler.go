package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/services"
)

// MarketHandler serves the cached on-chain balance and price reads
type MarketHandler struct {
	balanceService *services.BalanceService
	priceService   *services.PriceService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(balanceService *services.BalanceService, priceService *services.PriceService) *MarketHandler {
	return &MarketHandler{
		balanceService: balanceService,
		priceService:   priceService,
	}
}

// GetBalance handles GET /balance/:address
func (h *MarketHandler) GetBalance(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respondValidation(c)
		return
	}

	balance, err := h.balanceService.Get(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"balance": balance})
}

// GetPrice handles GET /price
func (h *MarketHandler) GetPrice(c *gin.Context) {
	quote, err := h.priceService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"price": quote})
}
