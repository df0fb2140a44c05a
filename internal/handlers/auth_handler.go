package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/services"
)

// AuthHandler handles wallet linking and operator login
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LinkWallet handles POST /auth/wallet
func (h *AuthHandler) LinkWallet(c *gin.Context) {
	var req models.LinkWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c)
		return
	}

	user, token, err := h.authService.LinkWallet(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user": user, "token": token})
}

// AdminLogin handles POST /auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c)
		return
	}

	token, err := h.authService.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"token": token})
}
