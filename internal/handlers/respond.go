package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/services"
)

// respondOK writes the success envelope with the given extra fields
func respondOK(c *gin.Context, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondError writes the failure envelope for a public endpoint. Internal
// error detail is never exposed here.
func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	c.JSON(status, gin.H{"ok": false, "error": code})
}

// respondAdminError writes the failure envelope for an authenticated admin
// endpoint, surfacing the underlying message for operability.
func respondAdminError(c *gin.Context, err error) {
	status, code := classify(err)
	c.JSON(status, gin.H{"ok": false, "error": code, "message": err.Error()})
}

func respondValidation(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": models.ErrCodeValidation})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrDrawNotFound),
		errors.Is(err, services.ErrTicketNotFound),
		errors.Is(err, services.ErrWinnerNotFound):
		return http.StatusNotFound, models.ErrCodeNotFound
	case errors.Is(err, services.ErrNoEligibleTickets):
		return http.StatusBadRequest, models.ErrCodeNoEligibleTickets
	case errors.Is(err, services.ErrDrawNotOpen):
		return http.StatusBadRequest, models.ErrCodeDrawNotOpen
	case errors.Is(err, services.ErrDrawClosed):
		return http.StatusBadRequest, models.ErrCodeDrawClosed
	case errors.Is(err, services.ErrTicketAlreadyClaimed):
		return http.StatusBadRequest, models.ErrCodeAlreadyClaimed
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, models.ErrCodeUnauthorized
	default:
		return http.StatusInternalServerError, models.ErrCodeInternal
	}
}
