package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/services"
	"golang.org/x/exp/slog"
)

const bearerSchema = "Bearer "

// AdminAuthMiddleware gates operator endpoints behind the shared admin
// secret, accepted either as an x-admin-token header or a bearer token. A
// bearer token that is not the shared secret may instead be an operator
// session JWT with the admin role. An unconfigured secret rejects every
// request; absence of configuration is never "allow all".
func AdminAuthMiddleware(cfg *config.Config, authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Admin.Token == "" {
			slog.Error("admin endpoint hit with no admin token configured")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"ok": false, "error": models.ErrCodeNotConfigured,
			})
			return
		}

		presented := c.GetHeader("x-admin-token")
		if presented == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, bearerSchema) {
				presented = authHeader[len(bearerSchema):]
			}
		}
		if presented == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok": false, "error": models.ErrCodeUnauthorized,
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(cfg.Admin.Token)) == 1 {
			c.Next()
			return
		}

		if authService != nil {
			if sub, role, err := authService.ValidateToken(presented); err == nil && role == "admin" {
				c.Set("adminEmail", sub)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"ok": false, "error": models.ErrCodeUnauthorized,
		})
	}
}

// UserAuthMiddleware validates the session JWT minted on wallet link and sets
// the wallet address in the request context.
func UserAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok": false, "error": models.ErrCodeUnauthorized,
			})
			return
		}

		wallet, _, err := authService.ValidateToken(authHeader[len(bearerSchema):])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok": false, "error": models.ErrCodeUnauthorized,
			})
			return
		}

		c.Set("walletAddress", wallet)
		c.Next()
	}
}
