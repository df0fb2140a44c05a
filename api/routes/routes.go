package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/handlers"
	"github.com/xpotdraw/xpot-backend/internal/middleware"
	"github.com/xpotdraw/xpot-backend/internal/services"
)

// HandlerDependencies bundles the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler   *handlers.AuthHandler
	DrawHandler   *handlers.DrawHandler
	TicketHandler *handlers.TicketHandler
	WinnerHandler *handlers.WinnerHandler
	MarketHandler *handlers.MarketHandler
	AdminHandler  *handlers.AdminHandler
	LiveHandler   *handlers.LiveHandler
	AuthService   services.AuthService
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true, "status": "ok"})
		})

		public.GET("/draw/today", deps.DrawHandler.GetToday)
		public.GET("/tickets/today", deps.DrawHandler.GetTodayTickets)
		public.GET("/public/winners", deps.WinnerHandler.GetRecent)
		public.GET("/mission/today", deps.TicketHandler.GetMissionToday)
		public.GET("/price", deps.MarketHandler.GetPrice)
		public.GET("/balance/:address", deps.MarketHandler.GetBalance)
		public.GET("/ws", deps.LiveHandler.Subscribe)

		auth := public.Group("/auth")
		{
			auth.POST("/wallet", deps.AuthHandler.LinkWallet)
			auth.POST("/admin/login", deps.AuthHandler.AdminLogin)
		}

		// Requires a wallet session
		session := public.Group("")
		session.Use(middleware.UserAuthMiddleware(deps.AuthService))
		{
			session.POST("/tickets/claim", deps.TicketHandler.Claim)
		}
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AdminAuthMiddleware(cfg, deps.AuthService))
	{
		admin.GET("/dashboard", deps.AdminHandler.Dashboard)
		admin.GET("/draws", deps.AdminHandler.RecentDraws)
		admin.POST("/pick-winner", deps.AdminHandler.PickWinner)
		admin.POST("/pick-bonus-winner", deps.AdminHandler.PickBonusWinner)
		admin.POST("/draw/reopen", deps.AdminHandler.ReopenDraw)
		admin.POST("/winners/:id/payout", deps.AdminHandler.MarkPayout)
	}

	return router
}
