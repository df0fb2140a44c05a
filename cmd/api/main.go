package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/xpotdraw/xpot-backend/api/routes"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/handlers"
	"github.com/xpotdraw/xpot-backend/internal/repositories"
	mongorepo "github.com/xpotdraw/xpot-backend/internal/repositories/mongodb"
	"github.com/xpotdraw/xpot-backend/internal/services"
	"github.com/xpotdraw/xpot-backend/pkg/chainrpc"
	"github.com/xpotdraw/xpot-backend/pkg/mongodb"
	"github.com/xpotdraw/xpot-backend/pkg/priceoracle"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Repositories
	var drawRepo repositories.DrawRepository = mongorepo.NewDrawRepository(db)
	var ticketRepo repositories.TicketRepository = mongorepo.NewTicketRepository(db)
	var winnerRepo repositories.WinnerRepository = mongorepo.NewWinnerRepository(db)
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var adminUserRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)
	var missionRepo repositories.MissionRepository = mongorepo.NewMissionRepository(db)
	var streakRepo repositories.StreakRepository = mongorepo.NewStreakRepository(db)

	// Outbound clients
	rpcClient := chainrpc.NewClient(cfg.Chain.RPCURL, cfg.Chain.TokenContract, cfg.Chain.MockRPC)
	var oracle priceoracle.Oracle
	if cfg.Price.MockOracle {
		oracle = priceoracle.NewMockOracle(cfg.Price.PairID)
	} else {
		oracle = priceoracle.NewHTTPOracle(cfg.Price.BaseURL, cfg.Price.PairID)
	}

	// Services
	events := services.NewBroadcaster()
	drawService := services.NewDrawService(drawRepo, ticketRepo, winnerRepo, mongoClient, cfg, events)
	ticketService := services.NewTicketService(drawService, ticketRepo, userRepo, missionRepo, streakRepo, cfg, events)
	authService := services.NewAuthService(userRepo, adminUserRepo, cfg)
	balanceService := services.NewBalanceService(rpcClient, redisClient, cfg)
	priceService := services.NewPriceService(oracle, redisClient, cfg)

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:   handlers.NewAuthHandler(authService),
		DrawHandler:   handlers.NewDrawHandler(drawService),
		TicketHandler: handlers.NewTicketHandler(ticketService),
		WinnerHandler: handlers.NewWinnerHandler(drawService, cfg),
		MarketHandler: handlers.NewMarketHandler(balanceService, priceService),
		AdminHandler:  handlers.NewAdminHandler(drawService, cfg),
		LiveHandler:   handlers.NewLiveHandler(events),
		AuthService:   authService,
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("server starting", "port", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}
