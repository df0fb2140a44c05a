package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/models"
	mongorepo "github.com/xpotdraw/xpot-backend/internal/repositories/mongodb"
	"github.com/xpotdraw/xpot-backend/internal/utils"
	"github.com/xpotdraw/xpot-backend/pkg/mongodb"
	"golang.org/x/crypto/bcrypt"
)

// Development-only reset and seed tool. Wipes draw state and optionally
// creates an open draw with sample tickets plus an operator account.
func main() {
	reset := flag.Bool("reset", false, "delete all draws, tickets and winners")
	seed := flag.Bool("seed", false, "create an open draw with sample tickets")
	adminEmail := flag.String("admin-email", "", "create an operator account with this email")
	adminPassword := flag.String("admin-password", "", "password for the operator account")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	client, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB.Database)
	ctx := context.Background()

	drawRepo := mongorepo.NewDrawRepository(db)
	ticketRepo := mongorepo.NewTicketRepository(db)
	winnerRepo := mongorepo.NewWinnerRepository(db)
	adminUserRepo := mongorepo.NewAdminUserRepository(db)

	if *reset {
		if err := winnerRepo.DeleteAll(ctx); err != nil {
			log.Fatalf("failed to delete winners: %v", err)
		}
		if err := ticketRepo.DeleteAll(ctx); err != nil {
			log.Fatalf("failed to delete tickets: %v", err)
		}
		if err := drawRepo.DeleteAll(ctx); err != nil {
			log.Fatalf("failed to delete draws: %v", err)
		}
		log.Println("draw state reset")
	}

	if *seed {
		now := time.Now()
		dayStart, _ := utils.DayBounds(now, cfg.Location())
		draw := &models.Draw{
			DrawDate:   dayStart,
			Status:     models.DrawStatusOpen,
			JackpotUsd: cfg.Draw.BaseJackpotUsd,
			ClosesAt:   now.Add(cfg.Draw.RoundDuration),
		}
		if err := drawRepo.Create(ctx, draw); err != nil {
			log.Fatalf("failed to create draw: %v", err)
		}

		wallets := []string{
			"0xA1b2C3d4E5f6A7b8C9d0E1f2A3b4C5d6E7f8A9b0",
			"0xB2c3D4e5F6a7B8c9D0e1F2a3B4c5D6e7F8a9B0c1",
			"0xC3d4E5f6A7b8C9d0E1f2A3b4C5d6E7f8A9b0C1d2",
		}
		for _, wallet := range wallets {
			code, err := utils.GenerateTicketCode()
			if err != nil {
				log.Fatalf("failed to generate ticket code: %v", err)
			}
			ticket := &models.Ticket{
				Code:          code,
				Status:        models.TicketStatusInDraw,
				WalletAddress: wallet,
				DrawID:        draw.ID,
			}
			if err := ticketRepo.Create(ctx, ticket); err != nil {
				log.Fatalf("failed to create ticket: %v", err)
			}
		}
		log.Printf("seeded draw %s with %d tickets", draw.ID.Hex(), len(wallets))
	}

	if *adminEmail != "" {
		if *adminPassword == "" {
			log.Fatal("admin-password is required with admin-email")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		adminUser := &models.AdminUser{
			Email:        *adminEmail,
			PasswordHash: string(hash),
			Role:         "admin",
		}
		if err := adminUserRepo.Create(ctx, adminUser); err != nil {
			log.Fatalf("failed to create admin user: %v", err)
		}
		log.Printf("created operator account %s", *adminEmail)
	}
}
