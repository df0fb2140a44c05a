package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/repositories"
	"github.com/xpotdraw/xpot-backend/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// TicketService defines the daily entry claim flow
type TicketService interface {
	// ClaimTicket issues the wallet's entry into today's draw. One ticket
	// per wallet per draw; a second claim returns ErrTicketAlreadyClaimed.
	ClaimTicket(ctx context.Context, walletAddress string, now time.Time) (*models.Ticket, error)
	StreakForWallet(ctx context.Context, walletAddress string) (*models.Streak, error)
	MissionOfTheDay(ctx context.Context, now time.Time) (*models.Mission, error)
}

var _ TicketService = (*TicketServiceImpl)(nil)

// TicketServiceImpl handles ticket issuance and the per-day side records
type TicketServiceImpl struct {
	drawService DrawService
	ticketRepo  repositories.TicketRepository
	userRepo    repositories.UserRepository
	missionRepo repositories.MissionRepository
	streakRepo  repositories.StreakRepository
	cfg         *config.Config
	events      *Broadcaster
}

// NewTicketService creates a new TicketServiceImpl
func NewTicketService(
	drawService DrawService,
	ticketRepo repositories.TicketRepository,
	userRepo repositories.UserRepository,
	missionRepo repositories.MissionRepository,
	streakRepo repositories.StreakRepository,
	cfg *config.Config,
	events *Broadcaster,
) *TicketServiceImpl {
	return &TicketServiceImpl{
		drawService: drawService,
		ticketRepo:  ticketRepo,
		userRepo:    userRepo,
		missionRepo: missionRepo,
		streakRepo:  streakRepo,
		cfg:         cfg,
		events:      events,
	}
}

// ClaimTicket issues one entry ticket for the wallet into today's draw
func (s *TicketServiceImpl) ClaimTicket(ctx context.Context, walletAddress string, now time.Time) (*models.Ticket, error) {
	draw, err := s.drawService.EnsureTodayDraw(ctx, now)
	if err != nil {
		return nil, err
	}
	if draw == nil || draw.Status != models.DrawStatusOpen {
		return nil, ErrDrawNotOpen
	}
	if now.After(draw.ClosesAt) {
		return nil, ErrDrawClosed
	}

	existing, err := s.ticketRepo.FindByDrawAndWallet(ctx, draw.ID, walletAddress)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing ticket: %w", err)
	}
	if existing != nil {
		return nil, ErrTicketAlreadyClaimed
	}

	code, err := utils.GenerateTicketCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket code: %w", err)
	}

	ticket := &models.Ticket{
		Code:          code,
		Status:        models.TicketStatusInDraw,
		WalletAddress: walletAddress,
		DrawID:        draw.ID,
	}
	if user, err := s.userRepo.FindByWallet(ctx, walletAddress); err == nil {
		ticket.UserID = &user.ID
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := s.advanceStreak(ctx, walletAddress, now); err != nil {
		// The ticket stands either way; streaks are cosmetic.
		slog.Warn("failed to advance claim streak", "error", err, "wallet", utils.MaskWallet(walletAddress))
	}

	slog.Info("ticket claimed", "drawId", draw.ID.Hex(), "code", ticket.Code,
		"wallet", utils.MaskWallet(walletAddress))
	s.events.Publish(Event{Type: EventTicketClaimed, Payload: ticket})
	return ticket, nil
}

// advanceStreak extends or resets the wallet's consecutive-claim streak
func (s *TicketServiceImpl) advanceStreak(ctx context.Context, walletAddress string, now time.Time) error {
	loc := s.cfg.Location()
	streak, err := s.streakRepo.FindByWallet(ctx, walletAddress)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		streak = &models.Streak{WalletAddress: walletAddress}
	}

	if utils.SameDay(streak.LastClaimDate, now, loc) {
		return nil // already counted today
	}
	yesterday := now.AddDate(0, 0, -1)
	if utils.SameDay(streak.LastClaimDate, yesterday, loc) {
		streak.Current++
	} else {
		streak.Current = 1
	}
	if streak.Current > streak.Best {
		streak.Best = streak.Current
	}
	streak.LastClaimDate = now
	return s.streakRepo.Upsert(ctx, streak)
}

// StreakForWallet returns the wallet's claim streak, zeroed when absent
func (s *TicketServiceImpl) StreakForWallet(ctx context.Context, walletAddress string) (*models.Streak, error) {
	streak, err := s.streakRepo.FindByWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Streak{WalletAddress: walletAddress}, nil
		}
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}
	return streak, nil
}

// MissionOfTheDay returns the mission for the calendar day containing now,
// or nil when none is configured.
func (s *TicketServiceImpl) MissionOfTheDay(ctx context.Context, now time.Time) (*models.Mission, error) {
	start, end := utils.DayBounds(now, s.cfg.Location())
	mission, err := s.missionRepo.FindByDateWindow(ctx, start, end)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load mission: %w", err)
	}
	return mission, nil
}
