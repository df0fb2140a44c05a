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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// DrawService defines draw lifecycle, winner selection and read operations
type DrawService interface {
	// EnsureTodayDraw returns today's draw, creating it when the prior round
	// has fully resolved. It returns (nil, nil) while creation is not yet
	// permitted.
	EnsureTodayDraw(ctx context.Context, now time.Time) (*models.Draw, error)
	GetDrawByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	RecentDraws(ctx context.Context, limit int) ([]*models.Draw, error)
	TicketsForDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Ticket, error)
	RecentWinners(ctx context.Context, limit int) ([]*models.Winner, error)
	PickWinner(ctx context.Context, drawID primitive.ObjectID, kind models.WinnerKind, label string, amountUsd float64) (*models.Winner, error)
	ReopenDraw(ctx context.Context, drawID primitive.ObjectID) (*models.Draw, error)
	MarkPaidOut(ctx context.Context, winnerID primitive.ObjectID, txURL string) (*models.Winner, error)
	Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error)
}

// DashboardStats is the admin overview projection
type DashboardStats struct {
	Draw          *models.Draw     `json:"draw"`
	TicketCount   int64            `json:"ticketCount"`
	WinnerCount   int64            `json:"winnerCount"`
	RecentWinners []*models.Winner `json:"recentWinners"`
}

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl handles draw-related business logic
type DrawServiceImpl struct {
	drawRepo   repositories.DrawRepository
	ticketRepo repositories.TicketRepository
	winnerRepo repositories.WinnerRepository
	tx         repositories.TxRunner
	cfg        *config.Config
	events     *Broadcaster
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	drawRepo repositories.DrawRepository,
	ticketRepo repositories.TicketRepository,
	winnerRepo repositories.WinnerRepository,
	tx repositories.TxRunner,
	cfg *config.Config,
	events *Broadcaster,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		drawRepo:   drawRepo,
		ticketRepo: ticketRepo,
		winnerRepo: winnerRepo,
		tx:         tx,
		cfg:        cfg,
		events:     events,
	}
}

// EnsureTodayDraw returns the draw for the calendar day containing now,
// creating it lazily. A new draw is only created once the prior draw is
// completed and past its closing time; auto-creation never races ahead of a
// pending resolution.
func (s *DrawServiceImpl) EnsureTodayDraw(ctx context.Context, now time.Time) (*models.Draw, error) {
	start, end := utils.DayBounds(now, s.cfg.Location())

	existing, err := s.drawRepo.FindByDateWindow(ctx, start, end)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to look up today's draw: %w", err)
	}

	prior, err := s.drawRepo.FindLatest(ctx)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to look up prior draw: %w", err)
		}
		// Very first draw of the system
		return s.createDraw(ctx, start, now, s.cfg.Draw.BaseJackpotUsd, 0)
	}

	if prior.Status != models.DrawStatusCompleted || prior.ClosesAt.After(now) {
		slog.Info("today's draw not created, prior round still pending",
			"priorDrawId", prior.ID.Hex(), "priorStatus", prior.Status)
		return nil, nil
	}

	jackpot := prior.JackpotUsd
	if s.cfg.Draw.JackpotOverride > 0 {
		jackpot = s.cfg.Draw.JackpotOverride
	}
	return s.createDraw(ctx, start, now, jackpot, prior.RolloverUsd)
}

func (s *DrawServiceImpl) createDraw(ctx context.Context, dayStart, now time.Time, jackpotUsd, rolloverUsd float64) (*models.Draw, error) {
	draw := &models.Draw{
		DrawDate:    dayStart,
		Status:      models.DrawStatusOpen,
		JackpotUsd:  jackpotUsd,
		RolloverUsd: rolloverUsd,
		ClosesAt:    now.Add(s.cfg.Draw.RoundDuration),
	}
	if err := s.drawRepo.Create(ctx, draw); err != nil {
		return nil, fmt.Errorf("failed to create draw: %w", err)
	}
	slog.Info("draw created", "drawId", draw.ID.Hex(), "drawDate", dayStart, "jackpotUsd", jackpotUsd)
	s.events.Publish(Event{Type: EventDrawOpened, Payload: draw})
	return draw, nil
}

// GetDrawByID finds a draw by ID
func (s *DrawServiceImpl) GetDrawByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	draw, err := s.drawRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDrawNotFound
		}
		return nil, fmt.Errorf("failed to find draw: %w", err)
	}
	return draw, nil
}

// RecentDraws returns the most recent draws, newest first
func (s *DrawServiceImpl) RecentDraws(ctx context.Context, limit int) ([]*models.Draw, error) {
	return s.drawRepo.FindRecent(ctx, limit)
}

// TicketsForDraw returns every ticket in a draw in insertion order
func (s *DrawServiceImpl) TicketsForDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Ticket, error) {
	return s.ticketRepo.FindByDraw(ctx, drawID)
}

// RecentWinners returns the most recent non-voided winners
func (s *DrawServiceImpl) RecentWinners(ctx context.Context, limit int) ([]*models.Winner, error) {
	return s.winnerRepo.FindRecent(ctx, limit)
}

// PickWinner selects one eligible ticket uniformly at random and records a
// Winner. The draw is claimed with a conditional OPEN -> DRAWING transition,
// so a concurrent selection for the same draw loses cleanly instead of
// double-resolving. The winner write and the closing status transition run in
// one transaction; the draw is never left in DRAWING after return.
func (s *DrawServiceImpl) PickWinner(ctx context.Context, drawID primitive.ObjectID, kind models.WinnerKind, label string, amountUsd float64) (*models.Winner, error) {
	draw, err := s.drawRepo.FindByID(ctx, drawID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDrawNotFound
		}
		return nil, fmt.Errorf("failed to find draw: %w", err)
	}

	claimed, err := s.drawRepo.UpdateStatusIf(ctx, drawID, models.DrawStatusOpen, models.DrawStatusDrawing)
	if err != nil {
		return nil, fmt.Errorf("failed to mark draw as drawing: %w", err)
	}
	if !claimed {
		slog.Warn("winner selection rejected, draw not open", "drawId", drawID.Hex(), "status", draw.Status)
		return nil, ErrDrawNotOpen
	}

	tickets, err := s.ticketRepo.FindByDrawAndStatus(ctx, drawID, models.TicketStatusInDraw)
	if err != nil {
		s.revertDrawing(ctx, drawID)
		return nil, fmt.Errorf("failed to load eligible tickets: %w", err)
	}
	if len(tickets) == 0 {
		s.revertDrawing(ctx, drawID)
		return nil, ErrNoEligibleTickets
	}

	idx, err := utils.SecureRandIndex(len(tickets))
	if err != nil {
		s.revertDrawing(ctx, drawID)
		return nil, fmt.Errorf("failed to draw random index: %w", err)
	}
	chosen := tickets[idx]

	payout := amountUsd
	if kind == models.WinnerKindMain && payout <= 0 {
		payout = draw.JackpotUsd + draw.RolloverUsd
	}

	winner := &models.Winner{
		Kind:          kind,
		Label:         label,
		DrawID:        drawID,
		TicketID:      chosen.ID,
		TicketCode:    chosen.Code,
		WalletAddress: chosen.WalletAddress,
		PayoutUsd:     payout,
		JackpotUsd:    draw.JackpotUsd,
		Date:          time.Now(),
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.winnerRepo.Create(txCtx, winner); err != nil {
			return fmt.Errorf("failed to record winner: %w", err)
		}
		if err := s.ticketRepo.UpdateStatus(txCtx, chosen.ID, models.TicketStatusWon); err != nil {
			return fmt.Errorf("failed to mark winning ticket: %w", err)
		}
		if kind == models.WinnerKindMain {
			if err := s.ticketRepo.UpdateStatusByDraw(txCtx, drawID, models.TicketStatusInDraw, models.TicketStatusNotPicked); err != nil {
				return fmt.Errorf("failed to finalize losing tickets: %w", err)
			}
			now := time.Now()
			draw.Status = models.DrawStatusCompleted
			draw.WinnerTicketID = &chosen.ID
			draw.ResolvedAt = &now
			if err := s.drawRepo.Update(txCtx, draw); err != nil {
				return fmt.Errorf("failed to complete draw: %w", err)
			}
			return nil
		}
		// Bonus prizes leave the round running
		if _, err := s.drawRepo.UpdateStatusIf(txCtx, drawID, models.DrawStatusDrawing, models.DrawStatusOpen); err != nil {
			return fmt.Errorf("failed to reopen draw after bonus pick: %w", err)
		}
		return nil
	})
	if err != nil {
		s.revertDrawing(ctx, drawID)
		slog.Error("winner selection failed", "error", err, "drawId", drawID.Hex(), "kind", kind)
		return nil, err
	}

	slog.Info("winner selected",
		"drawId", drawID.Hex(), "kind", kind, "ticketCode", winner.TicketCode,
		"wallet", utils.MaskWallet(winner.WalletAddress), "payoutUsd", winner.PayoutUsd)
	s.events.Publish(Event{Type: EventWinnerPicked, Payload: winner})
	return winner, nil
}

// revertDrawing restores a draw claimed for selection back to OPEN. Failure
// here is logged but not returned; the caller already has the primary error.
func (s *DrawServiceImpl) revertDrawing(ctx context.Context, drawID primitive.ObjectID) {
	if _, err := s.drawRepo.UpdateStatusIf(ctx, drawID, models.DrawStatusDrawing, models.DrawStatusOpen); err != nil {
		slog.Error("failed to revert draw out of DRAWING", "error", err, "drawId", drawID.Hex())
	}
}

// ReopenDraw reverts a resolved draw to OPEN: the winning ticket returns to
// IN_DRAW, resolution fields are cleared, and standing winners for the draw
// are voided rather than deleted, keeping the audit trail.
func (s *DrawServiceImpl) ReopenDraw(ctx context.Context, drawID primitive.ObjectID) (*models.Draw, error) {
	draw, err := s.drawRepo.FindByID(ctx, drawID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDrawNotFound
		}
		return nil, fmt.Errorf("failed to find draw: %w", err)
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if draw.WinnerTicketID != nil {
			if err := s.ticketRepo.UpdateStatus(txCtx, *draw.WinnerTicketID, models.TicketStatusInDraw); err != nil {
				return fmt.Errorf("failed to revert winning ticket: %w", err)
			}
		}
		if err := s.ticketRepo.UpdateStatusByDraw(txCtx, drawID, models.TicketStatusNotPicked, models.TicketStatusInDraw); err != nil {
			return fmt.Errorf("failed to revert losing tickets: %w", err)
		}
		if err := s.winnerRepo.VoidByDrawID(txCtx, drawID); err != nil {
			return fmt.Errorf("failed to void winners: %w", err)
		}
		draw.Status = models.DrawStatusOpen
		draw.WinnerTicketID = nil
		draw.ResolvedAt = nil
		draw.PaidAt = nil
		if err := s.drawRepo.Update(txCtx, draw); err != nil {
			return fmt.Errorf("failed to reopen draw: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.Error("draw reopen failed", "error", err, "drawId", drawID.Hex())
		return nil, err
	}

	slog.Info("draw reopened", "drawId", drawID.Hex())
	s.events.Publish(Event{Type: EventDrawReopened, Payload: draw})
	return draw, nil
}

// MarkPaidOut records payout proof on a winner. For a main winner the draw's
// paidAt is stamped as well.
func (s *DrawServiceImpl) MarkPaidOut(ctx context.Context, winnerID primitive.ObjectID, txURL string) (*models.Winner, error) {
	winner, err := s.winnerRepo.FindByID(ctx, winnerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWinnerNotFound
		}
		return nil, fmt.Errorf("failed to find winner: %w", err)
	}

	winner.IsPaidOut = true
	winner.TxURL = txURL
	if err := s.winnerRepo.Update(ctx, winner); err != nil {
		return nil, fmt.Errorf("failed to update winner: %w", err)
	}

	if winner.Kind == models.WinnerKindMain {
		draw, err := s.drawRepo.FindByID(ctx, winner.DrawID)
		if err == nil {
			now := time.Now()
			draw.PaidAt = &now
			if err := s.drawRepo.Update(ctx, draw); err != nil {
				slog.Error("failed to stamp draw paidAt", "error", err, "drawId", draw.ID.Hex())
			}
		}
	}

	slog.Info("winner paid out", "winnerId", winner.ID.Hex(), "txUrl", txURL)
	return winner, nil
}

// Dashboard assembles the admin overview for the current day
func (s *DrawServiceImpl) Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error) {
	draw, err := s.EnsureTodayDraw(ctx, now)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Draw: draw}
	if draw != nil {
		count, err := s.ticketRepo.CountByDraw(ctx, draw.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count tickets: %w", err)
		}
		stats.TicketCount = count
	}

	winnerCount, err := s.winnerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count winners: %w", err)
	}
	stats.WinnerCount = winnerCount

	recent, err := s.winnerRepo.FindRecent(ctx, s.cfg.Draw.DashboardPageMax)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent winners: %w", err)
	}
	stats.RecentWinners = recent

	return stats, nil
}
