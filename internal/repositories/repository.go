package repositories

import (
	"context"
	"time"

	"github.com/xpotdraw/xpot-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TxRunner executes fn inside a single store transaction. Every write issued
// through the fn's context commits or rolls back as one unit.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DrawRepository defines the interface for draw data operations
type DrawRepository interface {
	Create(ctx context.Context, draw *models.Draw) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	// FindByDateWindow returns the draw whose drawDate falls in [start, end).
	FindByDateWindow(ctx context.Context, start, end time.Time) (*models.Draw, error)
	FindLatest(ctx context.Context) (*models.Draw, error)
	FindRecent(ctx context.Context, limit int) ([]*models.Draw, error)
	Update(ctx context.Context, draw *models.Draw) error
	// UpdateStatusIf transitions the draw from one status to another in a
	// single conditional write. It returns false when the draw was not in
	// the expected status, without modifying anything.
	UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from, to models.DrawStatus) (bool, error)
	DeleteAll(ctx context.Context) error
}

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	// FindByDrawAndStatus returns tickets for a draw in insertion order.
	FindByDrawAndStatus(ctx context.Context, drawID primitive.ObjectID, status models.TicketStatus) ([]*models.Ticket, error)
	FindByDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Ticket, error)
	FindByDrawAndWallet(ctx context.Context, drawID primitive.ObjectID, walletAddress string) (*models.Ticket, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TicketStatus) error
	// UpdateStatusByDraw rewrites the status of every ticket in the draw
	// currently holding from.
	UpdateStatusByDraw(ctx context.Context, drawID primitive.ObjectID, from, to models.TicketStatus) error
	CountByDraw(ctx context.Context, drawID primitive.ObjectID) (int64, error)
	DeleteAll(ctx context.Context) error
}

// WinnerRepository defines the interface for winner data operations
type WinnerRepository interface {
	Create(ctx context.Context, winner *models.Winner) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Winner, error)
	FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error)
	FindRecent(ctx context.Context, limit int) ([]*models.Winner, error)
	Update(ctx context.Context, winner *models.Winner) error
	// VoidByDrawID flags every non-voided winner of the draw as voided.
	VoidByDrawID(ctx context.Context, drawID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByWallet(ctx context.Context, walletAddress string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// AdminUserRepository defines the interface for operator account operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

// MissionRepository defines the interface for mission-of-the-day operations
type MissionRepository interface {
	Create(ctx context.Context, mission *models.Mission) error
	FindByDateWindow(ctx context.Context, start, end time.Time) (*models.Mission, error)
}

// StreakRepository defines the interface for claim-streak operations
type StreakRepository interface {
	FindByWallet(ctx context.Context, walletAddress string) (*models.Streak, error)
	Upsert(ctx context.Context, streak *models.Streak) error
}
