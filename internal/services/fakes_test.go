package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes. Not-found conditions return
// mongo.ErrNoDocuments to match the driver-backed implementations.

type fakeDrawRepo struct {
	draws map[primitive.ObjectID]*models.Draw
}

func newFakeDrawRepo() *fakeDrawRepo {
	return &fakeDrawRepo{draws: make(map[primitive.ObjectID]*models.Draw)}
}

func (r *fakeDrawRepo) Create(ctx context.Context, draw *models.Draw) error {
	draw.ID = primitive.NewObjectID()
	draw.CreatedAt = time.Now()
	draw.UpdatedAt = time.Now()
	cp := *draw
	r.draws[draw.ID] = &cp
	return nil
}

func (r *fakeDrawRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	draw, ok := r.draws[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *draw
	return &cp, nil
}

func (r *fakeDrawRepo) FindByDateWindow(ctx context.Context, start, end time.Time) (*models.Draw, error) {
	for _, draw := range r.draws {
		if !draw.DrawDate.Before(start) && draw.DrawDate.Before(end) {
			cp := *draw
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeDrawRepo) FindLatest(ctx context.Context) (*models.Draw, error) {
	var latest *models.Draw
	for _, draw := range r.draws {
		if latest == nil || draw.DrawDate.After(latest.DrawDate) {
			latest = draw
		}
	}
	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeDrawRepo) FindRecent(ctx context.Context, limit int) ([]*models.Draw, error) {
	var draws []*models.Draw
	for _, draw := range r.draws {
		cp := *draw
		draws = append(draws, &cp)
	}
	sort.Slice(draws, func(i, j int) bool { return draws[i].DrawDate.After(draws[j].DrawDate) })
	if len(draws) > limit {
		draws = draws[:limit]
	}
	return draws, nil
}

func (r *fakeDrawRepo) Update(ctx context.Context, draw *models.Draw) error {
	if _, ok := r.draws[draw.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	draw.UpdatedAt = time.Now()
	cp := *draw
	r.draws[draw.ID] = &cp
	return nil
}

func (r *fakeDrawRepo) UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from, to models.DrawStatus) (bool, error) {
	draw, ok := r.draws[id]
	if !ok || draw.Status != from {
		return false, nil
	}
	draw.Status = to
	return true, nil
}

func (r *fakeDrawRepo) DeleteAll(ctx context.Context) error {
	r.draws = make(map[primitive.ObjectID]*models.Draw)
	return nil
}

type fakeTicketRepo struct {
	tickets []*models.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{}
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *models.Ticket) error {
	ticket.ID = primitive.NewObjectID()
	ticket.CreatedAt = time.Now()
	cp := *ticket
	r.tickets = append(r.tickets, &cp)
	return nil
}

func (r *fakeTicketRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	for _, t := range r.tickets {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTicketRepo) FindByDrawAndStatus(ctx context.Context, drawID primitive.ObjectID, status models.TicketStatus) ([]*models.Ticket, error) {
	out := []*models.Ticket{}
	for _, t := range r.tickets {
		if t.DrawID == drawID && t.Status == status {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) FindByDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Ticket, error) {
	out := []*models.Ticket{}
	for _, t := range r.tickets {
		if t.DrawID == drawID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) FindByDrawAndWallet(ctx context.Context, drawID primitive.ObjectID, walletAddress string) (*models.Ticket, error) {
	for _, t := range r.tickets {
		if t.DrawID == drawID && t.WalletAddress == walletAddress {
			cp := *t
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTicketRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TicketStatus) error {
	for _, t := range r.tickets {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeTicketRepo) UpdateStatusByDraw(ctx context.Context, drawID primitive.ObjectID, from, to models.TicketStatus) error {
	for _, t := range r.tickets {
		if t.DrawID == drawID && t.Status == from {
			t.Status = to
		}
	}
	return nil
}

func (r *fakeTicketRepo) CountByDraw(ctx context.Context, drawID primitive.ObjectID) (int64, error) {
	var count int64
	for _, t := range r.tickets {
		if t.DrawID == drawID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTicketRepo) DeleteAll(ctx context.Context) error {
	r.tickets = nil
	return nil
}

type fakeWinnerRepo struct {
	winners []*models.Winner
}

func newFakeWinnerRepo() *fakeWinnerRepo {
	return &fakeWinnerRepo{}
}

func (r *fakeWinnerRepo) Create(ctx context.Context, winner *models.Winner) error {
	winner.ID = primitive.NewObjectID()
	winner.CreatedAt = time.Now()
	winner.UpdatedAt = time.Now()
	cp := *winner
	r.winners = append(r.winners, &cp)
	return nil
}

func (r *fakeWinnerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Winner, error) {
	for _, w := range r.winners {
		if w.ID == id {
			cp := *w
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeWinnerRepo) FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error) {
	out := []*models.Winner{}
	for _, w := range r.winners {
		if w.DrawID == drawID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWinnerRepo) FindRecent(ctx context.Context, limit int) ([]*models.Winner, error) {
	out := []*models.Winner{}
	for _, w := range r.winners {
		if !w.Voided {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeWinnerRepo) Update(ctx context.Context, winner *models.Winner) error {
	for i, w := range r.winners {
		if w.ID == winner.ID {
			cp := *winner
			r.winners[i] = &cp
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeWinnerRepo) VoidByDrawID(ctx context.Context, drawID primitive.ObjectID) error {
	for _, w := range r.winners {
		if w.DrawID == drawID && !w.Voided {
			w.Voided = true
		}
	}
	return nil
}

func (r *fakeWinnerRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.winners)), nil
}

func (r *fakeWinnerRepo) DeleteAll(ctx context.Context) error {
	r.winners = nil
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User // by wallet
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.WalletAddress] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	u, ok := r.users[walletAddress]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	cp := *user
	r.users[user.WalletAddress] = &cp
	return nil
}

type fakeAdminUserRepo struct {
	byEmail map[string]*models.AdminUser
}

func newFakeAdminUserRepo() *fakeAdminUserRepo {
	return &fakeAdminUserRepo{byEmail: make(map[string]*models.AdminUser)}
}

func (r *fakeAdminUserRepo) Create(ctx context.Context, adminUser *models.AdminUser) error {
	adminUser.ID = primitive.NewObjectID()
	cp := *adminUser
	r.byEmail[adminUser.Email] = &cp
	return nil
}

func (r *fakeAdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

type fakeMissionRepo struct {
	missions []*models.Mission
}

func (r *fakeMissionRepo) Create(ctx context.Context, mission *models.Mission) error {
	mission.ID = primitive.NewObjectID()
	cp := *mission
	r.missions = append(r.missions, &cp)
	return nil
}

func (r *fakeMissionRepo) FindByDateWindow(ctx context.Context, start, end time.Time) (*models.Mission, error) {
	for _, m := range r.missions {
		if !m.Date.Before(start) && m.Date.Before(end) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeStreakRepo struct {
	streaks map[string]*models.Streak
}

func newFakeStreakRepo() *fakeStreakRepo {
	return &fakeStreakRepo{streaks: make(map[string]*models.Streak)}
}

func (r *fakeStreakRepo) FindByWallet(ctx context.Context, walletAddress string) (*models.Streak, error) {
	s, ok := r.streaks[walletAddress]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStreakRepo) Upsert(ctx context.Context, streak *models.Streak) error {
	cp := *streak
	r.streaks[streak.WalletAddress] = &cp
	return nil
}

// fakeTx runs the callback directly; there is no store to roll back.
type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// failTx simulates an aborted transaction: the callback never runs and no
// writes are applied.
type failTx struct{}

func (failTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return errors.New("transaction aborted")
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
		Draw: config.DrawConfig{
			Timezone:         "UTC",
			BaseJackpotUsd:   1000,
			RoundDuration:    24 * time.Hour,
			WinnersPageMax:   50,
			DashboardPageMax: 80,
		},
	}
}
