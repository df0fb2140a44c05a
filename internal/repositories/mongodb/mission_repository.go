package mongodb

import (
	"context"
	"time"

	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MissionRepository implements the repositories.MissionRepository interface
type MissionRepository struct {
	collection *mongo.Collection
}

// NewMissionRepository creates a new MissionRepository
func NewMissionRepository(db *mongo.Database) repositories.MissionRepository {
	return &MissionRepository{
		collection: db.Collection("missions"),
	}
}

// Create creates a new mission
func (r *MissionRepository) Create(ctx context.Context, mission *models.Mission) error {
	mission.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, mission)
	if err != nil {
		return err
	}
	mission.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByDateWindow finds the mission whose date falls in [start, end)
func (r *MissionRepository) FindByDateWindow(ctx context.Context, start, end time.Time) (*models.Mission, error) {
	filter := bson.M{
		"date": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	var mission models.Mission
	err := r.collection.FindOne(ctx, filter).Decode(&mission)
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

// StreakRepository implements the repositories.StreakRepository interface
type StreakRepository struct {
	collection *mongo.Collection
}

// NewStreakRepository creates a new StreakRepository
func NewStreakRepository(db *mongo.Database) repositories.StreakRepository {
	return &StreakRepository{
		collection: db.Collection("streaks"),
	}
}

// FindByWallet finds the streak record for a wallet
func (r *StreakRepository) FindByWallet(ctx context.Context, walletAddress string) (*models.Streak, error) {
	var streak models.Streak
	err := r.collection.FindOne(ctx, bson.M{"walletAddress": walletAddress}).Decode(&streak)
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// Upsert writes the streak record for a wallet, inserting on first claim
func (r *StreakRepository) Upsert(ctx context.Context, streak *models.Streak) error {
	streak.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"walletAddress": streak.WalletAddress},
		streak, opts)
	return err
}
