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

// DrawRepository implements the repositories.DrawRepository interface
type DrawRepository struct {
	collection *mongo.Collection
}

// NewDrawRepository creates a new DrawRepository
func NewDrawRepository(db *mongo.Database) repositories.DrawRepository {
	return &DrawRepository{
		collection: db.Collection("draws"),
	}
}

// Create creates a new draw
func (r *DrawRepository) Create(ctx context.Context, draw *models.Draw) error {
	draw.CreatedAt = time.Now()
	draw.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, draw)
	if err != nil {
		return err
	}
	draw.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a draw by ID
func (r *DrawRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	var draw models.Draw
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&draw)
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// FindByDateWindow finds the draw whose drawDate falls in [start, end)
func (r *DrawRepository) FindByDateWindow(ctx context.Context, start, end time.Time) (*models.Draw, error) {
	filter := bson.M{
		"drawDate": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	var draw models.Draw
	err := r.collection.FindOne(ctx, filter).Decode(&draw)
	if err != nil {
		return nil, err // Returns mongo.ErrNoDocuments if not found
	}
	return &draw, nil
}

// FindLatest finds the most recent draw by drawDate
func (r *DrawRepository) FindLatest(ctx context.Context) (*models.Draw, error) {
	opts := options.FindOne().SetSort(bson.M{"drawDate": -1})
	var draw models.Draw
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&draw)
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// FindRecent finds the most recent draws, newest first
func (r *DrawRepository) FindRecent(ctx context.Context, limit int) ([]*models.Draw, error) {
	opts := options.Find().
		SetSort(bson.M{"drawDate": -1}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var draws []*models.Draw
	if err := cursor.All(ctx, &draws); err != nil {
		return nil, err
	}
	if draws == nil {
		draws = []*models.Draw{}
	}
	return draws, nil
}

// Update updates a draw
func (r *DrawRepository) Update(ctx context.Context, draw *models.Draw) error {
	draw.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": draw.ID}, draw)
	return err
}

// UpdateStatusIf transitions the draw status only when it currently holds
// from. The conditional filter is what excludes two concurrent selections.
func (r *DrawRepository) UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from, to models.DrawStatus) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// DeleteAll removes every draw. Used only by the development seed tool.
func (r *DrawRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
