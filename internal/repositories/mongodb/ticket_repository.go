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

// TicketRepository implements the repositories.TicketRepository interface
type TicketRepository struct {
	collection *mongo.Collection
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *mongo.Database) repositories.TicketRepository {
	return &TicketRepository{
		collection: db.Collection("tickets"),
	}
}

// Create creates a new ticket
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	ticket.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, ticket)
	if err != nil {
		return err
	}
	ticket.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a ticket by ID
func (r *TicketRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindByDrawAndStatus finds tickets for a draw in insertion order. The stable
// sort keeps winner enumeration deterministic for a fixed random index.
func (r *TicketRepository) FindByDrawAndStatus(ctx context.Context, drawID primitive.ObjectID, status models.TicketStatus) ([]*models.Ticket, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"drawId": drawID, "status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	return tickets, nil
}

// FindByDraw finds all tickets for a draw in insertion order
func (r *TicketRepository) FindByDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Ticket, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"drawId": drawID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	return tickets, nil
}

// FindByDrawAndWallet finds the ticket a wallet holds in a draw, if any
func (r *TicketRepository) FindByDrawAndWallet(ctx context.Context, drawID primitive.ObjectID, walletAddress string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.collection.FindOne(ctx, bson.M{"drawId": drawID, "walletAddress": walletAddress}).Decode(&ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateStatus sets the status of one ticket
func (r *TicketRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TicketStatus) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	return err
}

// UpdateStatusByDraw rewrites the status of every ticket in the draw
// currently holding from
func (r *TicketRepository) UpdateStatusByDraw(ctx context.Context, drawID primitive.ObjectID, from, to models.TicketStatus) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"drawId": drawID, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	return err
}

// CountByDraw counts tickets in a draw
func (r *TicketRepository) CountByDraw(ctx context.Context, drawID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"drawId": drawID})
}

// DeleteAll removes every ticket. Used only by the development seed tool.
func (r *TicketRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
