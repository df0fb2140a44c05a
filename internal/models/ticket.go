package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketStatus represents the status of a ticket within its draw
type TicketStatus string

const (
	TicketStatusInDraw    TicketStatus = "IN_DRAW"
	TicketStatusWon       TicketStatus = "WON"
	TicketStatusClaimed   TicketStatus = "CLAIMED"
	TicketStatusNotPicked TicketStatus = "NOT_PICKED"
	TicketStatusExpired   TicketStatus = "EXPIRED"
)

// Ticket represents one entry into a draw
type Ticket struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Code          string              `bson:"code" json:"code"`
	Status        TicketStatus        `bson:"status" json:"status"`
	WalletAddress string              `bson:"walletAddress" json:"walletAddress"`
	UserID        *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	DrawID        primitive.ObjectID  `bson:"drawId" json:"drawId"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}
