package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawStatus represents the status of a draw
type DrawStatus string

const (
	DrawStatusOpen      DrawStatus = "OPEN"
	DrawStatusDrawing   DrawStatus = "DRAWING"
	DrawStatusCompleted DrawStatus = "COMPLETED"
)

// Draw represents one day's prize round
type Draw struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	DrawDate       time.Time           `bson:"drawDate" json:"drawDate"`
	Status         DrawStatus          `bson:"status" json:"status"`
	JackpotUsd     float64             `bson:"jackpotUsd" json:"jackpotUsd"`
	RolloverUsd    float64             `bson:"rolloverUsd" json:"rolloverUsd"`
	ClosesAt       time.Time           `bson:"closesAt" json:"closesAt"`
	WinnerTicketID *primitive.ObjectID `bson:"winnerTicketId,omitempty" json:"winnerTicketId,omitempty"`
	ResolvedAt     *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	PaidAt         *time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsResolved reports whether the draw has been resolved to a main winner.
func (d *Draw) IsResolved() bool {
	return d.Status == DrawStatusCompleted
}
