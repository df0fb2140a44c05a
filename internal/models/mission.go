package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mission is the per-day side quest shown alongside the draw
type Mission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	RewardXp    int                `bson:"rewardXp" json:"rewardXp"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Streak tracks consecutive daily ticket claims for a wallet
type Streak struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	WalletAddress string             `bson:"walletAddress" json:"walletAddress"`
	Current       int                `bson:"current" json:"current"`
	Best          int                `bson:"best" json:"best"`
	LastClaimDate time.Time          `bson:"lastClaimDate" json:"lastClaimDate"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
