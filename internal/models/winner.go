package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinnerKind distinguishes the daily jackpot winner from bonus prize winners
type WinnerKind string

const (
	WinnerKindMain  WinnerKind = "MAIN"
	WinnerKindBonus WinnerKind = "BONUS"
)

// Winner represents a prize payout event tied to one ticket and one draw
type Winner struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Kind          WinnerKind         `bson:"kind" json:"kind"`
	Label         string             `bson:"label" json:"label"`
	DrawID        primitive.ObjectID `bson:"drawId" json:"drawId"`
	TicketID      primitive.ObjectID `bson:"ticketId" json:"ticketId"`
	TicketCode    string             `bson:"ticketCode" json:"ticketCode"`
	WalletAddress string             `bson:"walletAddress" json:"walletAddress"`
	PayoutUsd     float64            `bson:"payoutUsd" json:"payoutUsd"`
	JackpotUsd    float64            `bson:"jackpotUsd" json:"jackpotUsd"`
	IsPaidOut     bool               `bson:"isPaidOut" json:"isPaidOut"`
	TxURL         string             `bson:"txUrl,omitempty" json:"txUrl,omitempty"`
	// Voided marks winners invalidated by an administrative reopen. The row
	// is kept as an audit trail rather than deleted.
	Voided    bool      `bson:"voided" json:"voided"`
	Date      time.Time `bson:"date" json:"date"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
