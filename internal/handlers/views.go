package handlers

import (
	"time"

	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/utils"
)

// TicketView is the public projection of a ticket. Wallet addresses are
// always masked on public surfaces.
type TicketView struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	Wallet    string    `json:"wallet"`
	CreatedAt time.Time `json:"createdAt"`
}

// WinnerView is the public projection of a winner
type WinnerView struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Label      string    `json:"label,omitempty"`
	TicketCode string    `json:"ticketCode"`
	Wallet     string    `json:"wallet"`
	PayoutUsd  float64   `json:"payoutUsd"`
	IsPaidOut  bool      `json:"isPaidOut"`
	TxURL      string    `json:"txUrl,omitempty"`
	Date       time.Time `json:"date"`
}

func toTicketView(t *models.Ticket) TicketView {
	return TicketView{
		ID:        t.ID.Hex(),
		Code:      t.Code,
		Status:    string(t.Status),
		Wallet:    utils.MaskWallet(t.WalletAddress),
		CreatedAt: t.CreatedAt.UTC(),
	}
}

func toTicketViews(tickets []*models.Ticket) []TicketView {
	views := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, toTicketView(t))
	}
	return views
}

func toWinnerView(w *models.Winner) WinnerView {
	return WinnerView{
		ID:         w.ID.Hex(),
		Kind:       string(w.Kind),
		Label:      w.Label,
		TicketCode: w.TicketCode,
		Wallet:     utils.MaskWallet(w.WalletAddress),
		PayoutUsd:  w.PayoutUsd,
		IsPaidOut:  w.IsPaidOut,
		TxURL:      w.TxURL,
		Date:       w.Date.UTC(),
	}
}

func toWinnerViews(winners []*models.Winner) []WinnerView {
	views := make([]WinnerView, 0, len(winners))
	for _, w := range winners {
		views = append(views, toWinnerView(w))
	}
	return views
}
