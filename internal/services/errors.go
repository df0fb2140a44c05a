package services

import "errors"

// Business-rule errors surfaced to handlers. Handlers map these onto the
// response envelope's error codes; anything else is an internal failure.
var (
	ErrDrawNotFound         = errors.New("draw not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrWinnerNotFound       = errors.New("winner not found")
	ErrDrawNotOpen          = errors.New("draw is not open")
	ErrNoEligibleTickets    = errors.New("no eligible tickets for draw")
	ErrTicketAlreadyClaimed = errors.New("wallet already holds a ticket for this draw")
	ErrDrawClosed           = errors.New("draw entry window has closed")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
