package models

// Error codes carried in the response envelope's error field. Public clients
// see codes only; admin responses may additionally carry a message.
const (
	ErrCodeValidation        = "VALIDATION"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeNotConfigured     = "NOT_CONFIGURED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeNoEligibleTickets = "NO_ELIGIBLE_TICKETS"
	ErrCodeDrawNotOpen       = "DRAW_NOT_OPEN"
	ErrCodeDrawClosed        = "DRAW_CLOSED"
	ErrCodeAlreadyClaimed    = "ALREADY_CLAIMED"
	ErrCodeInternal          = "INTERNAL"
)
