package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

// DayBounds returns the start (inclusive) and end (exclusive) of the calendar
// day containing t in the given location. Every component that reasons about
// "today" must go through this function so the draw day has exactly one
// definition.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	startA, _ := DayBounds(a, loc)
	startB, _ := DayBounds(b, loc)
	return startA.Equal(startB)
}

// MaskWallet shortens a wallet address for public display: first 4 characters,
// an ellipsis, last 4 characters. Inputs of 10 characters or fewer pass
// through unmasked.
func MaskWallet(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:4] + "..." + address[len(address)-4:]
}

// ClampLimit bounds a requested page size to [1, max], substituting def when
// the request carries no usable value.
func ClampLimit(requested, def, max int) int {
	if requested <= 0 {
		return def
	}
	if requested > max {
		return max
	}
	return requested
}

// SecureRandIndex returns a uniformly distributed index in [0, n) drawn from
// crypto/rand. Winner selection must never use a predictable generator.
func SecureRandIndex(n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("index range must be positive")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

const ticketCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateTicketCode produces a display code like "XPOT-7KQ2M9C4". Codes use
// an unambiguous alphabet (no O/0, I/1) and a crypto/rand source.
func GenerateTicketCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, 8)
	for i, b := range buf {
		code[i] = ticketCodeAlphabet[int(b)%len(ticketCodeAlphabet)]
	}
	return "XPOT-" + string(code), nil
}
