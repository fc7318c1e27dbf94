// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAuthenticationFailure indicates that the username is unknown or the pin does not match.
	// Callers surface one message for both cases.
	ErrAuthenticationFailure = errors.New("wrong username or pin")
	// ErrUsernameTaken indicates a derived username collision in the account set.
	ErrUsernameTaken = errors.New("username already taken")
)

// Movement holds a single signed transaction amount recorded against an
// account together with the moment it was recorded. Positive amounts are
// deposits, negative amounts are withdrawals.
type Movement struct {
	Amount decimal.Decimal `json:"amount"`
	Time   time.Time       `json:"time"`
}

// Account holds the full record of one bank customer. Movements are
// append-only; the whole account disappears only on explicit close.
type Account struct {
	Owner        string          `json:"owner"`
	Username     string          `json:"username"`
	Pin          int32           `json:"-"`
	Movements    []Movement      `json:"movements"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Currency     string          `json:"currency"`
	Locale       string          `json:"locale"`

	// Balance caches the most recently computed sum of movements for the
	// current session's validation checks. It is derived state, never
	// mutated independently of Movements.
	Balance decimal.Decimal `json:"balance"`
}

// DeriveUsername lowercases the owner name, splits it on spaces and joins the
// first letter of every token. "Jonas Schmedtmann" becomes "js".
func DeriveUsername(owner string) string {
	var sb strings.Builder

	for _, token := range strings.Fields(strings.ToLower(owner)) {
		sb.WriteByte(token[0])
	}

	return sb.String()
}

// FirstName returns the leading word of the owner name for welcome messages.
func FirstName(owner string) string {
	fields := strings.Fields(owner)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}
