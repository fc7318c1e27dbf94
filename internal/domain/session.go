package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound indicates that no live session exists for the user.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the inactivity countdown ran out.
	ErrSessionExpired = errors.New("session expired")
)

// Session holds the transient login state for one account. There is at most
// one live session per username and each session owns exactly one inactivity
// countdown.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
