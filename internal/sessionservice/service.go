// Package sessionservice manages the login session lifecycle.
//
// A session moves LOGGED_OUT -> LOGGED_IN on authentication and back on
// explicit logout, on inactivity countdown expiry, or when the active
// account is closed. Each live session owns exactly one countdown; logging
// in again replaces it, it is never stacked. Every qualifying activity winds
// the countdown back to its full tick count. Ending a session, however it
// ends, cancels the account's pending loan grants.
package sessionservice

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/pkg/configpkg"
	"github.com/go-bankist/bankist/pkg/timerpkg"
	"github.com/go-bankist/bankist/pkg/tokenpkg"
	"github.com/google/uuid"
)

// AccountService provides the account operations the session layer needs.
type AccountService interface {
	Authenticate(ctx context.Context, username string, pin int32) (domain.Account, error)
	Close(ctx context.Context, username string, pin int32) error
}

// LoanCanceler cancels pending loan grants when a session ends.
type LoanCanceler interface {
	CancelPending(username string)
}

type session struct {
	data      domain.Session
	countdown *timerpkg.Countdown
}

// Service facilitates session service layer logic.
type Service struct {
	TokenMaker tokenpkg.Maker

	accountService AccountService
	loans          LoanCanceler
	config         configpkg.Config
	logger         zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// New returns session service struct to manage session bussines logic.
func New(as AccountService, loans LoanCanceler, config configpkg.Config, tokenMaker tokenpkg.Maker, logger zerolog.Logger) *Service {
	return &Service{
		TokenMaker:     tokenMaker,
		accountService: as,
		loans:          loans,
		config:         config,
		logger:         logger,
		sessions:       make(map[string]*session),
	}
}

// Login authenticates the credentials, issues an access token and starts the
// inactivity countdown. A previous live session for the same account is
// replaced, countdown included.
func (s *Service) Login(ctx context.Context, username string, pin int32) (string, time.Time, domain.Account, error) {
	acc, err := s.accountService.Authenticate(ctx, username, pin)
	if err != nil {
		return "", time.Time{}, domain.Account{}, err
	}

	accessToken, payload, err := s.TokenMaker.CreateToken(acc.Username, s.config.AccessTokenDuration)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return "", time.Time{}, domain.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.sessions[acc.Username]; ok {
		old.countdown.Stop()
	}

	s.sessions[acc.Username] = &session{
		data: domain.Session{
			ID:        uuid.New(),
			Username:  acc.Username,
			CreatedAt: time.Now().UTC(),
		},
		countdown: timerpkg.NewCountdown(s.config.SessionTicks, s.config.TickInterval, func() {
			s.expire(acc.Username)
		}),
	}

	return accessToken, payload.ExpiredAt, acc, nil
}

// expire is the countdown callback: the forced logout on inactivity.
func (s *Service) expire(username string) {
	s.logger.Info().Str("username", username).Msg("session expired, forced logout")
	s.end(username, false)
}

// end removes the session and cancels the account's pending loan grants.
func (s *Service) end(username string, stopCountdown bool) bool {
	s.mu.Lock()
	sess, ok := s.sessions[username]
	delete(s.sessions, username)
	s.mu.Unlock()

	if !ok {
		return false
	}

	if stopCountdown {
		sess.countdown.Stop()
	}

	s.loans.CancelPending(username)

	return true
}

// Logout ends the live session for the user.
func (s *Service) Logout(ctx context.Context, username string) error {
	if !s.end(username, true) {
		return domain.ErrSessionNotFound
	}

	return nil
}

// Touch registers qualifying user activity: it winds the session countdown
// back to its full tick count and reports the ticks remaining.
func (s *Service) Touch(ctx context.Context, username string) (int, error) {
	s.mu.Lock()
	sess, ok := s.sessions[username]
	s.mu.Unlock()

	if !ok {
		return 0, domain.ErrSessionNotFound
	}

	sess.countdown.Reset()

	return sess.countdown.Remaining(), nil
}

// RemainingTicks reports the ticks left before forced logout without
// counting as activity.
func (s *Service) RemainingTicks(ctx context.Context, username string) (int, error) {
	s.mu.Lock()
	sess, ok := s.sessions[username]
	s.mu.Unlock()

	if !ok {
		return 0, domain.ErrSessionNotFound
	}

	return sess.countdown.Remaining(), nil
}

// CloseAccount authenticates the credentials, removes the account from the
// ledger for good and ends its session if one is live. Pending loan grants
// die with it.
func (s *Service) CloseAccount(ctx context.Context, username string, pin int32) error {
	if err := s.accountService.Close(ctx, username, pin); err != nil {
		return err
	}

	if !s.end(username, true) {
		// The account can be closed without a live session; grants may
		// still be pending from an earlier one.
		s.loans.CancelPending(username)
	}

	return nil
}
