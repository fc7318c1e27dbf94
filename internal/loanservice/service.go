// Package loanservice manages business logic layer of loans.
//
// Underwriting is deliberately naive: a request is approved only if some
// prior movement is worth at least 10% of the requested amount. The decision
// is synchronous; the grant itself lands after a fixed processing delay and
// is cancellable until it fires.
package loanservice

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/pkg/timerpkg"
)

var depositShare = decimal.RequireFromString("0.1")

// Repo provides data access layer interface needed by loan service layer.
type Repo interface {
	Get(ctx context.Context, username string) (domain.Account, error)
	AppendMovement(ctx context.Context, username string, amount decimal.Decimal) (domain.Account, error)
}

// Service facilitates loan service layer logic and owns every pending grant.
type Service struct {
	repo       Repo
	grantDelay time.Duration

	mu      sync.Mutex
	pending map[string][]*timerpkg.Deferred
}

// New returns loan service struct to manage loan bussines logic.
func New(r Repo, grantDelay time.Duration) *Service {
	return &Service{
		repo:       r,
		grantDelay: grantDelay,
		pending:    make(map[string][]*timerpkg.Deferred),
	}
}

// Request runs the underwriting check and, on approval, schedules the grant.
// The requested amount is truncated to a whole number first.
func (s *Service) Request(ctx context.Context, username, amount string) (domain.LoanRequest, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.LoanRequest{}, domain.ErrInvalidAmount
	}

	amountDecimal = amountDecimal.Floor()

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return domain.LoanRequest{}, domain.ErrLoanRefused
	}

	acc, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.LoanRequest{}, err
	}

	threshold := amountDecimal.Mul(depositShare)

	approved := false

	for _, m := range acc.Movements {
		if m.Amount.GreaterThanOrEqual(threshold) {
			approved = true
			break
		}
	}

	if !approved {
		l.Info().Str("username", username).Str("amount", amountDecimal.String()).Msg("loan refused")
		return domain.LoanRequest{}, domain.ErrLoanRefused
	}

	s.schedule(l, username, amountDecimal)

	return domain.LoanRequest{Username: username, Amount: amountDecimal.String()}, nil
}

func (s *Service) schedule(l *zerolog.Logger, username string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d *timerpkg.Deferred

	d = timerpkg.NewDeferred(s.grantDelay, func() {
		// The request context is long gone when the grant fires.
		ctx := l.WithContext(context.Background())

		if _, err := s.repo.AppendMovement(ctx, username, amount); err != nil {
			// The account was closed while the grant was pending.
			l.Info().Err(err).Str("username", username).Msg("loan grant dropped")
		}

		s.remove(username, d)
	})

	s.pending[username] = append(s.pending[username], d)
}

func (s *Service) remove(username string, d *timerpkg.Deferred) {
	s.mu.Lock()
	defer s.mu.Unlock()

	granted := s.pending[username]
	for i, p := range granted {
		if p == d {
			s.pending[username] = append(granted[:i], granted[i+1:]...)
			break
		}
	}

	if len(s.pending[username]) == 0 {
		delete(s.pending, username)
	}
}

// CancelPending cancels every grant still pending for the account. Called on
// logout, forced logout and account close so a grant never lands on a stale
// or absent account.
func (s *Service) CancelPending(username string) {
	s.mu.Lock()
	pending := s.pending[username]
	delete(s.pending, username)
	s.mu.Unlock()

	// Cancel outside the service mutex: a firing grant holds its own lock
	// while it removes itself from the pending map.
	for _, d := range pending {
		d.Cancel()
	}
}
