// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-bankist/bankist/internal/domain"
)

var one = decimal.NewFromInt(1)

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	Get(ctx context.Context, username string) (domain.Account, error)
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	SetBalance(ctx context.Context, username string, balance decimal.Decimal) error
	Delete(ctx context.Context, username string) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(r Repo) *Service {
	return &Service{repo: r}
}

// Get returns the account for the given username.
func (s *Service) Get(ctx context.Context, username string) (domain.Account, error) {
	return s.repo.Get(ctx, username)
}

// GetByOwner returns the account whose owner full name matches exactly.
func (s *Service) GetByOwner(ctx context.Context, owner string) (domain.Account, error) {
	return s.repo.GetByOwner(ctx, owner)
}

// Authenticate returns the account only if it exists and its pin matches
// exactly. Both failure paths collapse into the same error so callers cannot
// tell an unknown user from a wrong pin.
func (s *Service) Authenticate(ctx context.Context, username string, pin int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	acc, err := s.repo.Get(ctx, username)
	if err != nil {
		l.Info().Str("username", username).Msg("authentication failed: unknown username")
		return domain.Account{}, domain.ErrAuthenticationFailure
	}

	if acc.Pin != pin {
		l.Info().Str("username", username).Msg("authentication failed: pin mismatch")
		return domain.Account{}, domain.ErrAuthenticationFailure
	}

	return acc, nil
}

// Balance recomputes the account balance from its movements, refreshes the
// cached value on the stored record and returns the fresh account copy.
func (s *Service) Balance(ctx context.Context, username string) (domain.Account, error) {
	acc, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.Account{}, err
	}

	balance := decimal.Zero
	for _, m := range acc.Movements {
		balance = balance.Add(m.Amount)
	}

	if err := s.repo.SetBalance(ctx, username, balance); err != nil {
		return domain.Account{}, err
	}

	acc.Balance = balance

	return acc, nil
}

// Close authenticates the credentials and then permanently removes the
// account from the ledger.
func (s *Service) Close(ctx context.Context, username string, pin int32) error {
	if _, err := s.Authenticate(ctx, username, pin); err != nil {
		return err
	}

	return s.repo.Delete(ctx, username)
}

// IncomeSum sums all deposits.
func IncomeSum(acc domain.Account) decimal.Decimal {
	total := decimal.Zero

	for _, m := range acc.Movements {
		if m.Amount.IsPositive() {
			total = total.Add(m.Amount)
		}
	}

	return total
}

// OutgoingSum sums all withdrawals. The result is negative or zero.
func OutgoingSum(acc domain.Account) decimal.Decimal {
	total := decimal.Zero

	for _, m := range acc.Movements {
		if m.Amount.IsNegative() {
			total = total.Add(m.Amount)
		}
	}

	return total
}

// InterestIncome computes interest per deposit at the account rate and sums
// the contributions. Any single contribution below 1 is dropped entirely;
// the threshold applies per deposit, never to the total.
func InterestIncome(acc domain.Account) decimal.Decimal {
	total := decimal.Zero

	for _, m := range acc.Movements {
		if !m.Amount.IsPositive() {
			continue
		}

		interest := m.Amount.Mul(acc.InterestRate).Div(decimal.NewFromInt(100))
		if interest.LessThan(one) {
			continue
		}

		total = total.Add(interest)
	}

	return total
}

// SortedMovements returns a copy of the movements, ascending by amount when
// byAmount is set and in insertion order otherwise. The stored order is
// never touched.
func SortedMovements(acc domain.Account, byAmount bool) []domain.Movement {
	out := make([]domain.Movement, len(acc.Movements))
	copy(out, acc.Movements)

	if byAmount {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount.LessThan(out[j].Amount)
		})
	}

	return out
}
