// Package statementservice renders the display surface for an account:
// movement rows, the localized summary figures and the welcome label. It
// derives everything from the movements on demand and stores nothing.
package statementservice

import (
	"context"
	"time"

	"github.com/go-bankist/bankist/internal/accountservice"
	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/pkg/formatpkg"
)

// AccountService provides the account operations the statement layer needs.
type AccountService interface {
	Balance(ctx context.Context, username string) (domain.Account, error)
}

// Service facilitates statement rendering logic.
type Service struct {
	accountService AccountService
}

// New returns statement service struct.
func New(as AccountService) *Service {
	return &Service{accountService: as}
}

// Statement builds the rendered view of the account. Rows come newest first;
// with sortByAmount they are ordered ascending by amount instead. Sorting is
// a view concern only, the stored movement order is never changed.
func (s *Service) Statement(ctx context.Context, username string, sortByAmount bool) (domain.Statement, error) {
	acc, err := s.accountService.Balance(ctx, username)
	if err != nil {
		return domain.Statement{}, err
	}

	movements := accountservice.SortedMovements(acc, sortByAmount)
	now := time.Now().UTC()

	rows := make([]domain.StatementRow, 0, len(movements))
	for i := len(movements) - 1; i >= 0; i-- {
		m := movements[i]

		movType := domain.MovementTypeWithdrawal
		if m.Amount.IsPositive() {
			movType = domain.MovementTypeDeposit
		}

		rows = append(rows, domain.StatementRow{
			Seq:   i + 1,
			Type:  movType,
			Date:  formatpkg.RelativeDate(now, m.Time),
			Value: formatpkg.Currency(m.Amount, acc.Currency, acc.Locale),
		})
	}

	out := accountservice.OutgoingSum(acc)

	summary := domain.StatementSummary{
		Balance:  formatpkg.Currency(acc.Balance, acc.Currency, acc.Locale),
		In:       formatpkg.Currency(accountservice.IncomeSum(acc), acc.Currency, acc.Locale),
		Out:      formatpkg.StripSign(formatpkg.Currency(out, acc.Currency, acc.Locale)),
		Interest: formatpkg.Currency(accountservice.InterestIncome(acc), acc.Currency, acc.Locale),
	}

	return domain.Statement{
		Welcome: "Welcome back, " + domain.FirstName(acc.Owner),
		Rows:    rows,
		Summary: summary,
	}, nil
}
