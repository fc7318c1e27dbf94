// Package transferservice manages business logic layer of transfers.
//
// A transfer where sender and recipient are the same account is permitted,
// matching the bank's historical behaviour: the account gains a withdrawal
// and a deposit of equal size and its balance is unchanged.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-bankist/bankist/internal/domain"
)

// Repo provides data access layer interface needed by transfer service layer.
type Repo interface {
	TransferTx(ctx context.Context, fromUsername, toUsername string, amount decimal.Decimal) (domain.TransferResult, error)
}

// AccountService provides the account operations the transfer service needs.
type AccountService interface {
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
	Balance(ctx context.Context, username string) (domain.Account, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns transfer service struct to manage transfer bussines logic.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

func (s *Service) validRequest(ctx context.Context, fromUsername, toOwner, amount string) (string, decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	to, err := s.accountService.GetByOwner(ctx, toOwner)
	if err != nil {
		l.Info().Str("to_owner", toOwner).Msg("transfer recipient lookup failed")
		return "", decimal.Zero, domain.ErrUnknownRecipient
	}

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return "", decimal.Zero, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return "", decimal.Zero, domain.ErrInvalidAmount
	}

	// Sufficiency is checked against the freshly recomputed sender balance.
	from, err := s.accountService.Balance(ctx, fromUsername)
	if err != nil {
		l.Error().Err(err).Send()
		return "", decimal.Zero, err
	}

	if from.Balance.LessThan(amountDecimal) {
		return "", decimal.Zero, domain.ErrInsufficientFunds
	}

	return to.Username, amountDecimal, nil
}

// Transfer checks if the transfer request is valid and then executes it. On
// any failure the ledger is untouched.
func (s *Service) Transfer(ctx context.Context, fromUsername, toOwner, amount string) (domain.TransferResult, error) {
	toUsername, amountDecimal, err := s.validRequest(ctx, fromUsername, toOwner, amount)
	if err != nil {
		return domain.TransferResult{}, err
	}

	return s.repo.TransferTx(ctx, fromUsername, toUsername, amountDecimal)
}
