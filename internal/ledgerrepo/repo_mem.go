// Package ledgerrepo manages the repository layer of the account ledger.
//
// The ledger is the authoritative, process-wide account collection. It lives
// entirely in memory and resets on restart; there is deliberately no durable
// backend behind it. A single mutex guards it because timer callbacks (loan
// grants, logout countdowns) run on their own goroutines.
package ledgerrepo

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-bankist/bankist/internal/domain"
)

// RepoMem facilitates ledger repository layer logic on the in-memory
// account collection.
type RepoMem struct {
	mu       sync.RWMutex
	accounts []*domain.Account
}

// NewRepoMem seeds the ledger, derives every username and warms the balance
// caches. It fails if two owners derive the same username.
func NewRepoMem(accounts []domain.Account) (*RepoMem, error) {
	r := &RepoMem{}

	seen := make(map[string]struct{}, len(accounts))

	for i := range accounts {
		acc := accounts[i]
		acc.Username = domain.DeriveUsername(acc.Owner)
		acc.Balance = sumMovements(acc.Movements)

		if _, ok := seen[acc.Username]; ok {
			return nil, domain.ErrUsernameTaken
		}

		seen[acc.Username] = struct{}{}
		r.accounts = append(r.accounts, &acc)
	}

	return r, nil
}

func sumMovements(movements []domain.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Amount)
	}

	return total
}

// clone returns a value copy whose movements slice is detached from the
// stored record.
func clone(acc *domain.Account) domain.Account {
	c := *acc
	c.Movements = make([]domain.Movement, len(acc.Movements))
	copy(c.Movements, acc.Movements)

	return c
}

func (r *RepoMem) find(username string) *domain.Account {
	for _, acc := range r.accounts {
		if acc.Username == username {
			return acc
		}
	}

	return nil
}

// Get returns the account with the given username.
func (r *RepoMem) Get(ctx context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc := r.find(username)
	if acc == nil {
		zerolog.Ctx(ctx).Info().Str("username", username).Msg("account not found")
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return clone(acc), nil
}

// GetByOwner returns the account whose owner full name matches exactly.
// Transfer recipients are addressed by owner name, not username.
func (r *RepoMem) GetByOwner(ctx context.Context, owner string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acc := range r.accounts {
		if acc.Owner == owner {
			return clone(acc), nil
		}
	}

	zerolog.Ctx(ctx).Info().Str("owner", owner).Msg("recipient not found")

	return domain.Account{}, domain.ErrAccountNotFound
}

// List returns all open accounts in seed order.
func (r *RepoMem) List(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		out = append(out, clone(acc))
	}

	return out, nil
}

// SetBalance stores the freshly computed balance cache for the account.
func (r *RepoMem) SetBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc := r.find(username)
	if acc == nil {
		return domain.ErrAccountNotFound
	}

	acc.Balance = balance

	return nil
}

// TransferTx atomically appends the withdrawal to the sender, the deposit to
// the recipient (both stamped with the same moment) and recomputes the
// sender's balance cache. Sender and recipient may be the same account.
func (r *RepoMem) TransferTx(ctx context.Context, fromUsername, toUsername string, amount decimal.Decimal) (domain.TransferResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	from := r.find(fromUsername)
	to := r.find(toUsername)

	if from == nil || to == nil {
		return domain.TransferResult{}, domain.ErrAccountNotFound
	}

	now := time.Now().UTC()

	from.Movements = append(from.Movements, domain.Movement{Amount: amount.Neg(), Time: now})
	to.Movements = append(to.Movements, domain.Movement{Amount: amount, Time: now})

	from.Balance = sumMovements(from.Movements)
	to.Balance = sumMovements(to.Movements)

	return domain.TransferResult{From: clone(from), To: clone(to)}, nil
}

// AppendMovement records a single movement stamped with the current moment
// and recomputes the balance cache. Loan grants land through here.
func (r *RepoMem) AppendMovement(ctx context.Context, username string, amount decimal.Decimal) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc := r.find(username)
	if acc == nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	acc.Movements = append(acc.Movements, domain.Movement{Amount: amount, Time: time.Now().UTC()})
	acc.Balance = sumMovements(acc.Movements)

	return clone(acc), nil
}

// Delete permanently removes the account. There is no soft delete.
func (r *RepoMem) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, acc := range r.accounts {
		if acc.Username == username {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}

	return domain.ErrAccountNotFound
}
