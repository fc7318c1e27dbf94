package loanservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/internal/ledgerrepo"
	"github.com/go-bankist/bankist/internal/seed"
)

const testGrantDelay = 10 * time.Millisecond

func newTestService(t *testing.T) (*Service, *ledgerrepo.RepoMem) {
	t.Helper()

	repo, err := ledgerrepo.NewRepoMem(seed.Accounts())
	require.NoError(t, err)

	return New(repo, testGrantDelay), repo
}

func movementCount(t *testing.T, repo *ledgerrepo.RepoMem, username string) int {
	t.Helper()

	acc, err := repo.Get(context.Background(), username)
	require.NoError(t, err)

	return len(acc.Movements)
}

func TestRequestRefused(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		amount  string
		wantErr error
	}{
		// Jonas' largest movement is 25000: a 250001 loan needs a prior
		// deposit of at least 25000.1.
		{name: "NoQualifyingDeposit", amount: "250001", wantErr: domain.ErrLoanRefused},
		{name: "ZeroAmount", amount: "0", wantErr: domain.ErrLoanRefused},
		{name: "NegativeAmount", amount: "-500", wantErr: domain.ErrLoanRefused},
		// 0.9 floors to 0.
		{name: "FlooredToZero", amount: "0.9", wantErr: domain.ErrLoanRefused},
		{name: "UnparsableAmount", amount: "abc", wantErr: domain.ErrInvalidAmount},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service, repo := newTestService(t)
			before := movementCount(t, repo, "js")

			_, err := service.Request(context.Background(), "js", tc.amount)
			require.ErrorIs(t, err, tc.wantErr)

			// A refused loan never mutates the ledger, now or later.
			time.Sleep(3 * testGrantDelay)
			require.Equal(t, before, movementCount(t, repo, "js"))
		})
	}
}

func TestRequestApproved(t *testing.T) {
	t.Parallel()

	service, repo := newTestService(t)
	ctx := context.Background()

	before := movementCount(t, repo, "js")

	// 25000 covers 10% of 250000.
	loan, err := service.Request(ctx, "js", "250000.7")
	require.NoError(t, err)
	require.Equal(t, "250000", loan.Amount) // floored
	require.Equal(t, "js", loan.Username)

	// The decision is immediate but the grant lands only after the delay.
	require.Equal(t, before, movementCount(t, repo, "js"))

	require.Eventually(t, func() bool {
		return movementCount(t, repo, "js") == before+1
	}, 5*time.Second, time.Millisecond)

	acc, err := repo.Get(ctx, "js")
	require.NoError(t, err)

	last := acc.Movements[len(acc.Movements)-1]
	require.Equal(t, "250000", last.Amount.String())
	require.False(t, last.Time.IsZero())
}

func TestCancelPending(t *testing.T) {
	t.Parallel()

	service, repo := newTestService(t)
	ctx := context.Background()

	before := movementCount(t, repo, "js")

	_, err := service.Request(ctx, "js", "1000")
	require.NoError(t, err)

	service.CancelPending("js")

	time.Sleep(3 * testGrantDelay)
	require.Equal(t, before, movementCount(t, repo, "js"))
}

func TestGrantAfterAccountClosed(t *testing.T) {
	t.Parallel()

	service, repo := newTestService(t)
	ctx := context.Background()

	_, err := service.Request(ctx, "js", "1000")
	require.NoError(t, err)

	// Closing without cancelling: the grant fires on an absent account and
	// must be a harmless no-op.
	require.NoError(t, repo.Delete(ctx, "js"))

	time.Sleep(3 * testGrantDelay)

	_, err = repo.Get(ctx, "js")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestUnderwritingBoundary(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	ctx := context.Background()

	// Jessica's largest deposit is 8500: exactly 10% of 85000.
	_, err := service.Request(ctx, "jd", "85000")
	require.NoError(t, err)

	_, err = service.Request(ctx, "jd", "85010")
	require.ErrorIs(t, err, domain.ErrLoanRefused)
}
