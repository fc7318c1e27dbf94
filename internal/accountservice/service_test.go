package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/internal/ledgerrepo"
	"github.com/go-bankist/bankist/internal/seed"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	repo, err := ledgerrepo.NewRepoMem(seed.Accounts())
	require.NoError(t, err)

	return New(repo)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		username string
		pin      int32
		wantErr  error
	}{
		{name: "OK", username: "js", pin: 1111},
		{name: "WrongPin", username: "js", pin: 9999, wantErr: domain.ErrAuthenticationFailure},
		{name: "UnknownUsername", username: "zz", pin: 1111, wantErr: domain.ErrAuthenticationFailure},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			acc, err := service.Authenticate(ctx, tc.username, tc.pin)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, acc)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.username, acc.Username)
		})
	}
}

func TestBalance(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	acc, err := service.Balance(ctx, "js")
	require.NoError(t, err)

	want := decimal.Zero
	for _, m := range acc.Movements {
		want = want.Add(m.Amount)
	}

	require.True(t, acc.Balance.Equal(want))

	_, err = service.Balance(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestClose(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	// Wrong credentials leave the account set unchanged.
	require.ErrorIs(t, service.Close(ctx, "js", 9999), domain.ErrAuthenticationFailure)

	_, err := service.Authenticate(ctx, "js", 1111)
	require.NoError(t, err)

	// Correct credentials remove the account for good.
	require.NoError(t, service.Close(ctx, "js", 1111))

	_, err = service.Authenticate(ctx, "js", 1111)
	require.ErrorIs(t, err, domain.ErrAuthenticationFailure)
}

func TestIncomeAndOutgoingSums(t *testing.T) {
	t.Parallel()

	jonas := seed.Accounts()[0]

	require.True(t, IncomeSum(jonas).Equal(decimal.RequireFromString("27035.2")))
	require.True(t, OutgoingSum(jonas).Equal(decimal.RequireFromString("-1082.61")))
}

func TestInterestIncome(t *testing.T) {
	t.Parallel()

	rate := decimal.RequireFromString("1.2")

	acc := domain.Account{
		InterestRate: rate,
		Movements: []domain.Movement{
			// 50 earns 0.6 which is below the per-deposit threshold.
			{Amount: decimal.NewFromInt(50), Time: time.Now()},
			// 200 earns 2.4 and qualifies.
			{Amount: decimal.NewFromInt(200), Time: time.Now()},
			// Withdrawals never earn interest.
			{Amount: decimal.NewFromInt(-1000), Time: time.Now()},
		},
	}

	require.True(t, InterestIncome(acc).Equal(decimal.RequireFromString("2.4")))
}

func TestSortedMovements(t *testing.T) {
	t.Parallel()

	acc := seed.Accounts()[0]

	original := make([]domain.Movement, len(acc.Movements))
	copy(original, acc.Movements)

	sorted := SortedMovements(acc, true)

	for i := 1; i < len(sorted); i++ {
		require.True(t, sorted[i-1].Amount.LessThanOrEqual(sorted[i].Amount))
	}

	// The stored order is untouched.
	requireSameMovements(t, original, acc.Movements)
	requireSameMovements(t, original, SortedMovements(acc, false))
}

func requireSameMovements(t *testing.T, want, got []domain.Movement) {
	t.Helper()

	require.Len(t, got, len(want))

	for i := range want {
		require.True(t, want[i].Amount.Equal(got[i].Amount), "amount %d", i)
		require.True(t, want[i].Time.Equal(got[i].Time), "time %d", i)
	}
}
