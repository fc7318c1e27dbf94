package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-bankist/bankist/internal/accountservice"
	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/internal/ledgerrepo"
	"github.com/go-bankist/bankist/internal/loanservice"
	"github.com/go-bankist/bankist/internal/seed"
	"github.com/go-bankist/bankist/pkg/configpkg"
	"github.com/go-bankist/bankist/pkg/randompkg"
	"github.com/go-bankist/bankist/pkg/tokenpkg"
)

func newTestService(t *testing.T, ticks int, interval, loanDelay time.Duration) (*Service, *ledgerrepo.RepoMem, *loanservice.Service) {
	t.Helper()

	config := configpkg.Config{
		TokenSymmetricKey:   randompkg.String(32),
		AccessTokenDuration: time.Minute,
		SessionTicks:        ticks,
		TickInterval:        interval,
		LoanGrantDelay:      loanDelay,
	}

	repo, err := ledgerrepo.NewRepoMem(seed.Accounts())
	require.NoError(t, err)

	accountService := accountservice.New(repo)
	loanService := loanservice.New(repo, config.LoanGrantDelay)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	require.NoError(t, err)

	return New(accountService, loanService, config, tokenMaker, zerolog.Nop()), repo, loanService
}

func TestLogin(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t, 300, time.Second, 10*time.Millisecond)
	ctx := context.Background()

	accessToken, expiresAt, acc, err := service.Login(ctx, "js", 1111)
	require.NoError(t, err)
	require.Equal(t, "js", acc.Username)
	require.False(t, expiresAt.IsZero())

	payload, err := service.TokenMaker.VerifyToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, "js", payload.Username)

	_, _, _, err = service.Login(ctx, "js", 9999)
	require.ErrorIs(t, err, domain.ErrAuthenticationFailure)

	_, _, _, err = service.Login(ctx, "zz", 1111)
	require.ErrorIs(t, err, domain.ErrAuthenticationFailure)
}

func TestTouchAndLogout(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t, 300, time.Second, 10*time.Millisecond)
	ctx := context.Background()

	_, err := service.Touch(ctx, "js")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, _, _, err = service.Login(ctx, "js", 1111)
	require.NoError(t, err)

	ticks, err := service.Touch(ctx, "js")
	require.NoError(t, err)
	require.Equal(t, 300, ticks)

	remaining, err := service.RemainingTicks(ctx, "js")
	require.NoError(t, err)
	require.Equal(t, 300, remaining)

	require.NoError(t, service.Logout(ctx, "js"))
	require.ErrorIs(t, service.Logout(ctx, "js"), domain.ErrSessionNotFound)

	_, err = service.Touch(ctx, "js")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestForcedLogoutOnInactivity(t *testing.T) {
	t.Parallel()

	// The loan grant delay is far longer than the untouched session
	// lifetime: a loan approved right before the forced logout must
	// never land.
	service, repo, loanService := newTestService(t, 5, time.Millisecond, 200*time.Millisecond)
	ctx := context.Background()

	_, _, _, err := service.Login(ctx, "js", 1111)
	require.NoError(t, err)

	before, err := repo.Get(ctx, "js")
	require.NoError(t, err)

	_, err = loanService.Request(ctx, "js", "1000")
	require.NoError(t, err)

	// Poll passively: Touch would count as activity and keep resetting
	// the countdown.
	require.Eventually(t, func() bool {
		_, remErr := service.RemainingTicks(ctx, "js")
		return remErr == domain.ErrSessionNotFound
	}, 5*time.Second, time.Millisecond)

	time.Sleep(400 * time.Millisecond)

	after, err := repo.Get(ctx, "js")
	require.NoError(t, err)
	require.Len(t, after.Movements, len(before.Movements))
}

func TestActivityDelaysForcedLogout(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t, 50, time.Millisecond, 10*time.Millisecond)
	ctx := context.Background()

	_, _, _, err := service.Login(ctx, "js", 1111)
	require.NoError(t, err)

	// Keep touching for a period well past the untouched lifetime.
	deadline := time.Now().Add(120 * time.Millisecond)
	for time.Now().Before(deadline) {
		_, err := service.Touch(ctx, "js")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLoginReplacesSession(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t, 300, time.Second, 10*time.Millisecond)
	ctx := context.Background()

	_, _, _, err := service.Login(ctx, "js", 1111)
	require.NoError(t, err)

	// A second login replaces the live session instead of stacking a
	// second countdown.
	_, _, _, err = service.Login(ctx, "js", 1111)
	require.NoError(t, err)

	_, err = service.Touch(ctx, "js")
	require.NoError(t, err)
}

func TestCloseAccount(t *testing.T) {
	t.Parallel()

	service, repo, _ := newTestService(t, 300, time.Second, 10*time.Millisecond)
	ctx := context.Background()

	_, _, _, err := service.Login(ctx, "js", 1111)
	require.NoError(t, err)

	// Wrong credentials leave everything in place.
	require.ErrorIs(t, service.CloseAccount(ctx, "js", 9999), domain.ErrAuthenticationFailure)

	_, err = repo.Get(ctx, "js")
	require.NoError(t, err)

	require.NoError(t, service.CloseAccount(ctx, "js", 1111))

	// The account is gone and its session with it.
	_, err = repo.Get(ctx, "js")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = service.Touch(ctx, "js")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Closing without a live session works too.
	_, _, _, err = service.Login(ctx, "jd", 2222)
	require.NoError(t, err)
	require.NoError(t, service.Logout(ctx, "jd"))
	require.NoError(t, service.CloseAccount(ctx, "jd", 2222))
}
