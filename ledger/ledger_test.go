package ledger

import (
	"context"
	"sync"
	"testing"

	"PixBot/models"
	"PixBot/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Ledger, context.Context) {
	t.Helper()
	return New(testutil.SetupTestDB(t)), context.Background()
}

func TestGetCreatesAccountLazily(t *testing.T) {
	l, ctx := setup(t)

	acc, err := l.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", acc.UserID)
	assert.Zero(t, acc.Coins)
	assert.Zero(t, acc.Bank)
	assert.Nil(t, acc.LastDaily)

	require.NoError(t, l.Ensure(ctx, "u1"))
	var count int64
	require.NoError(t, l.db.Model(&models.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDebitGuardsBalance(t *testing.T) {
	l, ctx := setup(t)
	require.NoError(t, l.Credit(ctx, "u1", 100))

	assert.ErrorIs(t, l.Debit(ctx, "u1", 101), ErrInsufficientFunds)
	assert.ErrorIs(t, l.Debit(ctx, "u1", 0), ErrInvalidAmount)
	assert.ErrorIs(t, l.Debit(ctx, "u1", -5), ErrInvalidAmount)
	require.NoError(t, l.Debit(ctx, "u1", 100))

	acc, err := l.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, acc.Coins)
}

func TestDebitUpToClampsToWallet(t *testing.T) {
	l, ctx := setup(t)
	require.NoError(t, l.Credit(ctx, "u1", 150))

	taken, err := l.DebitUpTo(ctx, "u1", 400)
	require.NoError(t, err)
	assert.Equal(t, int64(150), taken)

	taken, err = l.DebitUpTo(ctx, "u1", 400)
	require.NoError(t, err)
	assert.Zero(t, taken)

	acc, _ := l.Get(ctx, "u1")
	assert.Zero(t, acc.Coins)
}

func TestDepositAndWithdraw(t *testing.T) {
	l, ctx := setup(t)
	require.NoError(t, l.Credit(ctx, "u1", 500))

	require.NoError(t, l.Deposit(ctx, "u1", 300))
	acc, _ := l.Get(ctx, "u1")
	assert.Equal(t, int64(200), acc.Coins)
	assert.Equal(t, int64(300), acc.Bank)

	assert.ErrorIs(t, l.Deposit(ctx, "u1", 201), ErrInsufficientFunds)
	assert.ErrorIs(t, l.Withdraw(ctx, "u1", 301), ErrInsufficientFunds)

	require.NoError(t, l.Withdraw(ctx, "u1", 100))
	acc, _ = l.Get(ctx, "u1")
	assert.Equal(t, int64(300), acc.Coins)
	assert.Equal(t, int64(200), acc.Bank)
}

func TestTransfer(t *testing.T) {
	l, ctx := setup(t)
	require.NoError(t, l.Credit(ctx, "a", 100))

	assert.ErrorIs(t, l.Transfer(ctx, "a", "a", 10), ErrSameAccount)
	assert.ErrorIs(t, l.Transfer(ctx, "a", "b", 101), ErrInsufficientFunds)
	require.NoError(t, l.Transfer(ctx, "a", "b", 60))

	a, _ := l.Get(ctx, "a")
	b, _ := l.Get(ctx, "b")
	assert.Equal(t, int64(40), a.Coins)
	assert.Equal(t, int64(60), b.Coins)
}

func TestFailedTransferLeavesRecipientUntouched(t *testing.T) {
	l, ctx := setup(t)

	assert.ErrorIs(t, l.Transfer(ctx, "a", "b", 10), ErrInsufficientFunds)
	b, _ := l.Get(ctx, "b")
	assert.Zero(t, b.Coins)
}

func TestConcurrentDebitsNeverGoNegative(t *testing.T) {
	l, ctx := setup(t)
	require.NoError(t, l.Credit(ctx, "u1", 1000))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Debit(ctx, "u1", 100); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	acc, _ := l.Get(ctx, "u1")
	assert.Equal(t, 10, succeeded)
	assert.Zero(t, acc.Coins)
}

func TestApplyInterest(t *testing.T) {
	l, ctx := setup(t)
	require.NoError(t, l.Credit(ctx, "u1", 1000))
	require.NoError(t, l.Deposit(ctx, "u1", 1000))
	require.NoError(t, l.Credit(ctx, "u2", 99))
	require.NoError(t, l.Deposit(ctx, "u2", 99))
	require.NoError(t, l.Ensure(ctx, "u3"))

	n, err := l.ApplyInterest(ctx, 1.02)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	u1, _ := l.Get(ctx, "u1")
	u2, _ := l.Get(ctx, "u2")
	u3, _ := l.Get(ctx, "u3")
	assert.Equal(t, int64(1020), u1.Bank)
	assert.Equal(t, int64(100), u2.Bank) // 100.98 truncated
	assert.Zero(t, u3.Bank)

	_, err = l.ApplyInterest(ctx, 1.02)
	require.NoError(t, err)
	u1, _ = l.Get(ctx, "u1")
	assert.Equal(t, int64(1040), u1.Bank)
}

func TestApplyInterestLargeBank(t *testing.T) {
	l, ctx := setup(t)
	const bank = int64(10_000_000_000_000_007)
	require.NoError(t, l.Credit(ctx, "whale", bank))
	require.NoError(t, l.Deposit(ctx, "whale", bank))

	// bank*10200 would not fit in an int64.
	_, err := l.ApplyInterest(ctx, 1.02)
	require.NoError(t, err)

	acc, err := l.Get(ctx, "whale")
	require.NoError(t, err)
	assert.Equal(t, int64(10_200_000_000_000_007), acc.Bank)
}

func TestLeaderboards(t *testing.T) {
	l, ctx := setup(t)
	require.NoError(t, l.Credit(ctx, "poor", 10))
	require.NoError(t, l.Credit(ctx, "saver", 50))
	require.NoError(t, l.Deposit(ctx, "saver", 50))
	require.NoError(t, l.Credit(ctx, "saver", 10))
	require.NoError(t, l.Credit(ctx, "rich", 40))
	require.NoError(t, l.AddXP(ctx, "poor", 500))
	require.NoError(t, l.AddXP(ctx, "rich", 5))

	top, err := l.TopWealth(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "saver", top[0].UserID)
	assert.Equal(t, "rich", top[1].UserID)

	topXP, err := l.TopXP(ctx, 10)
	require.NoError(t, err)
	require.Len(t, topXP, 3)
	assert.Equal(t, "poor", topXP[0].UserID)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 0, Level(0))
	assert.Equal(t, 0, Level(99))
	assert.Equal(t, 1, Level(100))
	assert.Equal(t, 2, Level(400))
	assert.Equal(t, 2, Level(899))
	assert.Equal(t, 3, Level(900))
}

func TestStats(t *testing.T) {
	l, ctx := setup(t)
	require.NoError(t, l.Credit(ctx, "a", 100))
	require.NoError(t, l.Credit(ctx, "b", 50))
	require.NoError(t, l.Deposit(ctx, "b", 20))

	s, err := l.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Accounts)
	assert.Equal(t, int64(130), s.TotalCoins)
	assert.Equal(t, int64(20), s.TotalBank)
}
