package vip

import (
	"context"
	"testing"
	"time"

	"PixBot/models"
	"PixBot/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func setup(t *testing.T) (*Registry, *clock, context.Context) {
	t.Helper()
	c := &clock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	return New(testutil.SetupTestDB(t), c.Now), c, context.Background()
}

func TestMultiplierTable(t *testing.T) {
	cases := map[int]float64{0: 1.0, 1: 1.2, 2: 1.4, 3: 1.7, 4: 2.0, 5: 1.0}
	for tier, want := range cases {
		assert.Equal(t, want, MultiplierFor(tier), "tier %d", tier)
	}
	assert.Equal(t, int64(170), PercentFor(Diamond))
	assert.Equal(t, int64(100), PercentFor(0))
}

func TestApplyTruncates(t *testing.T) {
	assert.Equal(t, int64(700), Apply(500, 140))
	assert.Equal(t, int64(3), Apply(2, 170))
	assert.Equal(t, int64(2), Apply(2, 120))
	assert.Equal(t, int64(500), Apply(500, 100))
}

func TestNoSubscriptionYieldsExactlyOne(t *testing.T) {
	r, _, ctx := setup(t)

	m, err := r.Multiplier(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 1.0, m)

	active, err := r.IsActive(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestGrantNeverExpires(t *testing.T) {
	r, c, ctx := setup(t)

	sub, err := r.Grant(ctx, "u1", Ultimate, 0)
	require.NoError(t, err)
	assert.Nil(t, sub.ExpiresAt)

	c.t = c.t.Add(10 * 365 * 24 * time.Hour)
	m, err := r.Multiplier(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, m)
}

func TestExpiredSubscriptionIsPurgedOnCheck(t *testing.T) {
	r, c, ctx := setup(t)

	_, err := r.Grant(ctx, "u1", Gold, 1)
	require.NoError(t, err)

	active, err := r.IsActive(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, active)

	c.t = c.t.Add(24 * time.Hour)
	active, err = r.IsActive(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, active)

	var count int64
	require.NoError(t, r.db.Model(&models.Subscription{}).Where("user_id = ?", "u1").Count(&count).Error)
	assert.Zero(t, count)
}

func TestGrantReplacesWithoutStacking(t *testing.T) {
	r, c, ctx := setup(t)

	_, err := r.Grant(ctx, "u1", Diamond, 30)
	require.NoError(t, err)
	sub, err := r.Grant(ctx, "u1", Bronze, 2)
	require.NoError(t, err)

	got, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, Bronze, got.Tier)
	require.NotNil(t, got.ExpiresAt)
	assert.WithinDuration(t, c.t.Add(48*time.Hour), *got.ExpiresAt, time.Second)
	assert.Equal(t, sub.Tier, got.Tier)
}

func TestGrantRejectsUnknownTier(t *testing.T) {
	r, _, ctx := setup(t)
	_, err := r.Grant(ctx, "u1", 7, 0)
	assert.ErrorIs(t, err, ErrInvalidTier)
}

func TestTransfer(t *testing.T) {
	r, _, ctx := setup(t)

	_, err := r.Transfer(ctx, "a", "b")
	assert.ErrorIs(t, err, ErrNotSubscribed)

	_, err = r.Grant(ctx, "a", Diamond, 0)
	require.NoError(t, err)
	_, err = r.Grant(ctx, "b", Bronze, 3)
	require.NoError(t, err)

	_, err = r.Transfer(ctx, "a", "a")
	assert.ErrorIs(t, err, ErrSameUser)

	moved, err := r.Transfer(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, Diamond, moved.Tier)

	tierA, _ := r.Tier(ctx, "a")
	tierB, _ := r.Tier(ctx, "b")
	assert.Zero(t, tierA)
	assert.Equal(t, Diamond, tierB)

	ok, err := r.CanCreateServer(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestName(t *testing.T) {
	assert.Equal(t, "Gold", Name(Gold))
	assert.Equal(t, "None", Name(0))
}
