package giveaway

import (
	"context"
	"sync"
	"testing"
	"time"

	"PixBot/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

// reversed draws pool entries back to front.
type reversed struct{}

func (reversed) Intn(n int) int   { return n - 1 }
func (reversed) Float64() float64 { return 0 }
func (reversed) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = n - 1 - i
	}
	return p
}

func setup(t *testing.T) (*Service, *clock, context.Context) {
	t.Helper()
	c := &clock{t: time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC)}
	return New(testutil.SetupTestDB(t), c.Now, reversed{}), c, context.Background()
}

func TestCreateValidates(t *testing.T) {
	s, _, ctx := setup(t)

	g, err := s.Create(ctx, "g1", "c1", "host", "  Nitro  ", time.Hour, 2)
	require.NoError(t, err)
	assert.Equal(t, "Nitro", g.Prize)
	assert.Equal(t, time.Date(2026, 4, 10, 19, 0, 0, 0, time.UTC), g.EndsAt)
	assert.False(t, g.Ended)

	for _, tc := range []struct {
		prize    string
		duration time.Duration
		winners  int
	}{
		{" ", time.Hour, 1},
		{"Nitro", 0, 1},
		{"Nitro", MaxDuration + time.Minute, 1},
		{"Nitro", time.Hour, 0},
		{"Nitro", time.Hour, MaxWinners + 1},
	} {
		_, err := s.Create(ctx, "g1", "c1", "host", tc.prize, tc.duration, tc.winners)
		assert.ErrorIs(t, err, ErrInvalid, "%+v", tc)
	}
}

func TestEnter(t *testing.T) {
	s, c, ctx := setup(t)
	g, err := s.Create(ctx, "g1", "c1", "host", "Nitro", time.Hour, 1)
	require.NoError(t, err)

	n, err := s.Enter(ctx, g.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = s.Enter(ctx, g.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = s.Enter(ctx, g.ID, "u1")
	assert.ErrorIs(t, err, ErrAlreadyEntered)
	_, err = s.Enter(ctx, 999, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	c.t = g.EndsAt
	_, err = s.Enter(ctx, g.ID, "u3")
	assert.ErrorIs(t, err, ErrEnded)
}

func TestEndDrawsOnce(t *testing.T) {
	s, _, ctx := setup(t)
	g, err := s.Create(ctx, "g1", "c1", "host", "Nitro", time.Hour, 2)
	require.NoError(t, err)
	for _, u := range []string{"a", "b", "c"} {
		_, err := s.Enter(ctx, g.ID, u)
		require.NoError(t, err)
	}

	res, err := s.End(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Entrants)
	assert.Equal(t, []string{"c", "b"}, res.Winners)
	assert.True(t, res.Giveaway.Ended)

	_, err = s.End(ctx, g.ID)
	assert.ErrorIs(t, err, ErrEnded)
	_, err = s.End(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEndWithoutEntrants(t *testing.T) {
	s, _, ctx := setup(t)
	g, err := s.Create(ctx, "g1", "c1", "host", "Nitro", time.Hour, 3)
	require.NoError(t, err)

	res, err := s.End(ctx, g.ID)
	require.NoError(t, err)
	assert.Zero(t, res.Entrants)
	assert.Empty(t, res.Winners)
}

func TestConcurrentEndsDrawOnce(t *testing.T) {
	s, _, ctx := setup(t)
	g, err := s.Create(ctx, "g1", "c1", "host", "Nitro", time.Hour, 1)
	require.NoError(t, err)
	_, err = s.Enter(ctx, g.ID, "u1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	draws := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.End(ctx, g.ID); err == nil {
				mu.Lock()
				draws++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, draws)
}

func TestReroll(t *testing.T) {
	s, _, ctx := setup(t)
	g, err := s.Create(ctx, "g1", "c1", "host", "Nitro", time.Hour, 1)
	require.NoError(t, err)
	for _, u := range []string{"a", "b", "c"} {
		_, err := s.Enter(ctx, g.ID, u)
		require.NoError(t, err)
	}

	_, err = s.Reroll(ctx, g.ID, 1)
	assert.ErrorIs(t, err, ErrRunning)

	res, err := s.End(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, res.Winners)

	// Previous winners are not drawn again.
	again, err := s.Reroll(ctx, g.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, again)

	rest, err := s.Reroll(ctx, g.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, rest)

	_, err = s.Reroll(ctx, g.ID, 1)
	assert.ErrorIs(t, err, ErrNoEntrants)
	_, err = s.Reroll(ctx, g.ID, 0)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDue(t *testing.T) {
	s, c, ctx := setup(t)
	short, err := s.Create(ctx, "g1", "c1", "host", "Short", 10*time.Minute, 1)
	require.NoError(t, err)
	long, err := s.Create(ctx, "g1", "c1", "host", "Long", 2*time.Hour, 1)
	require.NoError(t, err)
	require.NoError(t, s.AttachMessage(ctx, short.ID, "m1"))

	due, err := s.Due(ctx)
	require.NoError(t, err)
	assert.Empty(t, due)

	c.t = c.t.Add(time.Hour)
	due, err = s.Due(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, short.ID, due[0].ID)
	assert.Equal(t, "m1", due[0].MessageID)

	_, err = s.End(ctx, short.ID)
	require.NoError(t, err)
	c.t = c.t.Add(2 * time.Hour)
	due, err = s.Due(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, long.ID, due[0].ID)
}
