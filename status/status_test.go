package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PixBot/ledger"
	"PixBot/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, s *Server, path string) (int, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Router().ServeHTTP(w, req)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealth(t *testing.T) {
	s := New(":0", ledger.New(testutil.SetupTestDB(t)), nil, time.Now())
	code, body := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"ok"`, string(body["status"]))
}

func TestStats(t *testing.T) {
	l := ledger.New(testutil.SetupTestDB(t))
	ctx := context.Background()
	require.NoError(t, l.Credit(ctx, "a", 300))
	require.NoError(t, l.Deposit(ctx, "a", 100))

	s := New(":0", l, nil, time.Now().Add(-time.Minute))
	code, body := get(t, s, "/stats")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `1`, string(body["accounts"]))
	assert.JSONEq(t, `200`, string(body["total_coins"]))
	assert.JSONEq(t, `100`, string(body["total_bank"]))
}

func TestLeaderboardIsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	l := ledger.New(testutil.SetupTestDB(t))
	ctx := context.Background()
	require.NoError(t, l.Credit(ctx, "a", 50))
	require.NoError(t, l.Credit(ctx, "b", 80))

	s := New(":0", l, rdb, time.Now())
	code, body := get(t, s, "/leaderboard")
	assert.Equal(t, http.StatusOK, code)

	var entries []Entry
	require.NoError(t, json.Unmarshal(body["leaderboard"], &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].UserID)
	assert.True(t, mr.Exists(LeaderboardCacheKey))

	// A new rich account is not visible until the cache expires.
	require.NoError(t, l.Credit(ctx, "c", 1000))
	cached, err := Leaderboard(ctx, l, rdb)
	require.NoError(t, err)
	assert.Equal(t, "b", cached[0].UserID)

	mr.FastForward(LeaderboardTTL + time.Second)
	fresh, err := Leaderboard(ctx, l, rdb)
	require.NoError(t, err)
	assert.Equal(t, "c", fresh[0].UserID)
}
