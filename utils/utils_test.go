package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUserID(t *testing.T) {
	id, err := ExtractUserID("<@123456>")
	require.NoError(t, err)
	assert.Equal(t, "123456", id)

	id, err = ExtractUserID("<@!42>")
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	id, err = ExtractUserID(" 175928847299117063 ")
	require.NoError(t, err)
	assert.Equal(t, "175928847299117063", id)

	_, err = ExtractUserID("@someone")
	assert.Error(t, err)
	_, err = ExtractUserID("<@abc>")
	assert.Error(t, err)
}

func TestStripMention(t *testing.T) {
	assert.Equal(t, "hello there", StripMention("<@99> hello there", "99"))
	assert.Equal(t, "hi", StripMention("hi <@!99>", "99"))
	assert.Equal(t, "", StripMention("<@99>", "99"))
}

func TestMentions(t *testing.T) {
	m := &discordgo.Message{Mentions: []*discordgo.User{{ID: "1"}, {ID: "2"}}}
	assert.True(t, Mentions(m, "2"))
	assert.False(t, Mentions(m, "3"))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(discordgo.PermissionAdministrator, discordgo.PermissionBanMembers))
	assert.True(t, HasPermission(discordgo.PermissionBanMembers|discordgo.PermissionKickMembers, discordgo.PermissionKickMembers))
	assert.False(t, HasPermission(discordgo.PermissionKickMembers, discordgo.PermissionBanMembers))
	assert.False(t, HasPermission(0, discordgo.PermissionManageMessages))
}

// stateSession returns a session whose state holds one guild "g1" owned by
// "owner", where "mod" has a Moderators role and "member" has none.
func stateSession(t *testing.T) *discordgo.Session {
	t.Helper()
	state := discordgo.NewState()
	require.NoError(t, state.GuildAdd(&discordgo.Guild{
		ID:      "g1",
		Name:    "Pix",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "g1", Name: "@everyone", Permissions: discordgo.PermissionSendMessages},
			{ID: "r-mod", Name: "Moderators", Permissions: discordgo.PermissionBanMembers},
		},
		Members: []*discordgo.Member{
			{User: &discordgo.User{ID: "mod"}, Roles: []string{"r-mod"}},
			{User: &discordgo.User{ID: "member"}},
		},
	}))
	return &discordgo.Session{State: state}
}

func TestMemberPermissions(t *testing.T) {
	s := stateSession(t)
	g, err := s.State.Guild("g1")
	require.NoError(t, err)

	assert.Equal(t, int64(discordgo.PermissionAll), MemberPermissions(g, "owner", nil))
	assert.Equal(t, int64(discordgo.PermissionSendMessages|discordgo.PermissionBanMembers), MemberPermissions(g, "mod", []string{"r-mod"}))
	assert.Equal(t, int64(discordgo.PermissionSendMessages), MemberPermissions(g, "member", nil))
}

func TestCheckPermissionUsesState(t *testing.T) {
	s := stateSession(t)

	ok, err := CheckPermission(s, "g1", "mod", discordgo.PermissionBanMembers)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPermission(s, "g1", "member", discordgo.PermissionBanMembers)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuildsSnapshot(t *testing.T) {
	assert.Nil(t, Guilds(nil))

	s := stateSession(t)
	guilds := Guilds(s)
	require.Len(t, guilds, 1)
	assert.Equal(t, "Pix", guilds[0].Name)

	// The copy does not track later state changes.
	require.NoError(t, s.State.GuildAdd(&discordgo.Guild{ID: "g2", Name: "Other"}))
	assert.Len(t, guilds, 1)
	assert.Len(t, Guilds(s), 2)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0 seconds", FormatDuration(0))
	assert.Equal(t, "45 second(s)", FormatDuration(45*time.Second))
	assert.Equal(t, "1 hour(s), 5 minute(s)", FormatDuration(65*time.Minute+10*time.Second))
	assert.Equal(t, "6 day(s), 23 hour(s)", FormatDuration(7*24*time.Hour-time.Hour))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "çã", Truncate("çãõ", 2))
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "0", FormatCoins(0))
	assert.Equal(t, "999", FormatCoins(999))
	assert.Equal(t, "1,000", FormatCoins(1000))
	assert.Equal(t, "100,000", FormatCoins(100000))
	assert.Equal(t, "-1,234,567", FormatCoins(-1234567))
}

func TestBetween(t *testing.T) {
	for i := 0; i < 200; i++ {
		v := Between(DefaultRand, 300, 700)
		assert.GreaterOrEqual(t, v, int64(300))
		assert.LessOrEqual(t, v, int64(700))
	}
	assert.Equal(t, int64(5), Between(DefaultRand, 5, 5))
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("u", "chat"))
	assert.True(t, rl.Allow("u", "chat"))
	assert.False(t, rl.Allow("u", "chat"))
	assert.True(t, rl.Allow("u", "other"))
	assert.True(t, rl.Allow("v", "chat"))

	now = now.Add(20 * time.Second)
	assert.Equal(t, 40*time.Second, rl.RetryAfter("u", "chat"))

	now = now.Add(40 * time.Second)
	assert.True(t, rl.Allow("u", "chat"))
	assert.Zero(t, rl.RetryAfter("nobody", "chat"))

	now = now.Add(2 * time.Minute)
	rl.Sweep()
	assert.Empty(t, rl.limits)
}

func TestCacheRoundTripWithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	var got []string
	hit, err := GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, SetCache(ctx, rdb, "k", []string{"a", "b"}, time.Minute))
	hit, err = GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got)

	mr.FastForward(2 * time.Minute)
	hit, err = GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, SetCache(ctx, rdb, "k", 1, time.Minute))
	require.NoError(t, DeleteCache(ctx, rdb, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestCachedLoadsOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}
	for i := 0; i < 3; i++ {
		v, err := Cached(ctx, rdb, "answer", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)

	v, err := Cached(ctx, nil, "answer", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestConnectRedisDisabled(t *testing.T) {
	rdb, err := ConnectRedis(context.Background(), "", "", 0)
	require.NoError(t, err)
	assert.Nil(t, rdb)
}
