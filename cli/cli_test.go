package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"PixBot/commands"
	"PixBot/ledger"
	"PixBot/testutil"
	"PixBot/vip"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCoinsAndTop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, addCoins(ctx, &out, db, "alice", 500))
	require.NoError(t, addCoins(ctx, &out, db, "alice", 250))
	assert.Contains(t, out.String(), "alice wallet: 750")

	assert.ErrorIs(t, addCoins(ctx, &out, db, "alice", -1), ledger.ErrInvalidAmount)

	require.NoError(t, addCoins(ctx, &out, db, "bob", 1000))
	out.Reset()
	require.NoError(t, printTop(ctx, &out, db, 10))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "bob")
	assert.Contains(t, string(lines[1]), "alice")
}

func TestTopEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printTop(context.Background(), &out, testutil.SetupTestDB(t), 5))
	assert.Equal(t, "No accounts yet.\n", out.String())
}

func TestGrantVIP(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, grantVIP(ctx, &out, db, "alice", 2, 0))
	assert.Contains(t, out.String(), "expires: never")

	tier, err := vip.New(db, time.Now).Tier(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, tier)

	assert.ErrorIs(t, grantVIP(ctx, &out, db, "alice", 9, 0), vip.ErrInvalidTier)
}

func TestApplyInterest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	l := ledger.New(db)

	require.NoError(t, l.Credit(ctx, "alice", 1000))
	require.NoError(t, l.Deposit(ctx, "alice", 1000))

	var out bytes.Buffer
	require.NoError(t, applyInterest(ctx, &out, db, 1.02))
	assert.Contains(t, out.String(), "1 account(s)")

	acc, err := l.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1020), acc.Bank)
}

func TestListCommands(t *testing.T) {
	modules := []*commands.ModuleInfo{{
		Name:        "Economy",
		Version:     "1.0.0",
		Description: "PixCoins",
		SlashCommands: []commands.SlashCommandInfo{
			{Name: "balance", Description: "Show balance", Ephemeral: true},
			{Name: "add_pixcoin", Description: "Mint", Permission: discordgo.PermissionAdministrator},
		},
	}}

	var out bytes.Buffer
	require.NoError(t, listCommands(&out, modules, "", false))
	assert.Contains(t, out.String(), "📦 Economy v1.0.0 (2 commands)")
	assert.Contains(t, out.String(), "[ephemeral]")
	assert.Contains(t, out.String(), "[staff]")

	out.Reset()
	require.NoError(t, listCommands(&out, modules, "economy", true))
	assert.NotContains(t, out.String(), "/balance")

	assert.Error(t, listCommands(&out, modules, "music", false))
}

func TestRegisteredModules(t *testing.T) {
	names := map[string]bool{}
	for _, m := range commands.GetAllModules() {
		names[m.Name] = true
	}
	for _, want := range []string{"Economy", "Moderation", "General", "Help", "Social"} {
		assert.True(t, names[want], want)
	}
}
