package social

import (
	"context"
	"strings"
	"testing"
	"time"

	"PixBot/ledger"
	"PixBot/models"
	"PixBot/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateClan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	clan, err := CreateClan(ctx, db, "  Pix   Knights ", "leader")
	require.NoError(t, err)
	assert.Equal(t, "Pix Knights", clan.Name)
	assert.Equal(t, "leader", clan.LeaderID)

	_, err = CreateClan(ctx, db, "pix knights", "other")
	assert.ErrorIs(t, err, ErrClanExists)

	_, err = CreateClan(ctx, db, "Second", "leader")
	assert.ErrorIs(t, err, ErrAlreadyInClan)

	_, err = CreateClan(ctx, db, "   ", "other")
	assert.ErrorIs(t, err, ErrBadClanName)
	_, err = CreateClan(ctx, db, strings.Repeat("x", maxClanNameLength+1), "other")
	assert.ErrorIs(t, err, ErrBadClanName)
}

func TestClanNamesAreUniqueIgnoringCase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	clan, err := CreateClan(ctx, db, "Pix  Knights", "leader")
	require.NoError(t, err)
	assert.Equal(t, "pix knights", clan.NameKey)

	// A write that skips the lookup still hits the unique key.
	err = db.Create(&models.Clan{Name: "PIX KNIGHTS", NameKey: clanKey("PIX KNIGHTS"), LeaderID: "other"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	joined, err := JoinClan(ctx, db, "  PIX knights ", "member")
	require.NoError(t, err)
	assert.Equal(t, clan.ID, joined.ID)

	_, err = JoinClan(ctx, db, "", "someone")
	assert.ErrorIs(t, err, ErrClanNotFound)
}

func TestJoinAndInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	l := ledger.New(db)

	_, err := CreateClan(ctx, db, "Pix", "a")
	require.NoError(t, err)
	_, err = JoinClan(ctx, db, "PIX", "b")
	require.NoError(t, err)

	_, err = JoinClan(ctx, db, "Pix", "b")
	assert.ErrorIs(t, err, ErrAlreadyInClan)
	_, err = JoinClan(ctx, db, "Nope", "c")
	assert.ErrorIs(t, err, ErrClanNotFound)

	require.NoError(t, l.AddXP(ctx, "a", 300))
	require.NoError(t, l.AddXP(ctx, "b", 45))

	info, err := GetClanInfo(ctx, db, "pix")
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Members)
	assert.Equal(t, int64(345), info.XP)
	assert.Equal(t, "a", info.LeaderID)

	_, err = GetClanInfo(ctx, db, "ghost")
	assert.ErrorIs(t, err, ErrClanNotFound)
}

func TestInfoWithoutAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := CreateClan(ctx, db, "Fresh", "a")
	require.NoError(t, err)

	info, err := GetClanInfo(ctx, db, "Fresh")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Members)
	assert.Equal(t, int64(0), info.XP)
}

func TestLeaveClan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := CreateClan(ctx, db, "Pix", "a")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = JoinClan(ctx, db, "Pix", "b")
	require.NoError(t, err)

	_, _, err = LeaveClan(ctx, db, "c")
	assert.ErrorIs(t, err, ErrNotInClan)

	clan, disbanded, err := LeaveClan(ctx, db, "a")
	require.NoError(t, err)
	assert.False(t, disbanded)
	assert.Equal(t, "b", clan.LeaderID)

	info, err := GetClanInfo(ctx, db, "Pix")
	require.NoError(t, err)
	assert.Equal(t, "b", info.LeaderID)
	assert.Equal(t, int64(1), info.Members)

	_, disbanded, err = LeaveClan(ctx, db, "b")
	require.NoError(t, err)
	assert.True(t, disbanded)

	_, err = GetClanInfo(ctx, db, "Pix")
	assert.ErrorIs(t, err, ErrClanNotFound)

	// The name is free again.
	_, err = CreateClan(ctx, db, "Pix", "b")
	assert.NoError(t, err)
}

func TestClanError(t *testing.T) {
	assert.Contains(t, clanError(ErrClanExists), "already taken")
	assert.Contains(t, clanError(ErrBadClanName), "1 to 32")
	assert.Empty(t, clanError(assert.AnError))
}

func TestInfoEmbed(t *testing.T) {
	e := infoEmbed(ClanInfo{Members: 3, XP: 12000})
	require.Len(t, e.Fields, 3)
	assert.Equal(t, "3", e.Fields[1].Value)
	assert.Equal(t, "12,000", e.Fields[2].Value)
}
