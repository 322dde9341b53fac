package vipcmd

import (
	"context"
	"testing"
	"time"

	"PixBot/commands"
	"PixBot/testutil"
	"PixBot/vip"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerkCommands(t *testing.T) {
	color, ok := commands.GetSlashCommand("name_color")
	require.True(t, ok)
	assert.True(t, color.GuildOnly)
	require.Len(t, color.Options[0].Choices, len(nameColors))
	for _, c := range color.Options[0].Choices {
		assert.Contains(t, nameColors, c.Value)
	}

	setup, ok := commands.GetSlashCommand("server_setup")
	require.True(t, ok)
	assert.Equal(t, int64(discordgo.PermissionManageChannels), setup.Permission)
}

func TestDiamondOrAbove(t *testing.T) {
	ctx := context.Background()
	reg := vip.New(testutil.SetupTestDB(t), time.Now)
	_, err := reg.Grant(ctx, "gold", vip.Gold, 0)
	require.NoError(t, err)
	_, err = reg.Grant(ctx, "diamond", vip.Diamond, 0)
	require.NoError(t, err)
	_, err = reg.Grant(ctx, "ultimate", vip.Ultimate, 30)
	require.NoError(t, err)

	for user, want := range map[string]bool{"nobody": false, "gold": false, "diamond": true, "ultimate": true} {
		ok, err := diamondOrAbove(ctx, reg, user)
		require.NoError(t, err)
		assert.Equal(t, want, ok, user)
	}
}

func TestColorRole(t *testing.T) {
	assert.Equal(t, "🎨 Color • alice", colorRoleName("alice"))

	roles := []*discordgo.Role{{ID: "1", Name: "Member"}, {ID: "2", Name: colorRoleName("alice")}}
	require.NotNil(t, findRole(roles, colorRoleName("alice")))
	assert.Equal(t, "2", findRole(roles, colorRoleName("alice")).ID)
	assert.Nil(t, findRole(roles, colorRoleName("bob")))
}

func TestServerLayout(t *testing.T) {
	require.Len(t, serverLayout, 4)

	rules, voice := 0, 0
	for _, cat := range serverLayout {
		assert.NotEmpty(t, cat.Channels, cat.Name)
		for _, ch := range cat.Channels {
			if ch.Name == rulesChannel {
				rules++
				assert.False(t, ch.Voice)
			}
			if ch.Voice {
				voice++
			}
		}
	}
	assert.Equal(t, 1, rules)
	assert.Equal(t, 2, voice)
	assert.Contains(t, rulesEmbed().Description, "No spam")
}
