package treasurecmd

import (
	"context"
	"fmt"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/models"
	"PixBot/treasure"
	"PixBot/utils"
	"PixBot/vip"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func Redeem(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := commands.CallerID(i)
	code := commands.OptionMap(i).String("code", "")

	if err := b.Treasure.Redeem(context.Background(), userID, code); err != nil {
		commands.Fail(s, i, err)
		return
	}
	log.WithField("user_id", userID).Info("Treasure redeemed")

	if i.GuildID != "" {
		if err := grantHunterRole(s, i.GuildID, userID); err != nil {
			log.WithFields(log.Fields{"guild_id": i.GuildID, "user_id": userID}).WithError(err).Warn("Failed to grant treasure role")
		}
	}
	commands.Respond(s, i, winMessage())
}

func winMessage() string {
	return fmt.Sprintf("🏆 **You found the treasure!**\n💰 +%s PixCoins\n👑 VIP **%s** forever",
		utils.FormatCoins(treasure.Prize), vip.Name(treasure.PrizeTier))
}

// grantHunterRole gives the winner the hunter role, creating it if needed.
func grantHunterRole(s *discordgo.Session, guildID, userID string) error {
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return err
	}
	roleID := ""
	for _, r := range roles {
		if r.Name == treasure.RoleName {
			roleID = r.ID
			break
		}
	}
	if roleID == "" {
		color := commands.ColorTreasure
		hoist := true
		role, err := s.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: treasure.RoleName, Color: &color, Hoist: &hoist})
		if err != nil {
			return err
		}
		roleID = role.ID
	}
	return s.GuildMemberRoleAdd(guildID, userID, roleID)
}

func Status(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	st, err := b.Treasure.State(context.Background())
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.RespondEmbed(s, i, statusEmbed(st))
}

func statusEmbed(st models.TreasureState) *discordgo.MessageEmbed {
	state := "🟢 Open"
	if st.Winners >= treasure.MaxWinners {
		state = "🔴 Every prize has been claimed"
	} else if !treasure.Open(st) {
		state = "🟡 All clues are out, the code is still unclaimed"
	}
	return &discordgo.MessageEmbed{
		Title: "🏴‍☠️ Treasure Event",
		Color: commands.ColorTreasure,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: state},
			{Name: "Clues posted", Value: fmt.Sprint(st.Stage), Inline: true},
			{Name: "Winners", Value: fmt.Sprintf("%d/%d", st.Winners, treasure.MaxWinners), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Clues appear in #" + treasure.ChannelName},
	}
}
