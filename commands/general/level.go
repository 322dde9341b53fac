package general

import (
	"context"
	"fmt"
	"strings"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/ledger"
	"PixBot/models"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
)

func Level(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	targetID := commands.CallerID(i)
	if u := commands.OptionMap(i).User("user"); u != nil {
		targetID = u.ID
	}

	acc, err := b.Ledger.Get(context.Background(), targetID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, levelMessage(targetID, acc.XP))
}

func levelMessage(userID string, xp int64) string {
	lvl := ledger.Level(xp)
	next := int64(lvl+1) * int64(lvl+1) * 100
	return fmt.Sprintf("⭐ <@%s>\nXP: **%s**\n🎖️ Level: **%d**\n📈 Next level at **%s** XP",
		userID, utils.FormatCoins(xp), lvl, utils.FormatCoins(next))
}

func RankingXP(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	accs, err := b.Ledger.TopXP(context.Background(), topXPSize)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.RespondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "⭐ XP Ranking",
		Description: xpLines(accs),
		Color:       commands.ColorVIP,
	})
}

func xpLines(accs []models.Account) string {
	var sb strings.Builder
	for idx, acc := range accs {
		if acc.XP == 0 {
			break
		}
		sb.WriteString(fmt.Sprintf("**%d.** <@%s> — %s XP (level %d)\n",
			idx+1, acc.UserID, utils.FormatCoins(acc.XP), ledger.Level(acc.XP)))
	}
	if sb.Len() == 0 {
		return "Nobody has earned XP yet."
	}
	return sb.String()
}
