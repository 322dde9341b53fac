package economy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/models"
	"PixBot/rewards"
	"PixBot/status"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
)

func Balance(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	targetID := commands.CallerID(i)
	if u := commands.OptionMap(i).User("user"); u != nil {
		targetID = u.ID
	}

	ctx := context.Background()
	acc, err := b.Ledger.Get(ctx, targetID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	waits, err := cooldowns(ctx, b.Rewards, targetID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, balanceMessage(targetID, acc, waits))
}

type cooldown struct {
	Kind rewards.Kind
	Wait time.Duration
}

var claimKinds = []rewards.Kind{rewards.Daily, rewards.Weekly, rewards.Work}

func cooldowns(ctx context.Context, e *rewards.Engine, userID string) ([]cooldown, error) {
	waits := make([]cooldown, 0, len(claimKinds))
	for _, kind := range claimKinds {
		wait, err := e.Remaining(ctx, userID, kind)
		if err != nil {
			return nil, err
		}
		waits = append(waits, cooldown{Kind: kind, Wait: wait})
	}
	return waits, nil
}

func balanceMessage(userID string, acc models.Account, waits []cooldown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<@%s>\n💰 Wallet: **%s**\n🏦 Bank: **%s**\n📊 Total: **%s** PixCoins",
		userID,
		utils.FormatCoins(acc.Coins),
		utils.FormatCoins(acc.Bank),
		utils.FormatCoins(acc.Total()),
	)
	if len(waits) > 0 {
		sb.WriteString("\n")
	}
	for _, c := range waits {
		if c.Wait <= 0 {
			fmt.Fprintf(&sb, "\n✅ /%s is ready", c.Kind)
			continue
		}
		fmt.Fprintf(&sb, "\n⏳ /%s in %s", c.Kind, utils.FormatDuration(c.Wait))
	}
	return sb.String()
}

func Ranking(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	entries, err := status.Leaderboard(context.Background(), b.Ledger, b.Redis)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.RespondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🏆 Global Ranking",
		Description: rankingLines(entries),
		Color:       commands.ColorEconomy,
	})
}

func rankingLines(entries []status.Entry) string {
	if len(entries) == 0 {
		return "Nobody has any PixCoins yet."
	}
	var sb strings.Builder
	for pos, e := range entries {
		fmt.Fprintf(&sb, "**%d.** <@%s> — %s\n", pos+1, e.UserID, utils.FormatCoins(e.Total))
	}
	return sb.String()
}
