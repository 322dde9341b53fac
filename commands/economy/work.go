package economy

import (
	"context"
	"fmt"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/games"
	"PixBot/rewards"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
)

// claim builds the handler shared by daily, weekly and work.
func claim(kind rewards.Kind) commands.HandlerFunc {
	return func(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
		res, err := b.Rewards.Claim(context.Background(), commands.CallerID(i), kind)
		if err != nil {
			commands.Fail(s, i, err)
			return
		}
		commands.Respond(s, i, rewardMessage(res))
	}
}

func rewardMessage(res rewards.Result) string {
	icon := "🎁"
	if res.Kind == rewards.Work {
		icon = "💼"
	}
	msg := fmt.Sprintf("%s You earned **%s PixCoins**!", icon, utils.FormatCoins(res.Amount))
	if res.Percent > 100 {
		msg += fmt.Sprintf(" (👑 VIP bonus %d%%)", res.Percent-100)
	}
	return msg
}

func Crime(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	res, err := b.Games.Crime(context.Background(), commands.CallerID(i))
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, crimeMessage(res))
}

func crimeMessage(res games.CrimeResult) string {
	if res.Caught {
		return fmt.Sprintf("🚔 You got caught and lost **%s PixCoins**!", utils.FormatCoins(res.Amount))
	}
	return fmt.Sprintf("💰 The heist worked! You got **%s PixCoins**!", utils.FormatCoins(res.Amount))
}
