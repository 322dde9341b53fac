package economy

import (
	"context"
	"fmt"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/status"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func Pay(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	recipient := opts.User("user")
	amount := opts.Int("amount", 0)
	if recipient == nil {
		commands.RespondEphemeral(s, i, "Pick a user to pay.")
		return
	}
	if recipient.Bot {
		commands.RespondEphemeral(s, i, "Bots don't need PixCoins.")
		return
	}

	if err := b.Ledger.Transfer(context.Background(), commands.CallerID(i), recipient.ID, amount); err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, fmt.Sprintf("💸 You sent **%s PixCoins** to <@%s>", utils.FormatCoins(amount), recipient.ID))
}

func Deposit(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	amount := commands.OptionMap(i).Int("amount", 0)
	if err := b.Ledger.Deposit(context.Background(), commands.CallerID(i), amount); err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, fmt.Sprintf("🏦 Deposited **%s PixCoins**!", utils.FormatCoins(amount)))
}

func Withdraw(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	amount := commands.OptionMap(i).Int("amount", 0)
	if err := b.Ledger.Withdraw(context.Background(), commands.CallerID(i), amount); err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, fmt.Sprintf("🏧 Withdrew **%s PixCoins**!", utils.FormatCoins(amount)))
}

// AddPixCoin mints coins into a user's wallet.
func AddPixCoin(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	target := opts.User("user")
	amount := opts.Int("amount", 0)
	if target == nil {
		commands.RespondEphemeral(s, i, "Pick a user.")
		return
	}

	ctx := context.Background()
	if err := b.Ledger.Credit(ctx, target.ID, amount); err != nil {
		commands.Fail(s, i, err)
		return
	}
	if err := utils.DeleteCache(ctx, b.Redis, status.LeaderboardCacheKey); err != nil {
		log.WithError(err).Warn("Failed to invalidate leaderboard cache")
	}

	log.WithFields(log.Fields{
		"staff_id": commands.CallerID(i),
		"user_id":  target.ID,
		"amount":   amount,
	}).Info("PixCoins added")
	commands.Respond(s, i, fmt.Sprintf("✅ Added **%s PixCoins** to <@%s>.", utils.FormatCoins(amount), target.ID))
}
