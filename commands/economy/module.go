package economy

import (
	"PixBot/commands"
	"PixBot/rewards"

	"github.com/bwmarrin/discordgo"
)

func init() {
	module := &commands.ModuleInfo{
		Name:        "Economy",
		Description: "PixCoin wallet and bank, periodic rewards and transfers",
		Version:     "2.0.0",
		Author:      "Bot Team",
		Category:    "Economy",
		Config: map[string]interface{}{
			"daily_reward":  500,
			"weekly_reward": 2500,
			"work_range":    "300-700",
			"ranking_size":  10,
		},
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "balance",
				Description: "💰 Check a wallet and bank balance",
				Options:     []*discordgo.ApplicationCommandOption{commands.UserOption("user", "Whose balance to show", false)},
				Ephemeral:   true,
				Handler:     Balance,
			},
			{
				Name:        "daily",
				Description: "🎁 Claim your daily PixCoins",
				Handler:     claim(rewards.Daily),
			},
			{
				Name:        "weekly",
				Description: "🎁 Claim your weekly PixCoins",
				Handler:     claim(rewards.Weekly),
			},
			{
				Name:        "work",
				Description: "💼 Work for PixCoins",
				Handler:     claim(rewards.Work),
			},
			{
				Name:        "crime",
				Description: "🚔 Commit a crime. You might get caught",
				Handler:     Crime,
			},
			{
				Name:        "pay",
				Description: "💸 Send PixCoins to another user",
				Options: []*discordgo.ApplicationCommandOption{
					commands.UserOption("user", "Who receives the PixCoins", true),
					commands.IntOption("amount", "How many PixCoins", true, 1, 0),
				},
				GuildOnly: true,
				Handler:   Pay,
			},
			{
				Name:        "deposit",
				Description: "🏦 Move PixCoins from your wallet to the bank",
				Options:     []*discordgo.ApplicationCommandOption{commands.IntOption("amount", "How many PixCoins", true, 1, 0)},
				Handler:     Deposit,
			},
			{
				Name:        "withdraw",
				Description: "🏧 Move PixCoins from the bank to your wallet",
				Options:     []*discordgo.ApplicationCommandOption{commands.IntOption("amount", "How many PixCoins", true, 1, 0)},
				Handler:     Withdraw,
			},
			{
				Name:        "ranking",
				Description: "🏆 The richest users",
				Handler:     Ranking,
			},
			{
				Name:        "add_pixcoin",
				Description: "🪙 Add PixCoins to a user (Admin)",
				Options: []*discordgo.ApplicationCommandOption{
					commands.UserOption("user", "Who receives the PixCoins", true),
					commands.IntOption("amount", "How many PixCoins", true, 1, 0),
				},
				Permission: discordgo.PermissionAdministrator,
				Ephemeral:  true,
				Handler:    AddPixCoin,
			},
		},
	}

	commands.RegisterModule(module)
}
