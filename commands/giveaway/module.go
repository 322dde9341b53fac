package giveawaycmd

import (
	"PixBot/commands"
	"PixBot/giveaway"

	"github.com/bwmarrin/discordgo"
)

func init() {
	prize := commands.StringOption("prize", "What the winner gets", true)
	prize.MaxLength = giveaway.MaxPrizeLength
	id := commands.IntOption("id", "Giveaway number, shown in its footer", true, 1, 0)

	module := &commands.ModuleInfo{
		Name:        "Giveaway",
		Description: "Timed prize draws with a join button",
		Version:     "2.0.0",
		Author:      "Bot Team",
		Category:    "Community",
		Config: map[string]interface{}{
			"max_winners": giveaway.MaxWinners,
		},
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "giveaway",
				Description: "🎉 Start a giveaway",
				Options: []*discordgo.ApplicationCommandOption{
					prize,
					commands.IntOption("minutes", "How long it runs", true, 1, 10080),
					commands.IntOption("winners", "How many winners", false, 1, giveaway.MaxWinners),
				},
				Permission: discordgo.PermissionManageServer,
				Handler:    Create,
			},
			{
				Name:        "giveaway_end",
				Description: "⛔ End a giveaway now and draw its winners",
				Options:     []*discordgo.ApplicationCommandOption{id},
				Permission:  discordgo.PermissionManageServer,
				Ephemeral:   true,
				Handler:     End,
			},
			{
				Name:        "giveaway_reroll",
				Description: "🔁 Draw new winners among those who have not won",
				Options: []*discordgo.ApplicationCommandOption{
					id,
					commands.IntOption("winners", "How many to draw", false, 1, giveaway.MaxWinners),
				},
				Permission: discordgo.PermissionManageServer,
				Handler:    Reroll,
			},
		},
	}

	commands.RegisterModule(module)
	commands.RegisterComponent(buttonPrefix, Join)
}
