package treasurecmd

import (
	"PixBot/commands"
	"PixBot/treasure"

	"github.com/bwmarrin/discordgo"
)

func init() {
	module := &commands.ModuleInfo{
		Name:        "Treasure",
		Description: "Server-wide treasure event with clues and a secret code",
		Version:     "1.0.0",
		Author:      "Bot Team",
		Category:    "Fun",
		Config: map[string]interface{}{
			"max_winners": treasure.MaxWinners,
			"prize":       treasure.Prize,
			"channel":     treasure.ChannelName,
		},
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "treasure",
				Description: "🏴‍☠️ Submit the treasure code",
				Options: []*discordgo.ApplicationCommandOption{
					commands.StringOption("code", "The code you put together from the clues", true),
				},
				Ephemeral: true,
				Handler:   Redeem,
			},
			{
				Name:        "treasure_status",
				Description: "🗺️ How far the treasure event has gone",
				Handler:     Status,
			},
		},
	}

	commands.RegisterModule(module)
}
