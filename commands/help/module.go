package help

import (
	"PixBot/commands"

	"github.com/bwmarrin/discordgo"
)

func init() {
	module := &commands.ModuleInfo{
		Name:        "Help",
		Description: "Command documentation",
		Version:     "2.0.0",
		Author:      "Bot Team",
		Category:    "General",
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "help",
				Description: "📖 List modules or explain one module or command",
				Options:     []*discordgo.ApplicationCommandOption{commands.StringOption("topic", "Module or command name", false)},
				Ephemeral:   true,
				Handler:     Help,
			},
		},
	}

	commands.RegisterModule(module)
}
