package social

import (
	"PixBot/commands"

	"github.com/bwmarrin/discordgo"
)

func init() {
	name := commands.StringOption("name", "Clan name", true)
	name.MaxLength = maxClanNameLength

	module := &commands.ModuleInfo{
		Name:        "Social",
		Description: "Clans",
		Version:     "1.0.0",
		Author:      "Bot Team",
		Category:    "Social",
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "clan_create",
				Description: "🏰 Found a clan",
				Options:     []*discordgo.ApplicationCommandOption{name},
				Handler:     Create,
			},
			{
				Name:        "clan_join",
				Description: "🤝 Join a clan",
				Options:     []*discordgo.ApplicationCommandOption{name},
				Handler:     Join,
			},
			{Name: "clan_leave", Description: "🚶 Leave your clan", Handler: Leave},
			{
				Name:        "clan_info",
				Description: "📊 Clan information",
				Options:     []*discordgo.ApplicationCommandOption{name},
				Handler:     Info,
			},
		},
	}

	commands.RegisterModule(module)
}
