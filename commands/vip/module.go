package vipcmd

import (
	"PixBot/commands"

	"github.com/bwmarrin/discordgo"
)

func init() {
	module := &commands.ModuleInfo{
		Name:        "VIP",
		Description: "VIP tiers, reward multipliers and subscription management",
		Version:     "2.0.0",
		Author:      "Bot Team",
		Category:    "Economy",
		Config: map[string]interface{}{
			"tiers": 4,
		},
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "vip_info",
				Description: "👑 Show a VIP subscription",
				Options:     []*discordgo.ApplicationCommandOption{commands.UserOption("user", "Whose VIP to show", false)},
				Ephemeral:   true,
				Handler:     Info,
			},
			{
				Name:        "vip_shop",
				Description: "🛒 VIP tiers and their benefits",
				Ephemeral:   true,
				Handler:     Shop,
			},
			{
				Name:        "vip_grant",
				Description: "🪙 Grant a VIP tier (Admin)",
				Options: []*discordgo.ApplicationCommandOption{
					commands.UserOption("user", "Who receives the VIP", true),
					commands.IntOption("tier", "1 Bronze, 2 Gold, 3 Diamond, 4 Ultimate", true, 1, 4),
					commands.IntOption("days", "Duration in days, 0 for permanent", true, 0, 3650),
				},
				Permission: discordgo.PermissionAdministrator,
				Ephemeral:  true,
				Handler:    Grant,
			},
			{
				Name:        "vip_transfer",
				Description: "🔁 Give your VIP subscription to someone else",
				Options:     []*discordgo.ApplicationCommandOption{commands.UserOption("user", "Who receives your VIP", true)},
				GuildOnly:   true,
				Handler:     Transfer,
			},
			{
				Name:        "name_color",
				Description: "🎨 Pick your name colour (VIP Diamond+)",
				Options: []*discordgo.ApplicationCommandOption{
					commands.StringOption("color", "Colour", true, colorChoices...),
				},
				GuildOnly: true,
				Ephemeral: true,
				Handler:   NameColor,
			},
			{
				Name:        "server_setup",
				Description: "🚀 Build a ready-made channel layout (VIP Diamond+)",
				Permission:  discordgo.PermissionManageChannels,
				Ephemeral:   true,
				Handler:     ServerSetup,
			},
		},
	}

	commands.RegisterModule(module)
}
