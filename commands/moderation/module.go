package moderation

import (
	"PixBot/commands"

	"github.com/bwmarrin/discordgo"
)

func init() {
	reason := commands.StringOption("reason", "Why", false)

	module := &commands.ModuleInfo{
		Name:        "Moderation",
		Description: "Server moderation commands for managing users and channels",
		Version:     "2.0.0",
		Author:      "Bot Team",
		Category:    "Moderation",
		Config: map[string]interface{}{
			"default_reason": defaultReason,
			"log_actions":    true,
		},
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "clear",
				Description: "🧹 Delete recent messages",
				Options:     []*discordgo.ApplicationCommandOption{commands.IntOption("amount", "How many messages, 1 to 100", true, 1, 100)},
				Permission:  discordgo.PermissionManageMessages,
				Ephemeral:   true,
				Handler:     Clear,
			},
			{
				Name:        "ban",
				Description: "🔨 Ban a user",
				Options:     []*discordgo.ApplicationCommandOption{commands.UserOption("user", "Who to ban", true), reason},
				Permission:  discordgo.PermissionBanMembers,
				Ephemeral:   true,
				Handler:     Ban,
			},
			{
				Name:        "unban",
				Description: "🕊️ Lift a ban",
				Options:     []*discordgo.ApplicationCommandOption{commands.StringOption("user_id", "ID of the banned user", true)},
				Permission:  discordgo.PermissionBanMembers,
				Ephemeral:   true,
				Handler:     Unban,
			},
			{
				Name:        "kick",
				Description: "👢 Kick a user",
				Options:     []*discordgo.ApplicationCommandOption{commands.UserOption("user", "Who to kick", true), reason},
				Permission:  discordgo.PermissionKickMembers,
				Ephemeral:   true,
				Handler:     Kick,
			},
			{
				Name:        "timeout",
				Description: "⏳ Time a user out",
				Options: []*discordgo.ApplicationCommandOption{
					commands.UserOption("user", "Who to time out", true),
					commands.IntOption("minutes", "Duration in minutes, up to 28 days", true, 1, maxTimeoutMinutes),
					reason,
				},
				Permission: discordgo.PermissionModerateMembers,
				Ephemeral:  true,
				Handler:    Timeout,
			},
			{
				Name:        "untimeout",
				Description: "⏱️ Remove a timeout",
				Options:     []*discordgo.ApplicationCommandOption{commands.UserOption("user", "Who to release", true)},
				Permission:  discordgo.PermissionModerateMembers,
				Ephemeral:   true,
				Handler:     Untimeout,
			},
			{
				Name:        "slowmode",
				Description: "🐌 Set this channel's slowmode",
				Options:     []*discordgo.ApplicationCommandOption{commands.IntOption("seconds", "Delay between messages, 0 to disable", true, 0, maxSlowmodeSeconds)},
				Permission:  discordgo.PermissionManageChannels,
				Ephemeral:   true,
				Handler:     Slowmode,
			},
			{
				Name:        "lock",
				Description: "🔒 Stop everyone from talking in this channel",
				Permission:  discordgo.PermissionManageChannels,
				Ephemeral:   true,
				Handler:     Lock,
			},
			{
				Name:        "unlock",
				Description: "🔓 Let everyone talk in this channel again",
				Permission:  discordgo.PermissionManageChannels,
				Ephemeral:   true,
				Handler:     Unlock,
			},
			{
				Name:        "warn",
				Description: "⚠️ Warn a user",
				Options: []*discordgo.ApplicationCommandOption{
					commands.UserOption("user", "Who to warn", true),
					commands.StringOption("reason", "Why", true),
				},
				Permission: discordgo.PermissionModerateMembers,
				Ephemeral:  true,
				Handler:    Warn,
			},
			{
				Name:        "warnings",
				Description: "📋 List a user's warnings",
				Options:     []*discordgo.ApplicationCommandOption{commands.UserOption("user", "Whose warnings", true)},
				Permission:  discordgo.PermissionModerateMembers,
				Ephemeral:   true,
				Handler:     Warnings,
			},
			{
				Name:        "modlog",
				Description: "🛡️ Set the moderation log channel",
				Options:     []*discordgo.ApplicationCommandOption{commands.ChannelOption("channel", "Where to log moderation actions", true)},
				Permission:  discordgo.PermissionAdministrator,
				Ephemeral:   true,
				Handler:     SetModLog,
			},
		},
	}

	commands.RegisterModule(module)
}
