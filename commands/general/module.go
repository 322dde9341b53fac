package general

import (
	"PixBot/commands"
	"PixBot/tasks"

	"github.com/bwmarrin/discordgo"
)

const (
	supportInvite     = "https://discord.gg/UY9eVV2j"
	maxFeedbackLength = 1000
	topXPSize         = 10
)

func init() {
	feedback := commands.StringOption("text", "What you want to tell us", true)
	feedback.MaxLength = maxFeedbackLength

	module := &commands.ModuleInfo{
		Name:        "General",
		Description: "Bot information, levels and owner tools",
		Version:     "2.0.0",
		Author:      "Bot Team",
		Category:    "General",
		Config: map[string]interface{}{
			"support_invite": supportInvite,
		},
		SlashCommands: []commands.SlashCommandInfo{
			{Name: "ping", Description: "🏓 Gateway latency", Handler: Ping},
			{Name: "uptime", Description: "⏱️ How long the bot has been online", Ephemeral: true, Handler: Uptime},
			{Name: "invite", Description: "🔗 Invite the bot", Ephemeral: true, Handler: Invite},
			{Name: "support", Description: "🆘 Support server", Ephemeral: true, Handler: Support},
			{
				Name:        "feedback",
				Description: "💡 Send feedback to the developers",
				Options:     []*discordgo.ApplicationCommandOption{feedback},
				Ephemeral:   true,
				Handler:     Feedback,
			},
			{
				Name:        "userinfo",
				Description: "👤 User information",
				Options:     []*discordgo.ApplicationCommandOption{commands.UserOption("user", "Whose profile", false)},
				Handler:     UserInfo,
			},
			{
				Name:        "roleinfo",
				Description: "🎭 Role information",
				Options:     []*discordgo.ApplicationCommandOption{commands.RoleOption("role", "Which role", true)},
				GuildOnly:   true,
				Handler:     RoleInfo,
			},
			{
				Name:        "level",
				Description: "⭐ Show XP and level",
				Options:     []*discordgo.ApplicationCommandOption{commands.UserOption("user", "Whose level", false)},
				Ephemeral:   true,
				Handler:     Level,
			},
			{Name: "ranking_xp", Description: "⭐ XP leaderboard", Handler: RankingXP},
			{Name: "servers", Description: "🌐 How many servers the bot is in", Ephemeral: true, Handler: Servers},
			{Name: "list_servers", Description: "📊 List the bot's servers", OwnerOnly: true, Ephemeral: true, Handler: ListServers},
			{
				Name:        "run_job",
				Description: "⚙️ Run a background job now",
				Options: []*discordgo.ApplicationCommandOption{
					commands.StringOption("job", "Job name", true, tasks.InterestJob, tasks.ClueJob, tasks.SweepJob, tasks.OwnerGuardJob, tasks.GiveawayJob),
				},
				OwnerOnly: true,
				Ephemeral: true,
				Handler:   RunJob,
			},
			{
				Name:        "leave_server",
				Description: "🚪 Make the bot leave a server",
				Options:     []*discordgo.ApplicationCommandOption{commands.StringOption("guild_id", "Server ID", true)},
				OwnerOnly:   true,
				Ephemeral:   true,
				Handler:     LeaveServer,
			},
		},
	}

	commands.RegisterModule(module)
}
