package general

import (
	"fmt"
	"strings"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// maxServerListLength keeps the description under Discord's 4096 limit.
const maxServerListLength = 4000

func Servers(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	commands.RespondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🌐 Bot Servers",
		Description: fmt.Sprintf("🤖 I am currently in **%d servers**!", len(utils.Guilds(s))),
		Color:       commands.ColorInfo,
	})
}

func ListServers(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	guilds := utils.Guilds(s)
	commands.RespondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "📊 Bot Servers",
		Description: serverList(guilds),
		Color:       commands.ColorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Total servers: %d", len(guilds))},
	})
}

func serverList(guilds []*discordgo.Guild) string {
	if len(guilds) == 0 {
		return "No servers found."
	}
	var sb strings.Builder
	for _, g := range guilds {
		sb.WriteString(fmt.Sprintf("🏠 **%s**\n🆔 `%s`\n👥 %d members\n\n", g.Name, g.ID, g.MemberCount))
	}
	return utils.Truncate(sb.String(), maxServerListLength)
}

func LeaveServer(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := strings.TrimSpace(commands.OptionMap(i).String("guild_id", ""))

	guild, err := s.State.Guild(guildID)
	if err != nil {
		commands.Respond(s, i, "❌ Server not found.")
		return
	}
	if err := s.GuildLeave(guild.ID); err != nil {
		log.WithField("guild_id", guild.ID).WithError(err).Error("Failed to leave guild")
		commands.Respond(s, i, commands.GenericError)
		return
	}
	log.WithField("guild_id", guild.ID).Info("Left guild on owner request")
	commands.Respond(s, i, fmt.Sprintf("✅ Left **%s** (%s)", guild.Name, guild.ID))
}
