package help

import (
	"fmt"
	"strings"

	"PixBot/bot"
	"PixBot/commands"

	"github.com/bwmarrin/discordgo"
)

func Help(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	topic := strings.TrimSpace(commands.OptionMap(i).String("topic", ""))
	embed, ok := helpEmbed(topic, commands.GetAllModules())
	if !ok {
		commands.Respond(s, i, fmt.Sprintf("Nothing called `%s`. Use `/help` to see every module.", topic))
		return
	}
	commands.RespondEmbed(s, i, embed)
}

// helpEmbed resolves topic as one of modules first, then as a registered
// command. An empty topic lists every module.
func helpEmbed(topic string, modules []*commands.ModuleInfo) (*discordgo.MessageEmbed, bool) {
	topic = strings.TrimPrefix(strings.ToLower(topic), "/")
	if topic == "" {
		return overviewEmbed(modules), true
	}
	for _, m := range modules {
		if strings.ToLower(m.Name) == topic {
			return moduleEmbed(m), true
		}
	}
	cmd, ok := commands.GetSlashCommand(topic)
	if !ok {
		return nil, false
	}
	m := commands.GetModuleByCommand(topic)
	if m == nil {
		return nil, false
	}
	return commandEmbed(m, cmd), true
}

func overviewEmbed(modules []*commands.ModuleInfo) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📖 Help",
		Description: "Type `/help <module>` for a module's commands or `/help <command>` for details.",
		Color:       commands.ColorInfo,
	}
	for _, m := range modules {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%d)", m.Name, len(m.SlashCommands)),
			Value: m.Description,
		})
	}
	return embed
}

func moduleEmbed(m *commands.ModuleInfo) *discordgo.MessageEmbed {
	var sb strings.Builder
	for idx := range m.SlashCommands {
		cmd := &m.SlashCommands[idx]
		sb.WriteString(fmt.Sprintf("`%s` %s\n", usage(cmd), cmd.Description))
	}
	return &discordgo.MessageEmbed{
		Title:       "📖 " + m.Name,
		Description: sb.String(),
		Color:       commands.ColorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: m.Description},
	}
}

func commandEmbed(m *commands.ModuleInfo, cmd *commands.SlashCommandInfo) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📖 /" + cmd.Name,
		Description: cmd.Description,
		Color:       commands.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usage", Value: fmt.Sprintf("`%s`", usage(cmd))},
			{Name: "Module", Value: m.Name, Inline: true},
		},
	}
	if access := access(cmd); access != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Access", Value: access, Inline: true})
	}
	for _, opt := range cmd.Options {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: opt.Name, Value: opt.Description})
	}
	return embed
}

// usage renders "/pay <user> <amount>" with optional parameters in brackets.
func usage(cmd *commands.SlashCommandInfo) string {
	parts := []string{"/" + cmd.Name}
	for _, opt := range cmd.Options {
		if opt.Required {
			parts = append(parts, "<"+opt.Name+">")
		} else {
			parts = append(parts, "["+opt.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}

func access(cmd *commands.SlashCommandInfo) string {
	switch {
	case cmd.OwnerOnly:
		return "Bot owner"
	case cmd.Permission&discordgo.PermissionAdministrator != 0:
		return "Administrator"
	case cmd.Permission != 0:
		return "Moderators"
	case cmd.GuildOnly:
		return "Servers only"
	}
	return ""
}
