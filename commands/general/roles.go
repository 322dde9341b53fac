package general

import (
	"fmt"
	"strconv"
	"strings"

	"PixBot/bot"
	"PixBot/commands"

	"github.com/bwmarrin/discordgo"
)

// keyPermissions are the bits worth calling out in /roleinfo, in display order.
var keyPermissions = []struct {
	bit  int64
	name string
}{
	{discordgo.PermissionAdministrator, "Administrator"},
	{discordgo.PermissionManageServer, "Manage Server"},
	{discordgo.PermissionManageRoles, "Manage Roles"},
	{discordgo.PermissionManageChannels, "Manage Channels"},
	{discordgo.PermissionManageMessages, "Manage Messages"},
	{discordgo.PermissionBanMembers, "Ban Members"},
	{discordgo.PermissionKickMembers, "Kick Members"},
	{discordgo.PermissionModerateMembers, "Timeout Members"},
}

func RoleInfo(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	role := commands.OptionMap(i).Role("role")
	if role == nil {
		commands.RespondEphemeral(s, i, "Pick a role.")
		return
	}
	if role.Name == "" {
		r, err := s.State.Role(i.GuildID, role.ID)
		if err != nil {
			commands.RespondEphemeral(s, i, "Role not found or cannot be fetched.")
			return
		}
		role = r
	}
	commands.RespondEmbed(s, i, roleEmbed(role))
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func roleEmbed(r *discordgo.Role) *discordgo.MessageEmbed {
	var perms []string
	for _, p := range keyPermissions {
		if r.Permissions&p.bit != 0 {
			perms = append(perms, p.name)
		}
	}
	permString := "No key permissions"
	if len(perms) > 0 {
		permString = strings.Join(perms, ", ")
	}

	created := "unknown"
	if t, err := discordgo.SnowflakeTimestamp(r.ID); err == nil {
		created = fmt.Sprintf("<t:%d:D>", t.Unix())
	}

	return &discordgo.MessageEmbed{
		Title: "Role Information",
		Color: r.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: r.ID, Inline: true},
			{Name: "Name", Value: r.Name, Inline: true},
			{Name: "Color", Value: fmt.Sprintf("#%06x", r.Color), Inline: true},
			{Name: "Mention", Value: fmt.Sprintf("<@&%s>", r.ID), Inline: true},
			{Name: "Hoisted", Value: yesNo(r.Hoist), Inline: true},
			{Name: "Position", Value: strconv.Itoa(r.Position), Inline: true},
			{Name: "Mentionable", Value: yesNo(r.Mentionable), Inline: true},
			{Name: "Managed", Value: yesNo(r.Managed), Inline: true},
			{Name: "\u200B", Value: "\u200B", Inline: true},
			{Name: "Key Permissions", Value: "```\n" + permString + "\n```"},
			{Name: "Created", Value: created},
		},
	}
}
