package moderation

import (
	"context"
	"fmt"
	"strings"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/models"

	"github.com/bwmarrin/discordgo"
)

func Warn(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	target := opts.User("user")
	if target == nil {
		commands.RespondEphemeral(s, i, "Pick a user.")
		return
	}
	if protected(s, i.GuildID, target.ID, discordgo.PermissionModerateMembers) {
		commands.RespondEphemeral(s, i, protectedMessage)
		return
	}
	staffID := commands.CallerID(i)
	reason := reasonOrDefault(strings.TrimSpace(opts.String("reason", "")))

	ctx := context.Background()
	w, err := AddWarn(ctx, b.Db, i.GuildID, target.ID, staffID, reason)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	warns, err := ListWarns(ctx, b.Db, i.GuildID, target.ID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}

	finish(b, s, i, action{
		Title:    "⚠️ User warned",
		TargetID: target.ID,
		StaffID:  staffID,
		Reason:   reason,
		Extra: []*discordgo.MessageEmbedField{
			{Name: "Warn ID", Value: w.ID, Inline: true},
			{Name: "Total warnings", Value: fmt.Sprint(len(warns)), Inline: true},
		},
	})
}

func Warnings(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := commands.OptionMap(i).User("user")
	if target == nil {
		commands.RespondEphemeral(s, i, "Pick a user.")
		return
	}
	warns, err := ListWarns(context.Background(), b.Db, i.GuildID, target.ID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.RespondEmbed(s, i, warningsEmbed(target.ID, warns))
}

// maxListedWarns keeps the embed under Discord's field limit.
const maxListedWarns = 10

func warningsEmbed(userID string, warns []models.Warn) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📋 Warnings (%d)", len(warns)),
		Color: commands.ColorModerator,
	}
	if len(warns) == 0 {
		e.Description = fmt.Sprintf("<@%s> has a clean record.", userID)
		return e
	}
	e.Description = fmt.Sprintf("Warnings for <@%s>", userID)
	for idx, w := range warns {
		if idx == maxListedWarns {
			e.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("and %d older", len(warns)-maxListedWarns)}
			break
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · <t:%d:d>", w.ID[:8], w.CreatedAt.Unix()),
			Value: fmt.Sprintf("%s\nby <@%s>", w.Reason, w.StaffID),
		})
	}
	return e
}

func SetModLog(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ch := commands.OptionMap(i).Channel("channel")
	if ch == nil {
		commands.RespondEphemeral(s, i, "Pick a channel.")
		return
	}
	if err := SetModLogChannel(context.Background(), b.Db, i.GuildID, ch.ID); err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, fmt.Sprintf("🛡️ Moderation log set to <#%s>", ch.ID))
}
