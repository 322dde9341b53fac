package moderation

import (
	"fmt"
	"time"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// bulkDeleteWindow is how old a message may be for bulk deletion.
const bulkDeleteWindow = 14 * 24 * time.Hour

func Clear(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	amount := int(commands.OptionMap(i).Int("amount", 1))

	msgs, err := s.ChannelMessages(i.ChannelID, amount, "", "", "")
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	ids := deletable(msgs, time.Now())
	if len(ids) > 0 {
		if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
			commands.Fail(s, i, err)
			return
		}
	}

	finish(b, s, i, action{
		Title:   fmt.Sprintf("🧹 %d messages deleted", len(ids)),
		StaffID: commands.CallerID(i),
		Extra:   []*discordgo.MessageEmbedField{{Name: "Channel", Value: fmt.Sprintf("<#%s>", i.ChannelID)}},
	})
}

// deletable returns the ids of messages young enough for bulk deletion.
func deletable(msgs []*discordgo.Message, now time.Time) []string {
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if now.Sub(m.Timestamp) < bulkDeleteWindow {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func Ban(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	target := opts.User("user")
	reason := reasonOrDefault(opts.String("reason", ""))
	if target == nil {
		commands.RespondEphemeral(s, i, "Pick a user.")
		return
	}
	if protected(s, i.GuildID, target.ID, discordgo.PermissionBanMembers) {
		commands.RespondEphemeral(s, i, protectedMessage)
		return
	}

	if err := s.GuildBanCreateWithReason(i.GuildID, target.ID, reason, 0); err != nil {
		log.WithField("user_id", target.ID).WithError(err).Error("Error banning user")
		commands.RespondEphemeral(s, i, "An error occurred while banning the user.")
		return
	}
	finish(b, s, i, action{Title: "🔨 User banned", TargetID: target.ID, StaffID: commands.CallerID(i), Reason: reason})
}

func Unban(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := utils.ExtractUserID(commands.OptionMap(i).String("user_id", ""))
	if err != nil {
		commands.RespondEphemeral(s, i, "That is not a valid user ID.")
		return
	}

	if err := s.GuildBanDelete(i.GuildID, userID); err != nil {
		log.WithField("user_id", userID).WithError(err).Error("Error unbanning user")
		commands.RespondEphemeral(s, i, "Failed to unban user. Are they banned?")
		return
	}
	finish(b, s, i, action{Title: "🕊️ User unbanned", TargetID: userID, StaffID: commands.CallerID(i)})
}

func Kick(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	target := opts.User("user")
	reason := reasonOrDefault(opts.String("reason", ""))
	if target == nil {
		commands.RespondEphemeral(s, i, "Pick a user.")
		return
	}
	if protected(s, i.GuildID, target.ID, discordgo.PermissionKickMembers) {
		commands.RespondEphemeral(s, i, protectedMessage)
		return
	}

	if err := s.GuildMemberDeleteWithReason(i.GuildID, target.ID, reason); err != nil {
		log.WithField("user_id", target.ID).WithError(err).Error("Error kicking user")
		commands.RespondEphemeral(s, i, "An error occurred while kicking the user.")
		return
	}
	finish(b, s, i, action{Title: "👢 User kicked", TargetID: target.ID, StaffID: commands.CallerID(i), Reason: reason})
}

func Timeout(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	target := opts.User("user")
	minutes := opts.Int("minutes", 1)
	reason := reasonOrDefault(opts.String("reason", ""))
	if target == nil {
		commands.RespondEphemeral(s, i, "Pick a user.")
		return
	}
	if protected(s, i.GuildID, target.ID, discordgo.PermissionModerateMembers) {
		commands.RespondEphemeral(s, i, protectedMessage)
		return
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := s.GuildMemberTimeout(i.GuildID, target.ID, &until); err != nil {
		log.WithField("user_id", target.ID).WithError(err).Error("Error timing out user")
		commands.RespondEphemeral(s, i, "An error occurred while timing out the user.")
		return
	}
	finish(b, s, i, action{
		Title:    "⏳ User timed out",
		TargetID: target.ID,
		StaffID:  commands.CallerID(i),
		Reason:   reason,
		Extra:    []*discordgo.MessageEmbedField{{Name: "Until", Value: fmt.Sprintf("<t:%d:f>", until.Unix())}},
	})
}

func Untimeout(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := commands.OptionMap(i).User("user")
	if target == nil {
		commands.RespondEphemeral(s, i, "Pick a user.")
		return
	}

	if err := s.GuildMemberTimeout(i.GuildID, target.ID, nil); err != nil {
		log.WithField("user_id", target.ID).WithError(err).Error("Error removing timeout")
		commands.RespondEphemeral(s, i, "An error occurred while removing the timeout.")
		return
	}
	finish(b, s, i, action{Title: "⏱️ Timeout removed", TargetID: target.ID, StaffID: commands.CallerID(i)})
}

func Slowmode(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	seconds := int(commands.OptionMap(i).Int("seconds", 0))
	if _, err := s.ChannelEdit(i.ChannelID, &discordgo.ChannelEdit{RateLimitPerUser: &seconds}); err != nil {
		commands.Fail(s, i, err)
		return
	}
	finish(b, s, i, action{
		Title:   fmt.Sprintf("🐌 Slowmode set to %ds", seconds),
		StaffID: commands.CallerID(i),
		Extra:   []*discordgo.MessageEmbedField{{Name: "Channel", Value: fmt.Sprintf("<#%s>", i.ChannelID)}},
	})
}

func Lock(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	setSendMessages(b, s, i, true)
}

func Unlock(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	setSendMessages(b, s, i, false)
}

// setSendMessages toggles SEND_MESSAGES for @everyone, whose role id is the guild id.
func setSendMessages(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, locked bool) {
	var allow, deny int64 = discordgo.PermissionSendMessages, 0
	title := "🔓 Channel unlocked"
	if locked {
		allow, deny = 0, discordgo.PermissionSendMessages
		title = "🔒 Channel locked"
	}

	err := s.ChannelPermissionSet(i.ChannelID, i.GuildID, discordgo.PermissionOverwriteTypeRole, allow, deny)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	finish(b, s, i, action{
		Title:   title,
		StaffID: commands.CallerID(i),
		Extra:   []*discordgo.MessageEmbedField{{Name: "Channel", Value: fmt.Sprintf("<#%s>", i.ChannelID)}},
	})
}
