package moderation

import (
	"context"
	"fmt"
	"time"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	defaultReason      = "No reason provided"
	maxTimeoutMinutes  = 40320
	maxSlowmodeSeconds = 21600
)

const protectedMessage = "🛡️ You can't moderate another moderator."

// protected reports whether target holds the permission the command needs.
// Members who can't be looked up (for example users who already left) are
// not protected.
func protected(s *discordgo.Session, guildID, targetID string, permission int64) bool {
	ok, err := utils.CheckPermission(s, guildID, targetID, permission)
	if err != nil {
		log.WithFields(log.Fields{"guild_id": guildID, "user_id": targetID}).WithError(err).Debug("Permission lookup failed")
		return false
	}
	return ok
}

// action describes one moderation step for the reply and the modlog.
type action struct {
	Title    string
	TargetID string
	StaffID  string
	Reason   string
	Extra    []*discordgo.MessageEmbedField
}

func (a action) embed(at time.Time) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     a.Title,
		Color:     commands.ColorModerator,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
	if a.TargetID != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: "User", Value: fmt.Sprintf("<@%s>", a.TargetID), Inline: true})
	}
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: "Staff", Value: fmt.Sprintf("<@%s>", a.StaffID), Inline: true})
	if a.Reason != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: "Reason", Value: a.Reason})
	}
	e.Fields = append(e.Fields, a.Extra...)
	return e
}

// finish answers the moderator and copies the action to the modlog channel.
func finish(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, a action) {
	embed := a.embed(time.Now())
	commands.RespondEmbed(s, i, embed)

	channelID, err := ModLogChannelID(context.Background(), b.Db, i.GuildID)
	if err != nil {
		log.WithField("guild_id", i.GuildID).WithError(err).Error("Failed to load modlog channel")
		return
	}
	if channelID == "" {
		return
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.WithField("channel_id", channelID).WithError(err).Warn("Failed to post to modlog")
	}
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return defaultReason
	}
	return reason
}
