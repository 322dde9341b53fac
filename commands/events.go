package commands

import (
	"context"
	"time"

	"PixBot/assistant"
	"PixBot/bot"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// assistantTimeout bounds one completion round trip.
const assistantTimeout = 30 * time.Second

// OnMessage pays the passive message reward in guilds and answers DMs and
// mentions through the assistant.
func OnMessage(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || s.State == nil || s.State.User == nil {
		return
	}
	selfID := s.State.User.ID

	if m.GuildID != "" {
		if _, err := b.Rewards.MessageReward(context.Background(), m.Author.ID); err != nil {
			log.WithField("user_id", m.Author.ID).WithError(err).Error("Failed to pay message reward")
		}
	}

	if !addressed(m, selfID) {
		return
	}

	_ = s.ChannelTyping(m.ChannelID)
	ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
	defer cancel()

	reply := assistantReply(ctx, b.Assistant, m, selfID)
	if _, err := s.ChannelMessageSendReply(m.ChannelID, reply, m.Reference()); err != nil {
		log.WithField("channel_id", m.ChannelID).WithError(err).Error("Failed to send assistant reply")
	}
}

// addressed reports whether the bot should answer m: every DM, and guild
// messages that mention it.
func addressed(m *discordgo.MessageCreate, selfID string) bool {
	return m.GuildID == "" || utils.Mentions(m.Message, selfID)
}

func assistantReply(ctx context.Context, a *assistant.Assistant, m *discordgo.MessageCreate, selfID string) string {
	return a.Reply(ctx, m.Author.ID, utils.StripMention(m.Content, selfID))
}
