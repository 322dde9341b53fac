package general

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/ledger"
	"PixBot/models"
	"PixBot/utils"
	"PixBot/vip"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func Ping(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	commands.Respond(s, i, fmt.Sprintf("🏓 Pong! **%dms**", s.HeartbeatLatency().Milliseconds()))
}

func Uptime(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	commands.Respond(s, i, uptimeMessage(time.Since(b.StartedAt)))
}

func uptimeMessage(d time.Duration) string {
	secs := int64(d.Seconds())
	return fmt.Sprintf("⏱️ Online for **%dh %dm %ds**", secs/3600, secs%3600/60, secs%60)
}

func Invite(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	commands.Respond(s, i, inviteURL(s.State.User.ID))
}

// inviteURL asks for administrator and the commands scope.
func inviteURL(appID string) string {
	return fmt.Sprintf("https://discord.com/oauth2/authorize?client_id=%s&permissions=%d&scope=bot%%20applications.commands",
		appID, discordgo.PermissionAdministrator)
}

func Support(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	commands.Respond(s, i, "🆘 Support server:\n"+supportInvite)
}

func Feedback(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	channelID := b.Config.FeedbackChannelID
	if channelID == "" {
		commands.Respond(s, i, "❌ The feedback channel is not configured.")
		return
	}

	text := strings.TrimSpace(commands.OptionMap(i).String("text", ""))
	if text == "" {
		commands.Respond(s, i, "❌ Feedback cannot be empty.")
		return
	}

	if _, err := s.ChannelMessageSendEmbed(channelID, feedbackEmbed(utils.InteractionUser(i), text)); err != nil {
		log.WithField("channel_id", channelID).WithError(err).Error("Failed to forward feedback")
		commands.Respond(s, i, commands.GenericError)
		return
	}
	commands.Respond(s, i, "✅ Feedback sent, thank you!")
}

func feedbackEmbed(u *discordgo.User, text string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "💡 Feedback received",
		Description: text,
		Color:       commands.ColorGames,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("%s (%s)", u.Username, u.ID),
			IconURL: u.AvatarURL(""),
		},
	}
}

func UserInfo(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := utils.InteractionUser(i)
	if u := commands.OptionMap(i).User("user"); u != nil {
		target = u
	}

	ctx := context.Background()
	acc, err := b.Ledger.Get(ctx, target.ID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	tier, err := b.VIP.Tier(ctx, target.ID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.RespondEmbed(s, i, userInfoEmbed(target, acc, tier))
}

func userInfoEmbed(u *discordgo.User, acc models.Account, tier int) *discordgo.MessageEmbed {
	joined := "unknown"
	if created, err := discordgo.SnowflakeTimestamp(u.ID); err == nil {
		joined = fmt.Sprintf("<t:%d:D>", created.Unix())
	}

	return &discordgo.MessageEmbed{
		Title:     "👤 User Info",
		Color:     commands.ColorInfo,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: u.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🆔 ID", Value: u.ID, Inline: true},
			{Name: "📅 Account created", Value: joined, Inline: true},
			{Name: "⭐ XP", Value: utils.FormatCoins(acc.XP), Inline: true},
			{Name: "🎖️ Level", Value: fmt.Sprint(ledger.Level(acc.XP)), Inline: true},
			{Name: "💰 PixCoins", Value: utils.FormatCoins(acc.Coins), Inline: true},
			{Name: "🏦 Bank", Value: utils.FormatCoins(acc.Bank), Inline: true},
			{Name: "👑 VIP", Value: vip.Name(tier), Inline: true},
		},
	}
}
