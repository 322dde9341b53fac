package social

import (
	"context"
	"errors"
	"fmt"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
)

// clanError turns a clan sentinel into a reply, or "" for anything else.
func clanError(err error) string {
	switch {
	case errors.Is(err, ErrClanExists):
		return "❌ That name is already taken."
	case errors.Is(err, ErrClanNotFound):
		return "❌ Clan not found."
	case errors.Is(err, ErrAlreadyInClan):
		return "❌ You are already in a clan. Use /clan_leave first."
	case errors.Is(err, ErrNotInClan):
		return "❌ You are not in a clan."
	case errors.Is(err, ErrBadClanName):
		return fmt.Sprintf("❌ Clan names must be 1 to %d characters.", maxClanNameLength)
	}
	return ""
}

func reply(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	if msg := clanError(err); msg != "" {
		commands.RespondEphemeral(s, i, msg)
		return
	}
	commands.Fail(s, i, err)
}

func Create(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	clan, err := CreateClan(context.Background(), b.Db, commands.OptionMap(i).String("name", ""), commands.CallerID(i))
	if err != nil {
		reply(s, i, err)
		return
	}
	commands.Respond(s, i, fmt.Sprintf("🏰 Clan **%s** founded!", clan.Name))
}

func Join(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	clan, err := JoinClan(context.Background(), b.Db, commands.OptionMap(i).String("name", ""), commands.CallerID(i))
	if err != nil {
		reply(s, i, err)
		return
	}
	commands.Respond(s, i, fmt.Sprintf("🤝 <@%s> joined **%s**!", commands.CallerID(i), clan.Name))
}

func Leave(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	clan, disbanded, err := LeaveClan(context.Background(), b.Db, commands.CallerID(i))
	if err != nil {
		reply(s, i, err)
		return
	}
	if disbanded {
		commands.Respond(s, i, fmt.Sprintf("🏚️ You left **%s** and the clan was disbanded.", clan.Name))
		return
	}
	commands.Respond(s, i, fmt.Sprintf("🚶 You left **%s**. Leader: <@%s>", clan.Name, clan.LeaderID))
}

func Info(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	info, err := GetClanInfo(context.Background(), b.Db, commands.OptionMap(i).String("name", ""))
	if err != nil {
		reply(s, i, err)
		return
	}
	commands.RespondEmbed(s, i, infoEmbed(info))
}

func infoEmbed(info ClanInfo) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🏰 Clan " + info.Name,
		Color: commands.ColorGames,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👑 Leader", Value: fmt.Sprintf("<@%s>", info.LeaderID), Inline: true},
			{Name: "👥 Members", Value: fmt.Sprint(info.Members), Inline: true},
			{Name: "⭐ XP", Value: utils.FormatCoins(info.XP), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Founded " + info.CreatedAt.Format("January 2, 2006")},
	}
}
