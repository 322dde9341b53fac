package vipcmd

import (
	"context"
	"fmt"
	"strings"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/models"
	"PixBot/vip"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func Info(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	targetID := commands.CallerID(i)
	if u := commands.OptionMap(i).User("user"); u != nil {
		targetID = u.ID
	}

	sub, err := b.VIP.Get(context.Background(), targetID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, infoMessage(targetID, sub))
}

func infoMessage(userID string, sub *models.Subscription) string {
	if sub == nil {
		return fmt.Sprintf("<@%s> has no VIP.\n📈 Multiplier: **1.0x**", userID)
	}
	expiry := "never"
	if sub.ExpiresAt != nil {
		expiry = fmt.Sprintf("<t:%d:R>", sub.ExpiresAt.Unix())
	}
	return fmt.Sprintf("👑 <@%s> VIP: **%s**\n📈 Multiplier: **%.1fx**\n⌛ Expires: %s",
		userID, vip.Name(sub.Tier), vip.MultiplierFor(sub.Tier), expiry)
}

func Shop(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	commands.RespondEmbed(s, i, shopEmbed())
}

func shopEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🛒 VIP Shop",
		Description: "Ask a server admin to activate a tier.",
		Color:       commands.ColorVIP,
	}
	for _, offer := range vip.Catalog {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. %s (%.1fx)", offer.Tier, vip.Name(offer.Tier), vip.MultiplierFor(offer.Tier)),
			Value: "• " + strings.Join(offer.Benefits, "\n• "),
		})
	}
	return embed
}

func Grant(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	target := opts.User("user")
	if target == nil {
		commands.RespondEphemeral(s, i, "Pick a user.")
		return
	}
	tier := int(opts.Int("tier", 0))
	days := int(opts.Int("days", 0))

	sub, err := b.VIP.Grant(context.Background(), target.ID, tier, days)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}

	log.WithFields(log.Fields{
		"staff_id": commands.CallerID(i),
		"user_id":  target.ID,
		"tier":     tier,
		"days":     days,
	}).Info("VIP granted")
	commands.Respond(s, i, grantMessage(target.ID, sub))
}

func grantMessage(userID string, sub *models.Subscription) string {
	msg := fmt.Sprintf("✅ <@%s> received VIP **%s**", userID, vip.Name(sub.Tier))
	if sub.ExpiresAt == nil {
		return msg + " forever!"
	}
	return msg + fmt.Sprintf(" until <t:%d:f>.", sub.ExpiresAt.Unix())
}

func Transfer(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := commands.OptionMap(i).User("user")
	if target == nil {
		commands.RespondEphemeral(s, i, "Pick a user.")
		return
	}
	if target.Bot {
		commands.RespondEphemeral(s, i, "Bots can't hold a VIP.")
		return
	}

	sub, err := b.VIP.Transfer(context.Background(), commands.CallerID(i), target.ID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, fmt.Sprintf("🔁 Your VIP **%s** now belongs to <@%s>.", vip.Name(sub.Tier), target.ID))
}
