package giveawaycmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/giveaway"
	"PixBot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// buttonPrefix routes join buttons; the custom id is "giveaway_<id>".
const buttonPrefix = "giveaway"

func Create(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	duration := time.Duration(opts.Int("minutes", 0)) * time.Minute
	ctx := context.Background()

	g, err := b.Giveaways.Create(ctx, i.GuildID, i.ChannelID, commands.CallerID(i),
		opts.String("prize", ""), duration, int(opts.Int("winners", 1)))
	if err != nil {
		commands.Fail(s, i, err)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{openEmbed(g)},
			Components: joinButton(g.ID, false),
		},
	})
	if err != nil {
		log.WithField("giveaway_id", g.ID).WithError(err).Error("Failed to post giveaway")
		return
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.WithField("giveaway_id", g.ID).WithError(err).Warn("Failed to fetch giveaway message")
		return
	}
	if err := b.Giveaways.AttachMessage(ctx, g.ID, msg.ID); err != nil {
		log.WithField("giveaway_id", g.ID).WithError(err).Error("Failed to store giveaway message")
	}
}

// Join handles the join button.
func Join(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	id, ok := parseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}
	n, err := b.Giveaways.Enter(context.Background(), id, commands.CallerID(i))
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.RespondEphemeral(s, i, fmt.Sprintf("✅ You joined the giveaway! 🎟️ %d entrant(s) so far.", n))
}

func End(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	id := uint(commands.OptionMap(i).Int("id", 0))

	res, err := b.Giveaways.End(ctx, id)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	if err := (Poster{Session: s}).Announce(ctx, res); err != nil {
		log.WithField("giveaway_id", id).WithError(err).Error("Failed to announce giveaway")
	}
	commands.Respond(s, i, fmt.Sprintf("⛔ Giveaway #%d ended. Use **/giveaway_reroll** to draw again.", id))
}

func Reroll(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	opts := commands.OptionMap(i)
	id := uint(opts.Int("id", 0))

	winners, err := b.Giveaways.Reroll(ctx, id, int(opts.Int("winners", 1)))
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	g, err := b.Giveaways.Get(ctx, id)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, rerollMessage(g, winners))
}

// Poster announces draws in the giveaway's channel, replying to the original
// post and disabling its join button.
type Poster struct {
	Session *discordgo.Session
}

func (p Poster) Announce(ctx context.Context, res giveaway.Result) error {
	g := res.Giveaway
	send := &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{resultEmbed(res)}}
	if g.MessageID != "" {
		send.Reference = &discordgo.MessageReference{MessageID: g.MessageID, ChannelID: g.ChannelID, GuildID: g.GuildID}

		edit := discordgo.NewMessageEdit(g.ChannelID, g.MessageID)
		components := joinButton(g.ID, true)
		edit.Components = &components
		if _, err := p.Session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
			log.WithField("giveaway_id", g.ID).WithError(err).Debug("Failed to disable giveaway button")
		}
	}
	_, err := p.Session.ChannelMessageSendComplex(g.ChannelID, send, discordgo.WithContext(ctx))
	return err
}

func customID(id uint) string {
	return fmt.Sprintf("%s_%d", buttonPrefix, id)
}

func parseCustomID(customID string) (uint, bool) {
	raw, ok := strings.CutPrefix(customID, buttonPrefix+"_")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func joinButton(id uint, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "🎉 Join",
				Style:    discordgo.SuccessButton,
				CustomID: customID(id),
				Disabled: disabled,
			},
		}},
	}
}

func openEmbed(g models.Giveaway) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎉 GIVEAWAY!",
		Description: fmt.Sprintf("🎁 **Prize:** %s\n🏆 **Winners:** %d\n⏳ **Ends:** <t:%d:R>\n\nClick the button below to join!",
			g.Prize, g.Winners, g.EndsAt.Unix()),
		Color:  commands.ColorGiveaway,
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Giveaway #%d", g.ID)},
	}
}

func resultEmbed(res giveaway.Result) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:  "🎊 GIVEAWAY ENDED!",
		Color:  commands.ColorGames,
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Giveaway #%d · %d entrant(s)", res.Giveaway.ID, res.Entrants)},
	}
	if len(res.Winners) == 0 {
		e.Description = fmt.Sprintf("❌ Nobody joined.\n🎁 Prize: **%s**", res.Giveaway.Prize)
		return e
	}
	e.Description = fmt.Sprintf("🏆 Winner(s): %s\n🎁 Prize: **%s**", mentions(res.Winners), res.Giveaway.Prize)
	return e
}

func rerollMessage(g models.Giveaway, winners []string) string {
	return fmt.Sprintf("🔁 **REROLL!**\n🏆 New winner(s): %s\n🎁 Prize: **%s**", mentions(winners), g.Prize)
}

func mentions(ids []string) string {
	out := make([]string, len(ids))
	for idx, id := range ids {
		out[idx] = "<@" + id + ">"
	}
	return strings.Join(out, ", ")
}
