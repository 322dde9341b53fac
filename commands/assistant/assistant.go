package assistantcmd

import (
	"context"
	"time"

	"PixBot/bot"
	"PixBot/commands"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const askTimeout = 30 * time.Second

// Ask defers the reply while the completion API answers. Every failure is
// answered with the apology.
func Ask(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := commands.Defer(s, i); err != nil {
		log.WithError(err).Error("Failed to defer ask")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	reply := b.Assistant.Reply(ctx, commands.CallerID(i), commands.OptionMap(i).String("message", ""))
	if err := commands.EditResponse(s, i, reply); err != nil {
		log.WithError(err).Error("Failed to send assistant reply")
	}
}

func SetPersona(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	prompt := commands.OptionMap(i).String("prompt", "")
	if err := b.Assistant.SetPersona(context.Background(), commands.CallerID(i), prompt); err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, "🧠 Personality updated! It applies to your next messages.")
}

func ResetPersona(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.Assistant.ResetPersona(context.Background(), commands.CallerID(i)); err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, "🧠 Back to the default personality.")
}

func Forget(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.Assistant.Forget(context.Background(), commands.CallerID(i)); err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, "🧹 I forgot our conversation.")
}
