package commands

import (
	"runtime/debug"

	"PixBot/bot"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Authorize applies the command table's access rules before any handler runs.
func Authorize(ownerID string, cmd *SlashCommandInfo, i *discordgo.InteractionCreate) error {
	user := utils.InteractionUser(i)
	if cmd.OwnerOnly && (ownerID == "" || user == nil || user.ID != ownerID) {
		return ErrOwnerOnly
	}
	if (cmd.GuildOnly || cmd.Permission != 0) && i.GuildID == "" {
		return ErrGuildOnly
	}
	if cmd.Permission != 0 {
		if i.Member == nil || !utils.HasPermission(i.Member.Permissions, cmd.Permission) {
			return ErrMissingPermission
		}
	}
	return nil
}

// Dispatch routes an application command interaction to its handler. A
// panicking handler is logged and answered instead of taking the bot down.
func Dispatch(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type == discordgo.InteractionMessageComponent {
		dispatchComponent(b, s, i)
		return
	}
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	cmd, ok := GetSlashCommand(name)
	if !ok || cmd.Handler == nil {
		log.WithField("command", name).Warn("Unknown slash command")
		return
	}

	entry := log.WithField("command", name)
	if user := utils.InteractionUser(i); user != nil {
		entry = entry.WithField("user_id", user.ID)
	}

	if err := Authorize(b.Config.OwnerID, cmd, i); err != nil {
		entry.WithError(err).Info("Command rejected")
		Fail(s, i, err)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Errorf("Command panicked\n%s", debug.Stack())
			_ = RespondEphemeral(s, i, GenericError)
		}
	}()

	entry.Debug("Running command")
	cmd.Handler(b, s, i)
}

func dispatchComponent(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	h, ok := GetComponentHandler(customID)
	if !ok {
		log.WithField("custom_id", customID).Debug("Unknown component")
		return
	}

	entry := log.WithField("custom_id", customID)
	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Errorf("Component handler panicked\n%s", debug.Stack())
			_ = RespondEphemeral(s, i, GenericError)
		}
	}()
	h(b, s, i)
}
