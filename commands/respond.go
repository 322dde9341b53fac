package commands

import (
	"github.com/bwmarrin/discordgo"
)

// Embed colours per module.
const (
	ColorEconomy   = 0xF1C40F
	ColorVIP       = 0x9B59B6
	ColorGames     = 0x2ECC71
	ColorTreasure  = 0xE67E22
	ColorModerator = 0xE74C3C
	ColorInfo      = 0x3498DB
	ColorGiveaway  = 0xFFD700
)

// flags returns the ephemeral flag when the command table marks the
// invoked command as private.
func flags(i *discordgo.InteractionCreate) discordgo.MessageFlags {
	if i.Type != discordgo.InteractionApplicationCommand {
		return 0
	}
	if cmd, ok := GetSlashCommand(i.ApplicationCommandData().Name); ok && cmd.Ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

// Respond replies with plain content using the command's visibility.
func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags(i),
		},
	})
}

// RespondEphemeral replies privately whatever the command's visibility.
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondEmbed replies with a single embed using the command's visibility.
func RespondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags(i),
		},
	})
}

// Defer acknowledges the interaction for handlers that wait on I/O.
func Defer(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags(i)},
	})
}

// EditResponse replaces the deferred reply.
func EditResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
	return err
}

// Followup posts another message after the first reply.
func Followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   flags(i),
	})
	return err
}

// Fail replies privately with the user-facing text for err.
func Fail(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	_ = RespondEphemeral(s, i, UserMessage(err))
}
