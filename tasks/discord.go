package tasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GuildBroadcaster posts to a named text channel in every guild the bot is in,
// creating the channel where it is missing.
type GuildBroadcaster struct {
	Session *discordgo.Session
}

func (g GuildBroadcaster) Broadcast(ctx context.Context, channelName, content string) error {
	var errs []error
	for _, guild := range utils.Guilds(g.Session) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		channelID, err := FindOrCreateChannel(g.Session, guild.ID, channelName)
		if err != nil {
			errs = append(errs, fmt.Errorf("guild %s: %w", guild.ID, err))
			continue
		}
		if _, err := g.Session.ChannelMessageSend(channelID, content); err != nil {
			errs = append(errs, fmt.Errorf("guild %s: %w", guild.ID, err))
		}
	}
	return errors.Join(errs...)
}

// FindOrCreateChannel returns the ID of the guild's text channel called name.
func FindOrCreateChannel(s *discordgo.Session, guildID, name string) (string, error) {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return "", err
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name {
			return ch.ID, nil
		}
	}
	ch, err := s.GuildChannelCreate(guildID, name, discordgo.ChannelTypeGuildText)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"guild_id": guildID, "channel": name}).Info("Created channel")
	return ch.ID, nil
}

// OwnerGuard leaves every guild the owner is not a member of.
func OwnerGuard(s *discordgo.Session, ownerID string) JobFunc {
	return func(ctx context.Context) error {
		for _, guild := range utils.Guilds(s) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			_, err := s.GuildMember(guild.ID, ownerID)
			if err == nil || !isNotFound(err) {
				continue
			}
			log.WithField("guild_id", guild.ID).Warn("Owner is not a member, leaving guild")
			if err := s.GuildLeave(guild.ID); err != nil {
				log.WithField("guild_id", guild.ID).WithError(err).Error("Failed to leave guild")
			}
		}
		return nil
	}
}

func isNotFound(err error) bool {
	var rerr *discordgo.RESTError
	return errors.As(err, &rerr) && rerr.Response != nil && rerr.Response.StatusCode == http.StatusNotFound
}
