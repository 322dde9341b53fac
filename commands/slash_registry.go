package commands

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// commandNeedsUpdate checks if an existing command needs to be updated
func commandNeedsUpdate(existing, desired *discordgo.ApplicationCommand) bool {
	if existing.Name != desired.Name || existing.Description != desired.Description {
		return true
	}
	if permissionBits(existing.DefaultMemberPermissions) != permissionBits(desired.DefaultMemberPermissions) {
		return true
	}
	return optionsDiffer(existing.Options, desired.Options)
}

func permissionBits(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func optionsDiffer(existing, desired []*discordgo.ApplicationCommandOption) bool {
	if len(existing) != len(desired) {
		return true
	}
	for idx, option := range existing {
		want := desired[idx]
		if option.Name != want.Name ||
			option.Description != want.Description ||
			option.Type != want.Type ||
			option.Required != want.Required ||
			option.MaxValue != want.MaxValue ||
			len(option.Choices) != len(want.Choices) {
			return true
		}
		if minBound(option.MinValue) != minBound(want.MinValue) {
			return true
		}
		for c := range option.Choices {
			if option.Choices[c].Name != want.Choices[c].Name {
				return true
			}
		}
	}
	return false
}

func minBound(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// RegisterAllSlashCommands registers and updates slash commands from all
// modules. An empty guildID registers them globally.
func RegisterAllSlashCommands(s *discordgo.Session, guildID string) {
	appID := s.State.User.ID

	existingCommands, err := s.ApplicationCommands(appID, guildID)
	if err != nil {
		log.WithError(err).Error("Error fetching existing commands")
		return
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range existingCommands {
		existingMap[cmd.Name] = cmd
	}

	created, updated := 0, 0
	for _, desired := range GetAllSlashCommands() {
		if existing, exists := existingMap[desired.Name]; exists {
			if commandNeedsUpdate(existing, desired) {
				log.WithField("command", desired.Name).Info("Updating slash command")
				if _, err := s.ApplicationCommandEdit(appID, guildID, existing.ID, desired); err != nil {
					log.WithField("command", desired.Name).WithError(err).Error("Error updating command")
				} else {
					updated++
				}
			}
			// Still wanted
			delete(existingMap, desired.Name)
			continue
		}

		log.WithField("command", desired.Name).Info("Creating slash command")
		if _, err := s.ApplicationCommandCreate(appID, guildID, desired); err != nil {
			log.WithField("command", desired.Name).WithError(err).Error("Error creating command")
		} else {
			created++
		}
	}

	for _, cmd := range existingMap {
		log.WithField("command", cmd.Name).Info("Deleting unused slash command")
		if err := s.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			log.WithField("command", cmd.Name).WithError(err).Error("Error deleting command")
		}
	}

	log.WithFields(log.Fields{
		"created": created,
		"updated": updated,
		"deleted": len(existingMap),
	}).Info("Slash commands synced")
}
