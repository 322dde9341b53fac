package vipcmd

import (
	"context"
	"fmt"
	"time"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/vip"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	perkDenied   = "❌ Only **Diamond** or **Ultimate** VIPs can use this."
	setupTimeout = time.Minute
	rulesChannel = "📜-rules"
)

// nameColors are the choices for /name_color.
var nameColors = map[string]int{
	"red":    0xE74C3C,
	"green":  0x2ECC71,
	"blue":   0x3498DB,
	"purple": 0x9B59B6,
	"gold":   0xF1C40F,
	"gray":   0x607D8B,
	"white":  0x979C9F,
}

var colorChoices = []string{"red", "green", "blue", "purple", "gold", "gray", "white"}

type channelSpec struct {
	Name  string
	Voice bool
}

type categorySpec struct {
	Name     string
	Channels []channelSpec
}

// serverLayout is what /server_setup builds, in creation order.
var serverLayout = []categorySpec{
	{Name: "📢 Information", Channels: []channelSpec{{Name: rulesChannel}, {Name: "📣-announcements"}}},
	{Name: "💬 Chat", Channels: []channelSpec{{Name: "💬-general"}, {Name: "📸-media"}}},
	{Name: "🔊 Voice", Channels: []channelSpec{{Name: "🔊 General", Voice: true}, {Name: "🎮 Games", Voice: true}}},
	{Name: "🛡️ Staff", Channels: []channelSpec{{Name: "📂-logs"}}},
}

// diamondOrAbove gates the cosmetic perks.
func diamondOrAbove(ctx context.Context, reg *vip.Registry, userID string) (bool, error) {
	tier, err := reg.Tier(ctx, userID)
	return tier >= vip.Diamond, err
}

func NameColor(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := commands.CallerID(i)

	ok, err := diamondOrAbove(ctx, b.VIP, userID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	if !ok {
		commands.RespondEphemeral(s, i, perkDenied)
		return
	}

	choice := commands.OptionMap(i).String("color", "")
	color, ok := nameColors[choice]
	if !ok {
		commands.RespondEphemeral(s, i, "❌ Unknown colour. Pick one from the list.")
		return
	}

	name := colorRoleName(i.Member.User.Username)
	if err := applyColorRole(ctx, s, i.GuildID, userID, name, color); err != nil {
		log.WithFields(log.Fields{
			"guild_id": i.GuildID,
			"user_id":  userID,
		}).WithError(err).Error("Failed to apply name colour")
		commands.RespondEphemeral(s, i, "❌ I couldn't set your colour. Check that I can manage roles.")
		return
	}
	commands.RespondEphemeral(s, i, fmt.Sprintf("🎨 Your name colour is now **%s**!", choice))
}

// applyColorRole recolours the member's colour role, creating and assigning it
// the first time.
func applyColorRole(ctx context.Context, s *discordgo.Session, guildID, userID, name string, color int) error {
	roles, err := s.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	if role := findRole(roles, name); role != nil {
		_, err := s.GuildRoleEdit(guildID, role.ID, &discordgo.RoleParams{Color: &color}, discordgo.WithContext(ctx))
		return err
	}
	role, err := s.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name, Color: &color}, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	return s.GuildMemberRoleAdd(guildID, userID, role.ID, discordgo.WithContext(ctx))
}

func colorRoleName(username string) string {
	return "🎨 Color • " + username
}

func findRole(roles []*discordgo.Role, name string) *discordgo.Role {
	for _, r := range roles {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func ServerSetup(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	userID := commands.CallerID(i)

	ok, err := b.VIP.CanCreateServer(ctx, userID)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	if !ok {
		commands.RespondEphemeral(s, i, perkDenied)
		return
	}

	_ = commands.Defer(s, i)
	if err := setupServer(ctx, s, i.GuildID); err != nil {
		log.WithFields(log.Fields{
			"guild_id": i.GuildID,
			"user_id":  userID,
		}).WithError(err).Error("Server setup failed")
		_ = commands.EditResponse(s, i, "❌ The setup stopped halfway. Check that I can manage channels.")
		return
	}
	log.WithFields(log.Fields{"guild_id": i.GuildID, "user_id": userID}).Info("Server layout created")
	_ = commands.EditResponse(s, i, "🚀 **Server set up!**\n📌 Categories, channels and rules are in place.")
}

func setupServer(ctx context.Context, s *discordgo.Session, guildID string) error {
	var rulesID string
	for _, cat := range serverLayout {
		parent, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name: cat.Name,
			Type: discordgo.ChannelTypeGuildCategory,
		}, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("category %q: %w", cat.Name, err)
		}
		for _, ch := range cat.Channels {
			kind := discordgo.ChannelTypeGuildText
			if ch.Voice {
				kind = discordgo.ChannelTypeGuildVoice
			}
			created, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
				Name:     ch.Name,
				Type:     kind,
				ParentID: parent.ID,
			}, discordgo.WithContext(ctx))
			if err != nil {
				return fmt.Errorf("channel %q: %w", ch.Name, err)
			}
			if ch.Name == rulesChannel {
				rulesID = created.ID
			}
		}
	}
	_, err := s.ChannelMessageSendEmbed(rulesID, rulesEmbed(), discordgo.WithContext(ctx))
	return err
}

func rulesEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "📜 Server Rules",
		Description: "1️⃣ Respect everyone\n2️⃣ No spam\n3️⃣ No forbidden content\n4️⃣ Follow the Discord guidelines",
		Color:       0x5865F2,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Server set up automatically"},
	}
}
