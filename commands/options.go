package commands

import (
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
)

// CallerID is the id of the user who invoked the interaction.
func CallerID(i *discordgo.InteractionCreate) string {
	if u := utils.InteractionUser(i); u != nil {
		return u.ID
	}
	return ""
}

// Options indexes the invoked command's options by name. Users and channels
// come from the interaction's resolved data when Discord sent it.
type Options struct {
	values   map[string]*discordgo.ApplicationCommandInteractionDataOption
	resolved *discordgo.ApplicationCommandInteractionDataResolved
}

func OptionMap(i *discordgo.InteractionCreate) Options {
	data := i.ApplicationCommandData()
	o := NewOptions(data.Options)
	o.resolved = data.Resolved
	return o
}

func NewOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) Options {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return Options{values: m}
}

func (o Options) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Int returns the integer option or def when it was not given.
func (o Options) Int(name string, def int64) int64 {
	if opt, ok := o.values[name]; ok && opt.Type == discordgo.ApplicationCommandOptionInteger {
		return opt.IntValue()
	}
	return def
}

func (o Options) String(name, def string) string {
	if opt, ok := o.values[name]; ok && opt.Type == discordgo.ApplicationCommandOptionString {
		return opt.StringValue()
	}
	return def
}

// User returns the user option, or nil when it was not given.
func (o Options) User(name string) *discordgo.User {
	opt, ok := o.values[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionUser {
		return nil
	}
	u := opt.UserValue(nil)
	if o.resolved != nil {
		if full, ok := o.resolved.Users[u.ID]; ok {
			return full
		}
	}
	return u
}

func (o Options) Channel(name string) *discordgo.Channel {
	opt, ok := o.values[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionChannel {
		return nil
	}
	ch := opt.ChannelValue(nil)
	if o.resolved != nil {
		if full, ok := o.resolved.Channels[ch.ID]; ok {
			return full
		}
	}
	return ch
}

// Role returns the resolved role, or one carrying only its ID when Discord
// sent no resolved data.
func (o Options) Role(name string) *discordgo.Role {
	opt, ok := o.values[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionRole {
		return nil
	}
	id, _ := opt.Value.(string)
	if o.resolved != nil {
		if full, ok := o.resolved.Roles[id]; ok {
			return full
		}
	}
	return &discordgo.Role{ID: id}
}

// Option builders for the command tables.

func UserOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func StringOption(name, description string, required bool, choices ...string) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
	for _, c := range choices {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: c, Value: c})
	}
	return opt
}

// IntOption is a required-or-optional integer bounded to [min, max]. A zero
// max leaves the upper bound open.
func IntOption(name, description string, required bool, min, max float64) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
		MinValue:    MinValue(min),
		MaxValue:    max,
	}
}

func ChannelOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         name,
		Description:  description,
		Required:     required,
		ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
	}
}

func RoleOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionRole,
		Name:        name,
		Description: description,
		Required:    required,
	}
}
