package commands

import (
	"sort"
	"strings"

	"PixBot/bot"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc defines the signature for slash command handlers
type HandlerFunc func(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate)

// SlashCommandInfo is one row of the command table: its parameters, who may
// run it and whether replies are ephemeral.
type SlashCommandInfo struct {
	Name        string                                `json:"name"`
	Description string                                `json:"description"`
	Options     []*discordgo.ApplicationCommandOption `json:"options"`
	Permission  int64                                 `json:"permission"` // member permission bits, 0 for everyone
	OwnerOnly   bool                                  `json:"owner_only"`
	GuildOnly   bool                                  `json:"guild_only"`
	Ephemeral   bool                                  `json:"ephemeral"`
	Handler     HandlerFunc                           `json:"-"`
}

// ModuleInfo represents a complete module with its commands and metadata
type ModuleInfo struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Version       string                 `json:"version"`
	Author        string                 `json:"author"`
	Category      string                 `json:"category"`
	SlashCommands []SlashCommandInfo     `json:"slash_commands"`
	Config        map[string]interface{} `json:"config"`
}

// Global registries
var (
	RegisteredModules = make(map[string]*ModuleInfo)
	SlashCommands     = make(map[string]*SlashCommandInfo)
	// ComponentHandlers routes buttons by the custom id's prefix before "_".
	ComponentHandlers = make(map[string]HandlerFunc)
)

// RegisterComponent routes message components whose custom id is
// "<prefix>_<anything>" to h.
func RegisterComponent(prefix string, h HandlerFunc) {
	ComponentHandlers[prefix] = h
}

// GetComponentHandler looks up the handler for a component custom id.
func GetComponentHandler(customID string) (HandlerFunc, bool) {
	prefix, _, _ := strings.Cut(customID, "_")
	h, ok := ComponentHandlers[prefix]
	return h, ok
}

// RegisterModule registers a module and indexes its slash commands by name.
func RegisterModule(module *ModuleInfo) {
	RegisteredModules[module.Name] = module
	for idx := range module.SlashCommands {
		cmd := &module.SlashCommands[idx]
		SlashCommands[cmd.Name] = cmd
	}
}

// GetSlashCommand looks up a registered slash command.
func GetSlashCommand(name string) (*SlashCommandInfo, bool) {
	cmd, ok := SlashCommands[name]
	return cmd, ok
}

// GetModuleByCommand returns the module that contains a specific command
func GetModuleByCommand(commandName string) *ModuleInfo {
	for _, module := range RegisteredModules {
		for _, cmd := range module.SlashCommands {
			if cmd.Name == commandName {
				return module
			}
		}
	}
	return nil
}

// GetAllModules returns all registered modules sorted by name
func GetAllModules() []*ModuleInfo {
	modules := make([]*ModuleInfo, 0, len(RegisteredModules))
	for _, m := range RegisteredModules {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules
}

// GetAllSlashCommands returns all registered slash commands for registration
func GetAllSlashCommands() []*discordgo.ApplicationCommand {
	var commands []*discordgo.ApplicationCommand
	for _, module := range GetAllModules() {
		for _, slashCmd := range module.SlashCommands {
			commands = append(commands, toApplicationCommand(slashCmd))
		}
	}
	return commands
}

func toApplicationCommand(c SlashCommandInfo) *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
	if c.Permission != 0 {
		perm := c.Permission
		cmd.DefaultMemberPermissions = &perm
	}
	if c.GuildOnly || c.Permission != 0 {
		dm := false
		cmd.DMPermission = &dm
	}
	return cmd
}

// MinValue is a helper for integer option lower bounds.
func MinValue(v float64) *float64 {
	return &v
}
