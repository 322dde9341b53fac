package main

import (
	"fmt"
	"io"
	"strings"

	"PixBot/commands"
	_ "PixBot/commands/assistant"
	_ "PixBot/commands/economy"
	_ "PixBot/commands/games"
	_ "PixBot/commands/general"
	_ "PixBot/commands/giveaway"
	_ "PixBot/commands/help"
	_ "PixBot/commands/moderation"
	_ "PixBot/commands/social"
	_ "PixBot/commands/treasure"
	_ "PixBot/commands/vip"

	"github.com/spf13/cobra"
)

var (
	listModulesOnly bool
	filterModule    string
)

var commandsCmd = &cobra.Command{
	Use:         "commands",
	Short:       "List the bot's modules and slash commands",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return listCommands(cmd.OutOrStdout(), commands.GetAllModules(), filterModule, listModulesOnly)
	},
}

func init() {
	commandsCmd.Flags().BoolVarP(&listModulesOnly, "modules", "m", false, "List only modules")
	commandsCmd.Flags().StringVarP(&filterModule, "filter", "f", "", "Filter by module name")
}

func listCommands(w io.Writer, modules []*commands.ModuleInfo, filter string, modulesOnly bool) error {
	shown := 0
	for _, m := range modules {
		if filter != "" && !strings.EqualFold(m.Name, filter) {
			continue
		}
		shown++
		fmt.Fprintf(w, "📦 %s v%s (%d commands)\n    %s\n", m.Name, m.Version, len(m.SlashCommands), m.Description)
		if modulesOnly {
			continue
		}
		for _, c := range m.SlashCommands {
			var tags []string
			if c.OwnerOnly {
				tags = append(tags, "owner")
			}
			if c.Permission != 0 {
				tags = append(tags, "staff")
			}
			if c.Ephemeral {
				tags = append(tags, "ephemeral")
			}
			line := fmt.Sprintf("    /%-14s %s", c.Name, c.Description)
			if len(tags) > 0 {
				line += " [" + strings.Join(tags, ", ") + "]"
			}
			fmt.Fprintln(w, line)
		}
	}
	if shown == 0 {
		return fmt.Errorf("module %q not found", filter)
	}
	return nil
}
