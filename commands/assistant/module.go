package assistantcmd

import (
	"PixBot/assistant"
	"PixBot/commands"

	"github.com/bwmarrin/discordgo"
)

func init() {
	persona := commands.StringOption("prompt", "How the assistant should behave with you", true)
	persona.MaxLength = assistant.MaxPersonaLength

	module := &commands.ModuleInfo{
		Name:        "Assistant",
		Description: "Chat with Mari, the server companion. Mention the bot or DM it to talk",
		Version:     "1.0.0",
		Author:      "Bot Team",
		Category:    "Fun",
		Config: map[string]interface{}{
			"history_limit": assistant.HistoryLimit,
		},
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "ask",
				Description: "💬 Ask Mari something",
				Options:     []*discordgo.ApplicationCommandOption{commands.StringOption("message", "What to say", true)},
				Handler:     Ask,
			},
			{
				Name:        "persona",
				Description: "🧠 Set the assistant's personality for you",
				Options:     []*discordgo.ApplicationCommandOption{persona},
				Ephemeral:   true,
				Handler:     SetPersona,
			},
			{
				Name:        "persona_reset",
				Description: "🧠 Go back to the default personality",
				Ephemeral:   true,
				Handler:     ResetPersona,
			},
			{
				Name:        "forget",
				Description: "🧹 Clear your conversation history",
				Ephemeral:   true,
				Handler:     Forget,
			},
		},
	}

	commands.RegisterModule(module)
}
