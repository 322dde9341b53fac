package gamescmd

import (
	"PixBot/commands"
	"PixBot/games"

	"github.com/bwmarrin/discordgo"
)

func init() {
	module := &commands.ModuleInfo{
		Name:        "Games",
		Description: "Stake games, treasure hunts, the quiz and other fun commands",
		Version:     "2.0.0",
		Author:      "Bot Team",
		Category:    "Fun",
		Config: map[string]interface{}{
			"quiz_answer_timeout": quizAnswerTimeout.String(),
			"quiz_round_pause":    quizRoundPause.String(),
		},
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "flip",
				Description: "🎲 Bet on heads or tails",
				Options: []*discordgo.ApplicationCommandOption{
					commands.StringOption("choice", "Heads or tails", true, "heads", "tails"),
					commands.IntOption("stake", "PixCoins to bet", true, 1, 0),
				},
				Handler: Flip,
			},
			{
				Name:        "mines",
				Description: "💣 Pick a square on a 4x4 board and dodge the mines",
				Options: []*discordgo.ApplicationCommandOption{
					commands.IntOption("position", "Square to open, 1 to 16", true, 1, games.BoardSize),
					commands.IntOption("mines", "How many mines, 1 to 15", true, 1, games.MaxMines),
					commands.IntOption("stake", "PixCoins to bet", true, 1, 0),
				},
				Handler: Mines,
			},
			{
				Name:        "invest",
				Description: "📈 Invest PixCoins and hope for the best",
				Options:     []*discordgo.ApplicationCommandOption{commands.IntOption("amount", "PixCoins to invest", true, 1, 0)},
				Handler:     Invest,
			},
			{
				Name:        "hunt",
				Description: "🗺️ Go treasure hunting (every 6 hours)",
				Handler:     Hunt,
			},
			{
				Name:        "quiz",
				Description: "🧠 Multiple choice quiz with PixCoin rewards",
				Options: []*discordgo.ApplicationCommandOption{
					commands.StringOption("category", "Question category", true, games.Categories()...),
					commands.IntOption("rounds", "Number of rounds, 1 to 20", true, games.MinRounds, games.MaxRounds),
				},
				GuildOnly: true,
				Handler:   Quiz,
			},
			{
				Name:        "dice",
				Description: "🎲 Roll a die",
				Handler:     Dice,
			},
			{
				Name:        "8ball",
				Description: "🎱 Ask the magic ball",
				Options:     []*discordgo.ApplicationCommandOption{commands.StringOption("question", "Your question", true)},
				Handler:     EightBall,
			},
			{
				Name:        "ship",
				Description: "💞 How compatible are two users?",
				Options: []*discordgo.ApplicationCommandOption{
					commands.UserOption("user1", "First user", true),
					commands.UserOption("user2", "Second user", true),
				},
				Handler: Ship,
			},
		},
	}

	commands.RegisterModule(module)
}
