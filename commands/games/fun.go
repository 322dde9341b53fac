package gamescmd

import (
	"fmt"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
)

var eightBallAnswers = []string{"Yes ✅", "No ❌", "Maybe 🤔", "Definitely 🔥", "Ask again later ⏳"}

func Dice(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	commands.Respond(s, i, fmt.Sprintf("🎲 You rolled **%d**!", rollDie(utils.DefaultRand)))
}

func rollDie(r utils.Rand) int64 {
	return utils.Between(r, 1, 6)
}

func EightBall(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	question := commands.OptionMap(i).String("question", "")
	commands.Respond(s, i, eightBall(utils.DefaultRand, question))
}

func eightBall(r utils.Rand, question string) string {
	answer := eightBallAnswers[r.Intn(len(eightBallAnswers))]
	return fmt.Sprintf("🎱 **Question:** %s\n**Answer:** %s", question, answer)
}

func Ship(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	u1, u2 := opts.User("user1"), opts.User("user2")
	if u1 == nil || u2 == nil {
		commands.RespondEphemeral(s, i, "Pick two users.")
		return
	}
	commands.Respond(s, i, shipMessage(utils.DefaultRand, u1, u2))
}

func shipMessage(r utils.Rand, u1, u2 *discordgo.User) string {
	return fmt.Sprintf("💞 **<@%s> + <@%s>**\n❤️ Compatibility: **%d%%**", u1.ID, u2.ID, utils.Between(r, 0, 100))
}
