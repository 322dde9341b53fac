package gamescmd

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/games"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	quizAnswerTimeout = 30 * time.Second
	quizRoundPause    = 15 * time.Second
)

// running holds channelID:userID keys of quizzes in progress.
var running sync.Map

// quizChannel is the chat surface a quiz runs on.
type quizChannel interface {
	Send(content string) error
	// Await returns the player's next message, or false on timeout.
	Await(timeout time.Duration) (*discordgo.Message, bool)
	React(m *discordgo.Message, emoji string)
}

type sessionChannel struct {
	s         *discordgo.Session
	channelID string
	userID    string
}

func (c sessionChannel) Send(content string) error {
	_, err := c.s.ChannelMessageSend(c.channelID, content)
	return err
}

func (c sessionChannel) Await(timeout time.Duration) (*discordgo.Message, bool) {
	answers := make(chan *discordgo.Message, 1)
	remove := c.s.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.ChannelID != c.channelID || m.Author == nil || m.Author.ID != c.userID {
			return
		}
		select {
		case answers <- m.Message:
		default:
		}
	})
	defer remove()

	select {
	case m := <-answers:
		return m, true
	case <-time.After(timeout):
		return nil, false
	}
}

func (c sessionChannel) React(m *discordgo.Message, emoji string) {
	if err := c.s.MessageReactionAdd(m.ChannelID, m.ID, emoji); err != nil {
		log.WithError(err).Debug("Failed to react to quiz answer")
	}
}

func Quiz(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	category := opts.String("category", "")
	rounds := int(opts.Int("rounds", 1))
	userID := commands.CallerID(i)

	if _, err := b.Games.PickQuestion(category); err != nil {
		commands.Fail(s, i, err)
		return
	}

	key := i.ChannelID + ":" + userID
	if _, busy := running.LoadOrStore(key, struct{}{}); busy {
		commands.RespondEphemeral(s, i, "You already have a quiz running in this channel.")
		return
	}
	defer running.Delete(key)

	commands.Respond(s, i, fmt.Sprintf("🧠 Starting a **%s** quiz with **%d** round(s) for <@%s>. Answer with A, B, C, D or the option text!", category, rounds, userID))

	ch := sessionChannel{s: s, channelID: i.ChannelID, userID: userID}
	total, err := runQuiz(context.Background(), b.Games, ch, userID, category, rounds, time.Sleep)
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "category": category}).WithError(err).Error("Quiz failed")
		_ = ch.Send(commands.UserMessage(err))
		return
	}
	_ = ch.Send(fmt.Sprintf("🏁 **Quiz finished!**\n💰 Total won: **%s PixCoins**", utils.FormatCoins(total)))
}

// runQuiz plays the rounds and returns the PixCoins won.
func runQuiz(ctx context.Context, g *games.Resolver, ch quizChannel, userID, category string, rounds int, sleep func(time.Duration)) (int64, error) {
	if rounds < games.MinRounds || rounds > games.MaxRounds {
		rounds = games.MinRounds
	}

	var total int64
	for round := 1; round <= rounds; round++ {
		q, err := g.PickQuestion(category)
		if err != nil {
			return total, err
		}
		if err := ch.Send(questionMessage(q, category, round, rounds)); err != nil {
			return total, err
		}

		answer, ok := ch.Await(quizAnswerTimeout)
		switch {
		case !ok:
			_ = ch.Send("⏳ Time's up!\n" + correctLine(q))
		case q.Check(answer.Content):
			prize, err := g.QuizReward(ctx, userID)
			if err != nil {
				return total, err
			}
			total += prize
			ch.React(answer, "⭐")
			_ = ch.Send(fmt.Sprintf("✅ **Correct!** ⭐ +%s PixCoins", utils.FormatCoins(prize)))
		default:
			_ = ch.Send("❌ Wrong!\n" + correctLine(q))
		}

		if round < rounds {
			_ = ch.Send(fmt.Sprintf("⏳ Next question in **%d seconds**...", int(quizRoundPause.Seconds())))
			sleep(quizRoundPause)
		}
	}
	return total, nil
}

func questionMessage(q games.Question, category string, round, rounds int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧠 **QUIZ — %s**\n🔁 Round **%d/%d**\n\n❓ %s\n\n", strings.ToUpper(category), round, rounds, q.Prompt)
	for idx, opt := range q.Options {
		fmt.Fprintf(&sb, "**%s)** %s\n", games.Letters[idx], opt)
	}
	return sb.String()
}

func correctLine(q games.Question) string {
	return fmt.Sprintf("✅ Correct answer: **%s) %s**", q.Answer, q.Correct())
}
