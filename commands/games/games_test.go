package gamescmd

import (
	"context"
	"testing"
	"time"

	"PixBot/commands"
	"PixBot/games"
	"PixBot/ledger"
	"PixBot/rewards"
	"PixBot/testutil"
	"PixBot/vip"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroRand struct{}

func (zeroRand) Intn(int) int     { return 0 }
func (zeroRand) Float64() float64 { return 0 }
func (zeroRand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

type fakeChannel struct {
	answers []string // "" means the player stays silent
	sent    []string
	reacted []string
}

func (f *fakeChannel) Send(content string) error {
	f.sent = append(f.sent, content)
	return nil
}

func (f *fakeChannel) Await(time.Duration) (*discordgo.Message, bool) {
	a := f.answers[0]
	f.answers = f.answers[1:]
	if a == "" {
		return nil, false
	}
	return &discordgo.Message{ID: "m", Content: a}, true
}

func (f *fakeChannel) React(m *discordgo.Message, emoji string) {
	f.reacted = append(f.reacted, emoji)
}

func TestCommandTable(t *testing.T) {
	mines, ok := commands.GetSlashCommand("mines")
	require.True(t, ok)
	require.Len(t, mines.Options, 3)
	assert.Equal(t, float64(games.BoardSize), mines.Options[0].MaxValue)
	assert.Equal(t, float64(games.MaxMines), mines.Options[1].MaxValue)

	quiz, ok := commands.GetSlashCommand("quiz")
	require.True(t, ok)
	require.Len(t, quiz.Options[0].Choices, 4)
	assert.Equal(t, float64(20), quiz.Options[1].MaxValue)

	for _, name := range []string{"flip", "invest", "hunt", "dice", "8ball", "ship"} {
		_, ok := commands.GetSlashCommand(name)
		assert.True(t, ok, name)
	}
}

func TestRunQuiz(t *testing.T) {
	db := testutil.SetupTestDB(t)
	l := ledger.New(db)
	g := games.New(db, l, vip.New(db, nil), zeroRand{})
	ctx := context.Background()

	q, err := g.PickQuestion("classic")
	require.NoError(t, err)

	ch := &fakeChannel{answers: []string{q.Answer, "", "definitely not it"}}
	var slept []time.Duration
	total, err := runQuiz(ctx, g, ch, "u1", "classic", 3, func(d time.Duration) { slept = append(slept, d) })
	require.NoError(t, err)

	assert.Equal(t, int64(400), total)
	assert.Equal(t, []string{"⭐"}, ch.reacted)
	assert.Equal(t, []time.Duration{quizRoundPause, quizRoundPause}, slept)
	assert.Contains(t, ch.sent[0], "Round **1/3**")
	assert.Contains(t, ch.sent[0], "**A)** "+q.Options[0])
	assert.Contains(t, ch.sent, "⏳ Time's up!\n"+correctLine(q))
	assert.Contains(t, ch.sent, "❌ Wrong!\n"+correctLine(q))

	acc, err := l.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(400), acc.Coins)
}

func TestRunQuizAcceptsOptionText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	g := games.New(db, ledger.New(db), vip.New(db, nil), zeroRand{})
	q, _ := g.PickQuestion("math")

	ch := &fakeChannel{answers: []string{q.Correct()}}
	total, err := runQuiz(context.Background(), g, ch, "u1", "math", 1, func(time.Duration) { t.Fatal("no pause after the last round") })
	require.NoError(t, err)
	assert.Equal(t, int64(400), total)
}

func TestRunQuizUnknownCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	g := games.New(db, ledger.New(db), vip.New(db, nil), zeroRand{})

	_, err := runQuiz(context.Background(), g, &fakeChannel{}, "u1", "history", 1, func(time.Duration) {})
	assert.ErrorIs(t, err, games.ErrUnknownCategory)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "🎉 It landed on **heads**!\nYou won **200 PixCoins**!", flipMessage(games.FlipResult{Side: "heads", Won: true, Payout: 200}, 100))
	assert.Equal(t, "😢 It landed on **tails**...\nYou lost **100 PixCoins**.", flipMessage(games.FlipResult{Side: "tails"}, 100))

	assert.Contains(t, investMessage(games.InvestResult{Success: true, Amount: 1400}), "1,400")
	assert.Contains(t, investMessage(games.InvestResult{Amount: 300}), "lost **300")

	assert.Contains(t, huntMessage(rewards.HuntResult{Outcome: rewards.BigFind, Amount: 1000}), "+1,000")
	assert.Contains(t, huntMessage(rewards.HuntResult{Outcome: rewards.Trap, Amount: 250}), "lost **250")
}

func TestMinesEmbed(t *testing.T) {
	win := minesEmbed(games.MinesResult{Position: 1, Mines: []int{2, 3, 4, 5, 6}, Multiplier: 2.75, Payout: 275}, 100)
	assert.Equal(t, "💎 Victory!", win.Title)
	assert.Equal(t, "You won **275 PixCoins**", win.Fields[0].Value)
	assert.Equal(t, "5", win.Fields[1].Value)
	assert.Equal(t, "x2.75", win.Fields[2].Value)

	loss := minesEmbed(games.MinesResult{Position: 2, Mines: []int{2}, Hit: true, Multiplier: 1.35}, 100)
	assert.Equal(t, "💥 BOOM!", loss.Title)
	assert.Equal(t, "You lost **100 PixCoins**", loss.Fields[0].Value)
}

func TestFun(t *testing.T) {
	assert.Equal(t, int64(1), rollDie(zeroRand{}))
	assert.Equal(t, "🎱 **Question:** Will it rain?\n**Answer:** Yes ✅", eightBall(zeroRand{}, "Will it rain?"))
	assert.Equal(t, "💞 **<@a> + <@b>**\n❤️ Compatibility: **0%**", shipMessage(zeroRand{}, &discordgo.User{ID: "a"}, &discordgo.User{ID: "b"}))
}
