package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"PixBot/models"
	"PixBot/testutil"
	"PixBot/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	calls [][]Message
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, messages []Message) (string, error) {
	f.calls = append(f.calls, messages)
	if f.err != nil {
		return "", f.err
	}
	if f.reply != "" {
		return f.reply, nil
	}
	return fmt.Sprintf("reply %d", len(f.calls)), nil
}

func (f *fakeCompleter) last() []Message {
	return f.calls[len(f.calls)-1]
}

func TestHistoryNeverExceedsLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fc := &fakeCompleter{}
	a := New(db, fc, nil)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := a.Ask(ctx, "u1", fmt.Sprintf("message %d", i))
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.ConversationMemory{}).Where("user_id = ?", "u1").Count(&count).Error)
		assert.LessOrEqual(t, count, int64(HistoryLimit))
	}

	history, err := a.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, HistoryLimit)
	assert.Equal(t, "message 7", history[0].Content)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "reply 10", history[5].Content)
	assert.Equal(t, RoleAssistant, history[5].Role)
}

func TestAskSendsPersonaHistoryAndMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fc := &fakeCompleter{}
	a := New(db, fc, nil)
	ctx := context.Background()

	_, err := a.Ask(ctx, "u1", "hello")
	require.NoError(t, err)
	msgs := fc.last()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: RoleSystem, Content: DefaultPersona}, msgs[0])
	assert.Equal(t, Message{Role: RoleUser, Content: "hello"}, msgs[1])

	_, err = a.Ask(ctx, "u1", "  ")
	require.NoError(t, err)
	msgs = fc.last()
	require.Len(t, msgs, 4)
	assert.Equal(t, "hello", msgs[1].Content)
	assert.Equal(t, "reply 1", msgs[2].Content)
	assert.Equal(t, Greeting, msgs[3].Content)
}

func TestHistoryIsPerUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fc := &fakeCompleter{}
	a := New(db, fc, nil)
	ctx := context.Background()

	_, err := a.Ask(ctx, "u1", "one")
	require.NoError(t, err)
	_, err = a.Ask(ctx, "u2", "two")
	require.NoError(t, err)

	assert.Len(t, fc.last(), 2)
	h, err := a.History(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, h, 2)
}

func TestFailureReturnsApologyAndIsNotRemembered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fc := &fakeCompleter{err: errors.New("boom")}
	a := New(db, fc, nil)
	ctx := context.Background()

	assert.Equal(t, Apology, a.Reply(ctx, "u1", "hi"))
	h, err := a.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestDisabledAssistant(t *testing.T) {
	a := New(testutil.SetupTestDB(t), nil, nil)
	_, err := a.Ask(context.Background(), "u1", "hi")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Equal(t, Apology, a.Reply(context.Background(), "u1", "hi"))
}

func TestReplyIsTruncated(t *testing.T) {
	fc := &fakeCompleter{reply: strings.Repeat("é", utils.MessageLimit+50)}
	a := New(testutil.SetupTestDB(t), fc, nil)

	reply := a.Reply(context.Background(), "u1", "talk a lot")
	assert.Equal(t, utils.MessageLimit, len([]rune(reply)))
}

func TestRateLimit(t *testing.T) {
	fc := &fakeCompleter{}
	a := New(testutil.SetupTestDB(t), fc, utils.NewRateLimiter(2, time.Minute))
	ctx := context.Background()

	_, err := a.Ask(ctx, "u1", "a")
	require.NoError(t, err)
	_, err = a.Ask(ctx, "u1", "b")
	require.NoError(t, err)
	_, err = a.Ask(ctx, "u1", "c")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, fc.calls, 2)
}

func TestPersonaOverride(t *testing.T) {
	fc := &fakeCompleter{}
	a := New(testutil.SetupTestDB(t), fc, nil)
	ctx := context.Background()

	assert.ErrorIs(t, a.SetPersona(ctx, "u1", "   "), ErrEmptyPrompt)
	require.NoError(t, a.SetPersona(ctx, "u1", "You are a pirate."))
	require.NoError(t, a.SetPersona(ctx, "u1", "You are a grumpy pirate."))

	_, err := a.Ask(ctx, "u1", "ahoy")
	require.NoError(t, err)
	assert.Equal(t, "You are a grumpy pirate.", fc.last()[0].Content)

	require.NoError(t, a.ResetPersona(ctx, "u1"))
	p, err := a.Persona(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, DefaultPersona, p)
}

func TestForget(t *testing.T) {
	fc := &fakeCompleter{}
	a := New(testutil.SetupTestDB(t), fc, nil)
	ctx := context.Background()

	_, err := a.Ask(ctx, "u1", "remember me")
	require.NoError(t, err)
	require.NoError(t, a.Forget(ctx, "u1"))

	h, err := a.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, h)
}
