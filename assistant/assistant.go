package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"PixBot/models"
	"PixBot/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRateLimited = errors.New("too many messages, slow down")
	ErrDisabled    = errors.New("assistant is not configured")
	ErrEmptyPrompt = errors.New("persona prompt is empty")
)

const (
	// HistoryLimit is the number of turns kept per user.
	HistoryLimit     = 6
	MaxPersonaLength = 1000

	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	DefaultPersona = "You are Mari, a cheerful companion living in a Discord server. " +
		"You are warm, playful and a little teasing, you use casual language and the occasional emoji, " +
		"and you keep answers short enough to read in chat. You know the server runs on PixCoins " +
		"and you like to encourage people to play and chat. Never claim to be a human."

	Apology  = "Sorry, my head is spinning right now 😵 Try again in a moment!"
	Greeting = "Hi!"
)

// Assistant relays chat to the completion API and keeps a short per-user transcript.
type Assistant struct {
	db        *gorm.DB
	completer Completer
	limiter   *utils.RateLimiter
}

// New builds an assistant. A nil completer disables replies; a nil limiter disables rate limiting.
func New(db *gorm.DB, completer Completer, limiter *utils.RateLimiter) *Assistant {
	return &Assistant{db: db, completer: completer, limiter: limiter}
}

// History returns the user's remembered turns, oldest first.
func (a *Assistant) History(ctx context.Context, userID string) ([]models.ConversationMemory, error) {
	var rows []models.ConversationMemory
	err := a.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id DESC").Limit(HistoryLimit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", userID, err)
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// Persona returns the user's system prompt, falling back to the default.
func (a *Assistant) Persona(ctx context.Context, userID string) (string, error) {
	var p models.Persona
	err := a.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultPersona, nil
	}
	if err != nil {
		return DefaultPersona, err
	}
	return p.Prompt, nil
}

func (a *Assistant) SetPersona(ctx context.Context, userID, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}
	p := models.Persona{UserID: userID, Prompt: utils.Truncate(prompt, MaxPersonaLength)}
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"prompt", "updated_at"}),
	}).Create(&p).Error
}

func (a *Assistant) ResetPersona(ctx context.Context, userID string) error {
	return a.db.WithContext(ctx).Delete(&models.Persona{}, "user_id = ?", userID).Error
}

// Forget drops the user's transcript.
func (a *Assistant) Forget(ctx context.Context, userID string) error {
	return a.db.WithContext(ctx).Delete(&models.ConversationMemory{}, "user_id = ?", userID).Error
}

// Ask sends text with the user's persona and history and returns the reply.
// Turns are only remembered once the completion succeeds.
func (a *Assistant) Ask(ctx context.Context, userID, text string) (string, error) {
	if a.completer == nil {
		return "", ErrDisabled
	}
	if a.limiter != nil && !a.limiter.Allow(userID, "assistant") {
		return "", ErrRateLimited
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = Greeting
	}

	persona, err := a.Persona(ctx, userID)
	if err != nil {
		return "", err
	}
	history, err := a.History(ctx, userID)
	if err != nil {
		return "", err
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: persona})
	for _, h := range history {
		messages = append(messages, Message{Role: h.Role, Content: h.Content})
	}
	messages = append(messages, Message{Role: RoleUser, Content: text})

	reply, err := a.completer.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	reply = utils.Truncate(reply, utils.MessageLimit)

	if err := a.remember(ctx, userID, text, reply); err != nil {
		log.WithField("user_id", userID).WithError(err).Error("Failed to store assistant memory")
	}
	return reply, nil
}

// Reply is Ask with every failure turned into the apology.
func (a *Assistant) Reply(ctx context.Context, userID, text string) string {
	reply, err := a.Ask(ctx, userID, text)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Warn("Assistant reply failed")
		return Apology
	}
	if reply == "" {
		return Apology
	}
	return reply
}

// remember stores the exchange and prunes the transcript to HistoryLimit.
func (a *Assistant) remember(ctx context.Context, userID, question, answer string) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		turns := []models.ConversationMemory{
			{UserID: userID, Role: RoleUser, Content: question},
			{UserID: userID, Role: RoleAssistant, Content: answer},
		}
		for i := range turns {
			if err := tx.Create(&turns[i]).Error; err != nil {
				return err
			}
		}

		var cutoff []uint64
		err := tx.Model(&models.ConversationMemory{}).Where("user_id = ?", userID).
			Order("id DESC").Offset(HistoryLimit).Limit(1).Pluck("id", &cutoff).Error
		if err != nil || len(cutoff) == 0 {
			return err
		}
		return tx.Where("user_id = ? AND id <= ?", userID, cutoff[0]).
			Delete(&models.ConversationMemory{}).Error
	})
}
