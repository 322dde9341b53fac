package commands

import (
	"errors"
	"fmt"

	"PixBot/assistant"
	"PixBot/games"
	"PixBot/giveaway"
	"PixBot/ledger"
	"PixBot/rewards"
	"PixBot/treasure"
	"PixBot/utils"
	"PixBot/vip"

	log "github.com/sirupsen/logrus"
)

var (
	ErrGuildOnly         = errors.New("this command can only be used in a server")
	ErrOwnerOnly         = errors.New("only the bot owner can use this command")
	ErrMissingPermission = errors.New("you don't have permission to use this command")
)

// GenericError is shown when a handler fails for a reason the user cannot fix.
const GenericError = "An error occurred. Please try again."

// UserMessage turns an expected domain error into a reply. Anything else is
// logged and answered with GenericError.
func UserMessage(err error) string {
	var cooldown *rewards.CooldownError
	switch {
	case errors.As(err, &cooldown):
		return fmt.Sprintf("⏳ You already claimed your %s. Come back in %s.", cooldown.Kind, utils.FormatDuration(cooldown.Remaining))
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "💸 You don't have enough PixCoins for that."
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "The amount must be greater than zero."
	case errors.Is(err, ledger.ErrSameAccount):
		return "You can't send PixCoins to yourself."
	case errors.Is(err, vip.ErrNotSubscribed):
		return "You don't have an active VIP subscription."
	case errors.Is(err, vip.ErrInvalidTier):
		return "The VIP tier must be between 1 and 4."
	case errors.Is(err, vip.ErrSameUser):
		return "You can't transfer your VIP to yourself."
	case errors.Is(err, games.ErrInvalidChoice),
		errors.Is(err, games.ErrInvalidPosition),
		errors.Is(err, games.ErrInvalidMines),
		errors.Is(err, games.ErrUnknownCategory):
		return "Invalid play: " + err.Error() + "."
	case errors.Is(err, treasure.ErrWrongCode):
		return "❌ That is not the treasure code. Keep following the clues!"
	case errors.Is(err, treasure.ErrEventClosed):
		return "🏴‍☠️ The treasure has already been found by every winner."
	case errors.Is(err, giveaway.ErrInvalid):
		return fmt.Sprintf("Giveaways need a prize of up to %d characters, 1 to %d winners and at most 7 days.", giveaway.MaxPrizeLength, giveaway.MaxWinners)
	case errors.Is(err, giveaway.ErrNotFound):
		return "❌ No giveaway with that ID."
	case errors.Is(err, giveaway.ErrEnded):
		return "⛔ That giveaway has already ended."
	case errors.Is(err, giveaway.ErrRunning):
		return "⏳ That giveaway is still running. End it first."
	case errors.Is(err, giveaway.ErrAlreadyEntered):
		return "❌ You are already taking part!"
	case errors.Is(err, giveaway.ErrNoEntrants):
		return "❌ There is nobody left to draw."
	case errors.Is(err, assistant.ErrEmptyPrompt):
		return "The persona prompt can't be empty."
	case errors.Is(err, ErrGuildOnly), errors.Is(err, ErrOwnerOnly), errors.Is(err, ErrMissingPermission):
		return "🚫 " + capitalize(err.Error()) + "."
	}
	log.WithError(err).Error("Command failed")
	return GenericError
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
