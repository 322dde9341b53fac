package tasks

import (
	"context"
	"errors"
	"fmt"

	"PixBot/giveaway"
	"PixBot/ledger"
	"PixBot/treasure"
	"PixBot/utils"

	log "github.com/sirupsen/logrus"
)

const (
	InterestJob   = "interest"
	ClueJob       = "treasure-clue"
	OwnerGuardJob = "owner-guard"
	SweepJob      = "ratelimit-sweep"
	GiveawayJob   = "giveaways"
)

// Interest accrues bank interest on every account.
func Interest(l *ledger.Ledger, rate float64) JobFunc {
	return func(ctx context.Context) error {
		n, err := l.ApplyInterest(ctx, rate)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"accounts": n, "rate": rate}).Info("Applied bank interest")
		return nil
	}
}

// Broadcaster posts a message to the treasure channel of every guild.
type Broadcaster interface {
	Broadcast(ctx context.Context, channelName, content string) error
}

// FormatClue renders a clue announcement.
func FormatClue(c treasure.Clue) string {
	return fmt.Sprintf("🏴‍☠️ **TREASURE HUNT**\n🧩 Clue #%d:\n> %s", c.Number, c.Text)
}

// Clues emits the next treasure clue when the event allows it.
func Clues(event *treasure.Event, b Broadcaster) JobFunc {
	return func(ctx context.Context) error {
		clue, ok, err := event.NextClue(ctx)
		if err != nil || !ok {
			return err
		}
		log.WithField("clue", clue.Number).Info("Posting treasure clue")
		return b.Broadcast(ctx, treasure.ChannelName, FormatClue(clue))
	}
}

// Sweep forgets expired rate limit windows so idle users do not pile up.
func Sweep(rl *utils.RateLimiter) JobFunc {
	return func(ctx context.Context) error {
		rl.Sweep()
		return nil
	}
}

// GiveawayAnnouncer publishes a giveaway's draw.
type GiveawayAnnouncer interface {
	Announce(ctx context.Context, res giveaway.Result) error
}

// Giveaways draws every giveaway whose time is up. A giveaway ended by hand
// in the meantime is skipped.
func Giveaways(svc *giveaway.Service, a GiveawayAnnouncer) JobFunc {
	return func(ctx context.Context) error {
		due, err := svc.Due(ctx)
		if err != nil {
			return err
		}
		var errs []error
		for _, g := range due {
			res, err := svc.End(ctx, g.ID)
			if errors.Is(err, giveaway.ErrEnded) {
				continue
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("giveaway %d: %w", g.ID, err))
				continue
			}
			log.WithFields(log.Fields{"giveaway_id": g.ID, "winners": len(res.Winners)}).Info("Drew giveaway")
			if err := a.Announce(ctx, res); err != nil {
				errs = append(errs, fmt.Errorf("giveaway %d: %w", g.ID, err))
			}
		}
		return errors.Join(errs...)
	}
}
