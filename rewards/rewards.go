package rewards

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PixBot/ledger"
	"PixBot/models"
	"PixBot/utils"
	"PixBot/vip"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Kind string

const (
	Daily  Kind = "daily"
	Weekly Kind = "weekly"
	Work   Kind = "work"
	Hunt   Kind = "hunt"
)

// MessageCoins is the passive reward for a guild message before the VIP bonus.
const MessageCoins = 2

var ErrUnknownKind = errors.New("unknown reward kind")

type rule struct {
	column    string
	threshold time.Duration
	min, max  int64
}

var rules = map[Kind]rule{
	Daily:  {column: "last_daily", threshold: 24 * time.Hour, min: 500, max: 500},
	Weekly: {column: "last_weekly", threshold: 7 * 24 * time.Hour, min: 2500, max: 2500},
	Work:   {column: "last_work", threshold: time.Hour, min: 300, max: 700},
	Hunt:   {column: "last_hunt", threshold: 6 * time.Hour},
}

// Threshold returns the cooldown between two claims of kind.
func Threshold(kind Kind) time.Duration {
	return rules[kind].threshold
}

// CooldownError rejects a claim made before the cooldown elapsed.
type CooldownError struct {
	Kind      Kind
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s is on cooldown for another %s", e.Kind, e.Remaining)
}

type Result struct {
	Kind    Kind
	Base    int64
	Percent int64
	Amount  int64
}

// Engine pays periodic rewards. Each claim's cooldown check, timestamp write
// and credit happen in one transaction.
type Engine struct {
	db     *gorm.DB
	ledger *ledger.Ledger
	vip    *vip.Registry
	now    func() time.Time
	rand   utils.Rand
}

func New(db *gorm.DB, l *ledger.Ledger, v *vip.Registry, now func() time.Time, r utils.Rand) *Engine {
	if now == nil {
		now = time.Now
	}
	if r == nil {
		r = utils.DefaultRand
	}
	return &Engine{db: db, ledger: l, vip: v, now: now, rand: r}
}

// Claim pays the daily, weekly or work reward if its cooldown has elapsed.
func (e *Engine) Claim(ctx context.Context, userID string, kind Kind) (Result, error) {
	r, ok := rules[kind]
	if !ok || kind == Hunt {
		return Result{}, ErrUnknownKind
	}

	percent, err := e.vip.Percent(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	res := Result{Kind: kind, Base: utils.Between(e.rand, r.min, r.max), Percent: percent}
	res.Amount = vip.Apply(res.Base, percent)

	now := e.now().UTC()
	err = e.ledger.Transaction(ctx, func(tx *gorm.DB, l *ledger.Ledger) error {
		if err := l.Ensure(ctx, userID); err != nil {
			return err
		}
		stamped, err := stamp(tx.Model(&models.Account{}), userID, r, now)
		if err != nil {
			return err
		}
		if !stamped {
			return e.cooldownError(ctx, tx, userID, kind, now)
		}
		return l.Credit(ctx, userID, res.Amount)
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// stamp sets the rule's timestamp to now only if the cooldown has elapsed.
func stamp(q *gorm.DB, userID string, r rule, now time.Time) (bool, error) {
	cutoff := now.Add(-r.threshold)
	res := q.Where("user_id = ?", userID).
		Where("("+r.column+" IS NULL OR "+r.column+" <= ?)", cutoff).
		Update(r.column, now)
	if res.Error != nil {
		return false, fmt.Errorf("failed to stamp %s for %s: %w", r.column, userID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (e *Engine) cooldownError(ctx context.Context, db *gorm.DB, userID string, kind Kind, now time.Time) error {
	last, err := lastClaim(ctx, db, userID, kind)
	if err != nil {
		return err
	}
	remaining := time.Duration(0)
	if last != nil {
		remaining = rules[kind].threshold - now.Sub(*last)
	}
	return &CooldownError{Kind: kind, Remaining: remaining}
}

func lastClaim(ctx context.Context, db *gorm.DB, userID string, kind Kind) (*time.Time, error) {
	if kind == Hunt {
		var hc models.HuntCooldown
		err := db.WithContext(ctx).First(&hc, "user_id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return hc.LastHunt, err
	}

	var acc models.Account
	err := db.WithContext(ctx).First(&acc, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	switch kind {
	case Daily:
		return acc.LastDaily, nil
	case Weekly:
		return acc.LastWeekly, nil
	case Work:
		return acc.LastWork, nil
	}
	return nil, ErrUnknownKind
}

// Remaining reports how long until kind can be claimed again. Zero means now.
func (e *Engine) Remaining(ctx context.Context, userID string, kind Kind) (time.Duration, error) {
	r, ok := rules[kind]
	if !ok {
		return 0, ErrUnknownKind
	}
	last, err := lastClaim(ctx, e.db, userID, kind)
	if err != nil || last == nil {
		return 0, err
	}
	if wait := r.threshold - e.now().Sub(*last); wait > 0 {
		return wait, nil
	}
	return 0, nil
}

type HuntOutcome string

const (
	BigFind    HuntOutcome = "big"
	CommonFind HuntOutcome = "common"
	Trap       HuntOutcome = "trap"
)

type HuntResult struct {
	Outcome HuntOutcome
	// Amount is coins gained, or coins lost for a trap.
	Amount int64
}

// Hunt rolls a treasure hunt. The attempt is stamped whatever the outcome.
func (e *Engine) Hunt(ctx context.Context, userID string) (HuntResult, error) {
	percent, err := e.vip.Percent(ctx, userID)
	if err != nil {
		return HuntResult{}, err
	}

	var res HuntResult
	roll := e.rand.Float64()
	switch {
	case roll < 0.55:
		res = HuntResult{Outcome: BigFind, Amount: vip.Apply(utils.Between(e.rand, 800, 1500), percent)}
	case roll < 0.80:
		res = HuntResult{Outcome: CommonFind, Amount: vip.Apply(utils.Between(e.rand, 200, 600), percent)}
	default:
		res = HuntResult{Outcome: Trap, Amount: utils.Between(e.rand, 200, 500)}
	}

	now := e.now().UTC()
	err = e.ledger.Transaction(ctx, func(tx *gorm.DB, l *ledger.Ledger) error {
		row := models.HuntCooldown{UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
		stamped, err := stamp(tx.Model(&models.HuntCooldown{}), userID, rules[Hunt], now)
		if err != nil {
			return err
		}
		if !stamped {
			return e.cooldownError(ctx, tx, userID, Hunt, now)
		}
		if res.Outcome == Trap {
			taken, err := l.DebitUpTo(ctx, userID, res.Amount)
			res.Amount = taken
			return err
		}
		return l.Credit(ctx, userID, res.Amount)
	})
	if err != nil {
		return HuntResult{}, err
	}
	return res, nil
}

// MessageReward credits the passive coins and XP earned by one message.
func (e *Engine) MessageReward(ctx context.Context, userID string) (int64, error) {
	percent, err := e.vip.Percent(ctx, userID)
	if err != nil {
		return 0, err
	}
	coins := vip.Apply(MessageCoins, percent)
	err = e.ledger.Transaction(ctx, func(_ *gorm.DB, l *ledger.Ledger) error {
		if err := l.Credit(ctx, userID, coins); err != nil {
			return err
		}
		return l.AddXP(ctx, userID, ledger.XPPerMessage)
	})
	return coins, err
}
