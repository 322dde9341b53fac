package vip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PixBot/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotSubscribed = errors.New("user has no active subscription")
	ErrInvalidTier   = errors.New("tier must be between 1 and 4")
	ErrSameUser      = errors.New("cannot transfer a subscription to yourself")
)

const (
	Bronze   = 1
	Gold     = 2
	Diamond  = 3
	Ultimate = 4
)

// percents are the payout multipliers per tier, in percent.
var percents = map[int]int64{
	Bronze:   120,
	Gold:     140,
	Diamond:  170,
	Ultimate: 200,
}

var names = map[int]string{
	Bronze:   "Bronze",
	Gold:     "Gold",
	Diamond:  "Diamond",
	Ultimate: "Ultimate",
}

// PercentFor returns the tier's multiplier in percent, 100 for no tier.
func PercentFor(tier int) int64 {
	if p, ok := percents[tier]; ok {
		return p
	}
	return 100
}

func MultiplierFor(tier int) float64 {
	return float64(PercentFor(tier)) / 100
}

func Name(tier int) string {
	if n, ok := names[tier]; ok {
		return n
	}
	return "None"
}

// Apply scales amount by percent, truncating toward zero.
func Apply(amount, percent int64) int64 {
	return amount * percent / 100
}

// Registry tracks subscriptions. Expired rows are removed when they are
// next looked at, never by a sweep.
type Registry struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{db: db, now: now}
}

// Get returns the active subscription or nil.
func (r *Registry) Get(ctx context.Context, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).First(&sub, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription for %s: %w", userID, err)
	}
	if sub.ExpiresAt == nil || r.now().Before(*sub.ExpiresAt) {
		return &sub, nil
	}
	if err := r.db.WithContext(ctx).Delete(&models.Subscription{}, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to purge expired subscription for %s: %w", userID, err)
	}
	return nil, nil
}

func (r *Registry) IsActive(ctx context.Context, userID string) (bool, error) {
	sub, err := r.Get(ctx, userID)
	return sub != nil, err
}

// Tier returns the active tier, or 0.
func (r *Registry) Tier(ctx context.Context, userID string) (int, error) {
	sub, err := r.Get(ctx, userID)
	if err != nil || sub == nil {
		return 0, err
	}
	return sub.Tier, nil
}

func (r *Registry) Percent(ctx context.Context, userID string) (int64, error) {
	tier, err := r.Tier(ctx, userID)
	if err != nil {
		return 100, err
	}
	return PercentFor(tier), nil
}

func (r *Registry) Multiplier(ctx context.Context, userID string) (float64, error) {
	tier, err := r.Tier(ctx, userID)
	if err != nil {
		return 1.0, err
	}
	return MultiplierFor(tier), nil
}

// CanCreateServer reports whether the user's tier unlocks server creation.
func (r *Registry) CanCreateServer(ctx context.Context, userID string) (bool, error) {
	tier, err := r.Tier(ctx, userID)
	return tier >= Diamond, err
}

// Grant replaces any existing subscription. days <= 0 never expires.
func (r *Registry) Grant(ctx context.Context, userID string, tier int, days int) (*models.Subscription, error) {
	return r.grant(r.db.WithContext(ctx), userID, tier, days)
}

// GrantTx is Grant inside an existing transaction.
func (r *Registry) GrantTx(tx *gorm.DB, userID string, tier int, days int) (*models.Subscription, error) {
	return r.grant(tx, userID, tier, days)
}

func (r *Registry) grant(db *gorm.DB, userID string, tier int, days int) (*models.Subscription, error) {
	if _, ok := percents[tier]; !ok {
		return nil, ErrInvalidTier
	}
	sub := models.Subscription{UserID: userID, Tier: tier, CreatedAt: r.now()}
	if days > 0 {
		exp := r.now().Add(time.Duration(days) * 24 * time.Hour)
		sub.ExpiresAt = &exp
	}
	if err := upsert(db, &sub); err != nil {
		return nil, fmt.Errorf("failed to grant subscription to %s: %w", userID, err)
	}
	return &sub, nil
}

func upsert(db *gorm.DB, sub *models.Subscription) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tier", "expires_at", "created_at"}),
	}).Create(sub).Error
}

// Transfer moves an active subscription to another user, replacing theirs.
func (r *Registry) Transfer(ctx context.Context, fromID, toID string) (*models.Subscription, error) {
	if fromID == toID {
		return nil, ErrSameUser
	}
	sub, err := r.Get(ctx, fromID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotSubscribed
	}

	moved := models.Subscription{UserID: toID, Tier: sub.Tier, ExpiresAt: sub.ExpiresAt, CreatedAt: r.now()}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Subscription{}, "user_id = ?", fromID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotSubscribed
		}
		return upsert(tx, &moved)
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}
