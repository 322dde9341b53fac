package giveaway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"PixBot/models"
	"PixBot/utils"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("giveaway not found")
	ErrEnded          = errors.New("giveaway has already ended")
	ErrRunning        = errors.New("giveaway is still running")
	ErrAlreadyEntered = errors.New("already entered this giveaway")
	ErrNoEntrants     = errors.New("no eligible entrants left")
	ErrInvalid        = errors.New("invalid giveaway")
)

const (
	MaxDuration    = 7 * 24 * time.Hour
	MaxWinners     = 10
	MaxPrizeLength = 200
)

// Result is the outcome of a draw. Winners is empty when nobody entered.
type Result struct {
	Giveaway models.Giveaway
	Winners  []string
	Entrants int
}

// Service runs giveaways over the store. Entries are unique per user and
// ending a giveaway is a guarded flip, so a timed draw and a manual end
// can't both pick winners.
type Service struct {
	db   *gorm.DB
	now  func() time.Time
	rand utils.Rand
}

func New(db *gorm.DB, now func() time.Time, r utils.Rand) *Service {
	if now == nil {
		now = time.Now
	}
	if r == nil {
		r = utils.DefaultRand
	}
	return &Service{db: db, now: now, rand: r}
}

// Create opens a giveaway that ends after duration.
func (s *Service) Create(ctx context.Context, guildID, channelID, hostID, prize string, duration time.Duration, winners int) (models.Giveaway, error) {
	prize = strings.TrimSpace(prize)
	if prize == "" || len([]rune(prize)) > MaxPrizeLength ||
		duration <= 0 || duration > MaxDuration ||
		winners < 1 || winners > MaxWinners {
		return models.Giveaway{}, ErrInvalid
	}

	g := models.Giveaway{
		GuildID:   guildID,
		ChannelID: channelID,
		HostID:    hostID,
		Prize:     prize,
		Winners:   winners,
		EndsAt:    s.now().UTC().Add(duration),
	}
	if err := s.db.WithContext(ctx).Create(&g).Error; err != nil {
		return g, fmt.Errorf("failed to create giveaway: %w", err)
	}
	return g, nil
}

// AttachMessage records the announcement message so results can reply to it.
func (s *Service) AttachMessage(ctx context.Context, id uint, messageID string) error {
	return s.db.WithContext(ctx).Model(&models.Giveaway{}).Where("id = ?", id).
		Update("message_id", messageID).Error
}

func (s *Service) Get(ctx context.Context, id uint) (models.Giveaway, error) {
	return get(s.db.WithContext(ctx), id)
}

func get(tx *gorm.DB, id uint) (models.Giveaway, error) {
	var g models.Giveaway
	err := tx.First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return g, ErrNotFound
	}
	return g, err
}

// Enter adds userID to a running giveaway and returns the entrant count.
func (s *Service) Enter(ctx context.Context, id uint, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := get(tx, id)
		if err != nil {
			return err
		}
		if g.Ended || !s.now().Before(g.EndsAt) {
			return ErrEnded
		}
		err = tx.Create(&models.GiveawayEntry{GiveawayID: id, UserID: userID}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyEntered
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.GiveawayEntry{}).Where("giveaway_id = ?", id).Count(&count).Error
	})
	return count, err
}

// End closes the giveaway and draws up to its winner count. Only the first
// caller draws; later ones get ErrEnded.
func (s *Service) End(ctx context.Context, id uint) (Result, error) {
	var res Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flip := tx.Model(&models.Giveaway{}).Where("id = ? AND ended = ?", id, false).Update("ended", true)
		if flip.Error != nil {
			return flip.Error
		}
		g, err := get(tx, id)
		if err != nil {
			return err
		}
		if flip.RowsAffected == 0 {
			return ErrEnded
		}

		var entrants []string
		err = tx.Model(&models.GiveawayEntry{}).Where("giveaway_id = ?", id).
			Order("user_id").Pluck("user_id", &entrants).Error
		if err != nil {
			return err
		}
		res = Result{Giveaway: g, Entrants: len(entrants)}
		res.Winners, err = s.draw(tx, id, entrants, g.Winners)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// Reroll draws count new winners from entrants who have not won yet.
func (s *Service) Reroll(ctx context.Context, id uint, count int) ([]string, error) {
	if count < 1 || count > MaxWinners {
		return nil, ErrInvalid
	}
	var winners []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := get(tx, id)
		if err != nil {
			return err
		}
		if !g.Ended {
			return ErrRunning
		}

		var pool []string
		err = tx.Model(&models.GiveawayEntry{}).Where("giveaway_id = ? AND won = ?", id, false).
			Order("user_id").Pluck("user_id", &pool).Error
		if err != nil {
			return err
		}
		if len(pool) == 0 {
			return ErrNoEntrants
		}
		winners, err = s.draw(tx, id, pool, count)
		return err
	})
	return winners, err
}

// draw picks up to n distinct users from pool and marks them as winners.
func (s *Service) draw(tx *gorm.DB, id uint, pool []string, n int) ([]string, error) {
	n = min(n, len(pool))
	if n == 0 {
		return nil, nil
	}
	winners := make([]string, 0, n)
	for _, idx := range s.rand.Perm(len(pool))[:n] {
		winners = append(winners, pool[idx])
	}
	err := tx.Model(&models.GiveawayEntry{}).Where("giveaway_id = ? AND user_id IN ?", id, winners).
		Update("won", true).Error
	if err != nil {
		return nil, fmt.Errorf("failed to record giveaway winners: %w", err)
	}
	return winners, nil
}

// Due lists running giveaways whose end time has passed.
func (s *Service) Due(ctx context.Context) ([]models.Giveaway, error) {
	var due []models.Giveaway
	err := s.db.WithContext(ctx).Where("ended = ? AND ends_at <= ?", false, s.now().UTC()).
		Order("ends_at").Find(&due).Error
	return due, err
}
