package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"

	"PixBot/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
)

// XPPerMessage is awarded for every guild message.
const XPPerMessage = 5

// Ledger reads and mutates account balances. Every guarded write is a single
// conditional UPDATE so balances never go below zero.
type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger whose statements run inside tx.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{db: tx}
}

// Transaction runs fn with a ledger bound to a new transaction.
func (l *Ledger) Transaction(ctx context.Context, fn func(tx *gorm.DB, l *Ledger) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, l.WithTx(tx))
	})
}

func (l *Ledger) accounts(ctx context.Context) *gorm.DB {
	return l.db.WithContext(ctx).Model(&models.Account{})
}

// Ensure creates the account if it does not exist yet.
func (l *Ledger) Ensure(ctx context.Context, userID string) error {
	acc := models.Account{UserID: userID}
	if err := l.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&acc).Error; err != nil {
		return fmt.Errorf("failed to ensure account %s: %w", userID, err)
	}
	return nil
}

func (l *Ledger) Get(ctx context.Context, userID string) (models.Account, error) {
	var acc models.Account
	if err := l.Ensure(ctx, userID); err != nil {
		return acc, err
	}
	if err := l.db.WithContext(ctx).First(&acc, "user_id = ?", userID).Error; err != nil {
		return acc, fmt.Errorf("failed to load account %s: %w", userID, err)
	}
	return acc, nil
}

// Credit adds amount to the wallet.
func (l *Ledger) Credit(ctx context.Context, userID string, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if err := l.Ensure(ctx, userID); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	err := l.accounts(ctx).Where("user_id = ?", userID).
		Update("coins", gorm.Expr("coins + ?", amount)).Error
	if err != nil {
		return fmt.Errorf("failed to credit %s: %w", userID, err)
	}
	return nil
}

// Debit removes amount from the wallet only if the wallet covers it.
func (l *Ledger) Debit(ctx context.Context, userID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := l.Ensure(ctx, userID); err != nil {
		return err
	}
	return l.guardedMove(ctx, userID, "coins", -amount)
}

// DebitUpTo takes at most amount from the wallet and reports what was taken.
func (l *Ledger) DebitUpTo(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var taken int64
	err := l.Transaction(ctx, func(_ *gorm.DB, tl *Ledger) error {
		acc, err := tl.Get(ctx, userID)
		if err != nil {
			return err
		}
		taken = min(amount, acc.Coins)
		if taken <= 0 {
			taken = 0
			return nil
		}
		return tl.guardedMove(ctx, userID, "coins", -taken)
	})
	return taken, err
}

// Deposit moves amount from the wallet into the bank.
func (l *Ledger) Deposit(ctx context.Context, userID string, amount int64) error {
	return l.between(ctx, userID, "coins", "bank", amount)
}

// Withdraw moves amount from the bank into the wallet.
func (l *Ledger) Withdraw(ctx context.Context, userID string, amount int64) error {
	return l.between(ctx, userID, "bank", "coins", amount)
}

func (l *Ledger) between(ctx context.Context, userID, from, to string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return l.Transaction(ctx, func(_ *gorm.DB, tl *Ledger) error {
		if err := tl.Ensure(ctx, userID); err != nil {
			return err
		}
		if err := tl.guardedMove(ctx, userID, from, -amount); err != nil {
			return err
		}
		return tl.accounts(ctx).Where("user_id = ?", userID).
			Update(to, gorm.Expr(to+" + ?", amount)).Error
	})
}

// Transfer moves amount from one wallet to another.
func (l *Ledger) Transfer(ctx context.Context, fromID, toID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if fromID == toID {
		return ErrSameAccount
	}
	return l.Transaction(ctx, func(_ *gorm.DB, tl *Ledger) error {
		if err := tl.Ensure(ctx, fromID); err != nil {
			return err
		}
		if err := tl.guardedMove(ctx, fromID, "coins", -amount); err != nil {
			return err
		}
		return tl.Credit(ctx, toID, amount)
	})
}

// guardedMove applies delta to column, refusing to take it below zero.
func (l *Ledger) guardedMove(ctx context.Context, userID, column string, delta int64) error {
	q := l.accounts(ctx).Where("user_id = ?", userID)
	if delta < 0 {
		q = q.Where(column+" >= ?", -delta)
	}
	res := q.Update(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to update %s for %s: %w", column, userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

func (l *Ledger) AddXP(ctx context.Context, userID string, xp int64) error {
	if err := l.Ensure(ctx, userID); err != nil {
		return err
	}
	return l.accounts(ctx).Where("user_id = ?", userID).
		Update("xp", gorm.Expr("xp + ?", xp)).Error
}

// Level converts experience into a level: floor(sqrt(xp/100)).
func Level(xp int64) int {
	if xp <= 0 {
		return 0
	}
	return int(math.Sqrt(float64(xp) / 100))
}

// TopWealth lists the n richest accounts by wallet plus bank.
func (l *Ledger) TopWealth(ctx context.Context, n int) ([]models.Account, error) {
	var accs []models.Account
	err := l.db.WithContext(ctx).Order("coins + bank DESC").Order("user_id").Limit(n).Find(&accs).Error
	return accs, err
}

func (l *Ledger) TopXP(ctx context.Context, n int) ([]models.Account, error) {
	var accs []models.Account
	err := l.db.WithContext(ctx).Order("xp DESC").Order("user_id").Limit(n).Find(&accs).Error
	return accs, err
}

// ApplyInterest multiplies every bank balance by rate in one statement.
// Only the growth is multiplied so large balances stay inside int64. It
// truncates toward zero and there is no cap.
func (l *Ledger) ApplyInterest(ctx context.Context, rate float64) (int64, error) {
	num := int64(math.Round(rate * 10000))
	res := l.accounts(ctx).Where("bank > 0").
		Update("bank", gorm.Expr("bank + bank * ? / ?", num-10000, 10000))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to apply interest: %w", res.Error)
	}
	return res.RowsAffected, nil
}

type Stats struct {
	Accounts   int64 `json:"accounts"`
	TotalCoins int64 `json:"total_coins"`
	TotalBank  int64 `json:"total_bank"`
}

func (l *Ledger) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := l.accounts(ctx).
		Select("COUNT(*) AS accounts, COALESCE(SUM(coins), 0) AS total_coins, COALESCE(SUM(bank), 0) AS total_bank").
		Scan(&s).Error
	return s, err
}
