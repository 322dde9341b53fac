package games

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"PixBot/ledger"
	"PixBot/utils"
	"PixBot/vip"

	"gorm.io/gorm"
)

var (
	ErrInvalidChoice   = errors.New("choice must be heads or tails")
	ErrInvalidPosition = errors.New("position must be between 1 and 16")
	ErrInvalidMines    = errors.New("mines must be between 1 and 15")
)

const (
	BoardSize = 16
	MaxMines  = BoardSize - 1
)

// Resolver settles stake games against the ledger. The stake is debited
// with a guarded update in the same transaction that credits any winnings.
type Resolver struct {
	db     *gorm.DB
	ledger *ledger.Ledger
	vip    *vip.Registry
	rand   utils.Rand
}

func New(db *gorm.DB, l *ledger.Ledger, v *vip.Registry, r utils.Rand) *Resolver {
	if r == nil {
		r = utils.DefaultRand
	}
	return &Resolver{db: db, ledger: l, vip: v, rand: r}
}

// settle debits stake, then credits whatever payout returns.
func (g *Resolver) settle(ctx context.Context, userID string, stake int64, payout func() int64) error {
	if stake <= 0 {
		return ledger.ErrInvalidAmount
	}
	return g.ledger.Transaction(ctx, func(_ *gorm.DB, l *ledger.Ledger) error {
		if err := l.Debit(ctx, userID, stake); err != nil {
			return err
		}
		if won := payout(); won > 0 {
			return l.Credit(ctx, userID, won)
		}
		return nil
	})
}

type FlipResult struct {
	Choice string
	Side   string
	Won    bool
	Payout int64
}

// Flip is a 50/50 coin flip. A win pays twice the stake times the VIP bonus.
func (g *Resolver) Flip(ctx context.Context, userID, choice string, stake int64) (FlipResult, error) {
	choice = strings.ToLower(strings.TrimSpace(choice))
	if choice != "heads" && choice != "tails" {
		return FlipResult{}, ErrInvalidChoice
	}
	percent, err := g.vip.Percent(ctx, userID)
	if err != nil {
		return FlipResult{}, err
	}

	res := FlipResult{Choice: choice}
	err = g.settle(ctx, userID, stake, func() int64 {
		res.Side = "heads"
		if g.rand.Intn(2) == 1 {
			res.Side = "tails"
		}
		res.Won = res.Side == choice
		if res.Won {
			res.Payout = vip.Apply(stake*2, percent)
		}
		return res.Payout
	})
	if err != nil {
		return FlipResult{}, err
	}
	return res, nil
}

type MinesResult struct {
	Position   int
	Mines      []int
	Hit        bool
	Multiplier float64
	Payout     int64
}

// MinesMultiplier is (1 + mines*0.35) scaled by the VIP bonus.
func MinesMultiplier(mines int, percent int64) float64 {
	return float64((100+35*int64(mines))*percent) / 10000
}

// MinesPayout is floor(stake * MinesMultiplier) in integer arithmetic.
func MinesPayout(stake int64, mines int, percent int64) int64 {
	return stake * (100 + 35*int64(mines)) * percent / 10000
}

// Mines hides mines on a 4x4 board. Picking a safe square pays the multiplier.
func (g *Resolver) Mines(ctx context.Context, userID string, position, mines int, stake int64) (MinesResult, error) {
	if position < 1 || position > BoardSize {
		return MinesResult{}, ErrInvalidPosition
	}
	if mines < 1 || mines > MaxMines {
		return MinesResult{}, ErrInvalidMines
	}
	percent, err := g.vip.Percent(ctx, userID)
	if err != nil {
		return MinesResult{}, err
	}

	res := MinesResult{Position: position, Multiplier: MinesMultiplier(mines, percent)}
	err = g.settle(ctx, userID, stake, func() int64 {
		perm := g.rand.Perm(BoardSize)
		res.Mines = make([]int, 0, mines)
		for _, p := range perm[:mines] {
			res.Mines = append(res.Mines, p+1)
			if p+1 == position {
				res.Hit = true
			}
		}
		sort.Ints(res.Mines)
		if !res.Hit {
			res.Payout = MinesPayout(stake, mines, percent)
		}
		return res.Payout
	})
	if err != nil {
		return MinesResult{}, err
	}
	return res, nil
}

// RenderBoard draws the 4x4 grid with the mines and the picked square.
func RenderBoard(res MinesResult) string {
	mined := make(map[int]bool, len(res.Mines))
	for _, m := range res.Mines {
		mined[m] = true
	}
	var sb strings.Builder
	for pos := 1; pos <= BoardSize; pos++ {
		switch {
		case mined[pos] && pos == res.Position:
			sb.WriteString("💥")
		case mined[pos]:
			sb.WriteString("💣")
		case pos == res.Position:
			sb.WriteString("💎")
		default:
			sb.WriteString("⬜")
		}
		if pos%4 == 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

type InvestResult struct {
	Success bool
	// Amount is the return on success or the loss on failure.
	Amount int64
}

// Invest loses part of the stake 45% of the time and otherwise returns 1.4x to 2.5x.
func (g *Resolver) Invest(ctx context.Context, userID string, stake int64) (InvestResult, error) {
	var res InvestResult
	err := g.settle(ctx, userID, stake, func() int64 {
		if g.rand.Float64() < 0.45 {
			res.Amount = int64(float64(stake) * utils.Uniform(g.rand, 0.3, 0.7))
			return stake - res.Amount
		}
		res.Success = true
		res.Amount = int64(float64(stake) * utils.Uniform(g.rand, 1.4, 2.5))
		return res.Amount
	})
	if err != nil {
		return InvestResult{}, err
	}
	return res, nil
}

type CrimeResult struct {
	Caught bool
	Amount int64
}

// Crime has no stake. Getting caught costs up to 500 coins, never more than the wallet.
func (g *Resolver) Crime(ctx context.Context, userID string) (CrimeResult, error) {
	if g.rand.Float64() < 0.5 {
		fine := utils.Between(g.rand, 200, 500)
		taken, err := g.ledger.DebitUpTo(ctx, userID, fine)
		if err != nil {
			return CrimeResult{}, fmt.Errorf("failed to fine %s: %w", userID, err)
		}
		return CrimeResult{Caught: true, Amount: taken}, nil
	}
	gain := utils.Between(g.rand, 400, 900)
	if err := g.ledger.Credit(ctx, userID, gain); err != nil {
		return CrimeResult{}, err
	}
	return CrimeResult{Amount: gain}, nil
}
