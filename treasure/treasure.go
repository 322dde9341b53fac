package treasure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"PixBot/ledger"
	"PixBot/models"
	"PixBot/utils"
	"PixBot/vip"

	"gorm.io/gorm"
)

var (
	ErrWrongCode   = errors.New("wrong treasure code")
	ErrEventClosed = errors.New("the treasure has already been claimed")
)

const (
	MaxWinners = 3
	Prize      = 100_000
	PrizeTier  = vip.Gold

	// Clues are only posted between these local hours, inclusive.
	FirstHour = 6
	LastHour  = 23

	ChannelName = "🏴‍☠️caça-ao-tesouro"
	RoleName    = "🏴‍☠️ Treasure Hunter"
)

var CodeParts = []string{"CA", "ÇA", "DOR", "ES", "2026", "VIP", "GOLD", "PIX", "COINS", "ADMS", "FELIZES"}

var FinalCode = strings.Join(CodeParts, "-")

var trueClues = []string{
	"the adms were not happy with how the server did this year",
	"everyone on staff keeps talking about vip gold",
	"the pix took a while but it arrived",
	"some coins vanished from the bank overnight",
	"2026 is the year the server will remember",
	"a hunter always finds the dor that was hidden",
	"the felizes do not always look happy",
	"it all begins with ca and ends well",
	"gold is worth nothing without vip",
	"even adms like a good pix",
	"coins do not fall from the sky",
}

var falseClues = []string{
	"the code starts with vip",
	"there is no pix in the prize",
	"the right year is 2025",
	"the code has no hyphens",
	"it ends with gold",
	"the adms have nothing to do with it",
	"felizes is just a figure of speech",
	"the whole code is in english",
}

// Highlight uppercases every code part that appears in the clue.
func Highlight(clue string) string {
	for _, part := range CodeParts {
		clue = strings.ReplaceAll(clue, strings.ToLower(part), part)
	}
	return clue
}

// NormalizeCode trims and uppercases a submitted code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type Clue struct {
	Number int
	Text   string
}

// Event runs the server-wide treasure hunt backed by the singleton state row.
type Event struct {
	db     *gorm.DB
	ledger *ledger.Ledger
	vip    *vip.Registry
	now    func() time.Time
	rand   utils.Rand
}

func New(db *gorm.DB, l *ledger.Ledger, v *vip.Registry, now func() time.Time, r utils.Rand) *Event {
	if now == nil {
		now = time.Now
	}
	if r == nil {
		r = utils.DefaultRand
	}
	return &Event{db: db, ledger: l, vip: v, now: now, rand: r}
}

func (e *Event) State(ctx context.Context) (models.TreasureState, error) {
	var st models.TreasureState
	if err := e.db.WithContext(ctx).First(&st, 1).Error; err != nil {
		return st, fmt.Errorf("failed to load treasure state: %w", err)
	}
	return st, nil
}

// Open reports whether clues are still being posted.
func Open(st models.TreasureState) bool {
	return st.Winners < MaxWinners && st.Stage < len(trueClues)
}

func allowedHour(t time.Time) bool {
	h := t.Hour()
	return h >= FirstHour && h <= LastHour
}

// NextClue draws a real or decoy clue and advances the stage. ok is false
// at night, once the prize is gone, or once every real clue has been used up.
func (e *Event) NextClue(ctx context.Context) (Clue, bool, error) {
	if !allowedHour(e.now()) {
		return Clue{}, false, nil
	}

	var clue Clue
	ok := false
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st models.TreasureState
		if err := tx.First(&st, 1).Error; err != nil {
			return err
		}
		if !Open(st) {
			return nil
		}

		pool := len(trueClues) + len(falseClues)
		pick := e.rand.Intn(pool)
		text := ""
		if pick < len(trueClues) {
			text = trueClues[pick]
		} else {
			text = falseClues[pick-len(trueClues)]
		}

		res := tx.Model(&models.TreasureState{}).Where("id = ? AND stage = ?", 1, st.Stage).
			Update("stage", gorm.Expr("stage + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		clue = Clue{Number: st.Stage + 1, Text: Highlight(text)}
		ok = true
		return nil
	})
	if err != nil {
		return Clue{}, false, fmt.Errorf("failed to advance treasure clue: %w", err)
	}
	return clue, ok, nil
}

// Redeem checks a submitted code. A correct code pays the prize and grants
// permanent VIP Gold, as long as the winner cap has not been reached.
func (e *Event) Redeem(ctx context.Context, userID, code string) error {
	st, err := e.State(ctx)
	if err != nil {
		return err
	}
	if st.Winners >= MaxWinners {
		return ErrEventClosed
	}
	if NormalizeCode(code) != FinalCode {
		return ErrWrongCode
	}

	return e.ledger.Transaction(ctx, func(tx *gorm.DB, l *ledger.Ledger) error {
		res := tx.Model(&models.TreasureState{}).Where("id = ? AND winners < ?", 1, MaxWinners).
			Update("winners", gorm.Expr("winners + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEventClosed
		}
		if err := l.Credit(ctx, userID, Prize); err != nil {
			return err
		}
		_, err := e.vip.GrantTx(tx, userID, PrizeTier, 0)
		return err
	})
}
