package social

import (
	"context"
	"errors"
	"strings"
	"time"

	"PixBot/models"

	"gorm.io/gorm"
)

const maxClanNameLength = 32

var (
	ErrClanExists    = errors.New("a clan with that name already exists")
	ErrClanNotFound  = errors.New("clan not found")
	ErrAlreadyInClan = errors.New("already in a clan")
	ErrNotInClan     = errors.New("not in a clan")
	ErrBadClanName   = errors.New("invalid clan name")
)

// ClanInfo is a clan with its aggregated member data.
type ClanInfo struct {
	models.Clan
	Members int64
	XP      int64
}

func normalizeName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" || len([]rune(name)) > maxClanNameLength {
		return "", ErrBadClanName
	}
	return name, nil
}

// clanKey folds a name the same way for storage and lookup.
func clanKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func findClan(tx *gorm.DB, name string) (models.Clan, error) {
	var c models.Clan
	err := tx.Where("name_key = ?", clanKey(name)).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c, ErrClanNotFound
	}
	return c, err
}

func membership(tx *gorm.DB, userID string) (*models.ClanMember, error) {
	var m models.ClanMember
	err := tx.First(&m, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateClan founds a clan led by leaderID, who becomes its first member.
func CreateClan(ctx context.Context, db *gorm.DB, name, leaderID string) (models.Clan, error) {
	name, err := normalizeName(name)
	if err != nil {
		return models.Clan{}, err
	}

	var clan models.Clan
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m, err := membership(tx, leaderID); err != nil {
			return err
		} else if m != nil {
			return ErrAlreadyInClan
		}
		if _, err := findClan(tx, name); err == nil {
			return ErrClanExists
		} else if !errors.Is(err, ErrClanNotFound) {
			return err
		}

		// The unique key also catches a racing create of the same name.
		clan = models.Clan{Name: name, NameKey: clanKey(name), LeaderID: leaderID}
		if err := tx.Create(&clan).Error; errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrClanExists
		} else if err != nil {
			return err
		}
		return tx.Create(&models.ClanMember{UserID: leaderID, ClanID: clan.ID, JoinedAt: time.Now().UTC()}).Error
	})
	return clan, err
}

func JoinClan(ctx context.Context, db *gorm.DB, name, userID string) (models.Clan, error) {
	var clan models.Clan
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m, err := membership(tx, userID); err != nil {
			return err
		} else if m != nil {
			return ErrAlreadyInClan
		}
		c, err := findClan(tx, name)
		if err != nil {
			return err
		}
		clan = c
		return tx.Create(&models.ClanMember{UserID: userID, ClanID: c.ID, JoinedAt: time.Now().UTC()}).Error
	})
	return clan, err
}

// LeaveClan removes userID from their clan. A departing leader hands the
// clan to the longest-standing member, and the last member out deletes it.
// disbanded reports the latter.
func LeaveClan(ctx context.Context, db *gorm.DB, userID string) (clan models.Clan, disbanded bool, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := membership(tx, userID)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrNotInClan
		}
		if err := tx.First(&clan, m.ClanID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ClanMember{}, "user_id = ?", userID).Error; err != nil {
			return err
		}

		var heir models.ClanMember
		err = tx.Where("clan_id = ?", clan.ID).Order("joined_at").Order("user_id").First(&heir).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			disbanded = true
			return tx.Delete(&models.Clan{}, clan.ID).Error
		}
		if err != nil {
			return err
		}
		if clan.LeaderID == userID {
			clan.LeaderID = heir.UserID
			return tx.Model(&models.Clan{}).Where("id = ?", clan.ID).Update("leader_id", heir.UserID).Error
		}
		return nil
	})
	return clan, disbanded, err
}

// GetClanInfo loads a clan by name with its member count and summed XP.
func GetClanInfo(ctx context.Context, db *gorm.DB, name string) (ClanInfo, error) {
	tx := db.WithContext(ctx)
	c, err := findClan(tx, name)
	if err != nil {
		return ClanInfo{}, err
	}

	info := ClanInfo{Clan: c}
	err = tx.Model(&models.ClanMember{}).
		Select("COUNT(*) AS members, COALESCE(SUM(accounts.xp), 0) AS xp").
		Joins("LEFT JOIN accounts ON accounts.user_id = clan_members.user_id").
		Where("clan_members.clan_id = ?", c.ID).
		Row().Scan(&info.Members, &info.XP)
	return info, err
}
