package models

import "time"

// Account is a user's ledger row. It is created lazily and never deleted.
type Account struct {
	UserID     string `gorm:"primaryKey;size:32"`
	Coins      int64  `gorm:"not null;default:0"`
	Bank       int64  `gorm:"not null;default:0"`
	XP         int64  `gorm:"not null;default:0"`
	LastDaily  *time.Time
	LastWeekly *time.Time
	LastWork   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Total is the account's wallet plus bank.
func (a Account) Total() int64 {
	return a.Coins + a.Bank
}

// Subscription is a VIP tier. A nil ExpiresAt never expires.
type Subscription struct {
	UserID    string `gorm:"primaryKey;size:32"`
	Tier      int    `gorm:"not null"`
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// ConversationMemory is one turn of a user's assistant transcript.
type ConversationMemory struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"size:32;not null;index"`
	Role      string `gorm:"size:16;not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TreasureState is the singleton row driving the treasure event.
type TreasureState struct {
	ID      uint `gorm:"primaryKey"`
	Stage   int  `gorm:"not null;default:0"`
	Winners int  `gorm:"not null;default:0"`
}

type HuntCooldown struct {
	UserID   string `gorm:"primaryKey;size:32"`
	LastHunt *time.Time
}

// Persona overrides the assistant's system prompt for one user.
type Persona struct {
	UserID    string `gorm:"primaryKey;size:32"`
	Prompt    string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

type Warn struct {
	ID        string `gorm:"primaryKey;size:36"`
	GuildID   string `gorm:"size:32;not null;index:idx_warn_member"`
	UserID    string `gorm:"size:32;not null;index:idx_warn_member"`
	StaffID   string `gorm:"size:32;not null"`
	Reason    string `gorm:"type:text"`
	CreatedAt time.Time
}

type ModLogChannel struct {
	GuildID   string `gorm:"primaryKey;size:32"`
	ChannelID string `gorm:"size:32;not null"`
}

// Clan XP is the sum of its members' account XP and is not stored. NameKey is
// the lowercased name and carries the uniqueness.
type Clan struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:64;not null"`
	NameKey   string `gorm:"size:64;not null;uniqueIndex"`
	LeaderID  string `gorm:"size:32;not null"`
	CreatedAt time.Time
}

// ClanMember allows a user to belong to a single clan.
type ClanMember struct {
	UserID   string `gorm:"primaryKey;size:32"`
	ClanID   uint   `gorm:"not null;index"`
	JoinedAt time.Time
}

// All lists every model for migration.
// Giveaway is a timed prize draw announced on MessageID. Ended flips once,
// when winners are drawn.
type Giveaway struct {
	ID        uint      `gorm:"primaryKey"`
	GuildID   string    `gorm:"size:32;not null;index"`
	ChannelID string    `gorm:"size:32;not null"`
	MessageID string    `gorm:"size:32"`
	HostID    string    `gorm:"size:32;not null"`
	Prize     string    `gorm:"size:200;not null"`
	Winners   int       `gorm:"not null;default:1"`
	EndsAt    time.Time `gorm:"not null;index"`
	Ended     bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time
}

// GiveawayEntry is one user's ticket. Won marks drawn winners, including
// rerolls.
type GiveawayEntry struct {
	GiveawayID uint   `gorm:"primaryKey"`
	UserID     string `gorm:"primaryKey;size:32"`
	Won        bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func All() []interface{} {
	return []interface{}{
		&Account{},
		&Subscription{},
		&ConversationMemory{},
		&TreasureState{},
		&HuntCooldown{},
		&Persona{},
		&Warn{},
		&ModLogChannel{},
		&Clan{},
		&ClanMember{},
		&Giveaway{},
		&GiveawayEntry{},
	}
}
