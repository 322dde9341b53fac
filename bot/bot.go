package bot

import (
	"time"

	"PixBot/assistant"
	"PixBot/config"
	"PixBot/games"
	"PixBot/giveaway"
	"PixBot/ledger"
	"PixBot/rewards"
	"PixBot/tasks"
	"PixBot/treasure"
	"PixBot/utils"
	"PixBot/vip"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Bot carries the Discord session, the store and every domain service that
// command handlers need.
type Bot struct {
	Db     *gorm.DB
	Client *discordgo.Session
	Redis  *redis.Client
	Config *config.Config

	Ledger    *ledger.Ledger
	VIP       *vip.Registry
	Rewards   *rewards.Engine
	Games     *games.Resolver
	Treasure  *treasure.Event
	Assistant *assistant.Assistant
	Giveaways *giveaway.Service
	Limiter   *utils.RateLimiter
	// Scheduler is set by main once background jobs are registered.
	Scheduler *tasks.Scheduler

	StartedAt time.Time
}

// NewBot creates the session and wires the services over db. rdb may be nil.
func NewBot(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*Bot, error) {
	client, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}
	client.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	b := NewServices(cfg, db, rdb)
	b.Client = client
	return b, nil
}

// NewServices wires the domain services without a Discord session.
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Bot {
	l := ledger.New(db)
	v := vip.New(db, time.Now)

	var completer assistant.Completer
	if cfg.CompletionAPIKey != "" {
		completer = assistant.NewClient(
			cfg.CompletionBaseURL,
			cfg.CompletionAPIKey,
			cfg.CompletionModel,
			cfg.CompletionTemperature,
			cfg.CompletionMaxTokens,
		)
	}
	limiter := utils.NewRateLimiter(cfg.AssistantRateLimit, time.Minute)

	return &Bot{
		Db:        db,
		Redis:     rdb,
		Config:    cfg,
		Ledger:    l,
		VIP:       v,
		Rewards:   rewards.New(db, l, v, time.Now, utils.DefaultRand),
		Games:     games.New(db, l, v, utils.DefaultRand),
		Treasure:  treasure.New(db, l, v, time.Now, utils.DefaultRand),
		Assistant: assistant.New(db, completer, limiter),
		Giveaways: giveaway.New(db, time.Now, utils.DefaultRand),
		Limiter:   limiter,
		StartedAt: time.Now(),
	}
}

// IsOwner reports whether userID is the configured bot owner.
func (b *Bot) IsOwner(userID string) bool {
	return b.Config.OwnerID != "" && b.Config.OwnerID == userID
}
