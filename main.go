package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PixBot/bot"
	"PixBot/commands"
	_ "PixBot/commands/assistant"
	_ "PixBot/commands/economy"
	_ "PixBot/commands/games"
	_ "PixBot/commands/general"
	giveawaycmd "PixBot/commands/giveaway"
	_ "PixBot/commands/help"
	_ "PixBot/commands/moderation"
	_ "PixBot/commands/social"
	_ "PixBot/commands/treasure"
	_ "PixBot/commands/vip"
	"PixBot/config"
	"PixBot/status"
	"PixBot/store"
	"PixBot/tasks"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	ownerGuardInterval = 10 * time.Minute
	sweepInterval      = 5 * time.Minute
	giveawayInterval   = 30 * time.Second
	shutdownTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.SetupLogging()

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close(db)
	if err := store.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = utils.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, caching disabled")
		} else {
			defer rdb.Close()
		}
	}

	b, err := bot.NewBot(cfg, db, rdb)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	b.Client.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		commands.Dispatch(b, s, i)
	})
	b.Client.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		commands.OnMessage(b, s, m)
	})
	b.Client.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithField("guilds", len(r.Guilds)).Infof("Logged in as %s", r.User.String())
	})

	if err := b.Client.Open(); err != nil {
		log.Fatalf("Failed to open Discord session: %v", err)
	}
	defer b.Client.Close()

	commands.RegisterAllSlashCommands(b.Client, cfg.GuildID)

	scheduler := tasks.NewScheduler()
	scheduler.Add(tasks.InterestJob, cfg.InterestInterval, tasks.Interest(b.Ledger, cfg.InterestRate))
	scheduler.Add(tasks.ClueJob, cfg.ClueInterval, tasks.Clues(b.Treasure, tasks.GuildBroadcaster{Session: b.Client}))
	scheduler.Add(tasks.SweepJob, sweepInterval, tasks.Sweep(b.Limiter))
	scheduler.Add(tasks.GiveawayJob, giveawayInterval, tasks.Giveaways(b.Giveaways, giveawaycmd.Poster{Session: b.Client}))
	if cfg.OwnerGuard && cfg.OwnerID != "" {
		scheduler.Add(tasks.OwnerGuardJob, ownerGuardInterval, tasks.OwnerGuard(b.Client, cfg.OwnerID))
	}
	scheduler.Start(ctx)
	b.Scheduler = scheduler
	log.WithField("jobs", scheduler.Jobs()).Info("Background jobs scheduled")

	var statusServer *status.Server
	if cfg.StatusAddr != "" {
		statusServer = status.New(cfg.StatusAddr, b.Ledger, rdb, b.StartedAt)
		statusServer.Start()
	}

	log.Info("Bot is running. Press Ctrl+C to exit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	cancel()
	scheduler.Stop()
	if statusServer != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := statusServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Status server did not shut down cleanly")
		}
		done()
	}
}
