package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds every setting the bot reads at startup. It is loaded once and never reloaded.
type Config struct {
	DiscordToken      string
	GuildID           string
	OwnerID           string
	FeedbackChannelID string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CompletionAPIKey      string
	CompletionBaseURL     string
	CompletionModel       string
	CompletionTemperature float64
	CompletionMaxTokens   int
	AssistantRateLimit    int

	InterestInterval time.Duration
	InterestRate     float64
	ClueInterval     time.Duration
	OwnerGuard       bool

	StatusAddr string
	LogLevel   string
}

var ErrMissingToken = errors.New("DISCORD_TOKEN is not set")

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "bot.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("COMPLETION_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("COMPLETION_MODEL", "llama-3.1-8b-instant")
	v.SetDefault("COMPLETION_TEMPERATURE", 0.8)
	v.SetDefault("COMPLETION_MAX_TOKENS", 250)
	v.SetDefault("ASSISTANT_RATE_LIMIT", 15)
	v.SetDefault("INTEREST_INTERVAL", 30*time.Minute)
	v.SetDefault("INTEREST_RATE", 1.02)
	v.SetDefault("CLUE_INTERVAL", 3*time.Hour)
	v.SetDefault("OWNER_GUARD", false)
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using process environment")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := FromViper(v)
	if cfg.DiscordToken == "" {
		return cfg, ErrMissingToken
	}
	return cfg, nil
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	setDefaults(v)
	return &Config{
		DiscordToken:      v.GetString("DISCORD_TOKEN"),
		GuildID:           v.GetString("GUILD_ID"),
		OwnerID:           v.GetString("OWNER_ID"),
		FeedbackChannelID: v.GetString("FEEDBACK_CHANNEL_ID"),

		DatabaseURL:   v.GetString("DATABASE_URL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		CompletionAPIKey:      v.GetString("GROQ_API_KEY"),
		CompletionBaseURL:     v.GetString("COMPLETION_BASE_URL"),
		CompletionModel:       v.GetString("COMPLETION_MODEL"),
		CompletionTemperature: v.GetFloat64("COMPLETION_TEMPERATURE"),
		CompletionMaxTokens:   v.GetInt("COMPLETION_MAX_TOKENS"),
		AssistantRateLimit:    v.GetInt("ASSISTANT_RATE_LIMIT"),

		InterestInterval: v.GetDuration("INTEREST_INTERVAL"),
		InterestRate:     v.GetFloat64("INTEREST_RATE"),
		ClueInterval:     v.GetDuration("CLUE_INTERVAL"),
		OwnerGuard:       v.GetBool("OWNER_GUARD"),

		StatusAddr: v.GetString("STATUS_ADDR"),
		LogLevel:   v.GetString("LOG_LEVEL"),
	}
}

// SetupLogging configures the global logger from the configured level.
func (c *Config) SetupLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Printf("Unknown LOG_LEVEL %q, falling back to info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
