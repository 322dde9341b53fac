package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(viper.New())

	assert.Equal(t, "bot.db", cfg.DatabaseURL)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.CompletionModel)
	assert.Equal(t, 250, cfg.CompletionMaxTokens)
	assert.InDelta(t, 0.8, cfg.CompletionTemperature, 1e-9)
	assert.Equal(t, 30*time.Minute, cfg.InterestInterval)
	assert.InDelta(t, 1.02, cfg.InterestRate, 1e-9)
	assert.Equal(t, 3*time.Hour, cfg.ClueInterval)
	assert.False(t, cfg.OwnerGuard)
	assert.Empty(t, cfg.RedisAddr)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	v.Set("DISCORD_TOKEN", "abc")
	v.Set("INTEREST_INTERVAL", "5m")
	v.Set("OWNER_GUARD", "true")
	v.Set("DATABASE_URL", "postgres://localhost/pix")

	cfg := FromViper(v)

	assert.Equal(t, "abc", cfg.DiscordToken)
	assert.Equal(t, 5*time.Minute, cfg.InterestInterval)
	assert.True(t, cfg.OwnerGuard)
	assert.Equal(t, "postgres://localhost/pix", cfg.DatabaseURL)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingToken)
}
