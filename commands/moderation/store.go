package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PixBot/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddWarn records a warning and returns it with its generated id.
func AddWarn(ctx context.Context, db *gorm.DB, guildID, userID, staffID, reason string) (models.Warn, error) {
	w := models.Warn{
		ID:        uuid.NewString(),
		GuildID:   guildID,
		UserID:    userID,
		StaffID:   staffID,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(&w).Error; err != nil {
		return models.Warn{}, fmt.Errorf("failed to save warn for %s: %w", userID, err)
	}
	return w, nil
}

// ListWarns returns a member's warnings, newest first.
func ListWarns(ctx context.Context, db *gorm.DB, guildID, userID string) ([]models.Warn, error) {
	var warns []models.Warn
	err := db.WithContext(ctx).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("created_at DESC").
		Find(&warns).Error
	return warns, err
}

func SetModLogChannel(ctx context.Context, db *gorm.DB, guildID, channelID string) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"channel_id"}),
	}).Create(&models.ModLogChannel{GuildID: guildID, ChannelID: channelID}).Error
}

// ModLogChannelID returns "" when the guild has no modlog configured.
func ModLogChannelID(ctx context.Context, db *gorm.DB, guildID string) (string, error) {
	var ml models.ModLogChannel
	err := db.WithContext(ctx).First(&ml, "guild_id = ?", guildID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ml.ChannelID, nil
}
