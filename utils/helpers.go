package utils

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// MessageLimit is Discord's maximum message length in characters.
const MessageLimit = 2000

// ExtractUserID extracts the user ID from a mention or a bare snowflake.
func ExtractUserID(mention string) (string, error) {
	mention = strings.TrimSpace(mention)
	if _, err := strconv.ParseUint(mention, 10, 64); err == nil {
		return mention, nil
	}
	if !strings.HasPrefix(mention, "<@") || !strings.HasSuffix(mention, ">") {
		return "", fmt.Errorf("invalid mention format")
	}

	userID := strings.TrimPrefix(strings.TrimSuffix(mention, ">"), "<@")
	// Nickname mentions carry a "!"
	userID = strings.TrimPrefix(userID, "!")

	if _, err := strconv.ParseUint(userID, 10, 64); err != nil {
		return "", fmt.Errorf("invalid user ID")
	}

	return userID, nil
}

// StripMention removes every mention of userID from content.
func StripMention(content, userID string) string {
	content = strings.ReplaceAll(content, "<@"+userID+">", "")
	content = strings.ReplaceAll(content, "<@!"+userID+">", "")
	return strings.TrimSpace(content)
}

// Mentions reports whether m mentions the user.
func Mentions(m *discordgo.Message, userID string) bool {
	for _, u := range m.Mentions {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// HasPermission checks a computed permission set. Administrators pass every check.
func HasPermission(perms, permission int64) bool {
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&permission == permission
}

// InteractionUser returns the invoking user for guild and DM interactions alike.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// CheckPermission checks if a user has a specific permission in a guild. The
// state cache is consulted before REST.
func CheckPermission(s *discordgo.Session, guildID, userID string, permission int64) (bool, error) {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		if guild, err = s.Guild(guildID); err != nil {
			return false, fmt.Errorf("error fetching guild: %w", err)
		}
	}

	member, err := s.State.Member(guildID, userID)
	if err != nil {
		if member, err = s.GuildMember(guildID, userID); err != nil {
			return false, fmt.Errorf("error fetching member: %w", err)
		}
	}
	return HasPermission(MemberPermissions(guild, userID, member.Roles), permission), nil
}

// Guilds copies the state's guild list under its read lock so callers can
// range over it while the gateway keeps updating the state.
func Guilds(s *discordgo.Session) []*discordgo.Guild {
	if s == nil || s.State == nil {
		return nil
	}
	s.State.RLock()
	defer s.State.RUnlock()
	return slices.Clone(s.State.Guilds)
}

// MemberPermissions folds @everyone and the given roles into one permission
// set. The guild owner holds every permission.
func MemberPermissions(guild *discordgo.Guild, userID string, roles []string) int64 {
	if guild.OwnerID == userID {
		return discordgo.PermissionAll
	}
	var perms int64
	for _, role := range guild.Roles {
		// @everyone shares the guild's id
		if role.ID == guild.ID || slices.Contains(roles, role.ID) {
			perms |= role.Permissions
		}
	}
	return perms
}

// FormatDuration renders d as "1 day(s), 2 hour(s), 3 minute(s)".
func FormatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	parts := []string{}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d day(s)", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hour(s)", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minute(s)", minutes))
	}
	if seconds > 0 && len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d second(s)", seconds))
	}

	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, ", ")
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// FormatCoins renders an amount with thousands separators.
func FormatCoins(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
