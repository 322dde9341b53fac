package general

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/tasks"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const runJobTimeout = 2 * time.Minute

// RunJob runs one scheduled job immediately, for the owner to catch up
// interest or push a clue without waiting for the ticker.
func RunJob(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := commands.Defer(s, i); err != nil {
		log.WithError(err).Error("Failed to defer run_job")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), runJobTimeout)
	defer cancel()

	msg := runJob(ctx, b.Scheduler, commands.OptionMap(i).String("job", ""))
	if err := commands.EditResponse(s, i, msg); err != nil {
		log.WithError(err).Error("Failed to report run_job")
	}
}

func runJob(ctx context.Context, sched *tasks.Scheduler, name string) string {
	if sched == nil {
		return "⚠️ Background jobs are not running yet."
	}
	jobs := sched.Jobs()
	if !slices.Contains(jobs, name) {
		return fmt.Sprintf("❌ `%s` is not scheduled. Scheduled jobs: %s", name, strings.Join(jobs, ", "))
	}
	if err := sched.RunNow(ctx, name); err != nil {
		log.WithField("job", name).WithError(err).Error("Manual job run failed")
		return fmt.Sprintf("❌ `%s` failed: %v", name, err)
	}
	log.WithField("job", name).Info("Manual job run completed")
	return fmt.Sprintf("✅ `%s` finished.", name)
}
