// Package scheduler triggers the reminder job from inside the API process.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/payontime/backend/internal/application/usecase/reminder"
)

// JobName identifies the daily reminder job.
const JobName = "daily-reminders"

// Runner runs the reminder job.
type Runner interface {
	Execute(ctx context.Context, input reminder.RunRemindersInput) (*reminder.RunRemindersOutput, error)
}

// Start registers the reminder job on a cron expression evaluated in loc and starts the scheduler.
// A run still in progress when the next tick fires causes that tick to be skipped.
func Start(runner Runner, cronExpr string, loc *time.Location) (gocron.Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() { run(runner) }),
		gocron.WithName(JobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to register reminder job: %w", err)
	}

	s.Start()
	slog.Info("Reminder scheduler started", "cron", cronExpr, "timezone", loc.String())
	return s, nil
}

func run(runner Runner) {
	started := time.Now()
	output, err := runner.Execute(context.Background(), reminder.RunRemindersInput{})
	if err != nil {
		slog.Error("Scheduled reminder run failed", "error", err)
		return
	}
	slog.Info("Scheduled reminder run completed",
		"users", len(output.Users),
		"results", len(output.Results),
		"duration", time.Since(started),
	)
}
