package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/payontime/backend/internal/application/usecase/reminder"
)

type runnerFunc func(ctx context.Context, input reminder.RunRemindersInput) (*reminder.RunRemindersOutput, error)

func (f runnerFunc) Execute(ctx context.Context, input reminder.RunRemindersInput) (*reminder.RunRemindersOutput, error) {
	return f(ctx, input)
}

func TestStartRegistersRunnableJob(t *testing.T) {
	calls := make(chan struct{}, 1)
	runner := runnerFunc(func(_ context.Context, _ reminder.RunRemindersInput) (*reminder.RunRemindersOutput, error) {
		calls <- struct{}{}
		return &reminder.RunRemindersOutput{}, nil
	})

	s, err := Start(runner, "0 6 * * *", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = s.Shutdown() }()

	jobs := s.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Name() != JobName {
		t.Errorf("expected job name %s, got %s", JobName, jobs[0].Name())
	}

	if err := jobs[0].RunNow(); err != nil {
		t.Fatalf("unexpected error running job: %v", err)
	}
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("expected the runner to be invoked")
	}
}

func TestStartRejectsInvalidCron(t *testing.T) {
	runner := runnerFunc(func(_ context.Context, _ reminder.RunRemindersInput) (*reminder.RunRemindersOutput, error) {
		return nil, errors.New("unreachable")
	})

	if _, err := Start(runner, "every morning", time.UTC); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestRunSurvivesRunnerError(t *testing.T) {
	run(runnerFunc(func(_ context.Context, _ reminder.RunRemindersInput) (*reminder.RunRemindersOutput, error) {
		return nil, errors.New("database unavailable")
	}))
}
