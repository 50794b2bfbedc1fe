package adapter

import "time"

// ReminderMetrics receives observations from reminder runs.
type ReminderMetrics interface {
	// ObserveRun records a finished run with its outcome ("success" or "error").
	ObserveRun(outcome string, duration time.Duration)

	// IncUserOutcome counts one per-user result status.
	IncUserOutcome(status string)

	// AddRemindersSent counts reminder instances delivered.
	AddRemindersSent(n int)
}
