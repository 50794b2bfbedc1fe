package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payontime/backend/internal/application/usecase/reminder"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/integration/entrypoint/dto"
)

// ReminderRunner runs the reminder job.
type ReminderRunner interface {
	Execute(ctx context.Context, input reminder.RunRemindersInput) (*reminder.RunRemindersOutput, error)
}

// ReminderJobController handles the reminder job trigger.
type ReminderJobController struct {
	runner ReminderRunner
}

// NewReminderJobController creates a new reminder job controller instance.
func NewReminderJobController(runner ReminderRunner) *ReminderJobController {
	return &ReminderJobController{
		runner: runner,
	}
}

// Run handles POST /jobs/reminders requests.
// The run is detached from client cancellation so that a dropped connection does not abort
// sends in flight.
func (c *ReminderJobController) Run(ctx *gin.Context) {
	runCtx := context.WithoutCancel(ctx.Request.Context())

	output, err := c.runner.Execute(runCtx, reminder.RunRemindersInput{})
	if err != nil {
		slog.Error("Reminder run failed", "error", err)
		handleError(ctx, err, string(domainerror.ErrCodeReminderBatchLoad))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderRunResponse(output))
}

// MethodNotAllowed answers non-POST requests to the job endpoint.
func (c *ReminderJobController) MethodNotAllowed(ctx *gin.Context) {
	ctx.Header("Allow", http.MethodPost)
	ctx.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{
		Error: "Method not allowed",
	})
}
