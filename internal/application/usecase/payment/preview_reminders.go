package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/domain/recurrence"
	"github.com/payontime/backend/internal/domain/reminder"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// PreviewRemindersInput represents the input for a reminder preview.
type PreviewRemindersInput struct {
	UserID uuid.UUID
	Draft  Draft
	// Date overrides "today"; nil means the current date in the user's timezone.
	Date *valueobject.Date
}

// PreviewRemindersOutput describes when a draft schedule would be due and reminded.
// Dates are nil when the draft has no upcoming occurrence or no offsets.
type PreviewRemindersOutput struct {
	NextDueDate         *valueobject.Date
	NearestReminderDate *valueobject.Date
	UpcomingReminders   []valueobject.Date
}

// PreviewRemindersUseCase computes informational reminder dates for a payment form.
// Nothing is stored.
type PreviewRemindersUseCase struct {
	settingsRepo adapter.UserSettingsRepository
	now          func() time.Time
}

// NewPreviewRemindersUseCase creates a new PreviewRemindersUseCase instance.
func NewPreviewRemindersUseCase(settingsRepo adapter.UserSettingsRepository) *PreviewRemindersUseCase {
	return &PreviewRemindersUseCase{
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// Execute validates the draft and resolves its reminder dates.
func (uc *PreviewRemindersUseCase) Execute(ctx context.Context, input PreviewRemindersInput) (*PreviewRemindersOutput, error) {
	draft := entity.NewPayment(input.UserID, input.Draft.PaymentType, input.Draft.ScheduleMode)
	if err := applyDraft(draft, input.Draft); err != nil {
		return nil, err
	}

	today, err := uc.today(ctx, input)
	if err != nil {
		return nil, err
	}

	out := &PreviewRemindersOutput{UpcomingReminders: []valueobject.Date{}}
	due, ok := recurrence.NextDueDateOn(draft, today)
	if !ok {
		return out, nil
	}
	out.NextDueDate = &due

	if nearest, ok := reminder.NearestReminderDate(due, draft.RemindOffsets, today); ok {
		out.NearestReminderDate = &nearest
	}
	if upcoming := reminder.UpcomingReminderDates(due, draft.RemindOffsets, today); upcoming != nil {
		out.UpcomingReminders = upcoming
	}
	return out, nil
}

func (uc *PreviewRemindersUseCase) today(ctx context.Context, input PreviewRemindersInput) (valueobject.Date, error) {
	if input.Date != nil && !input.Date.IsZero() {
		return *input.Date, nil
	}

	timezone := entity.DefaultTimezone
	settings, err := uc.settingsRepo.FindByUserID(ctx, input.UserID)
	switch {
	case err == nil:
		timezone = settings.Timezone
	case !errors.Is(err, domainerror.ErrSettingsNotFound):
		return valueobject.Date{}, fmt.Errorf("failed to get settings: %w", err)
	}

	fallback, _ := valueobject.LoadLocation(entity.DefaultTimezone, time.UTC)
	loc, _ := valueobject.LoadLocation(timezone, fallback)
	return valueobject.DateOf(uc.now(), loc), nil
}
