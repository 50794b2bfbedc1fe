// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/domain/recurrence"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// Window lengths in days of the dashboard views.
const (
	SevenDays  = 7
	ThirtyDays = 30
	NinetyDays = 90
	// YearAhead is how far the full view projects active recurring payments.
	YearAhead = 365
)

// GetDashboardInput represents the input for building the dashboard.
type GetDashboardInput struct {
	UserID uuid.UUID
	// Date overrides "today"; nil means the current date in the user's timezone.
	Date *valueobject.Date
}

// GetDashboardOutput represents the output of building the dashboard.
type GetDashboardOutput struct {
	Today      valueobject.Date
	SevenDays  []entity.DueItem
	ThirtyDays []entity.DueItem
	NinetyDays []entity.DueItem
	All        []entity.DueItem
	Overdue    []entity.DueItem
}

// GetDashboardUseCase groups a user's payments into due-date views.
type GetDashboardUseCase struct {
	paymentRepo  adapter.PaymentRepository
	settingsRepo adapter.UserSettingsRepository
	now          func() time.Time
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	paymentRepo adapter.PaymentRepository,
	settingsRepo adapter.UserSettingsRepository,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		paymentRepo:  paymentRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// Execute builds the dashboard views.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	today, err := uc.resolveToday(ctx, input)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return BuildDashboard(payments, today), nil
}

func (uc *GetDashboardUseCase) resolveToday(ctx context.Context, input GetDashboardInput) (valueobject.Date, error) {
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

// BuildDashboard evaluates payments against the windows starting at today.
// Windowed views contain active payments only. The full view projects active recurring payments a
// year ahead and lists every other payment once, by its stored or next due date.
func BuildDashboard(payments []*entity.Payment, today valueobject.Date) *GetDashboardOutput {
	active := make([]*entity.Payment, 0, len(payments))
	for _, p := range payments {
		if p.IsActive {
			active = append(active, p)
		}
	}

	out := &GetDashboardOutput{
		Today:      today,
		SevenDays:  window(active, today, SevenDays),
		ThirtyDays: window(active, today, ThirtyDays),
		NinetyDays: window(active, today, NinetyDays),
	}

	for _, p := range payments {
		if p.IsActive && p.IsRecurring() {
			out.All = append(out.All, recurrence.DueItemsInWindow([]*entity.Payment{p}, today, today.AddDays(YearAhead))...)
			continue
		}

		item, ok := singleItem(p, today)
		if !ok {
			continue
		}
		out.All = append(out.All, item)
		if item.IsOverdue && p.IsActive {
			out.Overdue = append(out.Overdue, item)
		}
	}

	SortDueItems(out.All)
	SortDueItems(out.Overdue)
	return out
}

// singleItem resolves the one row shown for a one-time or inactive payment.
func singleItem(p *entity.Payment, today valueobject.Date) (entity.DueItem, bool) {
	if p.IsOneTime() {
		if p.DueDate == nil || p.DueDate.IsZero() {
			return entity.DueItem{}, false
		}
		return entity.DueItem{
			Payment:   p,
			DueDate:   *p.DueDate,
			IsOverdue: p.DueDate.Before(today),
		}, true
	}

	due, ok := recurrence.NextDueDateOn(p, today)
	if !ok {
		return entity.DueItem{}, false
	}
	return entity.DueItem{Payment: p, DueDate: due}, true
}

func window(payments []*entity.Payment, today valueobject.Date, days int) []entity.DueItem {
	items := recurrence.DueItemsInWindow(payments, today, today.AddDays(days))
	SortDueItems(items)
	return items
}

// SortDueItems orders items by due date, then by display name.
func SortDueItems(items []entity.DueItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := items[i].DueDate.Compare(items[j].DueDate); c != 0 {
			return c < 0
		}
		return items[i].Payment.DisplayName() < items[j].Payment.DisplayName()
	})
}
