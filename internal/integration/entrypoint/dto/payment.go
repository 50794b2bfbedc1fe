package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payontime/backend/internal/application/usecase/payment"
	"github.com/payontime/backend/internal/domain/entity"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// PaymentRequest represents the request body for payment creation and update.
type PaymentRequest struct {
	PaymentType     string           `json:"payment_type" binding:"required,max=64"`
	Name            *string          `json:"name,omitempty" binding:"omitempty,max=255"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Currency        *string          `json:"currency,omitempty"`
	ProviderAddress *string          `json:"provider_address,omitempty" binding:"omitempty,max=2048"`

	ScheduleMode string            `json:"schedule_mode" binding:"required,oneof=one_time monthly recurring"`
	DueDate      *valueobject.Date `json:"due_date,omitempty"`

	IntervalUnit     string            `json:"interval_unit,omitempty" binding:"omitempty,oneof=months weeks"`
	IntervalValue    *int              `json:"interval_value,omitempty"`
	DayOfMonth       *int              `json:"day_of_month,omitempty"`
	IsLastDayOfMonth bool              `json:"is_last_day_of_month,omitempty"`
	CycleStartDate   *valueobject.Date `json:"cycle_start_date,omitempty"`
	MonthOfYear      *int              `json:"month_of_year,omitempty"`

	RemindOffsets []int `json:"remind_offsets"`
	IsFixed       bool  `json:"is_fixed,omitempty"`
	IsAutomatic   bool  `json:"is_automatic,omitempty"`
}

// ToDraft converts the request into the payment draft.
func (r PaymentRequest) ToDraft() payment.Draft {
	return payment.Draft{
		PaymentType:      r.PaymentType,
		Name:             r.Name,
		Amount:           r.Amount,
		Currency:         r.Currency,
		ProviderAddress:  r.ProviderAddress,
		ScheduleMode:     entity.ScheduleMode(r.ScheduleMode),
		DueDate:          r.DueDate,
		IntervalUnit:     entity.IntervalUnit(r.IntervalUnit),
		IntervalValue:    r.IntervalValue,
		DayOfMonth:       r.DayOfMonth,
		IsLastDayOfMonth: r.IsLastDayOfMonth,
		CycleStartDate:   r.CycleStartDate,
		MonthOfYear:      r.MonthOfYear,
		RemindOffsets:    r.RemindOffsets,
		IsFixed:          r.IsFixed,
		IsAutomatic:      r.IsAutomatic,
	}
}

// SetActiveRequest represents the request body for toggling a payment.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// PaymentResponse represents a single payment in API responses.
type PaymentResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	PaymentType     string  `json:"payment_type"`
	Name            *string `json:"name"`
	DisplayName     string  `json:"display_name"`
	Amount          *string `json:"amount"`
	Currency        *string `json:"currency"`
	ProviderAddress *string `json:"provider_address"`

	ScheduleMode string            `json:"schedule_mode"`
	DueDate      *valueobject.Date `json:"due_date"`

	IntervalUnit     string            `json:"interval_unit"`
	IntervalValue    *int              `json:"interval_value"`
	DayOfMonth       *int              `json:"day_of_month"`
	IsLastDayOfMonth bool              `json:"is_last_day_of_month"`
	CycleStartDate   *valueobject.Date `json:"cycle_start_date"`
	MonthOfYear      *int              `json:"month_of_year"`

	RemindOffsets []int     `json:"remind_offsets"`
	IsActive      bool      `json:"is_active"`
	IsFixed       bool      `json:"is_fixed"`
	IsAutomatic   bool      `json:"is_automatic"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PaymentListResponse represents the list of a user's payments.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ReminderPreviewResponse represents the informational reminder dates of a draft schedule.
type ReminderPreviewResponse struct {
	NextDueDate         *valueobject.Date  `json:"next_due_date"`
	NearestReminderDate *valueobject.Date  `json:"nearest_reminder_date"`
	UpcomingReminders   []valueobject.Date `json:"upcoming_reminders"`
}

// CategoryResponse represents one curated payment category.
type CategoryResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// CategoryListResponse represents the curated payment categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToPaymentResponse converts a domain Payment entity to a PaymentResponse DTO.
func ToPaymentResponse(p *entity.Payment) PaymentResponse {
	offsets := p.RemindOffsets
	if offsets == nil {
		offsets = []int{}
	}
	return PaymentResponse{
		ID:               p.ID.String(),
		UserID:           p.UserID.String(),
		PaymentType:      p.PaymentType,
		Name:             p.Name,
		DisplayName:      p.DisplayName(),
		Amount:           amountString(p.Amount),
		Currency:         p.Currency,
		ProviderAddress:  p.ProviderAddress,
		ScheduleMode:     string(p.ScheduleMode),
		DueDate:          p.DueDate,
		IntervalUnit:     string(p.IntervalUnit),
		IntervalValue:    p.IntervalValue,
		DayOfMonth:       p.DayOfMonth,
		IsLastDayOfMonth: p.IsLastDayOfMonth,
		CycleStartDate:   p.CycleStartDate,
		MonthOfYear:      p.MonthOfYear,
		RemindOffsets:    offsets,
		IsActive:         p.IsActive,
		IsFixed:          p.IsFixed,
		IsAutomatic:      p.IsAutomatic,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToPaymentListResponse converts payments to a PaymentListResponse DTO.
func ToPaymentListResponse(payments []*entity.Payment) PaymentListResponse {
	items := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = ToPaymentResponse(p)
	}
	return PaymentListResponse{Payments: items}
}

// ToReminderPreviewResponse converts the preview output to its DTO.
func ToReminderPreviewResponse(output *payment.PreviewRemindersOutput) ReminderPreviewResponse {
	return ReminderPreviewResponse{
		NextDueDate:         output.NextDueDate,
		NearestReminderDate: output.NearestReminderDate,
		UpcomingReminders:   output.UpcomingReminders,
	}
}

// ToCategoryListResponse converts categories to their DTO.
func ToCategoryListResponse(categories []entity.PaymentCategory) CategoryListResponse {
	items := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		items[i] = CategoryResponse{Name: c.Name, Label: c.Label}
	}
	return CategoryListResponse{Categories: items}
}

func amountString(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}
	s := amount.StringFixed(2)
	return &s
}
