// Package payment contains payment-related use cases.
package payment

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/domain/reminder"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// MaxPaymentTypeLength is the maximum allowed length for payment categories.
const MaxPaymentTypeLength = 64

// Draft carries the user-editable fields of a payment as submitted by the form.
type Draft struct {
	PaymentType     string
	Name            *string
	Amount          *decimal.Decimal
	Currency        *string
	ProviderAddress *string

	ScheduleMode entity.ScheduleMode
	DueDate      *valueobject.Date

	IntervalUnit     entity.IntervalUnit
	IntervalValue    *int
	DayOfMonth       *int
	IsLastDayOfMonth bool
	CycleStartDate   *valueobject.Date
	MonthOfYear      *int

	// RemindOffsets nil means the default offsets; an empty slice disables reminders.
	RemindOffsets []int
	IsFixed       bool
	IsAutomatic   bool
}

// applyDraft validates draft and copies it onto p. Fields that do not belong to the chosen
// schedule mode are cleared so that exactly one schedule shape is stored.
func applyDraft(p *entity.Payment, draft Draft) error {
	paymentType := strings.TrimSpace(draft.PaymentType)
	if paymentType == "" || len(paymentType) > MaxPaymentTypeLength {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeMissingPaymentFields,
			fmt.Sprintf("payment type is required and must not exceed %d characters", MaxPaymentTypeLength),
			domainerror.ErrMissingPaymentFields,
		)
	}

	if err := applySchedule(p, draft); err != nil {
		return err
	}

	offsets, err := normalizeOffsets(draft.RemindOffsets)
	if err != nil {
		return err
	}

	amount, currency, err := normalizeAmount(draft.Amount, draft.Currency)
	if err != nil {
		return err
	}

	provider, err := normalizeProviderAddress(draft.ProviderAddress)
	if err != nil {
		return err
	}

	p.PaymentType = paymentType
	p.Name = trimmedOrNil(draft.Name)
	p.Amount = amount
	p.Currency = currency
	p.ProviderAddress = provider
	p.RemindOffsets = offsets
	p.IsFixed = draft.IsFixed
	p.IsAutomatic = draft.IsAutomatic
	return nil
}

func applySchedule(p *entity.Payment, draft Draft) error {
	switch draft.ScheduleMode {
	case entity.ScheduleModeOneTime:
		if draft.DueDate == nil || draft.DueDate.IsZero() {
			return domainerror.NewPaymentError(
				domainerror.ErrCodeMissingDueDate,
				"one-time payment requires a due date",
				domainerror.ErrMissingDueDate,
			)
		}
		due := *draft.DueDate
		p.ScheduleMode = entity.ScheduleModeOneTime
		p.DueDate = &due
		p.IntervalUnit = entity.IntervalUnitMonths
		p.IntervalValue = nil
		p.DayOfMonth = nil
		p.IsLastDayOfMonth = false
		p.CycleStartDate = nil
		p.MonthOfYear = nil
		return nil

	case entity.ScheduleModeMonthly, entity.ScheduleModeRecurring:
	default:
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidScheduleMode,
			"schedule mode must be 'one_time', 'monthly' or 'recurring'",
			domainerror.ErrInvalidScheduleMode,
		)
	}

	unit := draft.IntervalUnit
	if unit == "" {
		unit = entity.IntervalUnitMonths
	}
	if unit != entity.IntervalUnitMonths && unit != entity.IntervalUnitWeeks {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidInterval,
			"interval unit must be 'months' or 'weeks'",
			domainerror.ErrInvalidInterval,
		)
	}
	value := 1
	if draft.IntervalValue != nil {
		value = *draft.IntervalValue
	}
	if value < 1 {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidInterval,
			"interval value must be at least 1",
			domainerror.ErrInvalidInterval,
		)
	}
	if draft.ScheduleMode == entity.ScheduleModeMonthly {
		unit, value = entity.IntervalUnitMonths, 1
	}

	var day *int
	lastDay := false
	if unit == entity.IntervalUnitMonths {
		lastDay = draft.IsLastDayOfMonth
		if !lastDay {
			if draft.DayOfMonth == nil || *draft.DayOfMonth < 1 || *draft.DayOfMonth > 31 {
				return domainerror.NewPaymentError(
					domainerror.ErrCodeInvalidDayOfMonth,
					"day of month must be between 1 and 31",
					domainerror.ErrInvalidDayOfMonth,
				)
			}
			d := *draft.DayOfMonth
			day = &d
		}
	} else if draft.DayOfMonth != nil {
		if *draft.DayOfMonth < 1 || *draft.DayOfMonth > 31 {
			return domainerror.NewPaymentError(
				domainerror.ErrCodeInvalidDayOfMonth,
				"day of month must be between 1 and 31",
				domainerror.ErrInvalidDayOfMonth,
			)
		}
		d := *draft.DayOfMonth
		day = &d
	}

	var monthOfYear *int
	if draft.MonthOfYear != nil {
		if *draft.MonthOfYear < 1 || *draft.MonthOfYear > 12 {
			return domainerror.NewPaymentError(
				domainerror.ErrCodeInvalidMonthOfYear,
				"month of year must be between 1 and 12",
				domainerror.ErrInvalidMonthOfYear,
			)
		}
		m := *draft.MonthOfYear
		monthOfYear = &m
	}

	var cycleStart *valueobject.Date
	if draft.CycleStartDate != nil && !draft.CycleStartDate.IsZero() {
		c := *draft.CycleStartDate
		cycleStart = &c
	}

	p.ScheduleMode = draft.ScheduleMode
	p.DueDate = nil
	p.IntervalUnit = unit
	p.IntervalValue = &value
	p.DayOfMonth = day
	p.IsLastDayOfMonth = lastDay
	p.CycleStartDate = cycleStart
	p.MonthOfYear = monthOfYear
	return nil
}

func normalizeOffsets(offsets []int) ([]int, error) {
	if offsets == nil {
		out := make([]int, len(entity.DefaultRemindOffsets))
		copy(out, entity.DefaultRemindOffsets)
		return out, nil
	}

	out := make([]int, 0, len(offsets))
	seen := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		if !reminder.ValidOffset(o) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodeInvalidRemindOffsets,
				fmt.Sprintf("reminder offsets must be between -%d and %d days", reminder.MaxOffsetDays, reminder.MaxOffsetDays),
				domainerror.ErrInvalidRemindOffsets,
			)
		}
		if seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out, nil
}

func normalizeAmount(amount *decimal.Decimal, currency *string) (*decimal.Decimal, *string, error) {
	if amount == nil {
		return nil, trimmedOrNil(currency), nil
	}
	if amount.IsNegative() {
		return nil, nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must not be negative",
			domainerror.ErrInvalidPaymentAmount,
		)
	}

	code := entity.DefaultCurrency
	if c := trimmedOrNil(currency); c != nil {
		code = strings.ToUpper(*c)
	}
	if !isCurrencyCode(code) {
		return nil, nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidCurrency,
			"currency must be a three-letter code",
			domainerror.ErrInvalidCurrency,
		)
	}

	a := amount.Round(2)
	return &a, &code, nil
}

func normalizeProviderAddress(address *string) (*string, error) {
	value := trimmedOrNil(address)
	if value == nil {
		return nil, nil
	}
	u, err := url.Parse(*value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidProviderAddress,
			"provider address must be an http or https URL",
			domainerror.ErrInvalidProviderAddress,
		)
	}
	return value, nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
