// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payontime/backend/internal/domain/valueobject"
)

// ScheduleMode describes how a payment repeats.
type ScheduleMode string

const (
	ScheduleModeOneTime ScheduleMode = "one_time"
	// ScheduleModeMonthly is the legacy alias for a recurring payment every month.
	ScheduleModeMonthly   ScheduleMode = "monthly"
	ScheduleModeRecurring ScheduleMode = "recurring"
)

// IntervalUnit is the unit of a recurring interval.
type IntervalUnit string

const (
	IntervalUnitMonths IntervalUnit = "months"
	IntervalUnitWeeks  IntervalUnit = "weeks"
)

// DefaultRemindOffsets are applied when a payment is created without offsets.
var DefaultRemindOffsets = []int{-3, 0}

// DefaultCurrency is applied when an amount is given without a currency code.
const DefaultCurrency = "PLN"

// Payment is a recurring or one-time financial obligation owned by a user.
type Payment struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	PaymentType     string
	Name            *string
	Amount          *decimal.Decimal
	Currency        *string
	ProviderAddress *string

	ScheduleMode ScheduleMode
	DueDate      *valueobject.Date

	IntervalUnit     IntervalUnit
	IntervalValue    *int
	DayOfMonth       *int
	IsLastDayOfMonth bool
	CycleStartDate   *valueobject.Date
	MonthOfYear      *int

	RemindOffsets []int
	IsActive      bool
	IsFixed       bool
	IsAutomatic   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPayment creates an active payment with a fresh identifier and default offsets.
func NewPayment(userID uuid.UUID, paymentType string, mode ScheduleMode) *Payment {
	now := time.Now().UTC()
	offsets := make([]int, len(DefaultRemindOffsets))
	copy(offsets, DefaultRemindOffsets)
	return &Payment{
		ID:            uuid.New(),
		UserID:        userID,
		PaymentType:   paymentType,
		ScheduleMode:  mode,
		IntervalUnit:  IntervalUnitMonths,
		RemindOffsets: offsets,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// DisplayName returns the user-given name, falling back to the payment category.
func (p *Payment) DisplayName() string {
	if p.Name != nil {
		if name := strings.TrimSpace(*p.Name); name != "" {
			return name
		}
	}
	return p.PaymentType
}

// IsOneTime reports whether the payment is a single obligation.
func (p *Payment) IsOneTime() bool {
	return p.ScheduleMode == ScheduleModeOneTime
}

// IsRecurring reports whether the payment repeats (recurring or legacy monthly).
func (p *Payment) IsRecurring() bool {
	return !p.IsOneTime()
}

// PaymentCategory is an entry of the curated payment category list.
type PaymentCategory struct {
	Name  string
	Label string
}
