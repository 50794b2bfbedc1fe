// Package recurrence computes due dates of payments from their schedule definition.
// Every function here is pure: payments are read, never modified.
package recurrence

import (
	"time"

	"github.com/payontime/backend/internal/domain/entity"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// maxOccurrenceIterations bounds every walk over a schedule.
const maxOccurrenceIterations = 5000

// Interval is the resolved repetition step of a recurring payment.
type Interval struct {
	Unit  entity.IntervalUnit
	Value int
}

// ResolveInterval derives the repetition step. The legacy monthly mode always repeats every month,
// and a missing or non-positive value means 1.
func ResolveInterval(p *entity.Payment) Interval {
	if p.ScheduleMode == entity.ScheduleModeMonthly {
		return Interval{Unit: entity.IntervalUnitMonths, Value: 1}
	}
	value := 1
	if p.IntervalValue != nil && *p.IntervalValue >= 1 {
		value = *p.IntervalValue
	}
	if p.IntervalUnit == entity.IntervalUnitWeeks {
		return Interval{Unit: entity.IntervalUnitWeeks, Value: value}
	}
	return Interval{Unit: entity.IntervalUnitMonths, Value: value}
}

// NextDueDate returns the first due date on or after "today" as observed at from in loc.
// The boolean is false when the payment has no upcoming occurrence (lapsed or malformed).
func NextDueDate(p *entity.Payment, from time.Time, loc *time.Location) (valueobject.Date, bool) {
	return NextDueDateOn(p, valueobject.DateOf(from, loc))
}

// NextDueDateOn is NextDueDate for an already resolved calendar date.
func NextDueDateOn(p *entity.Payment, today valueobject.Date) (valueobject.Date, bool) {
	if p == nil {
		return valueobject.Date{}, false
	}
	if p.IsOneTime() {
		if p.DueDate == nil || p.DueDate.IsZero() || p.DueDate.Before(today) {
			return valueobject.Date{}, false
		}
		return *p.DueDate, true
	}
	if !hasValidDay(p) {
		return valueobject.Date{}, false
	}

	interval := ResolveInterval(p)
	if interval.Unit == entity.IntervalUnitWeeks {
		if anchor, ok := weeklyAnchor(p); ok {
			return nextWeekly(anchor, interval.Value, today), true
		}
		return nextWeeklyLegacy(p, interval.Value, today), true
	}

	if a, ok := monthlyAnchor(p, interval, today.Year); ok {
		return a.next(p, interval.Value, today)
	}
	return nextMonthlyLegacy(p, interval.Value, today), true
}

// OccurrencesInWindow lists every due date of p inside [start, end], in increasing order.
func OccurrencesInWindow(p *entity.Payment, start, end valueobject.Date) []valueobject.Date {
	if p == nil || end.Before(start) {
		return nil
	}
	if p.IsOneTime() {
		if p.DueDate == nil || p.DueDate.IsZero() || !p.DueDate.Between(start, end) {
			return nil
		}
		return []valueobject.Date{*p.DueDate}
	}
	if !hasValidDay(p) {
		return nil
	}

	interval := ResolveInterval(p)
	if interval.Unit == entity.IntervalUnitWeeks {
		anchor, ok := weeklyAnchor(p)
		if !ok {
			anchor = legacyWeeklyWindowAnchor(p, interval.Value, start)
		}
		return weeklyInWindow(anchor, interval.Value, start, end)
	}

	if a, ok := monthlyAnchor(p, interval, start.Year); ok {
		return a.inWindow(p, interval.Value, start, end)
	}
	return monthlyLegacyInWindow(p, interval.Value, start, end)
}

// ListOccurrencesInWindow evaluates one payment against a window given as instants, resolving both
// bounds to calendar dates in loc.
func ListOccurrencesInWindow(p *entity.Payment, windowStart, windowEnd time.Time, loc *time.Location) []entity.DueItem {
	return DueItemsInWindow(
		[]*entity.Payment{p},
		valueobject.DateOf(windowStart, loc),
		valueobject.DateOf(windowEnd, loc),
	)
}

// DueItemsInWindow expands every payment into its occurrences inside [start, end].
// Callers pass only the payments that should be considered; inactive ones are not filtered here.
func DueItemsInWindow(payments []*entity.Payment, start, end valueobject.Date) []entity.DueItem {
	var items []entity.DueItem
	for _, p := range payments {
		for _, due := range OccurrencesInWindow(p, start, end) {
			items = append(items, entity.DueItem{Payment: p, DueDate: due})
		}
	}
	return items
}

func hasValidDay(p *entity.Payment) bool {
	if p.DayOfMonth == nil || p.IsLastDayOfMonth {
		return true
	}
	return *p.DayOfMonth >= 1 && *p.DayOfMonth <= 31
}

// resolveDay returns the due day inside the given month.
func resolveDay(p *entity.Payment, year int, month time.Month, fallback int) int {
	if p.IsLastDayOfMonth {
		return valueobject.DaysInMonth(year, month)
	}
	day := fallback
	if p.DayOfMonth != nil {
		day = *p.DayOfMonth
	}
	return valueobject.ClampDay(year, month, day)
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}
