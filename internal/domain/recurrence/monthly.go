package recurrence

import (
	"time"

	"github.com/payontime/backend/internal/domain/entity"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// monthAnchor is the fixed calendar origin of a month-based schedule.
type monthAnchor struct {
	year        int
	month       time.Month
	fallbackDay int
	// floor excludes occurrences before the explicit cycle start; zero means no floor.
	floor valueobject.Date
}

// monthlyAnchor returns the anchor of a month-based schedule. An explicit cycle start wins;
// otherwise a yearly schedule with a month-of-year is anchored in that month of the year
// preceding referenceYear. Schedules without either use the legacy path.
func monthlyAnchor(p *entity.Payment, interval Interval, referenceYear int) (monthAnchor, bool) {
	if p.CycleStartDate != nil && !p.CycleStartDate.IsZero() {
		start := *p.CycleStartDate
		return monthAnchor{
			year:        start.Year,
			month:       start.Month,
			fallbackDay: start.Day,
			floor:       start,
		}, true
	}
	if p.MonthOfYear != nil && interval.Value == 12 && *p.MonthOfYear >= 1 && *p.MonthOfYear <= 12 {
		return monthAnchor{
			year:        referenceYear - 1,
			month:       time.Month(*p.MonthOfYear),
			fallbackDay: 1,
		}, true
	}
	return monthAnchor{}, false
}

// occurrence returns the date of the step-th occurrence after the anchor month.
func (a monthAnchor) occurrence(p *entity.Payment, step int) valueobject.Date {
	year, month := valueobject.AddMonths(a.year, a.month, step)
	return valueobject.NewDate(year, month, resolveDay(p, year, month, a.fallbackDay))
}

// firstStep returns the index of the last step whose month is not after the given month.
func (a monthAnchor) firstStep(year int, month time.Month, every int) int {
	months := valueobject.MonthsBetween(a.year, a.month, year, month)
	if months <= 0 {
		return 0
	}
	return months / every
}

func (a monthAnchor) next(p *entity.Payment, every int, today valueobject.Date) (valueobject.Date, bool) {
	k := a.firstStep(today.Year, today.Month, every)
	for i := 0; i < maxOccurrenceIterations; i++ {
		candidate := a.occurrence(p, (k+i)*every)
		if !a.floor.IsZero() && candidate.Before(a.floor) {
			continue
		}
		if !candidate.Before(today) {
			return candidate, true
		}
	}
	return valueobject.Date{}, false
}

func (a monthAnchor) inWindow(p *entity.Payment, every int, start, end valueobject.Date) []valueobject.Date {
	var dates []valueobject.Date
	k := a.firstStep(start.Year, start.Month, every)
	for i := 0; i < maxOccurrenceIterations; i++ {
		candidate := a.occurrence(p, (k+i)*every)
		if candidate.After(end) {
			break
		}
		if !a.floor.IsZero() && candidate.Before(a.floor) {
			continue
		}
		if candidate.Before(start) {
			continue
		}
		dates = append(dates, candidate)
	}
	return dates
}

// nextMonthlyLegacy resolves the due day in today's month and moves one interval ahead when that
// day has already passed. It anchors off today, so intervals above one month drift depending on the
// day it runs; stored payments rely on this exact behaviour.
func nextMonthlyLegacy(p *entity.Payment, every int, today valueobject.Date) valueobject.Date {
	baseDay := valueobject.ClampDay(today.Year, today.Month, today.Day)
	if p.DayOfMonth != nil {
		baseDay = valueobject.ClampDay(today.Year, today.Month, *p.DayOfMonth)
	}
	if p.IsLastDayOfMonth {
		baseDay = valueobject.DaysInMonth(today.Year, today.Month)
	}

	delta := 0
	if today.Day > baseDay {
		delta = every
	}
	year, month := valueobject.AddMonths(today.Year, today.Month, delta)
	return valueobject.NewDate(year, month, resolveDay(p, year, month, baseDay))
}

// monthlyLegacyInWindow walks from the window start month through the window end month inclusive.
func monthlyLegacyInWindow(p *entity.Payment, every int, start, end valueobject.Date) []valueobject.Date {
	var dates []valueobject.Date
	year, month := start.Year, start.Month
	for i := 0; i < maxOccurrenceIterations; i++ {
		if year > end.Year || (year == end.Year && month > end.Month) {
			break
		}
		candidate := valueobject.NewDate(year, month, resolveDay(p, year, month, 1))
		if candidate.Between(start, end) {
			dates = append(dates, candidate)
		}
		year, month = valueobject.AddMonths(year, month, every)
	}
	return dates
}
