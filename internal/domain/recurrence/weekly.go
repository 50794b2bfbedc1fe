package recurrence

import (
	"github.com/payontime/backend/internal/domain/entity"
	"github.com/payontime/backend/internal/domain/valueobject"
)

func weeklyAnchor(p *entity.Payment) (valueobject.Date, bool) {
	if p.CycleStartDate == nil || p.CycleStartDate.IsZero() {
		return valueobject.Date{}, false
	}
	return *p.CycleStartDate, true
}

// nextWeekly returns the first anchor + k*step on or after today, never earlier than the anchor.
func nextWeekly(anchor valueobject.Date, everyWeeks int, today valueobject.Date) valueobject.Date {
	step := everyWeeks * 7
	diff := anchor.DaysUntil(today)
	if diff <= 0 {
		return anchor
	}
	return anchor.AddDays(ceilDiv(diff, step) * step)
}

// nextWeeklyLegacy starts from the day of month in today's month and steps forward until it
// reaches today.
func nextWeeklyLegacy(p *entity.Payment, everyWeeks int, today valueobject.Date) valueobject.Date {
	day := today.Day
	if p.DayOfMonth != nil {
		day = *p.DayOfMonth
	}
	candidate := valueobject.NewDate(today.Year, today.Month, valueobject.ClampDay(today.Year, today.Month, day))
	return nextWeekly(candidate, everyWeeks, today)
}

// legacyWeeklyWindowAnchor derives an anchor from the day of month in the window start month and
// aligns it, backwards or forwards by whole steps, to the first occurrence on or after start.
func legacyWeeklyWindowAnchor(p *entity.Payment, everyWeeks int, start valueobject.Date) valueobject.Date {
	day := start.Day
	if p.DayOfMonth != nil {
		day = *p.DayOfMonth
	}
	anchor := valueobject.NewDate(start.Year, start.Month, valueobject.ClampDay(start.Year, start.Month, day))
	step := everyWeeks * 7
	return anchor.AddDays(ceilDiv(anchor.DaysUntil(start), step) * step)
}

func weeklyInWindow(anchor valueobject.Date, everyWeeks int, start, end valueobject.Date) []valueobject.Date {
	step := everyWeeks * 7
	first := anchor
	if diff := anchor.DaysUntil(start); diff > 0 {
		first = anchor.AddDays(ceilDiv(diff, step) * step)
	}

	var dates []valueobject.Date
	for i, candidate := 0, first; i < maxOccurrenceIterations && !candidate.After(end); i++ {
		dates = append(dates, candidate)
		candidate = candidate.AddDays(step)
	}
	return dates
}
