// Package reminder resolves reminder dates from a due date and signed day offsets.
package reminder

import (
	"sort"
	"time"

	"github.com/payontime/backend/internal/domain/valueobject"
)

// MaxOffsetDays bounds the distance between a reminder and its due date.
const MaxOffsetDays = 365

// ReminderDate returns dueDate shifted by offset calendar days.
func ReminderDate(dueDate valueobject.Date, offset int) valueobject.Date {
	return dueDate.AddDays(offset)
}

// NearestReminderDate returns the earliest reminder date on or after reference, or, when every
// reminder is already in the past, the latest past one. The boolean is false when dueDate is unset
// or there are no offsets.
func NearestReminderDate(dueDate valueobject.Date, offsets []int, reference valueobject.Date) (valueobject.Date, bool) {
	if dueDate.IsZero() || len(offsets) == 0 {
		return valueobject.Date{}, false
	}

	var upcoming, past valueobject.Date
	for _, offset := range offsets {
		candidate := ReminderDate(dueDate, offset)
		if !candidate.Before(reference) {
			if upcoming.IsZero() || candidate.Before(upcoming) {
				upcoming = candidate
			}
			continue
		}
		if past.IsZero() || candidate.After(past) {
			past = candidate
		}
	}

	if !upcoming.IsZero() {
		return upcoming, true
	}
	return past, true
}

// OffsetsFiringToday returns the offsets whose reminder date equals today, in input order and
// without duplicates.
func OffsetsFiringToday(dueDate valueobject.Date, offsets []int, today valueobject.Date) []int {
	if dueDate.IsZero() {
		return nil
	}
	var firing []int
	seen := make(map[int]bool, len(offsets))
	for _, offset := range offsets {
		if seen[offset] {
			continue
		}
		seen[offset] = true
		if ReminderDate(dueDate, offset).Equal(today) {
			firing = append(firing, offset)
		}
	}
	return firing
}

// OffsetsFiringAt is OffsetsFiringToday with "today" taken as the calendar date of now in loc.
func OffsetsFiringAt(dueDate valueobject.Date, offsets []int, now time.Time, loc *time.Location) []int {
	return OffsetsFiringToday(dueDate, offsets, valueobject.DateOf(now, loc))
}

// UpcomingReminderDates lists the distinct reminder dates on or after reference, earliest first.
func UpcomingReminderDates(dueDate valueobject.Date, offsets []int, reference valueobject.Date) []valueobject.Date {
	if dueDate.IsZero() {
		return nil
	}
	seen := make(map[int]bool, len(offsets))
	var dates []valueobject.Date
	for _, offset := range offsets {
		candidate := ReminderDate(dueDate, offset)
		if candidate.Before(reference) || seen[candidate.Number()] {
			continue
		}
		seen[candidate.Number()] = true
		dates = append(dates, candidate)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// ValidOffset reports whether an offset lies within the accepted range.
func ValidOffset(offset int) bool {
	return offset >= -MaxOffsetDays && offset <= MaxOffsetDays
}
