// Package valueobject contains immutable value types shared across the domain layer.
package valueobject

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component or timezone.
// All due-date and reminder comparisons are made on Date values, never on instants.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalising overflowing months and days the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateFromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateFromTime takes the wall-clock calendar fields of t as they are.
func DateFromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateOf renders an instant as the calendar date observed in loc.
func DateOf(instant time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateFromTime(instant.In(loc))
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}
	return DateFromTime(t), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(value string) Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String returns the zero-padded "YYYY-MM-DD" form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Number returns the YYYYMMDD integer form used for ordering.
func (d Date) Number() int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	a, b := d.Number(), other.Number()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Number() < other.Number() }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.Number() > other.Number() }

// Equal reports whether both dates name the same day.
func (d Date) Equal(other Date) bool { return d.Number() == other.Number() }

// Between reports whether start <= d <= end.
func (d Date) Between(start, end Date) bool {
	n := d.Number()
	return n >= start.Number() && n <= end.Number()
}

// AddDays moves the date by n calendar days. UTC arithmetic keeps it free of DST shifts.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// DaysUntil returns the number of calendar days from d to other (negative when other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a "YYYY-MM-DD" string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysInMonth returns the last valid day number of the month, accounting for leap years.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths shifts (year, month) by delta months, carrying into the year.
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	index := year*12 + int(month) - 1 + delta
	newYear := floorDiv(index, 12)
	return newYear, time.Month(index-newYear*12) + 1
}

// MonthsBetween returns the number of whole calendar months from (fromYear, fromMonth) to (toYear, toMonth).
func MonthsBetween(fromYear int, fromMonth time.Month, toYear int, toMonth time.Month) int {
	return (toYear-fromYear)*12 + int(toMonth) - int(fromMonth)
}

// ClampDay limits day to the range of valid days of the given month.
func ClampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// LoadLocation resolves an IANA zone name, returning fallback and false when it is empty or unknown.
func LoadLocation(name string, fallback *time.Location) (*time.Location, bool) {
	if name == "" {
		return fallback, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback, false
	}
	return loc, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
