package mock

import (
	"time"

	"github.com/payontime/backend/internal/domain/valueobject"
)

// Clock resolves relative dates used in feature files.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a clock reading the wall time in the named zone, falling back to UTC.
func NewClock(zone string) *Clock {
	loc, _ := valueobject.LoadLocation(zone, time.UTC)
	return &Clock{loc: loc, now: time.Now}
}

// Today returns the current calendar date in the clock's zone.
func (c *Clock) Today() valueobject.Date {
	return valueobject.DateOf(c.now(), c.loc)
}

// DaysFromToday returns today shifted by n calendar days.
func (c *Clock) DaysFromToday(n int) valueobject.Date {
	return c.Today().AddDays(n)
}
